// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vectorize

import (
	"errors"
	"strings"
	"testing"

	"github.com/ajroetker/hwyvec/expr"
)

func TestBuiltins(t *testing.T) {
	s := Builtins()
	if s.Name() != BuiltinName {
		t.Errorf("Name: got %q, want %q", s.Name(), BuiltinName)
	}
	if s.Len() != len(expr.Builtins) {
		t.Errorf("Len: got %d, want %d", s.Len(), len(expr.Builtins))
	}
	for _, b := range expr.Builtins {
		got, ok := s.TryResolve(b.Scalar)
		if !ok {
			t.Errorf("%s not resolved", b.Scalar)
			continue
		}
		if !got.Equal(b.Vector) {
			t.Errorf("%s: got %s, want %s", b.Scalar, got, b.Vector)
		}
	}
	if _, ok := s.TryResolve(expr.VecMaxFunc); ok {
		t.Error("vector function resolved as a scalar one")
	}
}

func TestNewTableStrategyRejects(t *testing.T) {
	tests := []struct {
		name    string
		entries []Replacement
		want    string
	}{
		{
			name:    "arity",
			entries: []Replacement{{Scalar: expr.PowFunc, Vector: expr.VecSqrtFunc}},
			want:    "not the lane-wise form",
		},
		{
			name:    "scalar replacement",
			entries: []Replacement{{Scalar: expr.LogFunc, Vector: expr.ExpFunc}},
			want:    "not the lane-wise form",
		},
		{
			name: "duplicate",
			entries: []Replacement{
				{Scalar: expr.MaxFunc, Vector: expr.VecMaxFunc},
				{Scalar: expr.MaxFunc, Vector: expr.VecMinFunc},
			},
			want: "duplicate entry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableStrategy("t", tt.entries...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestCorresponds(t *testing.T) {
	tests := []struct {
		original, replacement expr.FuncRef
		want                  bool
	}{
		{expr.MaxFunc, expr.VecMaxFunc, true},
		{expr.LogFunc, expr.VecLogFunc, true},
		{expr.MaxFunc, expr.VecLogFunc, false},
		{expr.LogFunc, expr.VecMaxFunc, false},
		{expr.LogFunc, expr.LogFunc, false},
		{expr.VecLogFunc, expr.VecLogFunc, false},
		{expr.LogFunc, expr.FuncRef{Name: "f", Params: []expr.Type{expr.VecFloat64}, Result: expr.Float64}, false},
	}
	for _, tt := range tests {
		if got := Corresponds(tt.original, tt.replacement); got != tt.want {
			t.Errorf("Corresponds(%s, %s): got %v, want %v", tt.original, tt.replacement, got, tt.want)
		}
	}
}

type staticCatalog []expr.FuncRef

func (c staticCatalog) VectorFunctions() []expr.FuncRef { return c }

func TestCatalogStrategy(t *testing.T) {
	custom := expr.FuncRef{
		Package: "example.com/fast",
		Name:    "BaseHypotVec",
		Params:  []expr.Type{expr.VecFloat64, expr.VecFloat64},
		Result:  expr.VecFloat64,
	}
	shadow := custom
	shadow.Package = "example.com/slow"
	c := staticCatalog{shadow, expr.VecPowFunc, expr.VecLogFunc, custom}
	s := NewCatalogStrategy(c)
	c[0] = expr.VecExpFunc

	tests := []struct {
		ref  expr.FuncRef
		want expr.FuncRef
		ok   bool
	}{
		{expr.PowFunc, expr.VecPowFunc, true},
		{expr.LogFunc, expr.VecLogFunc, true},
		{expr.MustParse("hypot(x, y)").Body.(*expr.Call).Func, custom, true},
		{expr.ExpFunc, expr.FuncRef{}, false},
		{expr.MustParse("hypot(x)").Body.(*expr.Call).Func, expr.FuncRef{}, false},
		{expr.MaxFunc, expr.FuncRef{}, false},
	}
	for _, tt := range tests {
		got, ok := s.TryResolve(tt.ref)
		if ok != tt.ok {
			t.Errorf("%s: got ok=%v, want %v", tt.ref, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("%s: got %s, want %s", tt.ref, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	for name, want := range map[string]string{
		"BaseLogVec": "log",
		"Pow":        "pow",
		"max":        "max",
		"Vec":        "vec",
		"Base":       "base",
		"BaseVec":    "basevec",
	} {
		if got := baseName(name); got != want {
			t.Errorf("baseName(%q): got %q, want %q", name, got, want)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	x := expr.NewParam(0, "x")
	tests := []struct {
		err  error
		want string
	}{
		{&UnsupportedShapeError{Reason: "function has no body"}, "vectorize: unsupported shape: function has no body"},
		{&UnsupportedShapeError{Node: &expr.Unary{Op: expr.Neg, X: x}, Reason: "r"}, `vectorize: unsupported Unary(-) "-x": r`},
		{&UnsupportedCallError{Ref: expr.LogFunc}, "vectorize: no vector replacement for math.Log(float64)->float64"},
		{&ArityMismatchError{Original: expr.MaxFunc, Replacement: expr.VecLogFunc, Strategy: "s"}, "vectorize: strategy s replaced max(float64,float64)->float64 with math.BaseLogVec(hwy.Vec[float64])->hwy.Vec[float64], want (hwy.Vec[float64],hwy.Vec[float64])->hwy.Vec[float64]"},
		{&ArityMismatchError{Original: expr.PowFunc, Replacement: expr.PowFunc, Strategy: "s"}, "vectorize: strategy s replaced math.Pow(float64,float64)->float64 with math.Pow(float64,float64)->float64, want (hwy.Vec[float64],hwy.Vec[float64])->hwy.Vec[float64]"},
		{&ArityMismatchError{Original: expr.FuncRef{Name: "isNaN", Params: []expr.Type{expr.Bool}, Result: expr.Float64}, Replacement: expr.VecAbsFunc, Strategy: "s"}, "vectorize: strategy s replaced isNaN(bool)->float64 with hwy.Abs(hwy.Vec[float64])->hwy.Vec[float64], but isNaN has no lane-wise form"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestResolveClonesParams(t *testing.T) {
	v := New(Builtins())
	repl, err := v.Resolve(expr.PowFunc)
	if err != nil {
		t.Fatal(err)
	}
	repl.Params[0] = expr.Invalid
	again, err := v.Resolve(expr.PowFunc)
	if err != nil {
		t.Fatal(err)
	}
	if again.Params[0] != expr.VecFloat64 {
		t.Errorf("Resolve returned shared parameter slice")
	}

	_, err = v.Resolve(expr.FuncRef{Name: "erf", Params: []expr.Type{expr.Float64}, Result: expr.Float64})
	if !errors.As(err, new(*UnsupportedCallError)) {
		t.Errorf("got %v, want *UnsupportedCallError", err)
	}
}
