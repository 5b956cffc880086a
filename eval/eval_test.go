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

package eval

import (
	"math"
	"strings"
	"testing"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ajroetker/hwyvec/expr"
	"github.com/ajroetker/hwyvec/hwy"
)

// vectorForm rebuilds fn over vector parameters without resolving calls,
// mapping each builtin to its vector function directly.
func vectorForm(t *testing.T, fn *expr.Function) *expr.Function {
	t.Helper()
	params := []*expr.Param{
		{Index: 0, Name: fn.Params[0].Name, Typ: expr.VecFloat64},
		{Index: 1, Name: fn.Params[1].Name, Typ: expr.VecFloat64},
	}
	var rebuild func(n expr.Node) expr.Node
	rebuild = func(n expr.Node) expr.Node {
		switch n := n.(type) {
		case *expr.Const:
			return &expr.Const{Value: n.Value, Typ: expr.VecFloat64}
		case *expr.Param:
			return params[n.Index]
		case *expr.Unary:
			return &expr.Unary{Op: n.Op, X: rebuild(n.X)}
		case *expr.Binary:
			return &expr.Binary{Op: n.Op, X: rebuild(n.X), Y: rebuild(n.Y), Typ: expr.VecFloat64}
		case *expr.Call:
			for _, b := range expr.Builtins {
				if b.Scalar.Equal(n.Func) {
					args := make([]expr.Node, len(n.Args))
					for i, a := range n.Args {
						args[i] = rebuild(a)
					}
					return expr.NewCall(b.Vector, args...)
				}
			}
		}
		t.Fatalf("cannot rebuild %s", n)
		return nil
	}
	return expr.NewFunction(fn.Name, params, rebuild(fn.Body))
}

func TestCompileScalar(t *testing.T) {
	tests := []struct {
		src  string
		x, y float64
		want float64
	}{
		{"x + y", 1, 2, 3},
		{"(x - y) / 2", 5, 1, 2},
		{"max(x, y) * min(x, y)", 3, -2, -6},
		{"pow(x, y)", 2, 10, 1024},
		{"sqrt(abs(x))", -16, 0, 4},
		{"log(exp(x))", 0, 0, 0},
		{"-x * y", 3, 4, -12},
		{"x / y", 1, 0, math.Inf(1)},
		{"max(x, y)", math.NaN(), 1, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, err := CompileScalar(expr.MustParse(tt.src), nil)
			if err != nil {
				t.Fatal(err)
			}
			got := f(tt.x, tt.y)
			if math.IsNaN(tt.want) && math.IsNaN(got) {
				return
			}
			if got != tt.want {
				t.Errorf("f(%v, %v): got %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestCompileVectorMatchesScalar(t *testing.T) {
	xs := []float64{0, math.Copysign(0, -1), 1, -1, 2.5, 1e300, math.Inf(1), math.Inf(-1), math.NaN(), 7}
	ys := []float64{math.Copysign(0, -1), 0, -3, 3, 0.5, 1e-300, 1, math.Inf(1), 2, math.NaN()}

	for _, src := range []string{"x * y + 1", "max(x, y) - min(x, y)", "pow(x, y) / sqrt(abs(y))", "-exp(x) + log(y)"} {
		t.Run(src, func(t *testing.T) {
			fn := expr.MustParse(src)
			sf, err := CompileScalar(fn, nil)
			if err != nil {
				t.Fatal(err)
			}
			vf, err := CompileVector(vectorForm(t, fn), DefaultLibrary())
			if err != nil {
				t.Fatal(err)
			}
			want := make([]float64, len(xs))
			got := make([]float64, len(xs))
			ApplyScalar(sf, xs, ys, want)
			Apply(vf, xs, ys, got)
			if diff := cmp.Diff(want, got, cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("mismatch (-scalar +vector):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	vx := &expr.Param{Index: 0, Name: "x", Typ: expr.VecFloat64}
	vy := &expr.Param{Index: 1, Name: "y", Typ: expr.VecFloat64}

	tests := []struct {
		name   string
		fn     *expr.Function
		vector bool
		want   string
	}{
		{"nil", nil, false, "nil function"},
		{"comparison", expr.MustParse("x < y"), false, "returns bool"},
		{"unknown call", expr.MustParse("hypot(x, y)"), false, "no scalar implementation for hypot"},
		{"one parameter", expr.MustParse("x", "x"), false, "has 1 parameters"},
		{"vector parameters", expr.MustParse("x + y"), true, "want hwy.Vec[float64]"},
		{"scalar call in vector", expr.NewFunction("f", []*expr.Param{vx, vy}, expr.NewCall(expr.MaxFunc, vx, vy)), true, "argument 0"},
		{"unknown vector call", expr.NewFunction("f", []*expr.Param{vx, vy}, expr.NewCall(expr.FuncRef{
			Name: "Hypot", Params: []expr.Type{expr.VecFloat64, expr.VecFloat64}, Result: expr.VecFloat64,
		}, vx, vy)), true, "no vector implementation for Hypot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.vector {
				_, err = CompileVector(tt.fn, nil)
			} else {
				_, err = CompileScalar(tt.fn, nil)
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestApplyTail(t *testing.T) {
	fn := expr.MustParse("x * y")
	vf, err := CompileVector(vectorForm(t, fn), nil)
	if err != nil {
		t.Fatal(err)
	}

	lanes := hwy.MaxLanes[float64]()
	for _, n := range []int{0, 1, lanes - 1, lanes, lanes + 1, 3*lanes + 1, 1000} {
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range n {
			xs[i] = float64(i)*0.75 - 3
			ys[i] = 1 / float64(i+1)
		}

		want := make([]float64, n)
		vecmath.MulBlock(want, xs, ys)

		got := make([]float64, n+2)
		got[n], got[n+1] = -1, -1
		Apply(vf, xs, ys, got)
		if diff := cmp.Diff(want, got[:n]); diff != "" {
			t.Errorf("n=%d: mismatch (-want +got):\n%s", n, diff)
		}
		if got[n] != -1 || got[n+1] != -1 {
			t.Errorf("n=%d: wrote past the input length", n)
		}
	}
}

func TestApplyShortestSlice(t *testing.T) {
	f := func(x, y float64) float64 { return x + y }
	out := []float64{9, 9, 9}
	ApplyScalar(f, []float64{1, 2, 3}, []float64{10, 20}, out)
	if diff := cmp.Diff([]float64{11, 22, 9}, out); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestLibrary(t *testing.T) {
	lib := NewLibrary()
	if err := lib.RegisterScalar(expr.VecMaxFunc, nil); err == nil {
		t.Error("RegisterScalar accepted a vector function")
	}
	if err := lib.RegisterVector(expr.MaxFunc, nil); err == nil {
		t.Error("RegisterVector accepted a scalar function")
	}

	hypot := expr.FuncRef{Name: "hypot", Params: []expr.Type{expr.Float64, expr.Float64}, Result: expr.Float64}
	if err := lib.RegisterScalar(hypot, func(a []float64) float64 { return math.Hypot(a[0], a[1]) }); err != nil {
		t.Fatal(err)
	}
	f, err := CompileScalar(expr.MustParse("hypot(x, y)"), lib)
	if err != nil {
		t.Fatal(err)
	}
	if got := f(3, 4); got != 5 {
		t.Errorf("hypot(3, 4): got %v, want 5", got)
	}
	if got := lib.ScalarFunctions(); len(got) != 1 || !got[0].Equal(hypot) {
		t.Errorf("ScalarFunctions: got %v", got)
	}
	if got := lib.VectorFunctions(); len(got) != 0 {
		t.Errorf("VectorFunctions: got %v", got)
	}
}

func TestDefaultLibrary(t *testing.T) {
	lib := DefaultLibrary()
	for _, b := range expr.Builtins {
		if _, ok := lib.Scalar(b.Scalar); !ok {
			t.Errorf("missing scalar %s", b.Scalar)
		}
		if _, ok := lib.Vector(b.Vector); !ok {
			t.Errorf("missing vector %s", b.Vector)
		}
	}
	if got := len(lib.VectorFunctions()); got != len(expr.Builtins) {
		t.Errorf("VectorFunctions: got %d, want %d", got, len(expr.Builtins))
	}
}
