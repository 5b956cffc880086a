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

package expr

import (
	"math"
	"strings"
	"testing"
)

func TestNodeString(t *testing.T) {
	x, y := NewParam(0, "x"), NewParam(1, "y")
	vx := &Param{Index: 0, Name: "x", Typ: VecFloat64}

	tests := []struct {
		node Node
		want string
	}{
		{NewConst(2), "2"},
		{NewConst(math.Inf(-1)), "-Inf"},
		{&Const{Value: 0.5, Typ: VecFloat64}, "hwy.Set(0.5)"},
		{&Param{Index: 1}, "p1"},
		{NewBinary(Mul, NewBinary(Add, x, y), y), "(x + y) * y"},
		{NewBinary(Sub, x, NewBinary(Sub, y, x)), "x - (y - x)"},
		{NewBinary(Div, x, NewBinary(Mul, y, x)), "x / (y * x)"},
		{NewBinary(Add, NewBinary(Add, x, y), x), "x + y + x"},
		{NewCall(MaxFunc, x, NewConst(1)), "max(x, 1)"},
		{NewCall(VecMaxFunc, vx, vx), "hwy.Max(x, x)"},
		{NewCall(VecLogFunc, vx), "math.BaseLogVec(x)"},
		{&Unary{Op: Neg, X: NewConst(-1)}, "-(-1)"},
		{&Unary{Op: Neg, X: &Unary{Op: Neg, X: x}}, "-(-x)"},
		{&Compare{Op: GreaterEqual, X: x, Y: y}, "x >= y"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestNodeTypes(t *testing.T) {
	x := NewParam(0, "x")
	if got := NewBinary(Add, x, x).Type(); got != Float64 {
		t.Errorf("Binary: got %s, want float64", got)
	}
	if got := NewCall(VecPowFunc).Type(); got != VecFloat64 {
		t.Errorf("Call: got %s, want %s", got, VecFloat64)
	}
	if got := (&Compare{X: x, Y: x}).Type(); got != Bool {
		t.Errorf("Compare: got %s, want bool", got)
	}
	if vt, ok := VectorOf(Float64); !ok || vt != VecFloat64 {
		t.Errorf("VectorOf(float64): got %s %v", vt, ok)
	}
	if _, ok := VectorOf(VecFloat64); ok {
		t.Error("VectorOf(vector) should fail")
	}
}

func TestFuncRef(t *testing.T) {
	if got, want := PowFunc.String(), "math.Pow(float64,float64)->float64"; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
	if got, want := VecExpFunc.QualifiedName(), "math.BaseExpVec"; got != want {
		t.Errorf("QualifiedName: got %q, want %q", got, want)
	}
	if !strings.HasPrefix(VecExpFunc.Key(), "github.com/ajroetker/hwyvec/hwy/contrib/math.BaseExpVec(") {
		t.Errorf("Key: got %q", VecExpFunc.Key())
	}
	if MaxFunc.Equal(VecMaxFunc) {
		t.Error("max and hwy.Max compare equal")
	}
	if !LogFunc.Equal(FuncRef{Package: "math", Name: "Log", Params: []Type{Float64}, Result: Float64}) {
		t.Error("identical references compare unequal")
	}
}

func TestCount(t *testing.T) {
	fn := MustParse("max(x, y) / (x - 1)")
	if got := Count(fn.Body); got != 7 {
		t.Errorf("Count: got %d, want 7", got)
	}
}

func TestCheck(t *testing.T) {
	x := NewParam(0, "x")
	stray := NewParam(1, "z")
	tests := []struct {
		name string
		fn   *Function
		want string
	}{
		{"no body", &Function{Params: []*Param{x}}, "no body"},
		{"undeclared", NewFunction("f", []*Param{x}, NewBinary(Add, x, stray)), "undeclared parameter"},
		{"arity", NewFunction("f", []*Param{x}, NewCall(PowFunc, x)), "called with 1 arguments"},
		{"operand type", NewFunction("f", []*Param{x}, &Binary{Op: Add, X: x, Y: &Const{Value: 1, Typ: VecFloat64}, Typ: Float64}), "operands of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.fn)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("got %v, want error containing %q", err, tt.want)
			}
		})
	}
}
