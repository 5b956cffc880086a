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
	"github.com/ajroetker/hwyvec/hwy"
	hmath "github.com/ajroetker/hwyvec/hwy/contrib/math"
)

const stdMath = "math"

func scalarFunc(pkg, name string, arity int) FuncRef {
	params := make([]Type, arity)
	for i := range params {
		params[i] = Float64
	}
	return FuncRef{Package: pkg, Name: name, Params: params, Result: Float64}
}

func vectorFunc(pkg, name string, arity int) FuncRef {
	params := make([]Type, arity)
	for i := range params {
		params[i] = VecFloat64
	}
	return FuncRef{Package: pkg, Name: name, Params: params, Result: VecFloat64}
}

// Scalar functions understood by the parser and the default evaluation
// library. Max and Min are the Go builtins; the rest come from package math.
var (
	MaxFunc  = scalarFunc("", "max", 2)
	MinFunc  = scalarFunc("", "min", 2)
	PowFunc  = scalarFunc(stdMath, "Pow", 2)
	LogFunc  = scalarFunc(stdMath, "Log", 1)
	ExpFunc  = scalarFunc(stdMath, "Exp", 1)
	SqrtFunc = scalarFunc(stdMath, "Sqrt", 1)
	AbsFunc  = scalarFunc(stdMath, "Abs", 1)
)

// Lane-wise equivalents of the scalar functions above.
var (
	VecMaxFunc  = vectorFunc(hwy.ImportPath, "Max", 2)
	VecMinFunc  = vectorFunc(hwy.ImportPath, "Min", 2)
	VecPowFunc  = vectorFunc(hwy.ImportPath, "Pow", 2)
	VecLogFunc  = vectorFunc(hmath.ImportPath, "BaseLogVec", 1)
	VecExpFunc  = vectorFunc(hmath.ImportPath, "BaseExpVec", 1)
	VecSqrtFunc = vectorFunc(hwy.ImportPath, "Sqrt", 1)
	VecAbsFunc  = vectorFunc(hwy.ImportPath, "Abs", 1)
)

// Builtin pairs a scalar function with its lane-wise equivalent.
type Builtin struct {
	Scalar FuncRef
	Vector FuncRef

	// Aliases are the lower-case call names the parser accepts for Scalar,
	// with or without a "math." qualifier.
	Aliases []string
}

// Builtins lists every built-in scalar function and its vector form.
var Builtins = []Builtin{
	{Scalar: MaxFunc, Vector: VecMaxFunc, Aliases: []string{"max", "fmax"}},
	{Scalar: MinFunc, Vector: VecMinFunc, Aliases: []string{"min", "fmin"}},
	{Scalar: PowFunc, Vector: VecPowFunc, Aliases: []string{"pow"}},
	{Scalar: LogFunc, Vector: VecLogFunc, Aliases: []string{"log", "ln"}},
	{Scalar: ExpFunc, Vector: VecExpFunc, Aliases: []string{"exp"}},
	{Scalar: SqrtFunc, Vector: VecSqrtFunc, Aliases: []string{"sqrt"}},
	{Scalar: AbsFunc, Vector: VecAbsFunc, Aliases: []string{"abs", "fabs"}},
}

// LookupScalar returns the built-in scalar function called name with the
// given number of arguments. name must already be lower case.
func LookupScalar(name string, arity int) (FuncRef, bool) {
	for _, b := range Builtins {
		if b.Scalar.Arity() != arity {
			continue
		}
		for _, alias := range b.Aliases {
			if alias == name {
				return b.Scalar, true
			}
		}
	}
	return FuncRef{}, false
}
