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
	"fmt"

	"github.com/ajroetker/hwyvec/expr"
	"github.com/ajroetker/hwyvec/hwy"
)

// Scalar2 is a compiled scalar function of two arguments.
type Scalar2 func(x, y float64) float64

// Vector2 is a compiled vector function of two arguments.
type Vector2 func(x, y hwy.Vec[float64]) hwy.Vec[float64]

type scalarNode func(args *[2]float64) float64

type vectorNode func(args *[2]hwy.Vec[float64]) hwy.Vec[float64]

// CompileScalar compiles a function of two float64 parameters. A nil lib
// means DefaultLibrary().
func CompileScalar(fn *expr.Function, lib *Library) (Scalar2, error) {
	if err := checkFunction(fn, expr.Float64); err != nil {
		return nil, err
	}
	if lib == nil {
		lib = DefaultLibrary()
	}
	body, err := compileScalar(fn.Body, lib)
	if err != nil {
		return nil, err
	}
	return func(x, y float64) float64 {
		args := [2]float64{x, y}
		return body(&args)
	}, nil
}

// CompileVector compiles a function of two hwy.Vec[float64] parameters,
// typically the output of vectorize.Vectorize. A nil lib means
// DefaultLibrary().
func CompileVector(fn *expr.Function, lib *Library) (Vector2, error) {
	if err := checkFunction(fn, expr.VecFloat64); err != nil {
		return nil, err
	}
	if lib == nil {
		lib = DefaultLibrary()
	}
	body, err := compileVector(fn.Body, lib)
	if err != nil {
		return nil, err
	}
	return func(x, y hwy.Vec[float64]) hwy.Vec[float64] {
		args := [2]hwy.Vec[float64]{x, y}
		return body(&args)
	}, nil
}

func checkFunction(fn *expr.Function, want expr.Type) error {
	if fn == nil {
		return fmt.Errorf("eval: nil function")
	}
	if len(fn.Params) != 2 {
		return fmt.Errorf("eval: %s has %d parameters, want 2", fn.Name, len(fn.Params))
	}
	for _, p := range fn.Params {
		if p.Typ != want {
			return fmt.Errorf("eval: parameter %s has type %s, want %s", p, p.Typ, want)
		}
	}
	if err := expr.Check(fn); err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	if got := fn.Result(); got != want {
		return fmt.Errorf("eval: %s returns %s, want %s", fn.Name, got, want)
	}
	return nil
}

func compileScalar(n expr.Node, lib *Library) (scalarNode, error) {
	switch n := n.(type) {
	case *expr.Const:
		v := n.Value
		return func(*[2]float64) float64 { return v }, nil

	case *expr.Param:
		i := n.Index
		return func(args *[2]float64) float64 { return args[i] }, nil

	case *expr.Unary:
		x, err := compileScalar(n.X, lib)
		if err != nil {
			return nil, err
		}
		return func(args *[2]float64) float64 { return -x(args) }, nil

	case *expr.Binary:
		x, err := compileScalar(n.X, lib)
		if err != nil {
			return nil, err
		}
		y, err := compileScalar(n.Y, lib)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case expr.Add:
			return func(args *[2]float64) float64 { return x(args) + y(args) }, nil
		case expr.Sub:
			return func(args *[2]float64) float64 { return x(args) - y(args) }, nil
		case expr.Mul:
			return func(args *[2]float64) float64 { return x(args) * y(args) }, nil
		case expr.Div:
			return func(args *[2]float64) float64 { return x(args) / y(args) }, nil
		}
		return nil, fmt.Errorf("eval: unknown operator %s", n.Op)

	case *expr.Call:
		impl, ok := lib.Scalar(n.Func)
		if !ok {
			return nil, fmt.Errorf("eval: no scalar implementation for %s", n.Func)
		}
		args := make([]scalarNode, len(n.Args))
		for i, a := range n.Args {
			c, err := compileScalar(a, lib)
			if err != nil {
				return nil, err
			}
			args[i] = c
		}
		return func(env *[2]float64) float64 {
			vals := make([]float64, len(args))
			for i, a := range args {
				vals[i] = a(env)
			}
			return impl(vals)
		}, nil

	default:
		return nil, fmt.Errorf("eval: cannot evaluate %s %q as a number", expr.Kind(n), n)
	}
}

func compileVector(n expr.Node, lib *Library) (vectorNode, error) {
	switch n := n.(type) {
	case *expr.Const:
		v := hwy.Set(n.Value)
		return func(*[2]hwy.Vec[float64]) hwy.Vec[float64] { return v }, nil

	case *expr.Param:
		i := n.Index
		return func(args *[2]hwy.Vec[float64]) hwy.Vec[float64] { return args[i] }, nil

	case *expr.Unary:
		x, err := compileVector(n.X, lib)
		if err != nil {
			return nil, err
		}
		return func(args *[2]hwy.Vec[float64]) hwy.Vec[float64] { return hwy.Neg(x(args)) }, nil

	case *expr.Binary:
		x, err := compileVector(n.X, lib)
		if err != nil {
			return nil, err
		}
		y, err := compileVector(n.Y, lib)
		if err != nil {
			return nil, err
		}
		var op func(a, b hwy.Vec[float64]) hwy.Vec[float64]
		switch n.Op {
		case expr.Add:
			op = hwy.Add[float64]
		case expr.Sub:
			op = hwy.Sub[float64]
		case expr.Mul:
			op = hwy.Mul[float64]
		case expr.Div:
			op = hwy.Div[float64]
		default:
			return nil, fmt.Errorf("eval: unknown operator %s", n.Op)
		}
		return func(args *[2]hwy.Vec[float64]) hwy.Vec[float64] { return op(x(args), y(args)) }, nil

	case *expr.Call:
		impl, ok := lib.Vector(n.Func)
		if !ok {
			return nil, fmt.Errorf("eval: no vector implementation for %s", n.Func)
		}
		args := make([]vectorNode, len(n.Args))
		for i, a := range n.Args {
			c, err := compileVector(a, lib)
			if err != nil {
				return nil, err
			}
			args[i] = c
		}
		return func(env *[2]hwy.Vec[float64]) hwy.Vec[float64] {
			vals := make([]hwy.Vec[float64], len(args))
			for i, a := range args {
				vals[i] = a(env)
			}
			return impl(vals)
		}, nil

	default:
		return nil, fmt.Errorf("eval: cannot evaluate %s %q as a vector", expr.Kind(n), n)
	}
}
