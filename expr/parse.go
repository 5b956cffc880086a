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
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"math"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultParams are the parameter names used by Parse when none are given.
var DefaultParams = []string{"x", "y"}

// mathConsts are the package math constants accepted as math.<Name>.
var mathConsts = map[string]float64{
	"E":                      math.E,
	"Pi":                     math.Pi,
	"Phi":                    math.Phi,
	"Sqrt2":                  math.Sqrt2,
	"Ln2":                    math.Ln2,
	"MaxFloat64":             math.MaxFloat64,
	"SmallestNonzeroFloat64": math.SmallestNonzeroFloat64,
}

// Parse parses a Go expression into a Function of the named parameters.
// With no params, DefaultParams is used.
//
// Accepted syntax: float and integer literals, the parameter names, the
// identifiers Inf and NaN, math.<Const>, math.Inf(sign) and math.NaN(),
// parentheses, unary - and +, the binary operators + - * /, comparisons,
// and calls. Calls of built-in functions (see Builtins) are matched by
// lower-cased name with an optional "math." qualifier; any other call is
// kept as a call of an unknown float64 function so that later stages can
// report it.
func Parse(src string, params ...string) (*Function, error) {
	if len(params) == 0 {
		params = DefaultParams
	}
	p := &exprParser{
		params: make(map[string]*Param, len(params)),
		lower:  cases.Lower(language.Und),
	}
	fn := &Function{}
	for i, name := range params {
		if _, dup := p.params[name]; dup {
			return nil, fmt.Errorf("parse %q: duplicate parameter %q", src, name)
		}
		param := NewParam(i, name)
		p.params[name] = param
		fn.Params = append(fn.Params, param)
	}

	x, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	body, err := p.convert(x)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", src, err)
	}
	fn.Body = body
	return fn, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level variables.
func MustParse(src string, params ...string) *Function {
	fn, err := Parse(src, params...)
	if err != nil {
		panic(err)
	}
	return fn
}

type exprParser struct {
	params map[string]*Param
	lower  cases.Caser
}

func (p *exprParser) convert(x ast.Expr) (Node, error) {
	switch x := x.(type) {
	case *ast.BasicLit:
		return p.literal(x)

	case *ast.Ident:
		if param, ok := p.params[x.Name]; ok {
			return param, nil
		}
		switch x.Name {
		case "Inf":
			return NewConst(math.Inf(1)), nil
		case "NaN":
			return NewConst(math.NaN()), nil
		}
		return nil, fmt.Errorf("undefined: %s", x.Name)

	case *ast.ParenExpr:
		return p.convert(x.X)

	case *ast.SelectorExpr:
		if pkg, ok := x.X.(*ast.Ident); ok && pkg.Name == "math" {
			if v, ok := mathConsts[x.Sel.Name]; ok {
				return NewConst(v), nil
			}
		}
		return nil, fmt.Errorf("unsupported selector %s", exprString(x))

	case *ast.UnaryExpr:
		operand, err := p.convert(x.X)
		if err != nil {
			return nil, err
		}
		switch x.Op {
		case token.ADD:
			return operand, nil
		case token.SUB:
			if c, ok := operand.(*Const); ok {
				return NewConst(-c.Value), nil
			}
			return &Unary{Op: Neg, X: operand}, nil
		}
		return nil, fmt.Errorf("unsupported unary operator %s", x.Op)

	case *ast.BinaryExpr:
		left, err := p.convert(x.X)
		if err != nil {
			return nil, err
		}
		right, err := p.convert(x.Y)
		if err != nil {
			return nil, err
		}
		if op, ok := binaryOps[x.Op]; ok {
			return NewBinary(op, left, right), nil
		}
		if op, ok := compareOps[x.Op]; ok {
			return &Compare{Op: op, X: left, Y: right}, nil
		}
		return nil, fmt.Errorf("unsupported binary operator %s", x.Op)

	case *ast.CallExpr:
		return p.call(x)

	default:
		return nil, fmt.Errorf("unsupported expression %s", exprString(x))
	}
}

var binaryOps = map[token.Token]BinaryOp{
	token.ADD: Add,
	token.SUB: Sub,
	token.MUL: Mul,
	token.QUO: Div,
}

var compareOps = map[token.Token]CompareOp{
	token.LSS: Less,
	token.LEQ: LessEqual,
	token.GTR: Greater,
	token.GEQ: GreaterEqual,
	token.EQL: Equal,
	token.NEQ: NotEqual,
}

func (p *exprParser) literal(lit *ast.BasicLit) (Node, error) {
	switch lit.Kind {
	case token.INT, token.FLOAT:
		v, err := strconv.ParseFloat(lit.Value, 64)
		if err != nil {
			// Octal literals such as 0o17 are valid Go but rejected by
			// ParseFloat.
			i, ierr := strconv.ParseInt(lit.Value, 0, 64)
			if ierr != nil {
				return nil, fmt.Errorf("invalid number %s: %w", lit.Value, err)
			}
			v = float64(i)
		}
		return NewConst(v), nil
	default:
		return nil, fmt.Errorf("unsupported literal %s", lit.Value)
	}
}

func (p *exprParser) call(call *ast.CallExpr) (Node, error) {
	var name string
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		name = fun.Name
	case *ast.SelectorExpr:
		pkg, ok := fun.X.(*ast.Ident)
		if !ok || pkg.Name != "math" {
			return nil, fmt.Errorf("unsupported call target %s", exprString(fun))
		}
		name = fun.Sel.Name
		switch name {
		case "NaN":
			if len(call.Args) != 0 {
				return nil, fmt.Errorf("math.NaN takes no arguments")
			}
			return NewConst(math.NaN()), nil
		case "Inf":
			return p.inf(call)
		}
	default:
		return nil, fmt.Errorf("unsupported call target %s", exprString(call.Fun))
	}

	args := make([]Node, len(call.Args))
	for i, a := range call.Args {
		n, err := p.convert(a)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}

	ref, ok := LookupScalar(p.lower.String(name), len(args))
	if !ok {
		ref = scalarFunc("", name, len(args))
	}
	return NewCall(ref, args...), nil
}

// inf folds math.Inf(sign) with a constant sign into a constant.
func (p *exprParser) inf(call *ast.CallExpr) (Node, error) {
	if len(call.Args) != 1 {
		return nil, fmt.Errorf("math.Inf takes one argument")
	}
	sign, err := p.convert(call.Args[0])
	if err != nil {
		return nil, err
	}
	c, ok := sign.(*Const)
	if !ok {
		return nil, fmt.Errorf("math.Inf requires a constant sign")
	}
	if c.Value >= 0 {
		return NewConst(math.Inf(1)), nil
	}
	return NewConst(math.Inf(-1)), nil
}

func exprString(x ast.Expr) string {
	switch x := x.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.SelectorExpr:
		return exprString(x.X) + "." + x.Sel.Name
	default:
		return fmt.Sprintf("%T", x)
	}
}
