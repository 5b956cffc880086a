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

// Package vectorize rewrites scalar two-parameter expression trees into
// trees of the same shape over hwy.Vec, so that evaluating the result on
// two vectors yields, in every lane, the scalar function applied to that
// lane of each operand.
//
// Parameters become vector parameters, constants are broadcast, arithmetic
// operators keep their operator and become lane-wise, and calls are
// redirected to vector functions found by an ordered list of replacement
// strategies. The first strategy that resolves a call wins.
//
// Example:
//
//	fn := expr.MustParse("max(x, y) / 2")
//	vfn, err := vectorize.Vectorize(fn, vectorize.Builtins())
package vectorize

import (
	"fmt"
	"slices"

	"github.com/ajroetker/hwyvec/expr"
)

// NumParams is the number of parameters a vectorizable function takes.
const NumParams = 2

// Vectorizer rewrites expression trees using a fixed, ordered list of
// replacement strategies. It holds no mutable state and may be used
// concurrently.
type Vectorizer struct {
	strategies []Strategy
}

// New returns a Vectorizer consulting strategies in the given order.
func New(strategies ...Strategy) *Vectorizer {
	return &Vectorizer{strategies: slices.Clone(strategies)}
}

// Vectorize rewrites fn with a Vectorizer built from strategies.
func Vectorize(fn *expr.Function, strategies ...Strategy) (*expr.Function, error) {
	return New(strategies...).Vectorize(fn)
}

// Strategies returns the strategies in resolution order.
func (v *Vectorizer) Strategies() []Strategy {
	return slices.Clone(v.strategies)
}

// Vectorize returns a new function computing fn lane-wise over vectors.
//
// fn must take exactly two float64 parameters, positioned at indices 0 and
// 1, and its body may only contain constants, references to those
// parameters, the operators + - * / and calls. On failure the error is an
// *UnsupportedShapeError, *UnsupportedCallError or *ArityMismatchError and
// no function is returned. fn is not modified.
func (v *Vectorizer) Vectorize(fn *expr.Function) (*expr.Function, error) {
	if fn == nil || isNil(fn.Body) {
		return nil, &UnsupportedShapeError{Reason: "function has no body"}
	}
	if len(fn.Params) != NumParams {
		return nil, &UnsupportedShapeError{
			Reason: fmt.Sprintf("function has %d parameters, want %d", len(fn.Params), NumParams),
		}
	}

	r := &rewriter{v: v, in: fn.Params, out: make([]*expr.Param, NumParams)}
	for i, p := range fn.Params {
		if p == nil {
			return nil, &UnsupportedShapeError{Reason: fmt.Sprintf("parameter %d is missing", i)}
		}
		if p.Index != i {
			return nil, &UnsupportedShapeError{Node: p, Reason: fmt.Sprintf("declared at position %d with index %d", i, p.Index)}
		}
		vt, ok := expr.VectorOf(p.Typ)
		if !ok {
			return nil, &UnsupportedShapeError{Node: p, Reason: fmt.Sprintf("type %s has no vector form", p.Typ)}
		}
		r.out[i] = &expr.Param{Index: i, Name: p.Name, Typ: vt}
	}

	body, err := r.visit(fn.Body)
	if err != nil {
		return nil, err
	}
	return &expr.Function{Name: fn.Name, Params: r.out, Body: body}, nil
}

// Resolve returns the replacement for ref chosen by the first strategy that
// resolves it.
func (v *Vectorizer) Resolve(ref expr.FuncRef) (expr.FuncRef, error) {
	for _, s := range v.strategies {
		repl, ok := s.TryResolve(ref)
		if !ok {
			continue
		}
		if !Corresponds(ref, repl) {
			return expr.FuncRef{}, &ArityMismatchError{Original: ref, Replacement: repl, Strategy: s.Name()}
		}
		repl.Params = slices.Clone(repl.Params)
		return repl, nil
	}
	return expr.FuncRef{}, &UnsupportedCallError{Ref: ref}
}

// rewriter carries the state of a single Vectorize call.
type rewriter struct {
	v   *Vectorizer
	in  []*expr.Param
	out []*expr.Param
}

func (r *rewriter) visit(n expr.Node) (expr.Node, error) {
	if isNil(n) {
		return nil, &UnsupportedShapeError{Reason: "missing operand"}
	}
	switch n := n.(type) {
	case *expr.Const:
		vt, ok := expr.VectorOf(n.Typ)
		if !ok {
			return nil, &UnsupportedShapeError{Node: n, Reason: fmt.Sprintf("type %s has no vector form", n.Typ)}
		}
		return &expr.Const{Value: n.Value, Typ: vt}, nil

	case *expr.Param:
		if n.Index < 0 || n.Index >= NumParams {
			return nil, &UnsupportedShapeError{Node: n, Reason: fmt.Sprintf("parameter index %d, only %d parameters are supported", n.Index, NumParams)}
		}
		if decl := r.in[n.Index]; n.Name != decl.Name || n.Typ != decl.Typ {
			return nil, &UnsupportedShapeError{Node: n, Reason: fmt.Sprintf("does not match declared parameter %s %s", decl, decl.Typ)}
		}
		return r.out[n.Index], nil

	case *expr.Binary:
		return r.visitBinary(n)

	case *expr.Call:
		return r.visitCall(n)

	default:
		return nil, &UnsupportedShapeError{Node: n, Reason: "only constants, parameters, arithmetic and calls can be vectorized"}
	}
}

func (r *rewriter) visitBinary(n *expr.Binary) (expr.Node, error) {
	switch n.Op {
	case expr.Add, expr.Sub, expr.Mul, expr.Div:
	default:
		return nil, &UnsupportedShapeError{Node: n, Reason: "unknown operator"}
	}
	if isNil(n.X) || isNil(n.Y) {
		return nil, &UnsupportedShapeError{Node: n, Reason: "missing operand"}
	}
	vt, ok := expr.VectorOf(n.Typ)
	if !ok || n.X.Type() != n.Typ || n.Y.Type() != n.Typ {
		return nil, &UnsupportedShapeError{
			Node:   n,
			Reason: fmt.Sprintf("operand types %s and %s do not match %s", n.X.Type(), n.Y.Type(), n.Typ),
		}
	}

	x, err := r.visit(n.X)
	if err != nil {
		return nil, err
	}
	y, err := r.visit(n.Y)
	if err != nil {
		return nil, err
	}
	return &expr.Binary{Op: n.Op, X: x, Y: y, Typ: vt}, nil
}

func (r *rewriter) visitCall(n *expr.Call) (expr.Node, error) {
	if len(n.Args) != n.Func.Arity() {
		return nil, &UnsupportedShapeError{
			Node:   n,
			Reason: fmt.Sprintf("%d arguments for %s", len(n.Args), n.Func),
		}
	}

	args := make([]expr.Node, len(n.Args))
	for i, a := range n.Args {
		if !isNil(a) && a.Type() != n.Func.Params[i] {
			return nil, &UnsupportedShapeError{
				Node:   n,
				Reason: fmt.Sprintf("argument %d has type %s, %s expects %s", i, a.Type(), n.Func, n.Func.Params[i]),
			}
		}
		arg, err := r.visit(a)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	repl, err := r.v.Resolve(n.Func)
	if err != nil {
		return nil, err
	}
	return &expr.Call{Func: repl, Args: args}, nil
}

// isNil reports whether n is nil or a nil pointer to one of the node types,
// whose Type method would panic.
func isNil(n expr.Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *expr.Const:
		return n == nil
	case *expr.Param:
		return n == nil
	case *expr.Binary:
		return n == nil
	case *expr.Call:
		return n == nil
	case *expr.Unary:
		return n == nil
	case *expr.Compare:
		return n == nil
	}
	return false
}
