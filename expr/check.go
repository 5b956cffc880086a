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

import "fmt"

// Check verifies that every node of f's body is self-consistent: binary
// operands share the node's type, call arguments match the referenced
// function's parameters, and parameter references name one of f's
// parameters.
func Check(f *Function) error {
	if f == nil || f.Body == nil {
		return fmt.Errorf("expr: function has no body")
	}
	params := make(map[int]*Param, len(f.Params))
	for i, p := range f.Params {
		if p.Index != i {
			return fmt.Errorf("expr: parameter %s has index %d, want %d", p, p.Index, i)
		}
		params[i] = p
	}

	var err error
	Inspect(f.Body, func(n Node) bool {
		if err != nil {
			return false
		}
		err = checkNode(n, params)
		return err == nil
	})
	return err
}

func checkNode(n Node, params map[int]*Param) error {
	switch n := n.(type) {
	case *Const:
		if n.Typ != Float64 && n.Typ != VecFloat64 {
			return fmt.Errorf("expr: constant %s has non-numeric type %s", n, n.Typ)
		}
	case *Param:
		p, ok := params[n.Index]
		if !ok || p.Name != n.Name || p.Typ != n.Typ {
			return fmt.Errorf("expr: reference to undeclared parameter %s", n)
		}
	case *Binary:
		if n.X == nil || n.Y == nil {
			return fmt.Errorf("expr: %s operator with missing operand", n.Op)
		}
		if n.X.Type() != n.Typ || n.Y.Type() != n.Typ {
			return fmt.Errorf("expr: operands of %s have types %s and %s, want %s", n, n.X.Type(), n.Y.Type(), n.Typ)
		}
	case *Call:
		if len(n.Args) != n.Func.Arity() {
			return fmt.Errorf("expr: %s called with %d arguments", n.Func, len(n.Args))
		}
		for i, a := range n.Args {
			if a == nil {
				return fmt.Errorf("expr: argument %d of %s is missing", i, n.Func)
			}
			if a.Type() != n.Func.Params[i] {
				return fmt.Errorf("expr: argument %d of %s has type %s", i, n.Func, a.Type())
			}
		}
	case *Unary:
		if n.X == nil {
			return fmt.Errorf("expr: %s operator with missing operand", n.Op)
		}
	case *Compare:
		if n.X == nil || n.Y == nil || n.X.Type() != n.Y.Type() {
			return fmt.Errorf("expr: mismatched comparison operands")
		}
	case nil:
		return fmt.Errorf("expr: missing node")
	}
	return nil
}
