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
	"math"
	"strconv"
	"strings"
)

// Node is an expression tree node.
//
// The set of node kinds is closed: Const, Param, Binary and Call form the
// vectorizable core, while Unary and Compare can be produced by the parser
// and evaluated as scalars but are not vectorizable.
type Node interface {
	// Type returns the declared type of the value the node computes.
	Type() Type

	// String renders the node in Go expression syntax.
	String() string

	node()
}

// Const is a literal value. A Const with a vector type denotes the value
// broadcast to every lane.
type Const struct {
	Value float64
	Typ   Type
}

// Param is a reference to one of the two function parameters.
// Index identifies the parameter: 0 for the first argument, 1 for the second.
type Param struct {
	Index int
	Name  string
	Typ   Type
}

// BinaryOp is an arithmetic operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
)

// Binary applies an arithmetic operator to two operands of the same type.
type Binary struct {
	Op   BinaryOp
	X, Y Node
	Typ  Type
}

// Call applies a named function to its arguments.
type Call struct {
	Func FuncRef
	Args []Node
}

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	Neg UnaryOp = iota
)

// Unary applies a prefix operator to its operand.
type Unary struct {
	Op UnaryOp
	X  Node
}

// CompareOp is a comparison operator.
type CompareOp int

const (
	Less CompareOp = iota
	LessEqual
	Greater
	GreaterEqual
	Equal
	NotEqual
)

// Compare compares two operands, producing a Bool.
type Compare struct {
	Op   CompareOp
	X, Y Node
}

func (*Const) node()   {}
func (*Param) node()   {}
func (*Binary) node()  {}
func (*Call) node()    {}
func (*Unary) node()   {}
func (*Compare) node() {}

func (n *Const) Type() Type   { return n.Typ }
func (n *Param) Type() Type   { return n.Typ }
func (n *Binary) Type() Type  { return n.Typ }
func (n *Call) Type() Type    { return n.Func.Result }
func (n *Unary) Type() Type   { return n.X.Type() }
func (n *Compare) Type() Type { return Bool }

// NewConst returns a scalar Float64 constant.
func NewConst(v float64) *Const {
	return &Const{Value: v, Typ: Float64}
}

// NewParam returns a scalar Float64 parameter reference.
func NewParam(index int, name string) *Param {
	return &Param{Index: index, Name: name, Typ: Float64}
}

// NewBinary returns x op y, typed after its left operand.
func NewBinary(op BinaryOp, x, y Node) *Binary {
	return &Binary{Op: op, X: x, Y: y, Typ: x.Type()}
}

// NewCall returns a call of fn with the given arguments.
func NewCall(fn FuncRef, args ...Node) *Call {
	return &Call{Func: fn, Args: args}
}

// String returns the Go token for the operator.
func (op BinaryOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return fmt.Sprintf("BinaryOp(%d)", int(op))
	}
}

// Name returns the hwy operation implementing the operator on vectors.
func (op BinaryOp) Name() string {
	switch op {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	default:
		return op.String()
	}
}

func (op BinaryOp) precedence() int {
	if op == Mul || op == Div {
		return 2
	}
	return 1
}

func (op UnaryOp) String() string {
	if op == Neg {
		return "-"
	}
	return fmt.Sprintf("UnaryOp(%d)", int(op))
}

func (op CompareOp) String() string {
	switch op {
	case Less:
		return "<"
	case LessEqual:
		return "<="
	case Greater:
		return ">"
	case GreaterEqual:
		return ">="
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	default:
		return fmt.Sprintf("CompareOp(%d)", int(op))
	}
}

// FormatFloat renders v so that it parses back to the same float64.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *Const) String() string {
	if n.Typ.IsVector() {
		return "hwy.Set(" + FormatFloat(n.Value) + ")"
	}
	return FormatFloat(n.Value)
}

func (n *Param) String() string {
	if n.Name == "" {
		return fmt.Sprintf("p%d", n.Index)
	}
	return n.Name
}

func (n *Binary) String() string {
	return operand(n.X, n.Op, false) + " " + n.Op.String() + " " + operand(n.Y, n.Op, true)
}

// operand parenthesizes a binary child whose operator binds less tightly than
// the parent, or equally tightly on the right-hand side.
func operand(child Node, parent BinaryOp, right bool) string {
	b, ok := child.(*Binary)
	if !ok {
		return child.String()
	}
	p, q := b.Op.precedence(), parent.precedence()
	if p < q || (right && p == q) {
		return "(" + b.String() + ")"
	}
	return b.String()
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Func.QualifiedName() + "(" + strings.Join(args, ", ") + ")"
}

func (n *Unary) String() string {
	switch x := n.X.(type) {
	case *Binary, *Compare, *Unary:
		return n.Op.String() + "(" + n.X.String() + ")"
	case *Const:
		if math.Signbit(x.Value) {
			return n.Op.String() + "(" + n.X.String() + ")"
		}
	}
	return n.Op.String() + n.X.String()
}

func (n *Compare) String() string {
	return n.X.String() + " " + n.Op.String() + " " + n.Y.String()
}
