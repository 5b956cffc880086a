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

// Children returns the direct operands of n, in evaluation order.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Binary:
		return []Node{n.X, n.Y}
	case *Call:
		return n.Args
	case *Unary:
		return []Node{n.X}
	case *Compare:
		return []Node{n.X, n.Y}
	default:
		return nil
	}
}

// Inspect traverses the tree rooted at n in depth-first order, calling f
// for each node before its children. If f returns false, the children of
// that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	count := 0
	Inspect(n, func(Node) bool {
		count++
		return true
	})
	return count
}

// Kind returns a short name for the node's kind, such as "Binary(+)" or
// "Call(max)". Two trees have the same shape when their pre-order Kind
// sequences are equal up to call targets.
func Kind(n Node) string {
	switch n := n.(type) {
	case *Const:
		return "Const"
	case *Param:
		return fmt.Sprintf("Param(%d)", n.Index)
	case *Binary:
		return "Binary(" + n.Op.String() + ")"
	case *Call:
		return fmt.Sprintf("Call/%d", len(n.Args))
	case *Unary:
		return "Unary(" + n.Op.String() + ")"
	case *Compare:
		return "Compare(" + n.Op.String() + ")"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", n)
	}
}

// Shape returns the pre-order sequence of node kinds of the tree rooted at n.
func Shape(n Node) []string {
	var kinds []string
	Inspect(n, func(c Node) bool {
		kinds = append(kinds, Kind(c))
		return true
	})
	return kinds
}
