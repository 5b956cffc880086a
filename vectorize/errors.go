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
	"fmt"

	"github.com/ajroetker/hwyvec/expr"
)

// UnsupportedShapeError reports a node, or a function signature, outside the
// vectorizable set: constants, the two parameters, arithmetic operators and
// calls.
type UnsupportedShapeError struct {
	// Node is the offending node; nil when the function itself is malformed.
	Node   expr.Node
	Reason string
}

func (e *UnsupportedShapeError) Error() string {
	if e.Node == nil {
		return "vectorize: unsupported shape: " + e.Reason
	}
	return fmt.Sprintf("vectorize: unsupported %s %q: %s", expr.Kind(e.Node), e.Node, e.Reason)
}

// UnsupportedCallError reports a call that no strategy could resolve.
type UnsupportedCallError struct {
	Ref expr.FuncRef
}

func (e *UnsupportedCallError) Error() string {
	return fmt.Sprintf("vectorize: no vector replacement for %s", e.Ref)
}

// ArityMismatchError reports a strategy that resolved a call to a function
// whose signature is not the lane-wise form of the original.
type ArityMismatchError struct {
	Original    expr.FuncRef
	Replacement expr.FuncRef
	Strategy    string
}

func (e *ArityMismatchError) Error() string {
	params, result, ok := VectorSignature(e.Original)
	if !ok {
		return fmt.Sprintf("vectorize: strategy %s replaced %s with %s, but %s has no lane-wise form",
			e.Strategy, e.Original, e.Replacement, e.Original.QualifiedName())
	}
	want := expr.FuncRef{Params: params, Result: result}
	return fmt.Sprintf("vectorize: strategy %s replaced %s with %s, want %s",
		e.Strategy, e.Original, e.Replacement, want)
}
