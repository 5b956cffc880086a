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

// Package expr defines the expression trees consumed and produced by the
// vectorizer: a closed set of typed nodes describing a pure function of two
// float64 parameters, the function references used by call nodes, and a
// parser that reads such functions from Go expression syntax.
package expr

import "fmt"

// Type is the declared type of an expression node.
type Type int

const (
	// Invalid is the zero Type; no well-formed node has it.
	Invalid Type = iota

	// Float64 is a scalar IEEE-754 double.
	Float64

	// VecFloat64 is hwy.Vec[float64], a vector of Float64 lanes.
	VecFloat64

	// Bool is the result of a comparison.
	Bool
)

// String returns the Go spelling of the type.
func (t Type) String() string {
	switch t {
	case Float64:
		return "float64"
	case VecFloat64:
		return "hwy.Vec[float64]"
	case Bool:
		return "bool"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// IsVector reports whether t is a vector type.
func (t Type) IsVector() bool {
	return t == VecFloat64
}

// IsScalarNumeric reports whether t is a scalar numeric type that can be
// widened to a vector.
func (t Type) IsScalarNumeric() bool {
	return t == Float64
}

// VectorOf returns the vector type whose lanes have type t.
func VectorOf(t Type) (Type, bool) {
	if !t.IsScalarNumeric() {
		return Invalid, false
	}
	return VecFloat64, true
}
