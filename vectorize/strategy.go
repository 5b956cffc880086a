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

// Strategy resolves a scalar function reference to a function with the
// same lane-wise semantics over vectors.
//
// TryResolve returns ok == false when the strategy has no replacement. A
// strategy must never return a partial match: a replacement always has the
// signature described by Corresponds. Strategies are queried concurrently
// and must return the same result for the same reference every time.
type Strategy interface {
	// Name identifies the strategy in diagnostics.
	Name() string
	TryResolve(ref expr.FuncRef) (replacement expr.FuncRef, ok bool)
}

// FuncStrategy adapts a resolution function to the Strategy interface.
type FuncStrategy struct {
	name string
	fn   func(expr.FuncRef) (expr.FuncRef, bool)
}

// NewFuncStrategy returns a Strategy named name that delegates to fn.
// fn must be safe for concurrent use.
func NewFuncStrategy(name string, fn func(expr.FuncRef) (expr.FuncRef, bool)) *FuncStrategy {
	return &FuncStrategy{name: name, fn: fn}
}

func (s *FuncStrategy) Name() string { return s.name }

func (s *FuncStrategy) TryResolve(ref expr.FuncRef) (expr.FuncRef, bool) {
	return s.fn(ref)
}

// Replacement is one entry of a TableStrategy.
type Replacement struct {
	Scalar expr.FuncRef
	Vector expr.FuncRef
}

// TableStrategy resolves references through a fixed table keyed by the
// scalar function's identity.
type TableStrategy struct {
	name  string
	table map[string]expr.FuncRef
}

// NewTableStrategy builds a table strategy. It rejects entries whose vector
// function is not the lane-wise form of the scalar one, and scalar
// functions listed twice.
func NewTableStrategy(name string, entries ...Replacement) (*TableStrategy, error) {
	s := &TableStrategy{name: name, table: make(map[string]expr.FuncRef, len(entries))}
	for _, e := range entries {
		if !Corresponds(e.Scalar, e.Vector) {
			return nil, fmt.Errorf("vectorize: table %s: %s is not the lane-wise form of %s", name, e.Vector, e.Scalar)
		}
		key := e.Scalar.Key()
		if _, dup := s.table[key]; dup {
			return nil, fmt.Errorf("vectorize: table %s: duplicate entry for %s", name, e.Scalar)
		}
		s.table[key] = e.Vector
	}
	return s, nil
}

func (s *TableStrategy) Name() string { return s.name }

func (s *TableStrategy) TryResolve(ref expr.FuncRef) (expr.FuncRef, bool) {
	repl, ok := s.table[ref.Key()]
	return repl, ok
}

// Len returns the number of entries in the table.
func (s *TableStrategy) Len() int {
	return len(s.table)
}

// BuiltinName is the name of the strategy returned by Builtins.
const BuiltinName = "builtin"

// Builtins returns the table strategy for the functions in expr.Builtins:
// max, min, pow, log, exp, sqrt and abs, mapped to their hwy and
// hwy/contrib/math equivalents.
func Builtins() *TableStrategy {
	entries := make([]Replacement, len(expr.Builtins))
	for i, b := range expr.Builtins {
		entries[i] = Replacement{Scalar: b.Scalar, Vector: b.Vector}
	}
	s, err := NewTableStrategy(BuiltinName, entries...)
	if err != nil {
		panic(err) // expr.Builtins is static and well-formed.
	}
	return s
}
