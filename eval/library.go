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

// Package eval turns expression trees into Go closures.
//
// Scalar trees compile to func(x, y float64) float64 and vectorized trees
// to func(x, y hwy.Vec[float64]) hwy.Vec[float64]. Calls are bound to
// implementations registered in a Library.
package eval

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/ajroetker/hwyvec/expr"
	"github.com/ajroetker/hwyvec/hwy"
	hmath "github.com/ajroetker/hwyvec/hwy/contrib/math"
)

// ScalarFunc implements a scalar function. args has the length of the
// function's parameter list.
type ScalarFunc func(args []float64) float64

// VectorFunc implements a vector function. args has the length of the
// function's parameter list.
type VectorFunc func(args []hwy.Vec[float64]) hwy.Vec[float64]

// Library maps function references to implementations. It is safe for
// concurrent use.
type Library struct {
	mu     sync.RWMutex
	refs   map[string]expr.FuncRef
	scalar map[string]ScalarFunc
	vector map[string]VectorFunc
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{
		refs:   make(map[string]expr.FuncRef),
		scalar: make(map[string]ScalarFunc),
		vector: make(map[string]VectorFunc),
	}
}

// RegisterScalar binds a scalar implementation to ref, replacing any
// previous binding. ref must take and return Float64.
func (l *Library) RegisterScalar(ref expr.FuncRef, fn ScalarFunc) error {
	if err := checkSignature(ref, expr.Float64); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refs[ref.Key()] = ref
	l.scalar[ref.Key()] = fn
	return nil
}

// RegisterVector binds a vector implementation to ref, replacing any
// previous binding. ref must take and return VecFloat64.
func (l *Library) RegisterVector(ref expr.FuncRef, fn VectorFunc) error {
	if err := checkSignature(ref, expr.VecFloat64); err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refs[ref.Key()] = ref
	l.vector[ref.Key()] = fn
	return nil
}

func checkSignature(ref expr.FuncRef, want expr.Type) error {
	if ref.Result != want {
		return fmt.Errorf("eval: %s must return %s", ref, want)
	}
	for _, p := range ref.Params {
		if p != want {
			return fmt.Errorf("eval: %s must take %s parameters", ref, want)
		}
	}
	return nil
}

// Scalar returns the scalar implementation of ref.
func (l *Library) Scalar(ref expr.FuncRef) (ScalarFunc, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn, ok := l.scalar[ref.Key()]
	return fn, ok
}

// Vector returns the vector implementation of ref.
func (l *Library) Vector(ref expr.FuncRef) (VectorFunc, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fn, ok := l.vector[ref.Key()]
	return fn, ok
}

// VectorFunctions lists the references of all vector implementations,
// sorted by key. Library thereby serves as a vectorize.Catalog.
func (l *Library) VectorFunctions() []expr.FuncRef {
	return l.list(func(key string) bool { _, ok := l.vector[key]; return ok })
}

// ScalarFunctions lists the references of all scalar implementations,
// sorted by key.
func (l *Library) ScalarFunctions() []expr.FuncRef {
	return l.list(func(key string) bool { _, ok := l.scalar[key]; return ok })
}

func (l *Library) list(keep func(key string) bool) []expr.FuncRef {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var refs []expr.FuncRef
	for key, ref := range l.refs {
		if keep(key) {
			refs = append(refs, ref)
		}
	}
	slices.SortFunc(refs, func(a, b expr.FuncRef) int {
		return strings.Compare(a.Key(), b.Key())
	})
	return refs
}

var builtinScalar = map[string]ScalarFunc{
	expr.MaxFunc.Key():  func(a []float64) float64 { return max(a[0], a[1]) },
	expr.MinFunc.Key():  func(a []float64) float64 { return min(a[0], a[1]) },
	expr.PowFunc.Key():  func(a []float64) float64 { return math.Pow(a[0], a[1]) },
	expr.LogFunc.Key():  func(a []float64) float64 { return math.Log(a[0]) },
	expr.ExpFunc.Key():  func(a []float64) float64 { return math.Exp(a[0]) },
	expr.SqrtFunc.Key(): func(a []float64) float64 { return math.Sqrt(a[0]) },
	expr.AbsFunc.Key():  func(a []float64) float64 { return math.Abs(a[0]) },
}

var builtinVector = map[string]VectorFunc{
	expr.VecMaxFunc.Key():  func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hwy.Max(a[0], a[1]) },
	expr.VecMinFunc.Key():  func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hwy.Min(a[0], a[1]) },
	expr.VecPowFunc.Key():  func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hwy.Pow(a[0], a[1]) },
	expr.VecLogFunc.Key():  func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hmath.BaseLogVec(a[0]) },
	expr.VecExpFunc.Key():  func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hmath.BaseExpVec(a[0]) },
	expr.VecSqrtFunc.Key(): func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hwy.Sqrt(a[0]) },
	expr.VecAbsFunc.Key():  func(a []hwy.Vec[float64]) hwy.Vec[float64] { return hwy.Abs(a[0]) },
}

// DefaultLibrary returns a new library holding the scalar and vector
// implementations of every function in expr.Builtins.
func DefaultLibrary() *Library {
	l := NewLibrary()
	for _, b := range expr.Builtins {
		if err := l.RegisterScalar(b.Scalar, builtinScalar[b.Scalar.Key()]); err != nil {
			panic(err)
		}
		if err := l.RegisterVector(b.Vector, builtinVector[b.Vector.Key()]); err != nil {
			panic(err)
		}
	}
	return l
}
