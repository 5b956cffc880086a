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

// Package hwy provides the portable SIMD vector value used by vectorized
// expressions.
//
// A Vec holds MaxLanes[T]() lanes, where the lane count follows the widest
// vector register detected at startup. All operations are lane-wise and
// follow IEEE-754 semantics exactly, so a vector operation on lane i always
// equals the matching scalar Go operation on lane i.
//
// Basic usage:
//
//	import "github.com/ajroetker/hwyvec/hwy"
//
//	a := hwy.Load(xs)
//	b := hwy.Set(2.0)
//	hwy.Store(hwy.Mul(a, b), out)
package hwy

// ImportPath is the import path of this package, used by code generators
// that reference hwy operations.
const ImportPath = "github.com/ajroetker/hwyvec/hwy"

// Floats is a constraint for floating-point lane types.
type Floats interface {
	~float32 | ~float64
}

// Vec is a portable vector handle.
//
// Vec instances should not be created directly; use Load or Set instead.
type Vec[T Floats] struct {
	data []T
}

// NumLanes returns the number of lanes (elements) in this vector.
func (v Vec[T]) NumLanes() int {
	return len(v.data)
}

// Data returns a copy of the vector lanes.
func (v Vec[T]) Data() []T {
	out := make([]T, len(v.data))
	copy(out, v.data)
	return out
}

// Lane returns lane i. It panics if i is out of range.
func (v Vec[T]) Lane(i int) T {
	return v.data[i]
}

// Store writes the vector's data to a slice.
// This is the method form of the hwy.Store function.
func (v Vec[T]) Store(dst []T) {
	Store(v, dst)
}
