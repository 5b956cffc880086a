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

package hwy

import "math"

// This file provides the pure Go implementations of all lane-wise operations.
// Binary operations produce min(a.NumLanes(), b.NumLanes()) lanes.

// Load creates a vector by loading up to MaxLanes[T]() values from a slice.
// A shorter slice produces a vector with fewer lanes.
func Load[T Floats](src []T) Vec[T] {
	n := min(len(src), MaxLanes[T]())
	data := make([]T, n)
	copy(data, src[:n])
	return Vec[T]{data: data}
}

// Store writes a vector's data to a slice.
func Store[T Floats](v Vec[T], dst []T) {
	n := min(len(dst), len(v.data))
	copy(dst[:n], v.data[:n])
}

// Set creates a vector with all lanes set to the same value.
func Set[T Floats](value T) Vec[T] {
	data := make([]T, MaxLanes[T]())
	for i := range data {
		data[i] = value
	}
	return Vec[T]{data: data}
}

// Add performs element-wise addition.
func Add[T Floats](a, b Vec[T]) Vec[T] {
	return zipWith(a, b, func(x, y T) T { return x + y })
}

// Sub performs element-wise subtraction.
func Sub[T Floats](a, b Vec[T]) Vec[T] {
	return zipWith(a, b, func(x, y T) T { return x - y })
}

// Mul performs element-wise multiplication.
func Mul[T Floats](a, b Vec[T]) Vec[T] {
	return zipWith(a, b, func(x, y T) T { return x * y })
}

// Div performs element-wise division.
// Division by zero follows IEEE-754: ±Inf for a non-zero dividend, NaN for 0/0.
func Div[T Floats](a, b Vec[T]) Vec[T] {
	return zipWith(a, b, func(x, y T) T { return x / y })
}

// Neg negates all lanes.
func Neg[T Floats](v Vec[T]) Vec[T] {
	return mapLanes(v, func(x T) T { return -x })
}

// Abs computes the absolute value of each lane, clearing the sign bit of
// zeros and NaNs like math.Abs.
func Abs[T Floats](v Vec[T]) Vec[T] {
	return mapLanes(v, func(x T) T { return T(math.Abs(float64(x))) })
}

// Min returns the element-wise minimum.
//
// Semantics match the Go builtin min: a NaN in either lane yields NaN, and
// min(-0, +0) is -0.
func Min[T Floats](a, b Vec[T]) Vec[T] {
	return zipWith(a, b, minLane[T])
}

// Max returns the element-wise maximum.
//
// Semantics match the Go builtin max: a NaN in either lane yields NaN, and
// max(-0, +0) is +0.
func Max[T Floats](a, b Vec[T]) Vec[T] {
	return zipWith(a, b, maxLane[T])
}

func minLane[T Floats](a, b T) T {
	switch {
	case math.IsNaN(float64(a)):
		return a
	case math.IsNaN(float64(b)):
		return b
	case a == 0 && b == 0:
		if math.Signbit(float64(a)) {
			return a
		}
		return b
	case a < b:
		return a
	}
	return b
}

func maxLane[T Floats](a, b T) T {
	switch {
	case math.IsNaN(float64(a)):
		return a
	case math.IsNaN(float64(b)):
		return b
	case a == 0 && b == 0:
		if math.Signbit(float64(a)) {
			return b
		}
		return a
	case a > b:
		return a
	}
	return b
}

// Sqrt computes the square root of each lane.
func Sqrt[T Floats](v Vec[T]) Vec[T] {
	return mapLanes(v, func(x T) T { return T(math.Sqrt(float64(x))) })
}

// Pow computes base^exp element-wise with math.Pow semantics.
func Pow[T Floats](base, exp Vec[T]) Vec[T] {
	return zipWith(base, exp, func(b, e T) T { return T(math.Pow(float64(b), float64(e))) })
}

// MapLanes applies a scalar function to every lane. It is the building block
// for lane-wise functions that have no dedicated instruction, such as those
// in hwy/contrib/math.
func MapLanes[T Floats](v Vec[T], fn func(T) T) Vec[T] {
	return mapLanes(v, fn)
}

func mapLanes[T Floats](v Vec[T], fn func(T) T) Vec[T] {
	result := make([]T, len(v.data))
	for i, x := range v.data {
		result[i] = fn(x)
	}
	return Vec[T]{data: result}
}

func zipWith[T Floats](a, b Vec[T], fn func(x, y T) T) Vec[T] {
	n := min(len(b.data), len(a.data))
	result := make([]T, n)
	for i := range n {
		result[i] = fn(a.data[i], b.data[i])
	}
	return Vec[T]{data: result}
}
