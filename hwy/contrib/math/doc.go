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

// Package math provides lane-wise transcendental functions over hwy.Vec.
//
// Every function applies the matching standard library function to each
// lane independently, so results are bit-identical to the scalar math
// package, including its special cases for NaN, zeros and infinities.
//
// Functions follow the Base<Name>Vec naming convention: they take and return
// a hwy.Vec and can be passed wherever a func(hwy.Vec[T]) hwy.Vec[T] is
// expected.
package math

// ImportPath is the import path of this package.
const ImportPath = "github.com/ajroetker/hwyvec/hwy/contrib/math"
