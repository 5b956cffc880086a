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

import "github.com/ajroetker/hwyvec/expr"

// VectorSignature returns the lane-wise form of a scalar function
// reference: same package and name, every scalar parameter and the result
// widened to the vector type. ok is false if any type has no vector form.
func VectorSignature(ref expr.FuncRef) (params []expr.Type, result expr.Type, ok bool) {
	params = make([]expr.Type, len(ref.Params))
	for i, p := range ref.Params {
		if params[i], ok = expr.VectorOf(p); !ok {
			return nil, expr.Invalid, false
		}
	}
	result, ok = expr.VectorOf(ref.Result)
	return params, result, ok
}

// Corresponds reports whether replacement has exactly the lane-wise
// signature of original: the same number of parameters, each scalar
// parameter mapped 1:1 to its vector type, and a vector result.
func Corresponds(original, replacement expr.FuncRef) bool {
	params, result, ok := VectorSignature(original)
	if !ok || len(params) != len(replacement.Params) || result != replacement.Result {
		return false
	}
	for i, p := range params {
		if replacement.Params[i] != p {
			return false
		}
	}
	return true
}
