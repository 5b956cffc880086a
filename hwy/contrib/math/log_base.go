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

package math

import (
	stdmath "math"

	"github.com/ajroetker/hwyvec/hwy"
)

// BaseLogVec computes ln(x) (natural logarithm) for each lane.
//
// Special cases:
//   - Log(x) = NaN if x < 0
//   - Log(0) = -Inf
//   - Log(+Inf) = +Inf
//   - Log(NaN) = NaN
func BaseLogVec[T hwy.Floats](v hwy.Vec[T]) hwy.Vec[T] {
	return hwy.MapLanes(v, func(x T) T { return T(stdmath.Log(float64(x))) })
}
