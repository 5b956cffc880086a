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

package eval

import "github.com/ajroetker/hwyvec/hwy"

// Apply evaluates f over xs and ys one vector at a time and stores the
// results in out. It processes min(len(xs), len(ys), len(out)) elements;
// a partial final vector is evaluated on a zero-padded buffer and only its
// valid lanes are written.
func Apply(f Vector2, xs, ys, out []float64) {
	n := min(len(xs), len(ys), len(out))

	hwy.ProcessWithTail[float64](n,
		func(offset int) {
			x := hwy.Load(xs[offset:])
			y := hwy.Load(ys[offset:])
			hwy.Store(f(x, y), out[offset:])
		},
		func(offset, count int) {
			pad := hwy.AlignedSize[float64](count)
			buf := make([]float64, 3*pad)
			bufX, bufY, result := buf[:pad], buf[pad:2*pad], buf[2*pad:]
			copy(bufX, xs[offset:offset+count])
			copy(bufY, ys[offset:offset+count])
			hwy.Store(f(hwy.Load(bufX), hwy.Load(bufY)), result)
			copy(out[offset:offset+count], result[:count])
		},
	)
}

// ApplyScalar evaluates f element by element over xs and ys and stores the
// results in out, processing min(len(xs), len(ys), len(out)) elements.
func ApplyScalar(f Scalar2, xs, ys, out []float64) {
	n := min(len(xs), len(ys), len(out))
	for i := range n {
		out[i] = f(xs[i], ys[i])
	}
}
