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
	"testing"

	"github.com/ajroetker/hwyvec/hwy"
)

func TestBaseLogExpVec(t *testing.T) {
	inputs := []float64{
		0, stdmath.Copysign(0, -1), 1e-300, 0.5, 1, stdmath.E, 10, 709.5, -1,
		stdmath.Inf(1), stdmath.Inf(-1), stdmath.NaN(),
	}
	tests := []struct {
		name   string
		vec    func(hwy.Vec[float64]) hwy.Vec[float64]
		scalar func(float64) float64
	}{
		{"BaseLogVec", BaseLogVec[float64], stdmath.Log},
		{"BaseExpVec", BaseExpVec[float64], stdmath.Exp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, x := range inputs {
				got := tt.vec(hwy.Set(x))
				want := tt.scalar(x)
				for i := 0; i < got.NumLanes(); i++ {
					g := got.Lane(i)
					if stdmath.IsNaN(want) && stdmath.IsNaN(g) {
						continue
					}
					if stdmath.Float64bits(g) != stdmath.Float64bits(want) {
						t.Errorf("%s(%v): lane %d: got %v, want %v", tt.name, x, i, g, want)
					}
				}
			}
		})
	}
}

func TestBaseLogVecDistinctLanes(t *testing.T) {
	n := hwy.MaxLanes[float32]()
	src := make([]float32, n)
	for i := range src {
		src[i] = float32(i + 1)
	}
	got := BaseLogVec(hwy.Load(src))
	for i := range n {
		want := float32(stdmath.Log(float64(src[i])))
		if got.Lane(i) != want {
			t.Errorf("lane %d: got %v, want %v", i, got.Lane(i), want)
		}
	}
}
