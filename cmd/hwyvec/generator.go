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

package main

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/hwyvec/eval"
	"github.com/ajroetker/hwyvec/expr"
	"github.com/ajroetker/hwyvec/vectorize"
)

// Generator vectorizes the functions of a Config.
type Generator struct {
	Config  *Config
	Library *eval.Library
	Logger  *zap.Logger
}

// Result is one vectorized function.
type Result struct {
	Name   string
	Source string
	Scalar *expr.Function
	Vector *expr.Function
}

// Strategies builds the replacement strategies named in the config, in order.
func (g *Generator) Strategies() ([]vectorize.Strategy, error) {
	strategies := make([]vectorize.Strategy, 0, len(g.Config.Strategies))
	for _, name := range g.Config.Strategies {
		switch name {
		case vectorize.BuiltinName:
			strategies = append(strategies, vectorize.Builtins())
		case vectorize.CatalogName:
			strategies = append(strategies, vectorize.NewCatalogStrategy(g.Library))
		default:
			return nil, fmt.Errorf("unknown strategy %q", name)
		}
	}
	return strategies, nil
}

// Vectorize parses and vectorizes every configured function concurrently.
// Results are returned in config order. The first failure cancels the rest.
func (g *Generator) Vectorize(ctx context.Context) ([]Result, error) {
	strategies, err := g.Strategies()
	if err != nil {
		return nil, err
	}
	v := vectorize.New(strategies...)

	results := make([]Result, len(g.Config.Functions))
	eg, ctx := errgroup.WithContext(ctx)
	for i, f := range g.Config.Functions {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := g.vectorizeOne(v, f)
			if err != nil {
				return fmt.Errorf("function %s: %w", f.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) vectorizeOne(v *vectorize.Vectorizer, f FunctionConfig) (Result, error) {
	fn, err := expr.Parse(f.Expr, f.Params...)
	if err != nil {
		return Result{}, err
	}
	fn.Name = exportedName(f.Name)

	vfn, err := v.Vectorize(fn)
	if err != nil {
		return Result{}, err
	}
	vfn.Name = fn.Name + "Vec"

	g.logger().Debug("vectorized",
		zap.String("function", f.Name),
		zap.Stringer("scalar", fn.Body),
		zap.Stringer("vector", vfn.Body),
		zap.Int("nodes", expr.Count(vfn.Body)),
	)
	return Result{Name: fn.Name, Source: f.Expr, Scalar: fn, Vector: vfn}, nil
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// Sample evaluates r on the given inputs in scalar and vector form.
func (g *Generator) Sample(r Result, xs, ys []float64) (scalar, vector []float64, err error) {
	sf, err := eval.CompileScalar(r.Scalar, g.Library)
	if err != nil {
		return nil, nil, err
	}
	vf, err := eval.CompileVector(r.Vector, g.Library)
	if err != nil {
		return nil, nil, err
	}

	n := min(len(xs), len(ys))
	scalar = make([]float64, n)
	vector = make([]float64, n)
	eval.ApplyScalar(sf, xs, ys, scalar)
	eval.Apply(vf, xs, ys, vector)
	return scalar, vector, nil
}

// sameLane reports whether two lane results agree, treating NaN as equal to
// NaN.
func sameLane(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
