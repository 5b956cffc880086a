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

// Command hwyvec vectorizes scalar float64 expressions into hwy.Vec code.
//
// Usage:
//
//	hwyvec -expr 'max(x, y) / 2' -name ratio -pkg kernels -output ratio_vec.go
//	hwyvec -config kernels.toml
//	hwyvec -expr 'x / y' -x 1,-1,0 -y 0,0,0            # evaluate on samples
//
// Or via go:generate:
//
//	//go:generate hwyvec -config kernels.toml
//
// For each expression the generator emits a scalar function Name(x, y float64)
// float64 and its lane-wise counterpart NameVec(x, y hwy.Vec[float64])
// hwy.Vec[float64]. Calls are resolved by the strategies listed with
// -strategies, in order: "builtin" maps max, min, pow, log, exp, sqrt and abs
// to their hwy equivalents, "catalog" searches the evaluation library by name.
//
// A config file is TOML:
//
//	package = "kernels"
//	output = "kernels_vec.go"
//	strategies = ["builtin", "catalog"]
//
//	[[function]]
//	name = "ratio"
//	expr = "max(x, y) / 2"
//	params = ["x", "y"]
//
// Flags override the config file. Set HWY_NO_SIMD to evaluate samples with
// the scalar lane width.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/ajroetker/hwyvec/eval"
	"github.com/ajroetker/hwyvec/hwy"
)

var (
	exprFlag     = flag.String("expr", "", "Expression to vectorize, e.g. 'max(x, y) / 2'")
	nameFlag     = flag.String("name", defaultName, "Name of the generated function for -expr")
	paramsFlag   = flag.String("params", "x,y", "Comma-separated parameter names for -expr")
	configFile   = flag.String("config", "", "TOML config file listing functions to generate")
	outputFile   = flag.String("output", "", "Output file (default: stdout)")
	packageOut   = flag.String("pkg", "", "Output package name (default: "+defaultPackage+")")
	strategyList = flag.String("strategies", "", "Comma-separated replacement strategies (builtin, catalog), in resolution order")
	samplesX     = flag.String("x", "", "Comma-separated sample values for the first parameter")
	samplesY     = flag.String("y", "", "Comma-separated sample values for the second parameter")
	verbose      = flag.Bool("v", false, "Verbose logging")
)

func main() {
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	logger.Debug("config",
		zap.String("package", cfg.Package),
		zap.Strings("strategies", cfg.Strategies),
		zap.Int("functions", len(cfg.Functions)),
		zap.Stringer("dispatch", hwy.CurrentLevel()),
		zap.Bool("no_simd", hwy.NoSimdEnv()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	gen := &Generator{Config: cfg, Library: eval.DefaultLibrary(), Logger: logger}
	results, err := gen.Vectorize(ctx)
	if err != nil {
		return err
	}

	if *samplesX != "" || *samplesY != "" {
		if err := printSamples(gen, results); err != nil {
			return err
		}
	}

	src, err := Emit(cfg.Package, results)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err := os.Stdout.Write(src)
		return err
	}
	if err := os.WriteFile(cfg.Output, src, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info("wrote", zap.String("output", cfg.Output), zap.Int("functions", len(results)))
	fmt.Fprintf(os.Stderr, "Generated %d functions in %s\n", len(results), cfg.Output)
	return nil
}

// buildConfig merges the config file, if any, with explicitly set flags.
func buildConfig() (*Config, error) {
	cfg := &Config{}
	if *configFile != "" {
		var err error
		if cfg, err = LoadConfig(*configFile); err != nil {
			return nil, err
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["pkg"] {
		cfg.Package = *packageOut
	}
	if set["output"] {
		cfg.Output = *outputFile
	}
	if set["strategies"] {
		cfg.Strategies = splitList(*strategyList)
	}
	if *exprFlag != "" {
		cfg.Functions = append(cfg.Functions, FunctionConfig{
			Name:   *nameFlag,
			Expr:   *exprFlag,
			Params: splitList(*paramsFlag),
		})
	}
	if len(cfg.Functions) == 0 {
		return nil, fmt.Errorf("-expr or -config is required")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printSamples(gen *Generator, results []Result) error {
	xs, err := parseFloats(*samplesX)
	if err != nil {
		return err
	}
	ys, err := parseFloats(*samplesY)
	if err != nil {
		return err
	}
	if len(xs) != len(ys) {
		return fmt.Errorf("-x has %d values, -y has %d", len(xs), len(ys))
	}

	for _, r := range results {
		scalar, vector, err := gen.Sample(r, xs, ys)
		if err != nil {
			return fmt.Errorf("function %s: %w", r.Name, err)
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", r.Name, r.Source)
		for i := range scalar {
			mark := ""
			if !sameLane(scalar[i], vector[i]) {
				mark = "  MISMATCH"
			}
			fmt.Fprintf(os.Stderr, "  x=%-12v y=%-12v scalar=%-12v vector=%v%s\n", xs[i], ys[i], scalar[i], vector[i], mark)
		}
		fmt.Fprintln(os.Stderr, strings.Repeat("-", 40))
	}
	return nil
}
