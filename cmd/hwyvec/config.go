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
	"fmt"
	"go/token"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/ajroetker/hwyvec/expr"
	"github.com/ajroetker/hwyvec/vectorize"
)

// Config describes one generated file.
type Config struct {
	Package    string           `toml:"package"`
	Output     string           `toml:"output"`
	Strategies []string         `toml:"strategies"`
	Functions  []FunctionConfig `toml:"function"`
}

// FunctionConfig is a single expression to vectorize.
type FunctionConfig struct {
	Name   string   `toml:"name"`
	Expr   string   `toml:"expr"`
	Params []string `toml:"params"`
}

const (
	defaultPackage = "kernels"
	defaultName    = "f"
)

// reservedNames cannot be used as parameter names because generated code
// or the expression parser refers to them.
var reservedNames = lo.Uniq(append([]string{"hwy", "math", "stdmath", "float64"},
	lo.FlatMap(expr.Builtins, func(b expr.Builtin, _ int) []string {
		if b.Scalar.Package == "" {
			return append([]string{b.Scalar.Name}, b.Aliases...)
		}
		return b.Aliases
	})...))

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return &cfg, nil
}

// applyDefaults fills in unset fields.
func (c *Config) applyDefaults() {
	if c.Package == "" {
		c.Package = defaultPackage
	}
	if len(c.Strategies) == 0 {
		c.Strategies = []string{vectorize.BuiltinName}
	}
	for i := range c.Functions {
		f := &c.Functions[i]
		if f.Name == "" {
			f.Name = fmt.Sprintf("%s%d", defaultName, i)
		}
		if len(f.Params) == 0 {
			f.Params = expr.DefaultParams
		}
	}
}

// Validate checks the config after defaults have been applied.
func (c *Config) Validate() error {
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("invalid package name %q", c.Package)
	}
	if len(c.Functions) == 0 {
		return fmt.Errorf("no functions to generate")
	}
	for _, s := range c.Strategies {
		if s != vectorize.BuiltinName && s != vectorize.CatalogName {
			return fmt.Errorf("unknown strategy %q (want %s or %s)", s, vectorize.BuiltinName, vectorize.CatalogName)
		}
	}

	for _, f := range c.Functions {
		if f.Expr == "" {
			return fmt.Errorf("function %s: empty expression", f.Name)
		}
		if !token.IsIdentifier(exportedName(f.Name)) {
			return fmt.Errorf("function %s: invalid name", f.Name)
		}
		if len(f.Params) != vectorize.NumParams {
			return fmt.Errorf("function %s: %d parameters, want %d", f.Name, len(f.Params), vectorize.NumParams)
		}
		for _, p := range f.Params {
			if !token.IsIdentifier(p) || lo.Contains(reservedNames, p) {
				return fmt.Errorf("function %s: invalid parameter name %q", f.Name, p)
			}
		}
	}

	dups := lo.FindDuplicatesBy(c.Functions, func(f FunctionConfig) string { return exportedName(f.Name) })
	if len(dups) > 0 {
		return fmt.Errorf("function %s: defined twice", dups[0].Name)
	}
	return nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	return lo.Compact(lo.Map(strings.Split(s, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}))
}

// parseFloats parses a comma-separated list of sample values.
func parseFloats(s string) ([]float64, error) {
	items := splitList(s)
	values := make([]float64, len(items))
	for i, item := range items {
		v, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sample value %q: %w", item, err)
		}
		values[i] = v
	}
	return values, nil
}
