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

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/ajroetker/hwyvec/expr"
)

// Catalog lists vector functions available for replacement, such as the
// functions registered in an evaluation library.
type Catalog interface {
	VectorFunctions() []expr.FuncRef
}

// CatalogName is the name of strategies returned by NewCatalogStrategy.
const CatalogName = "catalog"

// CatalogStrategy resolves a scalar function to a catalog function with the
// same base name and the lane-wise signature.
//
// Names are compared case-insensitively after removing the Base<Name>Vec
// convention of hwy/contrib, so math.Pow matches hwy.Pow and math.Log
// matches math.BaseLogVec. When several catalog functions match, the one
// with the smallest key wins.
type CatalogStrategy struct {
	byName map[string][]expr.FuncRef
}

// NewCatalogStrategy snapshots the functions of c. Later changes to c are
// not observed.
func NewCatalogStrategy(c Catalog) *CatalogStrategy {
	funcs := slices.Clone(c.VectorFunctions())
	slices.SortFunc(funcs, func(a, b expr.FuncRef) int {
		return strings.Compare(a.Key(), b.Key())
	})
	return &CatalogStrategy{
		byName: lo.GroupBy(funcs, func(f expr.FuncRef) string { return baseName(f.Name) }),
	}
}

func (s *CatalogStrategy) Name() string { return CatalogName }

func (s *CatalogStrategy) TryResolve(ref expr.FuncRef) (expr.FuncRef, bool) {
	return lo.Find(s.byName[baseName(ref.Name)], func(f expr.FuncRef) bool {
		return Corresponds(ref, f)
	})
}

// baseName strips the Base prefix and Vec suffix used by hwy/contrib vector
// functions and lower-cases the rest.
func baseName(name string) string {
	if trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "Base"), "Vec"); trimmed != "" {
		name = trimmed
	}
	return strings.ToLower(name)
}
