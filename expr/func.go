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

package expr

import (
	"fmt"
	"path"
	"strings"
)

// FuncRef identifies a function by package, name and typed signature.
//
// Two references denote the same function exactly when their keys are
// equal; replacement lookup never inspects anything beyond this identity.
type FuncRef struct {
	// Package is the import path of the declaring package, empty for Go
	// builtins such as max and min.
	Package string
	Name    string
	Params  []Type
	Result  Type
}

// Arity returns the number of parameters.
func (r FuncRef) Arity() int {
	return len(r.Params)
}

// QualifiedName returns the name as written at a call site, such as
// "math.Pow", "hwy.Max" or "max".
func (r FuncRef) QualifiedName() string {
	if r.Package == "" {
		return r.Name
	}
	return path.Base(r.Package) + "." + r.Name
}

// String renders the reference as "math.Pow(float64,float64)->float64".
func (r FuncRef) String() string {
	return r.QualifiedName() + r.signature()
}

// Key returns a string that uniquely identifies the reference, using the
// full import path.
func (r FuncRef) Key() string {
	if r.Package == "" {
		return r.Name + r.signature()
	}
	return r.Package + "." + r.Name + r.signature()
}

// Equal reports whether r and o identify the same function.
func (r FuncRef) Equal(o FuncRef) bool {
	return r.Key() == o.Key()
}

func (r FuncRef) signature() string {
	params := make([]string, len(r.Params))
	for i, p := range r.Params {
		params[i] = p.String()
	}
	return "(" + strings.Join(params, ",") + ")->" + r.Result.String()
}

// Function is a pure function of positional parameters whose value is Body.
type Function struct {
	Name   string
	Params []*Param
	Body   Node
}

// NewFunction returns a function with the given parameters and body.
func NewFunction(name string, params []*Param, body Node) *Function {
	return &Function{Name: name, Params: params, Body: body}
}

// Result returns the type of the function's value.
func (f *Function) Result() Type {
	if f.Body == nil {
		return Invalid
	}
	return f.Body.Type()
}

// String renders f as a Go function literal.
func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString("func")
	if f.Name != "" {
		sb.WriteString(" " + f.Name)
	}
	sb.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s %s", p, p.Typ)
	}
	fmt.Fprintf(&sb, ") %s { return %s }", f.Result(), f.Body)
	return sb.String()
}
