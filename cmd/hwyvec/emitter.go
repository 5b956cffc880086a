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
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"math"
	"path"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/tools/imports"

	"github.com/ajroetker/hwyvec/expr"
	"github.com/ajroetker/hwyvec/hwy"
	hmath "github.com/ajroetker/hwyvec/hwy/contrib/math"
)

// packageNames are the identifiers generated code uses for known imports.
// The standard math package is renamed so that hwy/contrib/math keeps its
// own name.
var packageNames = map[string]string{
	"math":           "stdmath",
	hwy.ImportPath:   "hwy",
	hmath.ImportPath: "math",
}

var binaryTokens = map[expr.BinaryOp]token.Token{
	expr.Add: token.ADD,
	expr.Sub: token.SUB,
	expr.Mul: token.MUL,
	expr.Div: token.QUO,
}

// exportedName returns name with its first letter upper-cased.
func exportedName(name string) string {
	return cases.Title(language.English, cases.NoLower).String(name)
}

// Emit renders the scalar and vector form of each result as a Go source
// file in package pkg.
func Emit(pkg string, results []Result) ([]byte, error) {
	e := &emitter{imports: make(map[string]string)}
	e.pkg(hwy.ImportPath)

	fset := token.NewFileSet()
	var decls bytes.Buffer
	for _, r := range results {
		doc := strings.Join(strings.Fields(r.Source), " ")

		scalar, err := e.funcDecl(r.Scalar, e.scalarExpr, ast.NewIdent("float64"))
		if err != nil {
			return nil, fmt.Errorf("emit %s: %w", r.Name, err)
		}
		fmt.Fprintf(&decls, "// %s computes %s.\n", scalar.Name.Name, doc)
		if err := format.Node(&decls, fset, scalar); err != nil {
			return nil, fmt.Errorf("emit %s: %w", r.Name, err)
		}
		decls.WriteString("\n\n")

		vector, err := e.funcDecl(r.Vector, e.vectorExpr, vecType())
		if err != nil {
			return nil, fmt.Errorf("emit %s: %w", r.Name, err)
		}
		fmt.Fprintf(&decls, "// %s computes %s lane-wise.\n", vector.Name.Name, doc)
		if err := format.Node(&decls, fset, vector); err != nil {
			return nil, fmt.Errorf("emit %s: %w", r.Name, err)
		}
		decls.WriteString("\n\n")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by hwyvec. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	e.writeImports(&buf)
	buf.Write(decls.Bytes())

	out, err := imports.Process("", buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return out, nil
}

type emitter struct {
	// imports maps import paths to the identifier used for them.
	imports map[string]string

	// Per-function state: identifiers already in scope and the constants
	// hoisted into local variables.
	taken  map[string]bool
	locals []*ast.Ident
	values []ast.Expr
}

// pkg records an import and returns the identifier to qualify it with.
func (e *emitter) pkg(importPath string) string {
	name, ok := packageNames[importPath]
	if !ok {
		name = path.Base(importPath)
	}
	e.imports[importPath] = name
	return name
}

func (e *emitter) writeImports(buf *bytes.Buffer) {
	var std, third []string
	for p := range e.imports {
		if strings.Contains(p, ".") {
			third = append(third, p)
		} else {
			std = append(std, p)
		}
	}
	slices.Sort(std)
	slices.Sort(third)

	buf.WriteString("import (\n")
	for i, group := range [][]string{std, third} {
		if i > 0 && len(std) > 0 && len(third) > 0 {
			buf.WriteString("\n")
		}
		for _, p := range group {
			if name := e.imports[p]; name != path.Base(p) {
				fmt.Fprintf(buf, "\t%s %q\n", name, p)
			} else {
				fmt.Fprintf(buf, "\t%q\n", p)
			}
		}
	}
	buf.WriteString(")\n\n")
}

func (e *emitter) funcDecl(fn *expr.Function, body func(expr.Node) (ast.Expr, error), typ ast.Expr) (*ast.FuncDecl, error) {
	names := make([]*ast.Ident, len(fn.Params))
	e.taken = make(map[string]bool)
	e.locals, e.values = nil, nil
	for i, p := range fn.Params {
		names[i] = ast.NewIdent(p.Name)
		e.taken[p.Name] = true
	}
	ret, err := body(fn.Body)
	if err != nil {
		return nil, err
	}

	var stmts []ast.Stmt
	if len(e.locals) > 0 {
		stmts = append(stmts, &ast.DeclStmt{Decl: &ast.GenDecl{
			Tok: token.VAR,
			Specs: []ast.Spec{&ast.ValueSpec{
				Names:  e.locals,
				Type:   ast.NewIdent("float64"),
				Values: e.values,
			}},
		}})
	}
	stmts = append(stmts, &ast.ReturnStmt{Results: []ast.Expr{ret}})
	return &ast.FuncDecl{
		Name: ast.NewIdent(fn.Name),
		Type: &ast.FuncType{
			Params:  &ast.FieldList{List: []*ast.Field{{Names: names, Type: typ}}},
			Results: &ast.FieldList{List: []*ast.Field{{Type: typ}}},
		},
		Body: &ast.BlockStmt{List: stmts},
	}, nil
}

func (e *emitter) scalarExpr(n expr.Node) (ast.Expr, error) {
	return e.scalar(n, false)
}

// scalar emits n as plain float64 arithmetic. Go evaluates constant
// expressions exactly at compile time, so once hoist is set every literal
// below is read from a float64 variable instead and the arithmetic happens
// at run time, rounding each step like the vector form does.
func (e *emitter) scalar(n expr.Node, hoist bool) (ast.Expr, error) {
	switch n := n.(type) {
	case *expr.Const:
		if hoist && isLiteral(n.Value) {
			return e.local(n.Value), nil
		}
		return e.constant(n.Value), nil
	case *expr.Param:
		return ast.NewIdent(n.Name), nil
	case *expr.Binary:
		hoist = hoist || goConstant(n)
		x, err := e.scalar(n.X, hoist)
		if err != nil {
			return nil, err
		}
		y, err := e.scalar(n.Y, hoist)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{
			X:  parenthesize(x, n.X, n.Op, false),
			Op: binaryTokens[n.Op],
			Y:  parenthesize(y, n.Y, n.Op, true),
		}, nil
	case *expr.Unary:
		x, err := e.scalar(n.X, hoist)
		if err != nil {
			return nil, err
		}
		switch n.X.(type) {
		case *expr.Binary, *expr.Unary:
			x = &ast.ParenExpr{X: x}
		}
		return &ast.UnaryExpr{Op: token.SUB, X: x}, nil
	case *expr.Call:
		args, err := e.exprs(n.Args, func(a expr.Node) (ast.Expr, error) { return e.scalar(a, hoist) })
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Fun: e.funcExpr(n.Func), Args: args}, nil
	default:
		return nil, fmt.Errorf("cannot emit %s %q", expr.Kind(n), n)
	}
}

// local declares a float64 variable holding v and returns its name.
func (e *emitter) local(v float64) ast.Expr {
	name := fmt.Sprintf("k%d", len(e.locals))
	for e.taken[name] {
		name += "_"
	}
	e.taken[name] = true
	e.locals = append(e.locals, ast.NewIdent(name))
	e.values = append(e.values, e.constant(v))
	return ast.NewIdent(name)
}

// isLiteral reports whether constant renders v as a Go constant rather
// than a math function call.
func isLiteral(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && !(v == 0 && math.Signbit(v))
}

// goConstant reports whether the scalar rendering of n is a Go constant
// expression. Only the max and min builtins keep constant arguments
// constant; every other call is evaluated at run time.
func goConstant(n expr.Node) bool {
	switch n := n.(type) {
	case *expr.Const:
		return isLiteral(n.Value)
	case *expr.Binary:
		return goConstant(n.X) && goConstant(n.Y)
	case *expr.Unary:
		return goConstant(n.X)
	case *expr.Call:
		builtin := n.Func.Equal(expr.MaxFunc) || n.Func.Equal(expr.MinFunc)
		return builtin && lo.EveryBy(n.Args, goConstant)
	}
	return false
}

func (e *emitter) vectorExpr(n expr.Node) (ast.Expr, error) {
	switch n := n.(type) {
	case *expr.Const:
		set := &ast.IndexExpr{X: e.hwy("Set"), Index: ast.NewIdent("float64")}
		return &ast.CallExpr{Fun: set, Args: []ast.Expr{e.constant(n.Value)}}, nil
	case *expr.Param:
		return ast.NewIdent(n.Name), nil
	case *expr.Binary:
		args, err := e.exprs([]expr.Node{n.X, n.Y}, e.vectorExpr)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Fun: e.hwy(n.Op.Name()), Args: args}, nil
	case *expr.Unary:
		x, err := e.vectorExpr(n.X)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Fun: e.hwy("Neg"), Args: []ast.Expr{x}}, nil
	case *expr.Call:
		args, err := e.exprs(n.Args, e.vectorExpr)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpr{Fun: e.funcExpr(n.Func), Args: args}, nil
	default:
		return nil, fmt.Errorf("cannot emit %s %q", expr.Kind(n), n)
	}
}

func (e *emitter) exprs(nodes []expr.Node, conv func(expr.Node) (ast.Expr, error)) ([]ast.Expr, error) {
	out := make([]ast.Expr, len(nodes))
	for i, n := range nodes {
		x, err := conv(n)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func (e *emitter) funcExpr(ref expr.FuncRef) ast.Expr {
	if ref.Package == "" {
		return ast.NewIdent(ref.Name)
	}
	return &ast.SelectorExpr{X: ast.NewIdent(e.pkg(ref.Package)), Sel: ast.NewIdent(ref.Name)}
}

func (e *emitter) hwy(name string) ast.Expr {
	return &ast.SelectorExpr{X: ast.NewIdent(e.pkg(hwy.ImportPath)), Sel: ast.NewIdent(name)}
}

func (e *emitter) stdmath(name string, args ...ast.Expr) ast.Expr {
	return &ast.CallExpr{
		Fun:  &ast.SelectorExpr{X: ast.NewIdent(e.pkg("math")), Sel: ast.NewIdent(name)},
		Args: args,
	}
}

// constant renders v as a float64 expression that evaluates to the same
// bits, including NaN, infinities and negative zero.
func (e *emitter) constant(v float64) ast.Expr {
	switch {
	case math.IsNaN(v):
		return e.stdmath("NaN")
	case math.IsInf(v, 1):
		return e.stdmath("Inf", intLit(1))
	case math.IsInf(v, -1):
		return e.stdmath("Inf", intLit(-1))
	case v == 0 && math.Signbit(v):
		return e.stdmath("Copysign", intLit(0), intLit(-1))
	case v < 0:
		return &ast.UnaryExpr{Op: token.SUB, X: floatLit(-v)}
	}
	return floatLit(v)
}

func intLit(i int) ast.Expr {
	if i < 0 {
		return &ast.UnaryExpr{Op: token.SUB, X: intLit(-i)}
	}
	return &ast.BasicLit{Kind: token.INT, Value: fmt.Sprint(i)}
}

func floatLit(v float64) ast.Expr {
	s := expr.FormatFloat(v)
	if !strings.ContainsAny(s, ".e") {
		return &ast.BasicLit{Kind: token.INT, Value: s}
	}
	return &ast.BasicLit{Kind: token.FLOAT, Value: s}
}

// parenthesize wraps a binary operand that binds less tightly than its
// parent, or equally tightly on the right.
func parenthesize(x ast.Expr, child expr.Node, parent expr.BinaryOp, right bool) ast.Expr {
	b, ok := child.(*expr.Binary)
	if !ok {
		return x
	}
	p, q := precedence(b.Op), precedence(parent)
	if p < q || (right && p == q) {
		return &ast.ParenExpr{X: x}
	}
	return x
}

func precedence(op expr.BinaryOp) int {
	if op == expr.Mul || op == expr.Div {
		return 2
	}
	return 1
}

func vecType() ast.Expr {
	return &ast.IndexExpr{
		X:     &ast.SelectorExpr{X: ast.NewIdent("hwy"), Sel: ast.NewIdent("Vec")},
		Index: ast.NewIdent("float64"),
	}
}
