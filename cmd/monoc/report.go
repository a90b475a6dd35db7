// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/wdamron/mono"
	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/catalog"
	"github.com/wdamron/mono/internal/syntax"
	"github.com/wdamron/mono/types"
)

// palette wraps report text in ANSI colors when enabled.
type palette struct {
	enabled bool
}

func colorPalette(mode string) (palette, error) {
	switch mode {
	case "always":
		return palette{enabled: true}, nil
	case "never":
		return palette{}, nil
	case "auto":
		fd := os.Stdout.Fd()
		return palette{enabled: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}, nil
	}
	return palette{}, errors.Errorf("invalid -color mode %q (want auto, always or never)", mode)
}

func (p palette) paint(code, s string) string {
	if !p.enabled {
		return s
	}
	return "\x1b[" + code + "m" + s + "\x1b[0m"
}

func (p palette) heading(s string) string { return p.paint("1", s) }
func (p palette) good(s string) string    { return p.paint("32", s) }
func (p palette) warn(s string) string    { return p.paint("33", s) }
func (p palette) bad(s string) string     { return p.paint("31", s) }

// runner executes one session and writes its report.
type runner struct {
	s   *Session
	w   io.Writer
	pal palette

	cat     *catalog.Catalog
	r       *mono.GenericResolver
	traits  *mono.Traits
	matcher *mono.PatternMatcher

	failures int
}

func newRunner(s *Session, w io.Writer, pal palette) *runner {
	rn := &runner{
		s:       s,
		w:       w,
		pal:     pal,
		cat:     catalog.New(),
		r:       mono.NewGenericResolver(),
		traits:  mono.NewTraits(mono.BuiltinTraits()),
		matcher: mono.NewPatternMatcher(),
	}
	rn.r.SetTraitRegistry(rn.traits)
	rn.r.SetLayoutCalculator(rn.cat.Layout())
	return rn
}

// runSession loads the session at path and writes its report to w.
func runSession(path string, w io.Writer, pal palette) error {
	s, err := LoadSession(path)
	if err != nil {
		return err
	}
	return newRunner(s, w, pal).run()
}

// run registers the session's declarations, monomorphizes its requests, then answers its
// queries. Query failures are reported inline; the returned error counts them.
func (rn *runner) run() error {
	if err := rn.declare(); err != nil {
		return err
	}
	prog, err := mono.NewMonomorphizer(rn.r, rn.cat).Run(rn.roots())
	if err != nil {
		return err
	}
	rn.reportProgram(prog)
	rn.resolveMethods()
	rn.infer()
	rn.matches()
	if rn.failures > 0 {
		return errors.Errorf("%d of the session's queries failed", rn.failures)
	}
	return nil
}

func (rn *runner) declare() error {
	for _, d := range rn.s.Structs {
		fields := make([]ast.StructField, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = ast.StructField{Name: f.Name, Type: f.Type.Type, Public: f.Public}
		}
		if err := rn.r.RegisterStruct(&types.StructDef{Name: d.Name, Generics: d.Generics, Fields: fields, IsTuple: d.Tuple}); err != nil {
			return err
		}
	}
	for _, d := range rn.s.Enums {
		variants := make([]ast.EnumVariant, len(d.Variants))
		for i, v := range d.Variants {
			variants[i] = ast.EnumVariant{Name: v.Name}
			if len(v.Data) > 0 || len(v.Fields) > 0 {
				data := &ast.EnumVariantData{Types: typeArgs(v.Data)}
				for _, f := range v.Fields {
					data.Fields = append(data.Fields, ast.StructField{Name: f.Name, Type: f.Type.Type, Public: f.Public})
				}
				variants[i].Data = data
			}
		}
		if err := rn.r.RegisterEnum(&types.EnumDef{Name: d.Name, Generics: d.Generics, Variants: variants}); err != nil {
			return err
		}
	}
	for _, list := range [][]FuncDecl{rn.s.Functions, rn.s.Methods} {
		for _, d := range list {
			if err := rn.r.RegisterFunction(&types.FuncDef{Owner: d.Owner, Func: d.function()}); err != nil {
				return err
			}
		}
	}
	for _, d := range rn.s.Traits {
		if _, err := rn.traits.Declare(d.Name, d.Supers...); err != nil {
			return err
		}
	}
	for _, d := range rn.s.Impls {
		if _, err := rn.traits.AddImpl(d.Trait, d.Generics, d.For.Type); err != nil {
			return err
		}
	}
	for _, c := range rn.s.Constraints {
		rn.r.AddConstraint(mono.ParseDefKey(c.Def), mono.Constraint{TypeParam: c.Param, Bounds: c.Bounds})
	}
	return nil
}

func (d FuncDecl) function() *ast.Function {
	fn := &ast.Function{Name: d.Name, Generics: d.Generics, Body: &ast.Block{}}
	for _, p := range d.Params {
		fn.Params = append(fn.Params, ast.Parameter{Name: p.Name, Type: p.Type.Type})
	}
	if d.Returns != nil {
		fn.ReturnType = d.Returns.Type
	}
	for _, c := range d.Calls {
		fn.Body.Stmts = append(fn.Body.Stmts, &ast.ExprStmt{Expr: &ast.Call{Func: c.Func, TypeArgs: typeArgs(c.TypeArgs)}})
	}
	return fn
}

// roots returns the session's requests, preceded by every non-generic declaration.
func (rn *runner) roots() []mono.Request {
	var roots []mono.Request
	for _, d := range rn.s.Structs {
		if len(d.Generics) == 0 {
			roots = append(roots, mono.Request{Base: d.Name})
		}
	}
	for _, d := range rn.s.Enums {
		if len(d.Generics) == 0 {
			roots = append(roots, mono.Request{Base: d.Name})
		}
	}
	for _, list := range [][]FuncDecl{rn.s.Functions, rn.s.Methods} {
		for _, d := range list {
			if len(d.Generics) == 0 {
				roots = append(roots, mono.Request{Base: mono.DefKey{Owner: d.Owner, Name: d.Name}.String()})
			}
		}
	}
	for _, req := range rn.s.Instantiate {
		roots = append(roots, mono.Request{Base: req.Base, Args: typeArgs(req.Args)})
	}
	return roots
}

func (rn *runner) printf(format string, args ...interface{}) {
	fmt.Fprintf(rn.w, format, args...)
}

func (rn *runner) fail(indent string, err error) {
	rn.failures++
	rn.printf("%s%s %v\n", indent, rn.pal.bad("error:"), err)
}

func (rn *runner) reportProgram(prog *mono.Program) {
	names := make([]string, 0, len(prog.Names))
	for name, src := range prog.Names {
		if name != src {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	rn.printf("%s\n", rn.pal.heading("instances:"))
	for _, name := range names {
		rn.printf("  %s = %s\n", name, prog.Names[name])
	}
	rn.printf("%s\n", rn.pal.heading("definitions:"))
	for _, d := range prog.Defs {
		rn.printf("  %s\n", types.DefinitionString(d))
	}
}

func (rn *runner) resolveMethods() {
	if len(rn.s.ResolveMethods) == 0 {
		return
	}
	rn.printf("%s\n", rn.pal.heading("methods:"))
	for _, q := range rn.s.ResolveMethods {
		name, err := rn.r.ResolveMethod(q.Type, q.Method, typeArgs(q.Args))
		if err != nil {
			rn.fail("  ", err)
			continue
		}
		rn.printf("  %s::%s -> %s\n", q.Type, q.Method, name)
	}
}

func (rn *runner) infer() {
	if len(rn.s.Infer) == 0 {
		return
	}
	rn.printf("%s\n", rn.pal.heading("inferred:"))
	for _, q := range rn.s.Infer {
		var (
			inferred []ast.Type
			err      error
		)
		if q.Owner != "" {
			inferred, err = rn.r.InferMethodGenerics(q.Owner, q.Name, typeArgs(q.Args))
		} else {
			inferred, err = rn.r.InferFunctionGenerics(q.Name, typeArgs(q.Args))
		}
		if err != nil {
			rn.fail("  ", err)
			continue
		}
		call := mono.DefKey{Owner: q.Owner, Name: q.Name}.String()
		rn.printf("  %s(%s) -> <%s>\n", call, joinTypes(typeArgs(q.Args)), joinTypes(inferred))
	}
}

func (rn *runner) matches() {
	if len(rn.s.Matches) == 0 {
		return
	}
	rn.printf("%s\n", rn.pal.heading("matches:"))
	for _, q := range rn.s.Matches {
		rn.printf("  match %s:\n", q.Type)
		t, err := rn.matchType(q.Type)
		if err != nil {
			rn.fail("    ", err)
			continue
		}
		arms := make([]ast.Pattern, len(q.Arms))
		for i, arm := range q.Arms {
			arms[i] = arm.Pattern
		}
		res, err := rn.matcher.CheckExhaustiveness(rn.cat, arms, t)
		if err != nil {
			rn.fail("    ", err)
			continue
		}
		switch res.Status {
		case mono.Exhaustive:
			rn.printf("    %s\n", rn.pal.good(res.Status.String()))
		case mono.Missing:
			descs := make([]string, len(res.Missing))
			for i, m := range res.Missing {
				descs[i] = m.Description
			}
			rn.printf("    %s %s\n", rn.pal.warn("missing:"), strings.Join(descs, ", "))
		case mono.Unreachable:
			for _, i := range res.Unreachable {
				rn.printf("    %s arm %d: %s\n", rn.pal.warn("unreachable"), i, ast.PatternString(arms[i]))
			}
		}
		for i, arm := range arms {
			rn.compileArm(i, arm, t)
		}
	}
}

func (rn *runner) compileArm(i int, arm ast.Pattern, t types.Ty) {
	code, err := rn.matcher.CompilePattern(rn.cat, arm, t)
	if err != nil {
		rn.printf("    arm %d: %s\n", i, ast.PatternString(arm))
		rn.fail("      ", err)
		return
	}
	conds := make([]string, len(code.Conditions))
	for j, c := range code.Conditions {
		conds[j] = mono.ConditionString(c)
	}
	rn.printf("    arm %d: %s\n      if %s\n", i, ast.PatternString(arm), strings.Join(conds, " && "))
	for _, b := range code.Bindings {
		rn.printf("      let %s: %s = %s\n", b.Name, types.TyString(b.Type), mono.PathString(b.Path))
	}
}

// matchType resolves the scrutinee type of a match. Parenthesized lists are tuples.
func (rn *runner) matchType(src string) (types.Ty, error) {
	src = strings.TrimSpace(src)
	if len(src) > 2 && strings.HasPrefix(src, "(") && strings.HasSuffix(src, ")") {
		elems, err := syntax.ParseTypeList(src[1 : len(src)-1])
		if err != nil {
			return nil, err
		}
		tuple := &types.Tuple{Elems: make([]types.Ty, len(elems))}
		for i, t := range elems {
			tuple.Elems[i] = rn.cat.ResolveType(t)
		}
		return tuple, nil
	}
	t, err := syntax.ParseType(src)
	if err != nil {
		return nil, err
	}
	return rn.cat.ResolveType(t), nil
}

func joinTypes(ts []ast.Type) string {
	strs := make([]string, len(ts))
	for i, t := range ts {
		strs[i] = ast.TypeString(t)
	}
	return strings.Join(strs, ", ")
}
