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

package mono

import (
	"errors"
	"reflect"
	"testing"

	"github.com/wdamron/mono/ast"
	. "github.com/wdamron/mono/construct"
	"github.com/wdamron/mono/types"
)

var pointTy = &types.Struct{Name: "Point"}

func TestCompileCatchAll(t *testing.T) {
	cat, pm := shapeCatalog(t), NewPatternMatcher()

	code, err := pm.CompilePattern(cat, PWild(), types.I32)
	if err != nil || len(code.Conditions) != 1 || len(code.Bindings) != 0 {
		t.Fatalf("unexpected code for wildcard: %+v (%v)", code, err)
	}
	if _, ok := code.Conditions[0].(Always); !ok {
		t.Fatalf("expected Always, got %s", code.Conditions[0].ConditionName())
	}

	code, err = pm.CompilePattern(cat, PIdent("x"), types.I32)
	if err != nil || len(code.Conditions) != 1 || len(code.Bindings) != 1 {
		t.Fatalf("unexpected code for identifier: %+v (%v)", code, err)
	}
	b := code.Bindings[0]
	if b.Name != "x" || b.Type != types.I32 || PathString(b.Path) != "$" {
		t.Fatalf("unexpected binding: %+v", b)
	}
}

func TestCompileStruct(t *testing.T) {
	cat, pm := shapeCatalog(t), NewPatternMatcher()

	code, err := pm.CompilePattern(cat, PStructRest("Point", PField("x", PWild()), PField("y", PWild())), pointTy)
	if err != nil || len(code.Conditions) != 2 {
		t.Fatalf("expected one condition per listed field, got %+v (%v)", code, err)
	}

	code, err = pm.CompilePattern(cat, PStruct("Point", PField("x", PLit(Int(1))), PField("y", PIdent("y"))), pointTy)
	if err != nil {
		t.Fatal(err)
	}
	want := []Condition{&FieldMatch{Field: "x", Cond: &ValueEquals{Value: IntValue(1)}}, Always{}}
	if !reflect.DeepEqual(code.Conditions, want) {
		t.Fatalf("unexpected conditions: %v", code.Conditions)
	}
	if s := ConditionString(code.Conditions[0]); s != ".x == 1" {
		t.Fatalf("unexpected condition string: %s", s)
	}
	if len(code.Bindings) != 1 || PathString(code.Bindings[0].Path) != "$.y" || !types.TyEqual(code.Bindings[0].Type, types.I32) {
		t.Fatalf("unexpected bindings: %+v", code.Bindings)
	}

	// Nested enum patterns keep their access path:
	code, err = pm.CompilePattern(cat, PStruct("Point", PField("tag", PEnum("Circle", PIdent("r")))), pointTy)
	if err != nil {
		t.Fatal(err)
	}
	want = []Condition{&FieldMatch{Field: "tag", Cond: &DiscriminantEquals{Index: 0}}, Always{}}
	if !reflect.DeepEqual(code.Conditions, want) {
		t.Fatalf("unexpected conditions: %v", code.Conditions)
	}
	if PathString(code.Bindings[0].Path) != "$.tag.data" || !types.TyEqual(code.Bindings[0].Type, types.F64) {
		t.Fatalf("unexpected bindings: %+v", code.Bindings)
	}

	_, err = pm.CompilePattern(cat, PStruct("Line"), pointTy)
	if !errors.Is(err, types.ErrPatternShapeMismatch) || err.Error() != "Struct pattern 'Line' doesn't match type 'Point'" {
		t.Fatalf("expected struct mismatch, got %v", err)
	}
	_, err = pm.CompilePattern(cat, PStruct("Point", PField("z", PWild())), pointTy)
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected unknown field, got %v", err)
	}
}

func TestCompileEnum(t *testing.T) {
	cat, pm := shapeCatalog(t), NewPatternMatcher()

	code, err := pm.CompilePattern(cat, PEnum("Circle", PIdent("r")), shapeTy)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(code.Conditions, []Condition{&DiscriminantEquals{Index: 0}, Always{}}) {
		t.Fatalf("unexpected conditions: %v", code.Conditions)
	}
	if b := code.Bindings[0]; b.Name != "r" || PathString(b.Path) != "$.data" || !types.TyEqual(b.Type, types.F64) {
		t.Fatalf("unexpected binding: %+v", b)
	}

	code, err = pm.CompilePattern(cat, PEnum("Rect", PTuple(PIdent("w"), PLit(Float(2)))), shapeTy)
	if err != nil {
		t.Fatal(err)
	}
	want := []Condition{
		&DiscriminantEquals{Index: 1},
		Always{},
		&TupleElementMatch{Index: 1, Cond: &ValueEquals{Value: FloatValue(2)}},
	}
	if !reflect.DeepEqual(code.Conditions, want) {
		t.Fatalf("unexpected conditions: %v", code.Conditions)
	}
	if b := code.Bindings[0]; b.Name != "w" || PathString(b.Path) != "$.0" {
		t.Fatalf("unexpected binding: %+v", b)
	}

	code, err = pm.CompilePattern(cat, PEnum("Circle", PLit(Float(1.5))), shapeTy)
	if err != nil || !reflect.DeepEqual(code.Conditions[1], &DataMatch{Cond: &ValueEquals{Value: FloatValue(1.5)}}) {
		t.Fatalf("unexpected payload condition: %+v (%v)", code, err)
	}
}

func TestCompileEnumErrors(t *testing.T) {
	cat, pm := shapeCatalog(t), NewPatternMatcher()
	cases := []struct {
		pattern ast.Pattern
		target  types.Ty
		err     error
	}{
		{PEnum("Rect", PIdent("w")), shapeTy, types.ErrPatternShapeMismatch},
		{PEnum("Rect", PTuple(PWild(), PWild(), PWild())), shapeTy, types.ErrArityMismatch},
		{PEnum("Empty", PWild()), shapeTy, types.ErrPatternShapeMismatch},
		{PEnum("Triangle", nil), shapeTy, types.ErrNotFound},
		{PEnum("Circle", nil), pointTy, types.ErrPatternShapeMismatch},
		{PEnum("Circle", PLit(Str("round"))), shapeTy, types.ErrPatternShapeMismatch},
	}
	for i, c := range cases {
		if _, err := pm.CompilePattern(cat, c.pattern, c.target); !errors.Is(err, c.err) {
			t.Fatalf("case %d: expected %v, got %v", i, c.err, err)
		}
	}

	_, err := pm.CompilePattern(cat, PEnum("Rect", PTuple(PWild())), shapeTy)
	if err == nil || err.Error() != "Pattern tuple length 1 doesn't match variant data length 2" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCompileLiteralsAndRanges(t *testing.T) {
	pm := NewPatternMatcher()

	code, err := pm.CompilePattern(nil, PRange(Int(1), Int(5), true), types.I32)
	if err != nil || !reflect.DeepEqual(code.Conditions, []Condition{&InRange{Start: IntValue(1), End: IntValue(5), Inclusive: true}}) {
		t.Fatalf("unexpected range code: %+v (%v)", code, err)
	}
	if s := ConditionString(code.Conditions[0]); s != "in 1..=5" {
		t.Fatalf("unexpected condition string: %s", s)
	}
	code, err = pm.CompilePattern(nil, PRange(Char('a'), Char('z'), false), types.Char)
	if err != nil || len(code.Conditions) != 1 {
		t.Fatalf("unexpected char range code: %+v (%v)", code, err)
	}

	_, err = pm.CompilePattern(nil, &ast.RangePattern{Start: PIdent("lo"), End: PLit(Int(5))}, types.I32)
	if !errors.Is(err, types.ErrPatternShapeMismatch) || err.Error() != "Range pattern start must be a literal" {
		t.Fatalf("expected non-literal start, got %v", err)
	}
	_, err = pm.CompilePattern(nil, &ast.RangePattern{Start: PLit(Int(1)), End: PWild()}, types.I32)
	if !errors.Is(err, types.ErrPatternShapeMismatch) || err.Error() != "Range pattern end must be a literal" {
		t.Fatalf("expected non-literal end, got %v", err)
	}
	if _, err = pm.CompilePattern(nil, PRange(Int(1), Float(2), false), &types.Opaque{Name: "T"}); !errors.Is(err, types.ErrPatternShapeMismatch) {
		t.Fatalf("expected mixed bounds to fail, got %v", err)
	}

	for _, c := range []struct {
		lit    ast.Expr
		target types.Ty
		value  Value
	}{
		{Int(-3), types.I64, IntValue(-3)},
		{Float(0.5), types.F32, FloatValue(0.5)},
		{Bool(true), types.Bool, BoolValue(true)},
		{Str("hi"), types.String, StringValue("hi")},
		{Char('x'), types.Char, CharValue('x')},
	} {
		code, err = pm.CompilePattern(nil, PLit(c.lit), c.target)
		if err != nil || !reflect.DeepEqual(code.Conditions, []Condition{&ValueEquals{Value: c.value}}) {
			t.Fatalf("unexpected code for %s: %+v (%v)", ast.ExprString(c.lit), code, err)
		}
	}

	if _, err = pm.CompilePattern(nil, PLit(Str("1")), types.I32); !errors.Is(err, types.ErrPatternShapeMismatch) {
		t.Fatalf("expected literal kind mismatch, got %v", err)
	}
	if _, err = pm.CompilePattern(nil, PLit(Ident("x")), types.I32); !errors.Is(err, types.ErrPatternShapeMismatch) {
		t.Fatalf("expected non-literal expression to fail, got %v", err)
	}
}

func TestCompileOr(t *testing.T) {
	cat, pm := shapeCatalog(t), NewPatternMatcher()

	code, err := pm.CompilePattern(cat, POr(PLit(Int(1)), PLit(Int(2))), types.I32)
	if err != nil {
		t.Fatal(err)
	}
	want := []Condition{&Or{Conds: []Condition{&ValueEquals{Value: IntValue(1)}, &ValueEquals{Value: IntValue(2)}}}}
	if !reflect.DeepEqual(code.Conditions, want) {
		t.Fatalf("unexpected conditions: %v", code.Conditions)
	}

	code, err = pm.CompilePattern(cat, POr(PEnum("Circle", PLit(Float(1))), PEnum("Empty", nil)), shapeTy)
	if err != nil {
		t.Fatal(err)
	}
	want = []Condition{&Or{Conds: []Condition{
		&And{Conds: []Condition{&DiscriminantEquals{Index: 0}, &DataMatch{Cond: &ValueEquals{Value: FloatValue(1)}}}},
		&DiscriminantEquals{Index: 2},
	}}}
	if !reflect.DeepEqual(code.Conditions, want) {
		t.Fatalf("unexpected conditions: %v", code.Conditions)
	}
	if s := ConditionString(code.Conditions[0]); s != "((tag == 0 && .data == 1) || tag == 2)" {
		t.Fatalf("unexpected condition string: %s", s)
	}

	_, err = pm.CompilePattern(cat, POr(PIdent("x"), PWild()), types.I32)
	if !errors.Is(err, types.ErrInvalidBindingContext) {
		t.Fatalf("expected invalid binding context, got %v", err)
	}
	_, err = pm.CompilePattern(cat, PEnum("Circle", POr(PLit(Float(1)), PBind("r", PWild()))), shapeTy)
	if !errors.Is(err, types.ErrInvalidBindingContext) {
		t.Fatalf("expected invalid binding context for nested or-pattern, got %v", err)
	}
}

func TestCompileBindingsAndTuples(t *testing.T) {
	cat, pm := shapeCatalog(t), NewPatternMatcher()

	code, err := pm.CompilePattern(cat, PBind("s", PEnum("Circle", PWild())), shapeTy)
	if err != nil {
		t.Fatal(err)
	}
	if len(code.Conditions) != 2 || len(code.Bindings) != 1 || PathString(code.Bindings[0].Path) != "$" {
		t.Fatalf("unexpected code: %+v", code)
	}

	pair := &types.Tuple{Elems: []types.Ty{types.I32, types.Bool}}
	code, err = pm.CompilePattern(cat, PTuple(PIdent("a"), PLit(Bool(true))), pair)
	if err != nil {
		t.Fatal(err)
	}
	if b := code.Bindings[0]; !types.TyEqual(b.Type, types.I32) || PathString(b.Path) != "$.0" {
		t.Fatalf("unexpected binding: %+v", b)
	}
	if !reflect.DeepEqual(code.Conditions[1], &TupleElementMatch{Index: 1, Cond: &ValueEquals{Value: BoolValue(true)}}) {
		t.Fatalf("unexpected condition: %v", code.Conditions[1])
	}

	// Without a tuple type, each element is matched against the parent type.
	first, err := pm.CompilePattern(cat, PTuple(PIdent("a"), PIdent("b")), types.I32)
	if err != nil {
		t.Fatal(err)
	}
	if !types.TyEqual(first.Bindings[1].Type, types.I32) {
		t.Fatalf("unexpected binding type: %s", types.TyString(first.Bindings[1].Type))
	}
	// Results do not share the matcher's scratch space:
	if _, err = pm.CompilePattern(cat, PIdent("z"), types.Bool); err != nil {
		t.Fatal(err)
	}
	if first.Bindings[0].Name != "a" || first.Bindings[1].Name != "b" {
		t.Fatalf("compiled code was modified by a later call: %+v", first.Bindings)
	}
}
