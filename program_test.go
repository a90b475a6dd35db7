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
	"testing"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/catalog"
	. "github.com/wdamron/mono/construct"
	"github.com/wdamron/mono/types"
)

func programResolver(t *testing.T) (*GenericResolver, *catalog.Catalog) {
	cat := catalog.New()
	r := NewGenericResolver()
	r.SetLayoutCalculator(cat.Layout())
	if err := r.RegisterEnum(&types.EnumDef{
		Name:     "Option",
		Generics: []string{"T"},
		Variants: []ast.EnumVariant{Variant("Some", TNamed("T")), Variant("None")},
	}); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterStruct(&types.StructDef{
		Name:     "Pair",
		Generics: []string{"A", "B"},
		Fields:   []ast.StructField{Field("first", TNamed("A")), Field("second", TNamed("B"))},
	}); err != nil {
		t.Fatal(err)
	}
	return r, cat
}

func defNames(defs []types.Definition) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.DefName()
	}
	return names
}

func TestProgramDependencyOrder(t *testing.T) {
	r, cat := programResolver(t)
	prog, err := NewMonomorphizer(r, cat).Run([]Request{
		{Base: "Pair", Args: []ast.Type{TGeneric("Option", TNamed("i32")), TNamed("String")}},
	})
	if err != nil {
		t.Fatal(err)
	}
	names := defNames(prog.Defs)
	if len(names) != 2 || names[0] != "Option_i32" || names[1] != "Pair_Option_i32_String" {
		t.Fatalf("unexpected definition order: %v", names)
	}
	if src := prog.Names["Pair_Option_i32_String"]; src != "Pair<Option<i32>, String>" {
		t.Fatalf("unexpected source name: %s", src)
	}

	pair, ok := cat.Struct("Pair_Option_i32_String")
	if !ok {
		t.Fatalf("expected the pair instance to be defined in the catalog")
	}
	if first := pair.Fields[0].Type; !ast.TypeEqual(first, TNamed("Option_i32")) {
		t.Fatalf("expected nested generic to be rewritten, got %s", ast.TypeString(first))
	}
	// Option_i32 is 8 bytes with 4-byte alignment, followed by a 24-byte String:
	if l := pair.Layout; l.Size != 32 || l.Align != 8 || l.FieldOffsets[1] != 8 {
		t.Fatalf("unexpected layout: %+v", l)
	}
	if _, ok := cat.Enum("Option_i32"); !ok {
		t.Fatalf("expected the option instance to be defined in the catalog")
	}

	// The registered generic definitions are not modified:
	d, _ := r.Definition("Pair")
	if !ast.TypeEqual(d.(*types.StructDef).Fields[0].Type, TNamed("A")) {
		t.Fatalf("generic definition was modified")
	}
}

func TestProgramInfiniteSize(t *testing.T) {
	r := NewGenericResolver()
	if err := r.RegisterStruct(&types.StructDef{
		Name:     "Node",
		Generics: []string{"T"},
		Fields:   []ast.StructField{Field("value", TNamed("T")), Field("next", TGeneric("Node", TNamed("T")))},
	}); err != nil {
		t.Fatal(err)
	}
	_, err := NewMonomorphizer(r, nil).Run([]Request{{Base: "Node", Args: []ast.Type{TNamed("i32")}}})
	if !errors.Is(err, types.ErrInfiniteSize) {
		t.Fatalf("expected infinite size, got %v", err)
	}

	if err = r.RegisterStruct(&types.StructDef{
		Name:     "List",
		Generics: []string{"T"},
		Fields:   []ast.StructField{Field("value", TNamed("T")), Field("rest", TVec(TGeneric("List", TNamed("T"))))},
	}); err != nil {
		t.Fatal(err)
	}
	prog, err := NewMonomorphizer(r, nil).Run([]Request{{Base: "List", Args: []ast.Type{TNamed("i32")}}})
	if err != nil {
		t.Fatal(err)
	}
	list := prog.Defs[0].(*types.StructDef)
	if !ast.TypeEqual(list.Fields[1].Type, TVec(TNamed("List_i32"))) {
		t.Fatalf("unexpected field type: %s", ast.TypeString(list.Fields[1].Type))
	}
}

func TestProgramMutualRecursionThroughArrays(t *testing.T) {
	r := NewGenericResolver()
	structs := []*types.StructDef{
		{Name: "Even", Generics: []string{"T"}, Fields: []ast.StructField{Field("odd", TArray(TGeneric("Odd", TNamed("T")), 2))}},
		{Name: "Odd", Generics: []string{"T"}, Fields: []ast.StructField{Field("even", TGeneric("Even", TNamed("T")))}},
	}
	for _, d := range structs {
		if err := r.RegisterStruct(d); err != nil {
			t.Fatal(err)
		}
	}
	_, err := NewMonomorphizer(r, nil).Run([]Request{{Base: "Even", Args: []ast.Type{TNamed("u8")}}})
	if !errors.Is(err, types.ErrInfiniteSize) || err.Error() != "Recursive types without indirection have infinite size: Even_u8, Odd_u8" {
		t.Fatalf("expected infinite size naming both members, got %v", err)
	}
}

func TestProgramRecursionLimit(t *testing.T) {
	r := NewGenericResolver()
	if err := r.RegisterStruct(&types.StructDef{
		Name:     "S",
		Generics: []string{"T"},
		Fields:   []ast.StructField{Field("s", TVec(TGeneric("S", TVec(TNamed("T")))))},
	}); err != nil {
		t.Fatal(err)
	}
	m := NewMonomorphizer(r, nil)
	m.MaxDepth = 8
	_, err := m.Run([]Request{{Base: "S", Args: []ast.Type{TNamed("i32")}}})
	if !errors.Is(err, types.ErrRecursionLimit) {
		t.Fatalf("expected recursion limit, got %v", err)
	}
}

func TestProgramFunctionBodies(t *testing.T) {
	r, _ := programResolver(t)
	identity := Func("identity", []string{"T"}, []ast.Parameter{Param("x", TNamed("T"))}, TNamed("T"))
	wrap := Func("wrap", []string{"T"}, []ast.Parameter{Param("x", TNamed("T"))}, TGeneric("Option", TNamed("T")))
	wrap.Body = &ast.Block{Stmts: []ast.Stmt{
		&ast.Let{Name: "y", Type: TNamed("T"), Value: Call("identity", []ast.Type{TNamed("T")}, Ident("x"))},
		&ast.ExprStmt{Expr: Call("Log::write", []ast.Type{TNamed("T")}, Ident("y"))},
		&ast.ExprStmt{Expr: Call("println", nil, Ident("y"))},
		&ast.Return{Value: Ident("y")},
	}}
	write := Func("write", []string{"T"}, []ast.Parameter{Param("v", TRef(TNamed("T")))}, nil)
	for _, d := range []*types.FuncDef{{Func: identity}, {Func: wrap}, {Owner: "Log", Func: write}} {
		if err := r.RegisterFunction(d); err != nil {
			t.Fatal(err)
		}
	}

	prog, err := NewMonomorphizer(r, nil).Run([]Request{{Base: "wrap", Args: []ast.Type{TNamed("i32")}}})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"wrap_i32", "identity_i32", "Log::write_i32", "Option_i32"} {
		if _, ok := prog.Names[name]; !ok {
			t.Fatalf("expected %s in %v", name, prog.Names)
		}
	}
	if src := prog.Names["Log::write_i32"]; src != "Log::write<i32>" {
		t.Fatalf("unexpected source name: %s", src)
	}

	fn := prog.Defs[0].(*types.FuncDef).Func
	if fn.Name != "wrap_i32" || !ast.TypeEqual(fn.ReturnType, TNamed("Option_i32")) {
		t.Fatalf("unexpected function: %s -> %s", fn.Name, ast.TypeString(fn.ReturnType))
	}
	call := fn.Body.Stmts[0].(*ast.Let).Value.(*ast.Call)
	if call.Func != "identity_i32" || len(call.TypeArgs) != 0 {
		t.Fatalf("unexpected call: %s", ast.ExprString(call))
	}
	if call = fn.Body.Stmts[1].(*ast.ExprStmt).Expr.(*ast.Call); call.Func != "Log::write_i32" {
		t.Fatalf("unexpected method call: %s", ast.ExprString(call))
	}
	if call = fn.Body.Stmts[2].(*ast.ExprStmt).Expr.(*ast.Call); call.Func != "println" {
		t.Fatalf("unexpected call to unregistered function: %s", ast.ExprString(call))
	}
}

func TestProgramPropagatesResolverErrors(t *testing.T) {
	r, _ := programResolver(t)
	_, err := NewMonomorphizer(r, nil).Run([]Request{{Base: "Pair", Args: []ast.Type{TNamed("i32")}}})
	if !errors.Is(err, types.ErrArityMismatch) {
		t.Fatalf("expected arity mismatch, got %v", err)
	}
	_, err = NewMonomorphizer(r, nil).Run([]Request{{Base: "Triple", Args: nil}})
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
