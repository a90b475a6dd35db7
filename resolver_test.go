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
	"strings"
	"testing"

	"github.com/wdamron/mono/ast"
	. "github.com/wdamron/mono/construct"
	"github.com/wdamron/mono/types"
)

func containerResolver(t *testing.T) *GenericResolver {
	r := NewGenericResolver()
	err := r.RegisterStruct(&types.StructDef{
		Name:     "Container",
		Generics: []string{"T"},
		Fields:   []ast.StructField{Field("value", TNamed("T"))},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = r.RegisterStruct(&types.StructDef{
		Name:     "Pair",
		Generics: []string{"A", "B"},
		Fields:   []ast.StructField{Field("first", TNamed("A")), Field("second", TNamed("B"))},
	})
	if err != nil {
		t.Fatal(err)
	}
	err = r.RegisterEnum(&types.EnumDef{
		Name:     "Option",
		Generics: []string{"T"},
		Variants: []ast.EnumVariant{Variant("Some", TNamed("T")), Variant("None")},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestInstantiateMangling(t *testing.T) {
	r := containerResolver(t)

	name, err := r.Instantiate("Pair", []ast.Type{TNamed("i32"), TNamed("String")})
	if err != nil || name != "Pair_i32_String" {
		t.Fatalf("expected Pair_i32_String, got %q (%v)", name, err)
	}
	name, err = r.Instantiate("Container", []ast.Type{TVec(TNamed("i32"))})
	if err != nil || name != "Container_Vec_i32" {
		t.Fatalf("expected Container_Vec_i32, got %q (%v)", name, err)
	}
	name, err = r.Instantiate("Option", []ast.Type{TNamed("String")})
	if err != nil || name != "Option_String" {
		t.Fatalf("expected Option_String, got %q (%v)", name, err)
	}
}

func TestInstantiateIsCached(t *testing.T) {
	r := containerResolver(t)

	// Structurally-equal, independently-constructed arguments:
	a, err := r.Instantiate("Container", []ast.Type{THashMap(TNamed("String"), TVec(TNamed("i32")))})
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Instantiate("Container", []ast.Type{THashMap(TNamed("String"), TVec(TNamed("i32")))})
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("expected identical names, got %s and %s", a, b)
	}
	if n := len(r.Instances("Container")); n != 1 {
		t.Fatalf("expected 1 instance, got %d", n)
	}

	if _, err = r.Instantiate("Container", []ast.Type{TNamed("bool")}); err != nil {
		t.Fatal(err)
	}
	insts := r.Instances("Container")
	if len(insts) != 2 || insts[1].Name != "Container_bool" {
		t.Fatalf("expected 2 instances in insertion order, got %d", len(insts))
	}
	if !r.IsInstantiated("Container", []ast.Type{TNamed("bool")}) || r.IsInstantiated("Container", []ast.Type{TNamed("u8")}) {
		t.Fatalf("unexpected instantiation state")
	}
	if name, ok := r.InstantiatedName("Container", []ast.Type{TNamed("bool")}); !ok || name != "Container_bool" {
		t.Fatalf("expected Container_bool, got %q", name)
	}

	r.ClearInstantiations()
	if len(r.Instances("Container")) != 0 || r.IsInstantiated("Container", []ast.Type{TNamed("bool")}) {
		t.Fatalf("expected no instances after clearing")
	}
	if _, ok := r.Definition("Container"); !ok {
		t.Fatalf("expected definitions to survive clearing")
	}
}

func TestInstantiateErrors(t *testing.T) {
	r := containerResolver(t)

	_, err := r.Instantiate("Container", []ast.Type{TNamed("i32"), TNamed("bool")})
	if !errors.Is(err, types.ErrArityMismatch) || !strings.Contains(err.Error(), "expects 1 type arguments, but 2 were provided") {
		t.Fatalf("expected arity mismatch, got %v", err)
	}
	_, err = r.Instantiate("Missing", []ast.Type{TNamed("i32")})
	if !errors.Is(err, types.ErrNotFound) || err.Error() != "Generic definition 'Missing' not found" {
		t.Fatalf("expected not-found, got %v", err)
	}
	err = r.RegisterStruct(&types.StructDef{Name: "Container", Generics: []string{"U"}})
	if !errors.Is(err, types.ErrDuplicateDefinition) || err.Error() != "Generic definition 'Container' already exists" {
		t.Fatalf("expected duplicate definition, got %v", err)
	}
	err = r.RegisterStruct(&types.StructDef{Name: "Twice", Generics: []string{"T", "T"}})
	if !errors.Is(err, types.ErrDuplicateDefinition) {
		t.Fatalf("expected duplicate type-parameter, got %v", err)
	}
	// Functions, methods, and types share a namespace:
	err = r.RegisterFunction(&types.FuncDef{Func: Func("Option", nil, nil, nil)})
	if !errors.Is(err, types.ErrDuplicateDefinition) {
		t.Fatalf("expected duplicate definition for function, got %v", err)
	}
}

func TestConstraints(t *testing.T) {
	r := containerResolver(t)
	r.AddConstraint(TypeKey("Container"), Constraint{TypeParam: "T", Bounds: []string{"Display", "Clone"}})

	if _, err := r.Instantiate("Container", []ast.Type{TNamed("i32")}); err != nil {
		t.Fatal(err)
	}
	_, err := r.Instantiate("Container", []ast.Type{TVec(TNamed("i32"))})
	if !errors.Is(err, types.ErrConstraintViolation) || err.Error() != "Type 'Vec<i32>' does not implement required trait 'Display'" {
		t.Fatalf("expected constraint violation, got %v", err)
	}

	r.AddConstraint(TypeKey("Option"), Constraint{TypeParam: "U", Bounds: []string{"Clone"}})
	if _, err = r.Instantiate("Option", []ast.Type{TNamed("i32")}); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected unknown type-parameter to be not-found, got %v", err)
	}
}

func TestMonomorphizeStruct(t *testing.T) {
	r := containerResolver(t)

	def, err := r.Monomorphize("Container", []ast.Type{TNamed("i32")})
	if err != nil {
		t.Fatal(err)
	}
	sd := def.(*types.StructDef)
	if sd.Name != "Container_i32" || len(sd.Generics) != 0 || len(sd.Fields) != 1 {
		t.Fatalf("unexpected definition %s", types.DefinitionString(sd))
	}
	if sd.Fields[0].Name != "value" || !ast.TypeEqual(sd.Fields[0].Type, TNamed("i32")) {
		t.Fatalf("expected value: i32, got %s", types.DefinitionString(sd))
	}
	if sd.Layout.Size != 4 || sd.Layout.Align != 4 {
		t.Fatalf("unexpected layout %+v", sd.Layout)
	}
	// Monomorphize does not touch the instance cache:
	if r.IsInstantiated("Container", []ast.Type{TNamed("i32")}) {
		t.Fatalf("expected no cached instance")
	}

	def, err = r.Monomorphize("Container", []ast.Type{TVec(TNamed("i32"))})
	if err != nil {
		t.Fatal(err)
	}
	if sd = def.(*types.StructDef); sd.Name != "Container_Vec_i32" || !ast.TypeEqual(sd.Fields[0].Type, TVec(TNamed("i32"))) {
		t.Fatalf("unexpected definition %s", types.DefinitionString(sd))
	}

	if _, err = r.Monomorphize("Pair", []ast.Type{TNamed("i32")}); !errors.Is(err, types.ErrArityMismatch) {
		t.Fatalf("expected arity mismatch, got %v", err)
	}
}

func TestMonomorphizeEnumAndFunction(t *testing.T) {
	r := containerResolver(t)

	def, err := r.Monomorphize("Option", []ast.Type{TNamed("String")})
	if err != nil {
		t.Fatal(err)
	}
	ed := def.(*types.EnumDef)
	if ed.Name != "Option_String" || len(ed.Generics) != 0 || ed.DiscriminantType != types.U8 {
		t.Fatalf("unexpected definition %s", types.DefinitionString(ed))
	}
	if !ast.TypeEqual(ed.Variants[0].Data.Types[0], TNamed("String")) || ed.Variants[1].Data != nil {
		t.Fatalf("unexpected variants %s", types.DefinitionString(ed))
	}

	fn := Func("swap", []string{"A", "B"}, []ast.Parameter{Param("p", TGeneric("Pair", TNamed("A"), TNamed("B")))}, TGeneric("Pair", TNamed("B"), TNamed("A")))
	if err = r.RegisterFunction(&types.FuncDef{Func: fn}); err != nil {
		t.Fatal(err)
	}
	def, err = r.Monomorphize("swap", []ast.Type{TNamed("i32"), TNamed("bool")})
	if err != nil {
		t.Fatal(err)
	}
	fd := def.(*types.FuncDef)
	if fd.Func.Name != "swap_i32_bool" || len(fd.Func.Generics) != 0 {
		t.Fatalf("unexpected function %s", types.DefinitionString(fd))
	}
	if got := ast.TypeString(fd.Func.ReturnType); got != "Pair<bool, i32>" {
		t.Fatalf("expected Pair<bool, i32>, got %s", got)
	}
}

func TestSpecialize(t *testing.T) {
	r := containerResolver(t)

	inst, err := r.Specialize("Option", []ast.Type{TNamed("i32")})
	if err != nil {
		t.Fatal(err)
	}
	if inst.Name != "Option_i32" || inst.Def == nil || inst.Def.DefName() != "Option_i32" {
		t.Fatalf("unexpected instance %+v", inst)
	}
	again, err := r.Specialize("Option", []ast.Type{TNamed("i32")})
	if err != nil {
		t.Fatal(err)
	}
	if again != inst || again.Def != inst.Def {
		t.Fatalf("expected the cached instance and definition")
	}
	if byName, ok := r.InstanceByName("Option_i32"); !ok || byName != inst {
		t.Fatalf("expected instance lookup by mangled name")
	}

	// A specialized method keeps its owner; together they form the instance's name:
	show := Func("show", []string{"U"}, []ast.Parameter{Param("u", TNamed("U"))}, nil)
	if err = r.RegisterMethod("Container", show); err != nil {
		t.Fatal(err)
	}
	method, err := r.Specialize("Container::show", []ast.Type{TNamed("i32")})
	if err != nil {
		t.Fatal(err)
	}
	fd := method.Def.(*types.FuncDef)
	if method.Name != "Container::show_i32" || fd.Owner != "Container" || fd.Func.Name != "show_i32" {
		t.Fatalf("unexpected method instance %s: %s", method.Name, types.DefinitionString(fd))
	}
	if got := MethodKey(fd.Owner, fd.DefName()).String(); got != method.Name {
		t.Fatalf("expected %s, got %s", method.Name, got)
	}
}

func TestResolveMethod(t *testing.T) {
	r := containerResolver(t)
	display := Func("display", []string{"T"}, []ast.Parameter{Param("value", TNamed("T"))}, TNamed("String"))
	get := Func("get", []string{"T"}, nil, TNamed("T"))
	if err := r.RegisterMethod("Container", display); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterMethod("Container", get); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterMethod("Container", Func("size", nil, nil, TNamed("usize"))); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Instantiate("Container", []ast.Type{TNamed("i32")}); err != nil {
		t.Fatal(err)
	}

	name, err := r.ResolveMethod("Container", "display", []ast.Type{TNamed("i32")})
	if err != nil || name != "Container::display_i32" {
		t.Fatalf("expected Container::display_i32, got %q (%v)", name, err)
	}
	// Methods on a mangled instance resolve against the base type:
	name, err = r.ResolveMethod("Container_i32", "get", []ast.Type{TNamed("i32")})
	if err != nil || name != "Container::get_i32" {
		t.Fatalf("expected Container::get_i32, got %q (%v)", name, err)
	}
	// Non-generic methods, or generic methods without type arguments, keep the instance's name:
	for _, c := range []struct {
		typeName, method string
		args             []ast.Type
		want             string
	}{
		{"Container_i32", "size", nil, "Container_i32::size"},
		{"Container_String", "size", nil, "Container_String::size"},
		{"Container_i32", "size", []ast.Type{TNamed("i32")}, "Container_i32::size"},
		{"Container_i32", "display", nil, "Container_i32::display"},
	} {
		name, err = r.ResolveMethod(c.typeName, c.method, c.args)
		if err != nil || name != c.want {
			t.Fatalf("ResolveMethod(%s, %s): expected %s, got %q (%v)", c.typeName, c.method, c.want, name, err)
		}
	}
	if r.IsInstantiated("Container::size", nil) {
		t.Fatalf("expected no instance of a method resolved through an instance's name")
	}
	// Unregistered methods pass through:
	name, err = r.ResolveMethod("Container", "len", nil)
	if err != nil || name != "Container::len" {
		t.Fatalf("expected Container::len, got %q (%v)", name, err)
	}
	if _, err = r.ResolveMethod("Container", "display", nil); !errors.Is(err, types.ErrArityMismatch) {
		t.Fatalf("expected arity mismatch, got %v", err)
	} else if !strings.Contains(err.Error(), "Generic method 'Container::display' expects 1 type arguments, but 0 were provided") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if !r.IsInstantiated("Container::display", []ast.Type{TNamed("i32")}) {
		t.Fatalf("expected the method instance to be cached")
	}
}

func TestResolveMethodUnderscoreOwner(t *testing.T) {
	r := NewGenericResolver()
	if err := r.RegisterStruct(&types.StructDef{Name: "My_Type", Generics: []string{"T"}, Fields: []ast.StructField{Field("v", TNamed("T"))}}); err != nil {
		t.Fatal(err)
	}
	if err := r.RegisterMethod("My_Type", Func("show", []string{"U"}, nil, nil)); err != nil {
		t.Fatal(err)
	}
	// Not instantiated yet: the longest registered prefix is used.
	name, err := r.ResolveMethod("My_Type_i32", "show", []ast.Type{TNamed("i32")})
	if err != nil || name != "My_Type::show_i32" {
		t.Fatalf("expected My_Type::show_i32, got %q (%v)", name, err)
	}
	if base, ok := r.BaseTypeName("My_Type_Vec_i32"); !ok || base != "My_Type" {
		t.Fatalf("expected base My_Type, got %q", base)
	}
}

func TestBuiltinTraits(t *testing.T) {
	b := BuiltinTraits()
	cases := []struct {
		t     ast.Type
		trait string
		want  bool
	}{
		{TNamed("i32"), "Display", true},
		{TNamed("String"), "Clone", true},
		{TNamed("u8"), "Display", false},
		{TVec(TNamed("u8")), "Debug", true},
		{TArray(TNamed("u8"), 2), "Clone", true},
		{TVec(TNamed("u8")), "Display", false},
		{THashMap(TNamed("i32"), TNamed("i32")), "Clone", false},
	}
	for _, c := range cases {
		if got := b.Implements(c.t, c.trait); got != c.want {
			t.Fatalf("Implements(%s, %s): expected %v", ast.TypeString(c.t), c.trait, c.want)
		}
	}
}
