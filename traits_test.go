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
	. "github.com/wdamron/mono/construct"
	"github.com/wdamron/mono/types"
)

func TestTraitImpls(t *testing.T) {
	ts := NewTraits(nil)
	if _, err := ts.Declare("Clone"); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.AddImpl("Clone", []string{"T"}, TVec(TNamed("T"))); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.AddImpl("Clone", nil, TNamed("Point")); err != nil {
		t.Fatal(err)
	}

	if !ts.Implements(TVec(TNamed("i32")), "Clone") {
		t.Fatalf("expected Vec<i32> to implement Clone")
	}
	if !ts.Implements(TNamed("Point"), "Clone") {
		t.Fatalf("expected Point to implement Clone")
	}
	if ts.Implements(TNamed("i32"), "Clone") {
		t.Fatalf("expected i32 not to implement Clone without a fallback")
	}
	if ts.Implements(TNamed("Point"), "Debug") {
		t.Fatalf("expected undeclared trait not to be implemented")
	}

	if _, err := ts.Declare("Clone"); !errors.Is(err, types.ErrDuplicateDefinition) {
		t.Fatalf("expected duplicate trait, got %v", err)
	}
	if _, err := ts.AddImpl("Hash", nil, TNamed("Point")); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected unknown trait, got %v", err)
	}
	if _, err := ts.AddImpl("Clone", nil, TNamed("Point")); !errors.Is(err, types.ErrDuplicateDefinition) {
		t.Fatalf("expected duplicate impl, got %v", err)
	}
}

func TestSubtraitImplSatisfiesSupertrait(t *testing.T) {
	ts := NewTraits(BuiltinTraits())
	eq, err := ts.Declare("PartialEq")
	if err != nil {
		t.Fatal(err)
	}
	full, err := ts.Declare("Eq", "PartialEq")
	if err != nil {
		t.Fatal(err)
	}
	if !full.HasSuperTrait(eq) || eq.HasSuperTrait(full) {
		t.Fatalf("unexpected trait hierarchy")
	}
	if _, err = ts.AddImpl("Eq", nil, TNamed("Id")); err != nil {
		t.Fatal(err)
	}
	if !ts.Implements(TNamed("Id"), "PartialEq") {
		t.Fatalf("expected an Eq impl to satisfy PartialEq")
	}
	// The fallback still covers builtin types:
	if !ts.Implements(TNamed("f64"), "Debug") {
		t.Fatalf("expected fallback to builtin traits")
	}
	if _, err = ts.Declare("Ord", "Missing"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected unknown supertrait, got %v", err)
	}
}

func TestResolverWithTraitRegistry(t *testing.T) {
	ts := NewTraits(BuiltinTraits())
	if _, err := ts.Declare("Hash"); err != nil {
		t.Fatal(err)
	}
	if _, err := ts.AddImpl("Hash", nil, TNamed("String")); err != nil {
		t.Fatal(err)
	}

	r := NewGenericResolver()
	r.SetTraitRegistry(ts)
	err := r.RegisterStruct(&types.StructDef{
		Name:     "Set",
		Generics: []string{"K"},
		Fields:   []ast.StructField{Field("items", THashMap(TNamed("K"), TNamed("bool")))},
	})
	if err != nil {
		t.Fatal(err)
	}
	r.AddConstraint(TypeKey("Set"), Constraint{TypeParam: "K", Bounds: []string{"Hash", "Clone"}})

	if _, err = r.Instantiate("Set", []ast.Type{TNamed("String")}); err != nil {
		t.Fatal(err)
	}
	if _, err = r.Instantiate("Set", []ast.Type{TNamed("f64")}); !errors.Is(err, types.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
}
