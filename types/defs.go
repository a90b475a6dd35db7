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

package types

import "github.com/wdamron/mono/ast"

// Definition is a struct, enum, or function definition. A generic definition declares one or more
// type-parameters; a concrete definition declares none.
type Definition interface {
	// DefName returns the name of the definition. Concrete instances are named by their mangled name.
	DefName() string
	// TypeParams returns the ordered type-parameter names of the definition.
	TypeParams() []string
}

var (
	_ Definition = (*StructDef)(nil)
	_ Definition = (*EnumDef)(nil)
	_ Definition = (*FuncDef)(nil)
)

// Layout describes the memory layout of a struct.
type Layout struct {
	Size         int
	Align        int
	FieldOffsets []int
}

// StructDef is a named struct, or a tuple-struct when IsTuple is set.
type StructDef struct {
	Name     string
	Generics []string
	Fields   []ast.StructField
	IsTuple  bool
	Layout   Layout
}

func (d *StructDef) DefName() string      { return d.Name }
func (d *StructDef) TypeParams() []string { return d.Generics }

// Field returns the field with the given name.
func (d *StructDef) Field(name string) (ast.StructField, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ast.StructField{}, false
}

// EnumDef is a tagged union. DiscriminantType is the primitive holding the tag of a value.
type EnumDef struct {
	Name             string
	Generics         []string
	Variants         []ast.EnumVariant
	DiscriminantType *Prim
}

func (d *EnumDef) DefName() string      { return d.Name }
func (d *EnumDef) TypeParams() []string { return d.Generics }

// Variant returns the index and declaration of the named variant.
func (d *EnumDef) Variant(name string) (int, ast.EnumVariant, bool) {
	for i, v := range d.Variants {
		if v.Name == name {
			return i, v, true
		}
	}
	return -1, ast.EnumVariant{}, false
}

// FuncDef is a free function, or a method when Owner is set.
type FuncDef struct {
	Owner string
	Func  *ast.Function
}

func (d *FuncDef) DefName() string      { return d.Func.Name }
func (d *FuncDef) TypeParams() []string { return d.Func.Generics }

// DiscriminantType returns the narrowest unsigned primitive able to tag numVariants variants.
func DiscriminantType(numVariants int) *Prim {
	switch {
	case numVariants <= 1<<8:
		return U8
	case numVariants <= 1<<16:
		return U16
	default:
		return U32
	}
}
