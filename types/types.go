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

import "strings"

// Ty is a resolved type, as seen by the pattern matcher. Surface types (ast.Type) are resolved
// into a Ty through a type catalog.
type Ty interface {
	// Name of the type-variant of the type.
	TyName() string
}

var (
	_ Ty = (*Prim)(nil)
	_ Ty = (*Enum)(nil)
	_ Ty = (*Struct)(nil)
	_ Ty = (*Tuple)(nil)
	_ Ty = (*Opaque)(nil)
)

// PrimKind classifies primitive types.
type PrimKind int

const (
	IntKind PrimKind = iota
	FloatKind
	BoolKind
	StringKind
	CharKind
	UnitKind
)

func (k PrimKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case StringKind:
		return "string"
	case CharKind:
		return "char"
	case UnitKind:
		return "unit"
	}
	return "invalid"
}

// Primitive type: `i32`, `bool`, `String`
type Prim struct {
	Name string
	Kind PrimKind
}

// "Prim"
func (t *Prim) TyName() string { return "Prim" }

// Enum type, referenced by name.
type Enum struct {
	Name string
}

// "Enum"
func (t *Enum) TyName() string { return "Enum" }

// Struct type, referenced by name.
type Struct struct {
	Name string
}

// "Struct"
func (t *Struct) TyName() string { return "Struct" }

// Tuple type: `(i32, bool)`
type Tuple struct {
	Elems []Ty
}

// "Tuple"
func (t *Tuple) TyName() string { return "Tuple" }

// Opaque is any type the pattern matcher does not inspect, such as collections and references.
type Opaque struct {
	Name string
}

// "Opaque"
func (t *Opaque) TyName() string { return "Opaque" }

var (
	Bool   = &Prim{"bool", BoolKind}
	Int    = &Prim{"int", IntKind}
	I8     = &Prim{"i8", IntKind}
	I16    = &Prim{"i16", IntKind}
	I32    = &Prim{"i32", IntKind}
	I64    = &Prim{"i64", IntKind}
	Isize  = &Prim{"isize", IntKind}
	U8     = &Prim{"u8", IntKind}
	U16    = &Prim{"u16", IntKind}
	U32    = &Prim{"u32", IntKind}
	U64    = &Prim{"u64", IntKind}
	Usize  = &Prim{"usize", IntKind}
	Float  = &Prim{"float", FloatKind}
	F32    = &Prim{"f32", FloatKind}
	F64    = &Prim{"f64", FloatKind}
	String = &Prim{"String", StringKind}
	Str    = &Prim{"str", StringKind}
	Char   = &Prim{"char", CharKind}
	Unit   = &Prim{"()", UnitKind}
)

var prims = func() map[string]*Prim {
	m := make(map[string]*Prim)
	for _, p := range []*Prim{Bool, Int, I8, I16, I32, I64, Isize, U8, U16, U32, U64, Usize, Float, F32, F64, String, Str, Char, Unit} {
		m[p.Name] = p
	}
	return m
}()

// LookupPrim returns the primitive type with the given name.
func LookupPrim(name string) (*Prim, bool) {
	p, ok := prims[name]
	return p, ok
}

// TyEqual reports whether a and b are structurally equal.
func TyEqual(a, b Ty) bool {
	switch a := a.(type) {
	case *Prim:
		b, ok := b.(*Prim)
		return ok && a.Name == b.Name
	case *Enum:
		b, ok := b.(*Enum)
		return ok && a.Name == b.Name
	case *Struct:
		b, ok := b.(*Struct)
		return ok && a.Name == b.Name
	case *Opaque:
		b, ok := b.(*Opaque)
		return ok && a.Name == b.Name
	case *Tuple:
		b, ok := b.(*Tuple)
		if !ok || len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !TyEqual(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// TyString returns a string representation of a Ty.
func TyString(t Ty) string {
	switch t := t.(type) {
	case *Prim:
		return t.Name
	case *Enum:
		return t.Name
	case *Struct:
		return t.Name
	case *Opaque:
		return t.Name
	case *Tuple:
		var sb strings.Builder
		sb.WriteByte('(')
		for i, elem := range t.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(TyString(elem))
		}
		sb.WriteByte(')')
		return sb.String()
	}
	return "?"
}
