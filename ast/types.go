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

package ast

// Type is the base for all surface types. Types appear both in declarations and in resolved
// definitions; type-parameters are referenced as Named types.
type Type interface {
	// Name of the syntax-type of the type.
	TypeName() string
}

var (
	_ Type = (*Named)(nil)
	_ Type = (*Generic)(nil)
	_ Type = (*Array)(nil)
	_ Type = (*Slice)(nil)
	_ Type = (*Vec)(nil)
	_ Type = (*HashMap)(nil)
	_ Type = (*Reference)(nil)
)

// Named type or type-parameter: `i32`, `String`, `T`
type Named struct {
	Name string
}

// "Named"
func (t *Named) TypeName() string { return "Named" }

// Generic type application: `Option<i32>`
type Generic struct {
	Name string
	Args []Type
}

// "Generic"
func (t *Generic) TypeName() string { return "Generic" }

// Array: `[T; 4]`, or `[T]` when Size is nil.
type Array struct {
	Elem Type
	Size *int
}

// "Array"
func (t *Array) TypeName() string { return "Array" }

// Sized reports whether the array has a fixed length.
func (t *Array) Sized() bool { return t.Size != nil }

// Slice: `&[T]`
type Slice struct {
	Elem Type
}

// "Slice"
func (t *Slice) TypeName() string { return "Slice" }

// Growable vector: `Vec<T>`
type Vec struct {
	Elem Type
}

// "Vec"
func (t *Vec) TypeName() string { return "Vec" }

// Hash map: `HashMap<K, V>`
type HashMap struct {
	Key   Type
	Value Type
}

// "HashMap"
func (t *HashMap) TypeName() string { return "HashMap" }

// Reference: `&T`, `&mut T`
type Reference struct {
	Mutable bool
	Inner   Type
}

// "Reference"
func (t *Reference) TypeName() string { return "Reference" }
