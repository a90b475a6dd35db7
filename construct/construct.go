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

package construct

import (
	"github.com/wdamron/mono/ast"
)

// Types

// Named type or type-parameter: `i32`, `T`
func TNamed(name string) *ast.Named {
	return &ast.Named{Name: name}
}

// Generic type application: `Option<i32>`
func TGeneric(name string, args ...ast.Type) *ast.Generic {
	return &ast.Generic{Name: name, Args: args}
}

// Fixed-size array: `[T; n]`
func TArray(elem ast.Type, n int) *ast.Array {
	return &ast.Array{Elem: elem, Size: &n}
}

// Unsized array: `[T]`
func TDynArray(elem ast.Type) *ast.Array {
	return &ast.Array{Elem: elem}
}

// Slice: `&[T]`
func TSlice(elem ast.Type) *ast.Slice {
	return &ast.Slice{Elem: elem}
}

// Vector: `Vec<T>`
func TVec(elem ast.Type) *ast.Vec {
	return &ast.Vec{Elem: elem}
}

// Hash map: `HashMap<K, V>`
func THashMap(key, value ast.Type) *ast.HashMap {
	return &ast.HashMap{Key: key, Value: value}
}

// Shared reference: `&T`
func TRef(inner ast.Type) *ast.Reference {
	return &ast.Reference{Inner: inner}
}

// Mutable reference: `&mut T`
func TMutRef(inner ast.Type) *ast.Reference {
	return &ast.Reference{Mutable: true, Inner: inner}
}

// Declarations:

// Struct field: `name: T`
func Field(name string, t ast.Type) ast.StructField {
	return ast.StructField{Name: name, Type: t}
}

// Enum variant with tuple-like data: `Some(T)`, or a unit variant when no types are given.
func Variant(name string, data ...ast.Type) ast.EnumVariant {
	if len(data) == 0 {
		return ast.EnumVariant{Name: name}
	}
	return ast.EnumVariant{Name: name, Data: &ast.EnumVariantData{Types: data}}
}

// Enum variant with struct-like data: `Move { x: i32, y: i32 }`
func StructVariant(name string, fields ...ast.StructField) ast.EnumVariant {
	return ast.EnumVariant{Name: name, Data: &ast.EnumVariantData{Fields: fields}}
}

// Function parameter: `name: T`
func Param(name string, t ast.Type) ast.Parameter {
	return ast.Parameter{Name: name, Type: t}
}

// Function declaration with an empty body.
func Func(name string, generics []string, params []ast.Parameter, ret ast.Type) *ast.Function {
	return &ast.Function{Name: name, Generics: generics, Params: params, ReturnType: ret, Body: &ast.Block{}}
}

// Expressions:

// Integer literal
func Int(v int64) *ast.IntLit { return &ast.IntLit{Value: v} }

// Floating-point literal
func Float(v float64) *ast.FloatLit { return &ast.FloatLit{Value: v} }

// Boolean literal
func Bool(v bool) *ast.BoolLit { return &ast.BoolLit{Value: v} }

// String literal
func Str(v string) *ast.StringLit { return &ast.StringLit{Value: v} }

// Character literal
func Char(v rune) *ast.CharLit { return &ast.CharLit{Value: v} }

// Identifier
func Ident(name string) *ast.Ident { return &ast.Ident{Name: name} }

// Application: `f::<T>(x)`
func Call(f string, typeArgs []ast.Type, args ...ast.Expr) *ast.Call {
	return &ast.Call{Func: f, TypeArgs: typeArgs, Args: args}
}

// Patterns:

// Wildcard: `_`
func PWild() *ast.WildcardPattern { return &ast.WildcardPattern{} }

// Identifier: `x`
func PIdent(name string) *ast.IdentPattern { return &ast.IdentPattern{Name: name} }

// Literal: `42`
func PLit(e ast.Expr) *ast.LiteralPattern { return &ast.LiteralPattern{Value: e} }

// Enum variant: `Some(p)`, or `None` when data is nil.
func PEnum(variant string, data ast.Pattern) *ast.EnumPattern {
	return &ast.EnumPattern{Variant: variant, Data: data}
}

// Field of a struct pattern: `name: p`
func PField(name string, p ast.Pattern) ast.FieldPattern {
	return ast.FieldPattern{Name: name, Pattern: p}
}

// Struct: `Name { a, b: p }`
func PStruct(name string, fields ...ast.FieldPattern) *ast.StructPattern {
	return &ast.StructPattern{Name: name, Fields: fields}
}

// Struct with rest: `Name { a, .. }`
func PStructRest(name string, fields ...ast.FieldPattern) *ast.StructPattern {
	return &ast.StructPattern{Name: name, Fields: fields, Rest: true}
}

// Tuple: `(a, b)`
func PTuple(elems ...ast.Pattern) *ast.TuplePattern { return &ast.TuplePattern{Elems: elems} }

// Range: `start..end` or `start..=end`
func PRange(start, end ast.Expr, inclusive bool) *ast.RangePattern {
	return &ast.RangePattern{Start: PLit(start), End: PLit(end), Inclusive: inclusive}
}

// Or: `a | b`
func POr(alts ...ast.Pattern) *ast.OrPattern { return &ast.OrPattern{Alts: alts} }

// Binding: `name @ p`
func PBind(name string, p ast.Pattern) *ast.BindingPattern {
	return &ast.BindingPattern{Name: name, Pattern: p}
}
