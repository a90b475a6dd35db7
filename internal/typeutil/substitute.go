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

package typeutil

import (
	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/types"
)

// Substitute rewrites every Named occurrence of a type-parameter in t with its mapped type.
// Unmapped names are left untouched, and the name of a Generic application is never substituted.
// Sub-trees without substitutions are shared with t.
func Substitute(t ast.Type, subs types.TypeMap) ast.Type {
	if t == nil || subs.Len() == 0 {
		return t
	}
	switch t := t.(type) {
	case *ast.Named:
		if s, ok := subs.Get(t.Name); ok {
			return s
		}
		return t

	case *ast.Generic:
		args, changed := substituteList(t.Args, subs)
		if !changed {
			return t
		}
		return &ast.Generic{Name: t.Name, Args: args}

	case *ast.Array:
		elem := Substitute(t.Elem, subs)
		if elem == t.Elem {
			return t
		}
		return &ast.Array{Elem: elem, Size: t.Size}

	case *ast.Slice:
		elem := Substitute(t.Elem, subs)
		if elem == t.Elem {
			return t
		}
		return &ast.Slice{Elem: elem}

	case *ast.Vec:
		elem := Substitute(t.Elem, subs)
		if elem == t.Elem {
			return t
		}
		return &ast.Vec{Elem: elem}

	case *ast.HashMap:
		key, value := Substitute(t.Key, subs), Substitute(t.Value, subs)
		if key == t.Key && value == t.Value {
			return t
		}
		return &ast.HashMap{Key: key, Value: value}

	case *ast.Reference:
		inner := Substitute(t.Inner, subs)
		if inner == t.Inner {
			return t
		}
		return &ast.Reference{Mutable: t.Mutable, Inner: inner}
	}
	return t
}

func substituteList(ts []ast.Type, subs types.TypeMap) ([]ast.Type, bool) {
	var out []ast.Type
	for i, t := range ts {
		s := Substitute(t, subs)
		if s != t && out == nil {
			out = make([]ast.Type, len(ts))
			copy(out, ts[:i])
		}
		if out != nil {
			out[i] = s
		}
	}
	if out == nil {
		return ts, false
	}
	return out, true
}

// SubstituteTypes applies Substitute to each type in ts, returning a new slice.
func SubstituteTypes(ts []ast.Type, subs types.TypeMap) []ast.Type {
	if ts == nil {
		return nil
	}
	out := make([]ast.Type, len(ts))
	for i, t := range ts {
		out[i] = Substitute(t, subs)
	}
	return out
}

// SubstituteFields applies Substitute to the type of each field, returning new fields.
func SubstituteFields(fields []ast.StructField, subs types.TypeMap) []ast.StructField {
	if fields == nil {
		return nil
	}
	out := make([]ast.StructField, len(fields))
	for i, f := range fields {
		out[i] = ast.StructField{Name: f.Name, Type: Substitute(f.Type, subs), Public: f.Public}
	}
	return out
}

// SubstituteVariants applies Substitute to the data of each variant, returning new variants.
func SubstituteVariants(variants []ast.EnumVariant, subs types.TypeMap) []ast.EnumVariant {
	out := make([]ast.EnumVariant, len(variants))
	for i, v := range variants {
		out[i] = ast.EnumVariant{Name: v.Name}
		if v.Data != nil {
			out[i].Data = &ast.EnumVariantData{
				Types:  SubstituteTypes(v.Data.Types, subs),
				Fields: SubstituteFields(v.Data.Fields, subs),
			}
		}
	}
	return out
}

// SubstituteFunction returns a copy of fn with substitutions applied to its parameter types, its
// return type, and the types mentioned in its body. The copy declares no type-parameters.
func SubstituteFunction(fn *ast.Function, subs types.TypeMap) *ast.Function {
	out := ast.CopyFunction(fn)
	out.Generics = nil
	for i := range out.Params {
		out.Params[i].Type = Substitute(out.Params[i].Type, subs)
	}
	out.ReturnType = Substitute(out.ReturnType, subs)
	if out.Body == nil {
		return out
	}
	for _, s := range out.Body.Stmts {
		if let, ok := s.(*ast.Let); ok {
			let.Type = Substitute(let.Type, subs)
		}
	}
	ast.WalkBlock(out.Body, func(e ast.Expr) {
		if call, ok := e.(*ast.Call); ok {
			call.TypeArgs = SubstituteTypes(call.TypeArgs, subs)
		}
	})
	return out
}
