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
	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/types"
)

// ExtractBindings collects the names bound by p without compiling any conditions. Bindings
// within tuple patterns take the element types of t when t is a tuple of matching arity;
// every other binding takes type t. Paths follow CompilePattern.
func ExtractBindings(p ast.Pattern, t types.Ty) []Binding {
	var binds []Binding
	extractBindings(p, t, DirectPath{}, &binds)
	return binds
}

func extractBindings(p ast.Pattern, t types.Ty, path BindingPath, binds *[]Binding) {
	switch p := p.(type) {
	case *ast.IdentPattern:
		*binds = append(*binds, Binding{Name: p.Name, Type: t, Path: path})

	case *ast.BindingPattern:
		*binds = append(*binds, Binding{Name: p.Name, Type: t, Path: path})
		extractBindings(p.Pattern, t, path, binds)

	case *ast.EnumPattern:
		// Tuples of several elements are taken to destructure a multi-data variant.
		if tp, ok := p.Data.(*ast.TuplePattern); ok && len(tp.Elems) > 1 {
			for i, elem := range tp.Elems {
				extractBindings(elem, t, nest(path, &TupleElementPath{Index: i}), binds)
			}
		} else if p.Data != nil {
			extractBindings(p.Data, t, nest(path, EnumDataPath{}), binds)
		}

	case *ast.StructPattern:
		for _, f := range p.Fields {
			extractBindings(f.Pattern, t, nest(path, &FieldPath{Name: f.Name}), binds)
		}

	case *ast.TuplePattern:
		tt, threaded := t.(*types.Tuple)
		threaded = threaded && len(tt.Elems) == len(p.Elems)
		for i, elem := range p.Elems {
			et := t
			if threaded {
				et = tt.Elems[i]
			}
			extractBindings(elem, et, nest(path, &TupleElementPath{Index: i}), binds)
		}

	case *ast.OrPattern:
		for _, alt := range p.Alts {
			extractBindings(alt, t, path, binds)
		}
	}
}

// IsIrrefutable reports whether p matches every value of its type.
func IsIrrefutable(p ast.Pattern) bool {
	switch p := p.(type) {
	case *ast.WildcardPattern, *ast.IdentPattern:
		return true
	case *ast.BindingPattern:
		return IsIrrefutable(p.Pattern)
	case *ast.TuplePattern:
		for _, elem := range p.Elems {
			if !IsIrrefutable(elem) {
				return false
			}
		}
		return true
	case *ast.StructPattern:
		if p.Rest {
			return true
		}
		for _, f := range p.Fields {
			if !IsIrrefutable(f.Pattern) {
				return false
			}
		}
		return true
	}
	return false
}
