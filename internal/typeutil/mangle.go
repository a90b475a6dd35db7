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
	"strconv"
	"strings"

	"github.com/wdamron/mono/ast"
)

// MangleName returns the symbol name of base instantiated with args. The name is a pure function of
// its inputs: structurally-equal arguments always produce the same name. Without arguments, the base
// name is returned unchanged.
func MangleName(base string, args []ast.Type) string {
	if len(args) == 0 {
		return base
	}
	var sb strings.Builder
	sb.WriteString(base)
	for _, arg := range args {
		sb.WriteByte('_')
		mangleType(&sb, arg)
	}
	return sb.String()
}

// MangleType returns the mangled form of t, as it appears within a mangled name.
func MangleType(t ast.Type) string {
	var sb strings.Builder
	mangleType(&sb, t)
	return sb.String()
}

func mangleType(sb *strings.Builder, t ast.Type) {
	switch t := t.(type) {
	case *ast.Named:
		sb.WriteString(t.Name)

	case *ast.Generic:
		sb.WriteString(t.Name)
		for _, arg := range t.Args {
			sb.WriteByte('_')
			mangleType(sb, arg)
		}

	case *ast.Array:
		sb.WriteString("Array_")
		mangleType(sb, t.Elem)
		sb.WriteByte('_')
		if t.Sized() {
			sb.WriteString(strconv.Itoa(*t.Size))
		} else {
			sb.WriteString("dyn")
		}

	case *ast.Slice:
		sb.WriteString("Slice_")
		mangleType(sb, t.Elem)

	case *ast.Vec:
		sb.WriteString("Vec_")
		mangleType(sb, t.Elem)

	case *ast.HashMap:
		sb.WriteString("HashMap_")
		mangleType(sb, t.Key)
		sb.WriteByte('_')
		mangleType(sb, t.Value)

	case *ast.Reference:
		if t.Mutable {
			sb.WriteString("Mut")
		}
		sb.WriteString("Ref_")
		mangleType(sb, t.Inner)
	}
}
