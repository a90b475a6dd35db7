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

import (
	"strconv"
	"strings"
)

// TypeString returns the surface syntax of t.
func TypeString(t Type) string {
	var sb strings.Builder
	typeString(&sb, t)
	return sb.String()
}

func typeString(sb *strings.Builder, t Type) {
	switch t := t.(type) {
	case nil:
		sb.WriteString("()")

	case *Named:
		sb.WriteString(t.Name)

	case *Generic:
		sb.WriteString(t.Name)
		sb.WriteByte('<')
		typeList(sb, t.Args)
		sb.WriteByte('>')

	case *Array:
		sb.WriteByte('[')
		typeString(sb, t.Elem)
		if t.Sized() {
			sb.WriteString("; ")
			sb.WriteString(strconv.Itoa(*t.Size))
		}
		sb.WriteByte(']')

	case *Slice:
		sb.WriteString("&[")
		typeString(sb, t.Elem)
		sb.WriteByte(']')

	case *Vec:
		sb.WriteString("Vec<")
		typeString(sb, t.Elem)
		sb.WriteByte('>')

	case *HashMap:
		sb.WriteString("HashMap<")
		typeString(sb, t.Key)
		sb.WriteString(", ")
		typeString(sb, t.Value)
		sb.WriteByte('>')

	case *Reference:
		sb.WriteByte('&')
		if t.Mutable {
			sb.WriteString("mut ")
		}
		typeString(sb, t.Inner)
	}
}

func typeList(sb *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		typeString(sb, t)
	}
}

// ExprString returns the surface syntax of e.
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, e)
	return sb.String()
}

func exprString(sb *strings.Builder, e Expr) {
	switch e := e.(type) {
	case *IntLit:
		sb.WriteString(strconv.FormatInt(e.Value, 10))
	case *FloatLit:
		sb.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))
	case *BoolLit:
		sb.WriteString(strconv.FormatBool(e.Value))
	case *StringLit:
		sb.WriteString(strconv.Quote(e.Value))
	case *CharLit:
		sb.WriteString(strconv.QuoteRune(e.Value))
	case *Ident:
		sb.WriteString(e.Name)
	case *Call:
		sb.WriteString(e.Func)
		if len(e.TypeArgs) > 0 {
			sb.WriteString("::<")
			typeList(sb, e.TypeArgs)
			sb.WriteByte('>')
		}
		sb.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, arg)
		}
		sb.WriteByte(')')
	}
}

// PatternString returns the surface syntax of p.
func PatternString(p Pattern) string {
	var sb strings.Builder
	patternString(&sb, p)
	return sb.String()
}

func patternString(sb *strings.Builder, p Pattern) {
	switch p := p.(type) {
	case *WildcardPattern:
		sb.WriteByte('_')

	case *IdentPattern:
		sb.WriteString(p.Name)

	case *LiteralPattern:
		exprString(sb, p.Value)

	case *EnumPattern:
		sb.WriteString(p.Variant)
		if p.Data != nil {
			if tp, ok := p.Data.(*TuplePattern); ok {
				patternString(sb, tp)
			} else {
				sb.WriteByte('(')
				patternString(sb, p.Data)
				sb.WriteByte(')')
			}
		}

	case *StructPattern:
		sb.WriteString(p.Name)
		sb.WriteString(" { ")
		for i, f := range p.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			if ip, ok := f.Pattern.(*IdentPattern); !ok || ip.Name != f.Name {
				sb.WriteString(": ")
				patternString(sb, f.Pattern)
			}
		}
		if p.Rest {
			if len(p.Fields) > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString("..")
		}
		sb.WriteString(" }")

	case *TuplePattern:
		sb.WriteByte('(')
		for i, elem := range p.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, elem)
		}
		sb.WriteByte(')')

	case *RangePattern:
		patternString(sb, p.Start)
		if p.Inclusive {
			sb.WriteString("..=")
		} else {
			sb.WriteString("..")
		}
		patternString(sb, p.End)

	case *OrPattern:
		for i, alt := range p.Alts {
			if i > 0 {
				sb.WriteString(" | ")
			}
			patternString(sb, alt)
		}

	case *BindingPattern:
		sb.WriteString(p.Name)
		sb.WriteString(" @ ")
		patternString(sb, p.Pattern)
	}
}
