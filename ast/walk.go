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

// WalkType calls f for t and every type nested within t, in pre-order.
func WalkType(t Type, f func(Type)) {
	if t == nil {
		return
	}
	f(t)
	switch t := t.(type) {
	case *Generic:
		for _, arg := range t.Args {
			WalkType(arg, f)
		}
	case *Array:
		WalkType(t.Elem, f)
	case *Slice:
		WalkType(t.Elem, f)
	case *Vec:
		WalkType(t.Elem, f)
	case *HashMap:
		WalkType(t.Key, f)
		WalkType(t.Value, f)
	case *Reference:
		WalkType(t.Inner, f)
	}
}

// WalkExpr calls f for e and every expression nested within e, in pre-order.
func WalkExpr(e Expr, f func(Expr)) {
	if e == nil {
		return
	}
	f(e)
	if call, ok := e.(*Call); ok {
		for _, arg := range call.Args {
			WalkExpr(arg, f)
		}
	}
}

// WalkBlock calls f for every expression within the statements of b.
func WalkBlock(b *Block, f func(Expr)) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		switch s := s.(type) {
		case *Let:
			WalkExpr(s.Value, f)
		case *ExprStmt:
			WalkExpr(s.Expr, f)
		case *Return:
			WalkExpr(s.Value, f)
		}
	}
}

// WalkPattern calls f for p and every sub-pattern of p, in pre-order.
func WalkPattern(p Pattern, f func(Pattern)) {
	if p == nil {
		return
	}
	f(p)
	switch p := p.(type) {
	case *EnumPattern:
		WalkPattern(p.Data, f)
	case *StructPattern:
		for _, field := range p.Fields {
			WalkPattern(field.Pattern, f)
		}
	case *TuplePattern:
		for _, elem := range p.Elems {
			WalkPattern(elem, f)
		}
	case *RangePattern:
		WalkPattern(p.Start, f)
		WalkPattern(p.End, f)
	case *OrPattern:
		for _, alt := range p.Alts {
			WalkPattern(alt, f)
		}
	case *BindingPattern:
		WalkPattern(p.Pattern, f)
	}
}
