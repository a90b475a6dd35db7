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

// CopyType returns a deep copy of t.
func CopyType(t Type) Type {
	switch t := t.(type) {
	case *Named:
		return &Named{t.Name}
	case *Generic:
		return &Generic{t.Name, CopyTypes(t.Args)}
	case *Array:
		a := &Array{Elem: CopyType(t.Elem)}
		if t.Size != nil {
			n := *t.Size
			a.Size = &n
		}
		return a
	case *Slice:
		return &Slice{CopyType(t.Elem)}
	case *Vec:
		return &Vec{CopyType(t.Elem)}
	case *HashMap:
		return &HashMap{CopyType(t.Key), CopyType(t.Value)}
	case *Reference:
		return &Reference{t.Mutable, CopyType(t.Inner)}
	}
	return t
}

// CopyTypes returns a deep copy of ts.
func CopyTypes(ts []Type) []Type {
	if ts == nil {
		return nil
	}
	out := make([]Type, len(ts))
	for i, t := range ts {
		out[i] = CopyType(t)
	}
	return out
}

// CopyExpr returns a deep copy of e.
func CopyExpr(e Expr) Expr {
	switch e := e.(type) {
	case *IntLit:
		return &IntLit{e.Value}
	case *FloatLit:
		return &FloatLit{e.Value}
	case *BoolLit:
		return &BoolLit{e.Value}
	case *StringLit:
		return &StringLit{e.Value}
	case *CharLit:
		return &CharLit{e.Value}
	case *Ident:
		return &Ident{e.Name}
	case *Call:
		args := make([]Expr, len(e.Args))
		for i, arg := range e.Args {
			args[i] = CopyExpr(arg)
		}
		return &Call{e.Func, CopyTypes(e.TypeArgs), args}
	}
	return e
}

// CopyBlock returns a deep copy of b.
func CopyBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	stmts := make([]Stmt, len(b.Stmts))
	for i, s := range b.Stmts {
		switch s := s.(type) {
		case *Let:
			stmts[i] = &Let{s.Name, CopyType(s.Type), CopyExpr(s.Value)}
		case *ExprStmt:
			stmts[i] = &ExprStmt{CopyExpr(s.Expr)}
		case *Return:
			stmts[i] = &Return{CopyExpr(s.Value)}
		default:
			stmts[i] = s
		}
	}
	return &Block{stmts}
}

// CopyFunction returns a deep copy of fn, including its body.
func CopyFunction(fn *Function) *Function {
	if fn == nil {
		return nil
	}
	params := make([]Parameter, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = Parameter{p.Name, CopyType(p.Type)}
	}
	var generics []string
	if fn.Generics != nil {
		generics = append([]string(nil), fn.Generics...)
	}
	return &Function{
		Name:       fn.Name,
		Generics:   generics,
		Params:     params,
		ReturnType: CopyType(fn.ReturnType),
		Body:       CopyBlock(fn.Body),
	}
}
