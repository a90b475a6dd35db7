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

import (
	"strconv"
	"strings"
	"sync"

	"github.com/wdamron/mono/ast"
)

var printerPool = sync.Pool{
	New: func() interface{} { return &defPrinter{} },
}

type defPrinter struct {
	sb strings.Builder
}

func newDefPrinter() *defPrinter { return printerPool.Get().(*defPrinter) }

func (p *defPrinter) Release() {
	p.sb.Reset()
	printerPool.Put(p)
}

// DefinitionString returns a string representation of a definition, in surface syntax.
// Struct layouts are printed as a trailing comment.
func DefinitionString(d Definition) string {
	p := newDefPrinter()
	defer p.Release()
	switch d := d.(type) {
	case *StructDef:
		p.structDef(d)
	case *EnumDef:
		p.enumDef(d)
	case *FuncDef:
		p.funcDef(d)
	}
	return p.sb.String()
}

func (p *defPrinter) generics(params []string) {
	if len(params) == 0 {
		return
	}
	p.sb.WriteByte('<')
	p.sb.WriteString(strings.Join(params, ", "))
	p.sb.WriteByte('>')
}

func (p *defPrinter) fields(fields []ast.StructField, tuple bool) {
	for i, f := range fields {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		if f.Public {
			p.sb.WriteString("pub ")
		}
		if !tuple {
			p.sb.WriteString(f.Name)
			p.sb.WriteString(": ")
		}
		p.sb.WriteString(ast.TypeString(f.Type))
	}
}

func (p *defPrinter) structDef(d *StructDef) {
	p.sb.WriteString("struct ")
	p.sb.WriteString(d.Name)
	p.generics(d.Generics)
	if d.IsTuple {
		p.sb.WriteByte('(')
		p.fields(d.Fields, true)
		p.sb.WriteByte(')')
	} else {
		p.sb.WriteString(" { ")
		p.fields(d.Fields, false)
		p.sb.WriteString(" }")
	}
	if d.Layout.Size > 0 || len(d.Layout.FieldOffsets) > 0 {
		p.sb.WriteString(" // size=")
		p.sb.WriteString(strconv.Itoa(d.Layout.Size))
		p.sb.WriteString(" align=")
		p.sb.WriteString(strconv.Itoa(d.Layout.Align))
		p.sb.WriteString(" offsets=[")
		for i, off := range d.Layout.FieldOffsets {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			p.sb.WriteString(strconv.Itoa(off))
		}
		p.sb.WriteByte(']')
	}
}

func (p *defPrinter) enumDef(d *EnumDef) {
	p.sb.WriteString("enum ")
	p.sb.WriteString(d.Name)
	p.generics(d.Generics)
	p.sb.WriteString(" { ")
	for i, v := range d.Variants {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(v.Name)
		switch {
		case v.Data == nil:
		case len(v.Data.Fields) > 0:
			p.sb.WriteString(" { ")
			p.fields(v.Data.Fields, false)
			p.sb.WriteString(" }")
		default:
			p.sb.WriteByte('(')
			for j, t := range v.Data.Types {
				if j > 0 {
					p.sb.WriteString(", ")
				}
				p.sb.WriteString(ast.TypeString(t))
			}
			p.sb.WriteByte(')')
		}
	}
	p.sb.WriteString(" }")
	if d.DiscriminantType != nil {
		p.sb.WriteString(" // tag=")
		p.sb.WriteString(d.DiscriminantType.Name)
	}
}

func (p *defPrinter) funcDef(d *FuncDef) {
	fn := d.Func
	p.sb.WriteString("fn ")
	if d.Owner != "" {
		p.sb.WriteString(d.Owner)
		p.sb.WriteString("::")
	}
	p.sb.WriteString(fn.Name)
	p.generics(fn.Generics)
	p.sb.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(param.Name)
		p.sb.WriteString(": ")
		p.sb.WriteString(ast.TypeString(param.Type))
	}
	p.sb.WriteByte(')')
	if fn.ReturnType != nil {
		p.sb.WriteString(" -> ")
		p.sb.WriteString(ast.TypeString(fn.ReturnType))
	}
	if fn.Body == nil {
		p.sb.WriteByte(';')
		return
	}
	p.sb.WriteString(" {")
	for _, s := range fn.Body.Stmts {
		p.sb.WriteString(" ")
		switch s := s.(type) {
		case *ast.Let:
			p.sb.WriteString("let ")
			p.sb.WriteString(s.Name)
			if s.Type != nil {
				p.sb.WriteString(": ")
				p.sb.WriteString(ast.TypeString(s.Type))
			}
			p.sb.WriteString(" = ")
			p.sb.WriteString(ast.ExprString(s.Value))
		case *ast.ExprStmt:
			p.sb.WriteString(ast.ExprString(s.Expr))
		case *ast.Return:
			p.sb.WriteString("return")
			if s.Value != nil {
				p.sb.WriteByte(' ')
				p.sb.WriteString(ast.ExprString(s.Value))
			}
		}
		p.sb.WriteByte(';')
	}
	p.sb.WriteString(" }")
}
