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

// Package syntax parses the surface syntax of types and patterns, as printed by the ast package.
package syntax

import (
	"fmt"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/wdamron/mono/ast"
)

// ParseType parses a type such as "HashMap<String, Vec<T>>", "[u8; 4]", "&[T]" or "&mut T".
func ParseType(src string) (ast.Type, error) {
	p := newParser(src)
	t := p.parseType()
	p.expectEOF()
	if p.err != nil {
		return nil, errors.Wrapf(p.err, "parsing type %q", src)
	}
	return t, nil
}

// ParseTypeList parses a comma-separated list of types.
func ParseTypeList(src string) ([]ast.Type, error) {
	p := newParser(src)
	var ts []ast.Type
	if p.tok != scanner.EOF {
		ts = append(ts, p.parseType())
		for p.got(',') {
			ts = append(ts, p.parseType())
		}
	}
	p.expectEOF()
	if p.err != nil {
		return nil, errors.Wrapf(p.err, "parsing types %q", src)
	}
	return ts, nil
}

// ParsePattern parses a pattern such as "Some(x @ 1..=9) | None" or "Point { x: 0, .. }".
// Capitalized names are enum variants or struct names; other names are bindings.
func ParsePattern(src string) (ast.Pattern, error) {
	p := newParser(src)
	pat := p.parsePattern()
	p.expectEOF()
	if p.err != nil {
		return nil, errors.Wrapf(p.err, "parsing pattern %q", src)
	}
	return pat, nil
}

type parser struct {
	s   scanner.Scanner
	tok rune
	err error
}

func newParser(src string) *parser {
	p := &parser{}
	p.s.Init(strings.NewReader(src))
	// Floats are assembled by the parser, so that "1..5" scans as a range.
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanStrings | scanner.ScanChars
	p.s.Error = func(s *scanner.Scanner, msg string) { p.errorf("%s", msg) }
	p.next()
	return p
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) errorf(format string, args ...interface{}) {
	if p.err == nil {
		p.err = errors.Errorf("column %d: %s", p.s.Position.Column, fmt.Sprintf(format, args...))
	}
}

func (p *parser) got(tok rune) bool {
	if p.err == nil && p.tok == tok {
		p.next()
		return true
	}
	return false
}

func (p *parser) expect(tok rune) {
	if !p.got(tok) {
		p.errorf("expected %s, found %s", scanner.TokenString(tok), p.found())
	}
}

func (p *parser) expectEOF() {
	if p.err == nil && p.tok != scanner.EOF {
		p.errorf("unexpected %s", p.found())
	}
}

func (p *parser) found() string {
	if p.tok == scanner.EOF {
		return "end of input"
	}
	return strconv.Quote(p.s.TokenText())
}

func (p *parser) ident() string {
	if p.tok != scanner.Ident {
		p.errorf("expected name, found %s", p.found())
		return ""
	}
	name := p.s.TokenText()
	p.next()
	return name
}

func (p *parser) parseType() ast.Type {
	if p.err != nil {
		return nil
	}
	switch p.tok {
	case '&':
		p.next()
		if p.tok == scanner.Ident && p.s.TokenText() == "mut" {
			p.next()
			return &ast.Reference{Mutable: true, Inner: p.parseType()}
		}
		if p.tok == '[' {
			if arr := p.parseArray(); arr != nil && !arr.Sized() {
				return &ast.Slice{Elem: arr.Elem}
			} else if arr != nil {
				return &ast.Reference{Inner: arr}
			}
			return nil
		}
		return &ast.Reference{Inner: p.parseType()}

	case '[':
		if arr := p.parseArray(); arr != nil {
			return arr
		}
		return nil

	case '(':
		p.next()
		p.expect(')')
		return &ast.Named{Name: "()"}
	}

	name := p.ident()
	if !p.got('<') {
		return &ast.Named{Name: name}
	}
	args := []ast.Type{p.parseType()}
	for p.got(',') {
		args = append(args, p.parseType())
	}
	p.expect('>')
	switch {
	case name == "Vec" && len(args) == 1:
		return &ast.Vec{Elem: args[0]}
	case name == "HashMap" && len(args) == 2:
		return &ast.HashMap{Key: args[0], Value: args[1]}
	}
	return &ast.Generic{Name: name, Args: args}
}

func (p *parser) parseArray() *ast.Array {
	p.expect('[')
	arr := &ast.Array{Elem: p.parseType()}
	if p.got(';') {
		if p.tok != scanner.Int {
			p.errorf("expected array length, found %s", p.found())
			return nil
		}
		n, err := strconv.Atoi(p.s.TokenText())
		if err != nil {
			p.errorf("invalid array length %s", p.s.TokenText())
			return nil
		}
		p.next()
		arr.Size = &n
	}
	p.expect(']')
	if p.err != nil {
		return nil
	}
	return arr
}

func (p *parser) parsePattern() ast.Pattern {
	alts := []ast.Pattern{p.parseAlt()}
	for p.got('|') {
		alts = append(alts, p.parseAlt())
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return &ast.OrPattern{Alts: alts}
}

func (p *parser) parseAlt() ast.Pattern {
	start := p.parsePrimary()
	lit, ok := start.(*ast.LiteralPattern)
	if !ok || p.tok != '.' {
		return start
	}
	p.next()
	p.expect('.')
	inclusive := p.got('=')
	end := p.parsePrimary()
	return &ast.RangePattern{Start: lit, End: end, Inclusive: inclusive}
}

func (p *parser) parsePrimary() ast.Pattern {
	if p.err != nil {
		return nil
	}
	switch p.tok {
	case scanner.Int, '-':
		return &ast.LiteralPattern{Value: p.parseNumber()}
	case scanner.String, scanner.RawString:
		s, err := strconv.Unquote(p.s.TokenText())
		if err != nil {
			p.errorf("invalid string %s", p.s.TokenText())
		}
		p.next()
		return &ast.LiteralPattern{Value: &ast.StringLit{Value: s}}
	case scanner.Char:
		s, err := strconv.Unquote(p.s.TokenText())
		if err != nil || len([]rune(s)) != 1 {
			p.errorf("invalid character %s", p.s.TokenText())
			s = "\x00"
		}
		p.next()
		return &ast.LiteralPattern{Value: &ast.CharLit{Value: []rune(s)[0]}}
	case '(':
		p.next()
		elems := p.parsePatternList(')')
		if len(elems) == 1 {
			return elems[0]
		}
		return &ast.TuplePattern{Elems: elems}
	}

	name := p.ident()
	switch {
	case name == "_":
		return &ast.WildcardPattern{}
	case name == "true" || name == "false":
		return &ast.LiteralPattern{Value: &ast.BoolLit{Value: name == "true"}}
	case name == "":
		return nil
	}
	if !isTypeName(name) {
		if p.got('@') {
			return &ast.BindingPattern{Name: name, Pattern: p.parseAlt()}
		}
		return &ast.IdentPattern{Name: name}
	}

	// Enum::Variant names the variant alone.
	if p.got(':') {
		p.expect(':')
		name = p.ident()
	}
	switch {
	case p.got('('):
		elems := p.parsePatternList(')')
		if len(elems) == 1 {
			return &ast.EnumPattern{Variant: name, Data: elems[0]}
		}
		return &ast.EnumPattern{Variant: name, Data: &ast.TuplePattern{Elems: elems}}
	case p.got('{'):
		return p.parseStructFields(name)
	}
	return &ast.EnumPattern{Variant: name}
}

func (p *parser) parsePatternList(close rune) []ast.Pattern {
	var elems []ast.Pattern
	for p.err == nil && p.tok != close {
		elems = append(elems, p.parsePattern())
		if !p.got(',') {
			break
		}
	}
	p.expect(close)
	return elems
}

func (p *parser) parseStructFields(name string) *ast.StructPattern {
	sp := &ast.StructPattern{Name: name}
	for p.err == nil && p.tok != '}' {
		if p.got('.') {
			p.expect('.')
			sp.Rest = true
			break
		}
		field := p.ident()
		if p.got(':') {
			sp.Fields = append(sp.Fields, ast.FieldPattern{Name: field, Pattern: p.parsePattern()})
		} else {
			sp.Fields = append(sp.Fields, ast.FieldPattern{Name: field, Pattern: &ast.IdentPattern{Name: field}})
		}
		if !p.got(',') {
			break
		}
	}
	p.expect('}')
	return sp
}

// parseNumber parses an integer or float literal with an optional sign.
func (p *parser) parseNumber() ast.Expr {
	neg := p.got('-')
	if p.tok != scanner.Int {
		p.errorf("expected number, found %s", p.found())
		return nil
	}
	text := p.s.TokenText()
	p.next()
	if p.tok == '.' && unicode.IsDigit(p.s.Peek()) {
		p.next()
		text += "." + p.s.TokenText()
		p.next()
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			p.errorf("invalid number %s", text)
		}
		if neg {
			f = -f
		}
		return &ast.FloatLit{Value: f}
	}
	n, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		p.errorf("invalid number %s", text)
	}
	if neg {
		n = -n
	}
	return &ast.IntLit{Value: n}
}

func isTypeName(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
