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

// Pattern is the base for all patterns in match arms and destructuring bindings.
type Pattern interface {
	// Name of the syntax-type of the pattern.
	PatternName() string
}

var (
	_ Pattern = (*WildcardPattern)(nil)
	_ Pattern = (*IdentPattern)(nil)
	_ Pattern = (*LiteralPattern)(nil)
	_ Pattern = (*EnumPattern)(nil)
	_ Pattern = (*StructPattern)(nil)
	_ Pattern = (*TuplePattern)(nil)
	_ Pattern = (*RangePattern)(nil)
	_ Pattern = (*OrPattern)(nil)
	_ Pattern = (*BindingPattern)(nil)
)

// Wildcard: `_`
type WildcardPattern struct{}

// "Wildcard"
func (p *WildcardPattern) PatternName() string { return "Wildcard" }

// Identifier: `x`
type IdentPattern struct {
	Name string
}

// "Identifier"
func (p *IdentPattern) PatternName() string { return "Identifier" }

// Literal: `42`, `true`
type LiteralPattern struct {
	Value Expr
}

// "Literal"
func (p *LiteralPattern) PatternName() string { return "Literal" }

// Enum variant: `Some(x)`, `None`. Data is nil when the pattern has no payload.
type EnumPattern struct {
	Variant string
	Data    Pattern
}

// "Enum"
func (p *EnumPattern) PatternName() string { return "Enum" }

// FieldPattern matches a single named field of a struct pattern.
type FieldPattern struct {
	Name    string
	Pattern Pattern
}

// Struct: `Point { x, y: 0, .. }`
type StructPattern struct {
	Name   string
	Fields []FieldPattern
	Rest   bool
}

// "Struct"
func (p *StructPattern) PatternName() string { return "Struct" }

// Tuple: `(a, b)`
type TuplePattern struct {
	Elems []Pattern
}

// "Tuple"
func (p *TuplePattern) PatternName() string { return "Tuple" }

// Range: `1..10`, `'a'..='z'`. Bounds must be literal patterns.
type RangePattern struct {
	Start     Pattern
	End       Pattern
	Inclusive bool
}

// "Range"
func (p *RangePattern) PatternName() string { return "Range" }

// Or: `A | B`
type OrPattern struct {
	Alts []Pattern
}

// "Or"
func (p *OrPattern) PatternName() string { return "Or" }

// Binding: `name @ pattern`
type BindingPattern struct {
	Name    string
	Pattern Pattern
}

// "Binding"
func (p *BindingPattern) PatternName() string { return "Binding" }
