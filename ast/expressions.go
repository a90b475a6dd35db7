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

// Expr is the base for all expressions.
type Expr interface {
	// Name of the syntax-type of the expression.
	ExprName() string
}

var (
	_ Expr = (*IntLit)(nil)
	_ Expr = (*FloatLit)(nil)
	_ Expr = (*BoolLit)(nil)
	_ Expr = (*StringLit)(nil)
	_ Expr = (*CharLit)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*Call)(nil)
)

// Integer literal: `42`
type IntLit struct {
	Value int64
}

// "IntLit"
func (e *IntLit) ExprName() string { return "IntLit" }

// Floating-point literal: `1.5`
type FloatLit struct {
	Value float64
}

// "FloatLit"
func (e *FloatLit) ExprName() string { return "FloatLit" }

// Boolean literal: `true`
type BoolLit struct {
	Value bool
}

// "BoolLit"
func (e *BoolLit) ExprName() string { return "BoolLit" }

// String literal: `"text"`
type StringLit struct {
	Value string
}

// "StringLit"
func (e *StringLit) ExprName() string { return "StringLit" }

// Character literal: `'c'`
type CharLit struct {
	Value rune
}

// "CharLit"
func (e *CharLit) ExprName() string { return "CharLit" }

// Identifier
type Ident struct {
	Name string
}

// "Ident"
func (e *Ident) ExprName() string { return "Ident" }

// Application: `f::<T>(x)`. Func names a function, or a method as `Owner::method`.
type Call struct {
	Func     string
	TypeArgs []Type
	Args     []Expr
}

// "Call"
func (e *Call) ExprName() string { return "Call" }

// IsLiteral reports whether e is a literal expression.
func IsLiteral(e Expr) bool {
	switch e.(type) {
	case *IntLit, *FloatLit, *BoolLit, *StringLit, *CharLit:
		return true
	}
	return false
}
