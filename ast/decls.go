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

// StructField is a named, typed field of a struct or struct-like enum variant.
type StructField struct {
	Name   string
	Type   Type
	Public bool
}

// EnumVariant is a variant of an enum. Data is nil for unit variants.
type EnumVariant struct {
	Name string
	Data *EnumVariantData
}

// EnumVariantData is the payload of an enum variant, either tuple-like (Types) or struct-like (Fields).
type EnumVariantData struct {
	Types  []Type
	Fields []StructField
}

// DataTypes returns the payload types of d in declaration order.
func (d *EnumVariantData) DataTypes() []Type {
	if d == nil {
		return nil
	}
	if len(d.Fields) == 0 {
		return d.Types
	}
	ts := make([]Type, len(d.Fields))
	for i, f := range d.Fields {
		ts[i] = f.Type
	}
	return ts
}

// Parameter of a function.
type Parameter struct {
	Name string
	Type Type
}

// Function declaration: `fn name<T>(x: T) -> T { ... }`
type Function struct {
	Name       string
	Generics   []string
	Params     []Parameter
	ReturnType Type
	Body       *Block
}

// Block is a sequence of statements.
type Block struct {
	Stmts []Stmt
}

// Stmt is the base for all statements.
type Stmt interface {
	// Name of the syntax-type of the statement.
	StmtName() string
}

var (
	_ Stmt = (*Let)(nil)
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*Return)(nil)
)

// Let binding: `let x: T = value;` Type may be nil.
type Let struct {
	Name  string
	Type  Type
	Value Expr
}

// "Let"
func (s *Let) StmtName() string { return "Let" }

// Expression statement
type ExprStmt struct {
	Expr Expr
}

// "ExprStmt"
func (s *ExprStmt) StmtName() string { return "ExprStmt" }

// Return statement. Value may be nil.
type Return struct {
	Value Expr
}

// "Return"
func (s *Return) StmtName() string { return "Return" }
