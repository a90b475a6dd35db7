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
	"github.com/benbjohnson/immutable"

	"github.com/wdamron/mono/ast"
)

var emptyList = immutable.NewList()

var EmptyTypeList = TypeList{emptyList}

// TypeList is an immutable list of types.
type TypeList struct {
	l *immutable.List
}

// NewTypeList creates a TypeList containing ts, in order.
func NewTypeList(ts ...ast.Type) TypeList {
	if len(ts) == 0 {
		return EmptyTypeList
	}
	b := NewTypeListBuilder()
	for _, t := range ts {
		b.Append(t)
	}
	return b.Build()
}

func (l TypeList) Len() int {
	if l.l == nil {
		return 0
	}
	return l.l.Len()
}

func (l TypeList) Get(i int) ast.Type { return l.l.Get(i).(ast.Type) }

// Append returns a new list with t appended, without mutating l.
func (l TypeList) Append(t ast.Type) TypeList {
	imm := l.l
	if imm == nil {
		imm = emptyList
	}
	return TypeList{imm.Append(t)}
}

// Iterate over types in the list.
// If f returns false, iteration will be stopped.
func (l TypeList) Range(f func(int, ast.Type) bool) {
	if l.l == nil {
		return
	}
	iter := l.l.Iterator()
	for !iter.Done() {
		i, t := iter.Next()
		if !f(i, t.(ast.Type)) {
			return
		}
	}
}

// Types copies the list into a slice of types.
func (l TypeList) Types() []ast.Type {
	ts := make([]ast.Type, 0, l.Len())
	l.Range(func(_ int, t ast.Type) bool {
		ts = append(ts, t)
		return true
	})
	return ts
}

// Equal reports whether l and o hold pairwise structurally-equal types.
func (l TypeList) Equal(o TypeList) bool {
	if l.Len() != o.Len() {
		return false
	}
	for i, n := 0, l.Len(); i < n; i++ {
		if !ast.TypeEqual(l.Get(i), o.Get(i)) {
			return false
		}
	}
	return true
}

// TypeListBuilder enables in-place updates of a list before finalization.
type TypeListBuilder struct {
	b *immutable.ListBuilder
}

func NewTypeListBuilder() TypeListBuilder {
	return TypeListBuilder{immutable.NewListBuilder()}
}

func (b TypeListBuilder) Len() int              { return b.b.Len() }
func (b TypeListBuilder) Append(t ast.Type)     { b.b.Append(t) }
func (b TypeListBuilder) Set(i int, t ast.Type) { b.b.Set(i, t) }
func (b TypeListBuilder) Build() TypeList       { return TypeList{b.b.List()} }
