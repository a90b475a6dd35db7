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

var emptyMap = immutable.NewSortedMap(nil)

var EmptyTypeMap = TypeMap{emptyMap}

// TypeMap contains immutable mappings from type-parameter names to types.
type TypeMap struct {
	m *immutable.SortedMap
}

func NewTypeMap() TypeMap { return TypeMap{emptyMap} }

// Create a TypeMap which maps each name in params to the type at the same index in args.
// The lengths of params and args should be equal.
func ZipTypeMap(params []string, args []ast.Type) TypeMap {
	b := NewTypeMapBuilder()
	for i, name := range params {
		if i >= len(args) {
			break
		}
		b.Set(name, args[i])
	}
	return b.Build()
}

// Get the number of entries in the map.
func (m TypeMap) Len() int {
	if m.m == nil {
		return 0
	}
	return m.m.Len()
}

// Get the type for a name.
func (m TypeMap) Get(name string) (ast.Type, bool) {
	if m.m == nil {
		return nil, false
	}
	t, ok := m.m.Get(name)
	if !ok {
		return nil, false
	}
	return t.(ast.Type), true
}

// Set returns a new map with name mapped to t, without mutating m.
func (m TypeMap) Set(name string, t ast.Type) TypeMap {
	imm := m.m
	if imm == nil {
		imm = emptyMap
	}
	return TypeMap{imm.Set(name, t)}
}

// Iterate over entries in the map, sorted by name.
// If f returns false, iteration will be stopped.
func (m TypeMap) Range(f func(string, ast.Type) bool) {
	if m.m == nil {
		return
	}
	iter := m.m.Iterator()
	for !iter.Done() {
		k, v := iter.Next()
		if !f(k.(string), v.(ast.Type)) {
			return
		}
	}
}

// TypeMapBuilder enables in-place updates of a map before finalization.
type TypeMapBuilder struct {
	b *immutable.SortedMapBuilder
}

func NewTypeMapBuilder() TypeMapBuilder {
	return TypeMapBuilder{immutable.NewSortedMapBuilder(nil)}
}

// Get the number of entries in the builder.
func (b TypeMapBuilder) Len() int { return b.b.Len() }

// Get the type for a name in the builder.
func (b TypeMapBuilder) Get(name string) (ast.Type, bool) {
	t, ok := b.b.Get(name)
	if !ok {
		return nil, false
	}
	return t.(ast.Type), true
}

// Set the type for the given name in the builder.
func (b TypeMapBuilder) Set(name string, t ast.Type) TypeMapBuilder {
	b.b.Set(name, t)
	return b
}

// Delete the given name and corresponding type from the builder.
func (b TypeMapBuilder) Delete(name string) TypeMapBuilder {
	b.b.Delete(name)
	return b
}

// Finalize the builder into an immutable map.
func (b TypeMapBuilder) Build() TypeMap {
	if b.b == nil {
		return EmptyTypeMap
	}
	return TypeMap{b.b.Map()}
}
