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

package catalog

import (
	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/internal/typeutil"
	"github.com/wdamron/mono/types"
)

// Sizes of types whose layout is not derived from their elements.
const (
	PointerSize = 8
	StringSize  = 24
	VecSize     = 24
	SliceSize   = 16
	HashMapSize = 48
	// UnknownSize is used for types the catalog does not know.
	UnknownSize = 8
)

var primSizes = map[string]int{
	"bool": 1, "i8": 1, "u8": 1,
	"i16": 2, "u16": 2,
	"i32": 4, "u32": 4, "int": 4, "f32": 4, "float": 4, "char": 4,
	"i64": 8, "u64": 8, "f64": 8, "isize": 8, "usize": 8,
	"()": 0,
}

// LayoutCalculator computes sizes, alignments, and field offsets. Struct and enum types are resolved
// through a catalog, when one is given.
type LayoutCalculator struct {
	cat *Catalog
}

// NewLayoutCalculator creates a calculator resolving named types through cat, which may be nil.
func NewLayoutCalculator(cat *Catalog) *LayoutCalculator {
	return &LayoutCalculator{cat: cat}
}

// SizeAlign returns the size and alignment of t, in bytes.
func (lc *LayoutCalculator) SizeAlign(t ast.Type) (size, align int) {
	switch t := t.(type) {
	case *ast.Named:
		return lc.namedSizeAlign(t.Name)
	case *ast.Generic:
		return lc.namedSizeAlign(typeutil.MangleName(t.Name, t.Args))
	case *ast.Array:
		if !t.Sized() {
			return SliceSize, PointerSize
		}
		size, align := lc.SizeAlign(t.Elem)
		return size * *t.Size, align
	case *ast.Slice:
		return SliceSize, PointerSize
	case *ast.Vec:
		return VecSize, PointerSize
	case *ast.HashMap:
		return HashMapSize, PointerSize
	case *ast.Reference:
		return PointerSize, PointerSize
	}
	return UnknownSize, UnknownSize
}

func (lc *LayoutCalculator) namedSizeAlign(name string) (int, int) {
	if size, ok := primSizes[name]; ok {
		if size == 0 {
			return 0, 1
		}
		return size, size
	}
	switch name {
	case "String":
		return StringSize, PointerSize
	case "str":
		return SliceSize, PointerSize
	}
	if lc.cat != nil {
		if d, ok := lc.cat.structs[name]; ok && len(d.Generics) == 0 {
			return d.Layout.Size, d.Layout.Align
		}
		if sa, ok := lc.cat.enumSizes[name]; ok {
			return sa[0], sa[1]
		}
	}
	return UnknownSize, UnknownSize
}

// StructLayout lays out fields in declaration order, aligning each field to its natural alignment.
// The size of the struct is rounded up to its alignment.
func (lc *LayoutCalculator) StructLayout(fields []ast.StructField) types.Layout {
	ts := make([]ast.Type, len(fields))
	for i, f := range fields {
		ts[i] = f.Type
	}
	return lc.sequenceLayout(ts)
}

func (lc *LayoutCalculator) sequenceLayout(ts []ast.Type) types.Layout {
	l := types.Layout{Align: 1, FieldOffsets: make([]int, len(ts))}
	offset := 0
	for i, t := range ts {
		size, align := lc.SizeAlign(t)
		offset = alignTo(offset, align)
		l.FieldOffsets[i] = offset
		offset += size
		if align > l.Align {
			l.Align = align
		}
	}
	l.Size = alignTo(offset, l.Align)
	return l
}

// EnumSizeAlign returns the size and alignment of an enum: its discriminant followed by the largest
// variant payload, rounded up to the enum's alignment.
func (lc *LayoutCalculator) EnumSizeAlign(d *types.EnumDef) (size, align int) {
	disc := d.DiscriminantType
	if disc == nil {
		disc = types.DiscriminantType(len(d.Variants))
	}
	tagSize, _ := lc.namedSizeAlign(disc.Name)
	size, align = tagSize, tagSize
	for _, v := range d.Variants {
		payload := lc.sequenceLayout(v.Data.DataTypes())
		end := alignTo(tagSize, payload.Align) + payload.Size
		if end > size {
			size = end
		}
		if payload.Align > align {
			align = payload.Align
		}
	}
	return alignTo(size, align), align
}

func alignTo(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) / align * align
}
