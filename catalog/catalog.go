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

// Package catalog implements an in-memory type catalog: the registry of concrete struct and enum
// definitions consulted when matching patterns and computing layouts.
package catalog

import (
	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/internal/typeutil"
	"github.com/wdamron/mono/types"
)

// Catalog holds struct, enum, and function definitions by name.
//
// Catalog is not safe for concurrent use.
type Catalog struct {
	structs map[string]*types.StructDef
	enums   map[string]*types.EnumDef
	funcs   map[string]*types.FuncDef
	// enumSizes holds the size and alignment of each enum, computed when the enum is defined.
	enumSizes map[string][2]int
	names     []string
	layout    *LayoutCalculator
}

// New creates an empty catalog.
func New() *Catalog {
	c := &Catalog{
		structs:   make(map[string]*types.StructDef),
		enums:     make(map[string]*types.EnumDef),
		funcs:     make(map[string]*types.FuncDef),
		enumSizes: make(map[string][2]int),
	}
	c.layout = NewLayoutCalculator(c)
	return c
}

// Layout returns a layout calculator which resolves named types through c.
func (c *Catalog) Layout() *LayoutCalculator { return c.layout }

// Names returns the names of all definitions in c, in definition order.
func (c *Catalog) Names() []string { return c.names }

func (c *Catalog) declared(name string) bool {
	_, isStruct := c.structs[name]
	_, isEnum := c.enums[name]
	_, isFunc := c.funcs[name]
	return isStruct || isEnum || isFunc
}

// Define adds a struct, enum, or function definition to the catalog.
func (c *Catalog) Define(d types.Definition) error {
	switch d := d.(type) {
	case *types.StructDef:
		return c.DefineStruct(d)
	case *types.EnumDef:
		return c.DefineEnum(d)
	case *types.FuncDef:
		return c.DefineFunc(d)
	}
	return types.Errorf(types.PatternShapeMismatch, "Unsupported definition type %T", d)
}

// DefineStruct adds a struct definition. The layout of a concrete struct is computed when it is not
// already set.
func (c *Catalog) DefineStruct(d *types.StructDef) error {
	if c.declared(d.Name) {
		return types.Errorf(types.DuplicateDefinition, "Type '%s' is already defined", d.Name)
	}
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if seen[f.Name] {
			return types.Errorf(types.DuplicateDefinition, "Duplicate field '%s' in struct '%s'", f.Name, d.Name)
		}
		seen[f.Name] = true
	}
	if len(d.Generics) == 0 && d.Layout.FieldOffsets == nil {
		d.Layout = c.layout.StructLayout(d.Fields)
	}
	c.structs[d.Name] = d
	c.names = append(c.names, d.Name)
	return nil
}

// DefineEnum adds an enum definition. The discriminant type is derived from the variant count when
// it is not already set.
func (c *Catalog) DefineEnum(d *types.EnumDef) error {
	if c.declared(d.Name) {
		return types.Errorf(types.DuplicateDefinition, "Type '%s' is already defined", d.Name)
	}
	seen := make(map[string]bool, len(d.Variants))
	for _, v := range d.Variants {
		if seen[v.Name] {
			return types.Errorf(types.DuplicateDefinition, "Duplicate variant '%s' in enum '%s'", v.Name, d.Name)
		}
		seen[v.Name] = true
	}
	if d.DiscriminantType == nil {
		d.DiscriminantType = types.DiscriminantType(len(d.Variants))
	}
	if len(d.Generics) == 0 {
		size, align := c.layout.EnumSizeAlign(d)
		c.enumSizes[d.Name] = [2]int{size, align}
	}
	c.enums[d.Name] = d
	c.names = append(c.names, d.Name)
	return nil
}

// DefineFunc adds a function definition. Methods are keyed as `Owner::name`.
func (c *Catalog) DefineFunc(d *types.FuncDef) error {
	name := d.Func.Name
	if d.Owner != "" {
		name = d.Owner + "::" + name
	}
	if c.declared(name) {
		return types.Errorf(types.DuplicateDefinition, "Function '%s' is already defined", name)
	}
	c.funcs[name] = d
	c.names = append(c.names, name)
	return nil
}

// Struct returns the named struct definition.
func (c *Catalog) Struct(name string) (*types.StructDef, bool) {
	d, ok := c.structs[name]
	return d, ok
}

// Enum returns the named enum definition.
func (c *Catalog) Enum(name string) (*types.EnumDef, bool) {
	d, ok := c.enums[name]
	return d, ok
}

// Func returns the named function definition. Methods are named `Owner::name`.
func (c *Catalog) Func(name string) (*types.FuncDef, bool) {
	d, ok := c.funcs[name]
	return d, ok
}

// Lookup returns the named definition.
func (c *Catalog) Lookup(name string) (types.Definition, bool) {
	if d, ok := c.structs[name]; ok {
		return d, true
	}
	if d, ok := c.enums[name]; ok {
		return d, true
	}
	if d, ok := c.funcs[name]; ok {
		return d, true
	}
	return nil, false
}

func (c *Catalog) variant(enum, variant string) (int, ast.EnumVariant, error) {
	d, ok := c.enums[enum]
	if !ok {
		return -1, ast.EnumVariant{}, types.Errorf(types.NotFound, "Undefined enum type '%s'", enum)
	}
	i, v, ok := d.Variant(variant)
	if !ok {
		return -1, ast.EnumVariant{}, types.Errorf(types.NotFound, "Unknown variant '%s' for enum '%s'", variant, enum)
	}
	return i, v, nil
}

// VariantDiscriminant returns the discriminant of a variant: its index in declaration order.
func (c *Catalog) VariantDiscriminant(enum, variant string) (int, error) {
	i, _, err := c.variant(enum, variant)
	return i, err
}

// VariantDataTypes returns the resolved payload types of a variant, or nil if the variant carries no data.
func (c *Catalog) VariantDataTypes(enum, variant string) ([]types.Ty, error) {
	_, v, err := c.variant(enum, variant)
	if err != nil {
		return nil, err
	}
	data := v.Data.DataTypes()
	if len(data) == 0 {
		return nil, nil
	}
	ts := make([]types.Ty, len(data))
	for i, t := range data {
		ts[i] = c.ResolveType(t)
	}
	return ts, nil
}

// EnumVariants returns the variant names of an enum, in declaration order.
func (c *Catalog) EnumVariants(enum string) ([]string, error) {
	d, ok := c.enums[enum]
	if !ok {
		return nil, types.Errorf(types.NotFound, "Undefined enum type '%s'", enum)
	}
	names := make([]string, len(d.Variants))
	for i, v := range d.Variants {
		names[i] = v.Name
	}
	return names, nil
}

// FieldType returns the resolved type of a struct field.
func (c *Catalog) FieldType(strct, field string) (types.Ty, error) {
	d, ok := c.structs[strct]
	if !ok {
		return nil, types.Errorf(types.NotFound, "Undefined struct type '%s'", strct)
	}
	f, ok := d.Field(field)
	if !ok {
		return nil, types.Errorf(types.NotFound, "Struct '%s' has no field '%s'", strct, field)
	}
	return c.ResolveType(f.Type), nil
}

// ResolveType resolves a surface type into the type seen by the pattern matcher. Generic
// applications resolve to their instance when it has been defined under its mangled name.
// Types the catalog does not know resolve to Opaque.
func (c *Catalog) ResolveType(t ast.Type) types.Ty {
	switch t := t.(type) {
	case *ast.Named:
		if p, ok := types.LookupPrim(t.Name); ok {
			return p
		}
		return c.resolveName(t.Name, t.Name)
	case *ast.Generic:
		return c.resolveName(typeutil.MangleName(t.Name, t.Args), ast.TypeString(t))
	}
	return &types.Opaque{Name: ast.TypeString(t)}
}

func (c *Catalog) resolveName(name, display string) types.Ty {
	if _, ok := c.structs[name]; ok {
		return &types.Struct{Name: name}
	}
	if _, ok := c.enums[name]; ok {
		return &types.Enum{Name: name}
	}
	return &types.Opaque{Name: display}
}
