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

package mono

import (
	"strconv"
	"strings"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/types"
)

// Condition is a runtime test produced by pattern compilation.
type Condition interface {
	// Name of the condition-variant.
	ConditionName() string
}

var (
	_ Condition = Always{}
	_ Condition = (*DiscriminantEquals)(nil)
	_ Condition = (*ValueEquals)(nil)
	_ Condition = (*InRange)(nil)
	_ Condition = (*FieldMatch)(nil)
	_ Condition = (*TupleElementMatch)(nil)
	_ Condition = (*DataMatch)(nil)
	_ Condition = (*And)(nil)
	_ Condition = (*Or)(nil)
)

// Always holds for every value.
type Always struct{}

// "Always"
func (Always) ConditionName() string { return "Always" }

// DiscriminantEquals holds when the enum value's discriminant is Index.
type DiscriminantEquals struct {
	Index int
}

// "DiscriminantEquals"
func (c *DiscriminantEquals) ConditionName() string { return "DiscriminantEquals" }

type ValueEquals struct {
	Value Value
}

// "ValueEquals"
func (c *ValueEquals) ConditionName() string { return "ValueEquals" }

type InRange struct {
	Start, End Value
	Inclusive  bool
}

// "InRange"
func (c *InRange) ConditionName() string { return "InRange" }

// FieldMatch applies Cond to a struct field.
type FieldMatch struct {
	Field string
	Cond  Condition
}

// "FieldMatch"
func (c *FieldMatch) ConditionName() string { return "FieldMatch" }

// TupleElementMatch applies Cond to a tuple element or to one of several variant payloads.
type TupleElementMatch struct {
	Index int
	Cond  Condition
}

// "TupleElementMatch"
func (c *TupleElementMatch) ConditionName() string { return "TupleElementMatch" }

// DataMatch applies Cond to the single payload of an enum variant.
type DataMatch struct {
	Cond Condition
}

// "DataMatch"
func (c *DataMatch) ConditionName() string { return "DataMatch" }

type And struct {
	Conds []Condition
}

// "And"
func (c *And) ConditionName() string { return "And" }

type Or struct {
	Conds []Condition
}

// "Or"
func (c *Or) ConditionName() string { return "Or" }

// Value is a literal value tested by a condition.
type Value interface {
	Kind() types.PrimKind
	String() string
}

type (
	IntValue    int64
	FloatValue  float64
	BoolValue   bool
	StringValue string
	CharValue   rune
)

func (IntValue) Kind() types.PrimKind    { return types.IntKind }
func (FloatValue) Kind() types.PrimKind  { return types.FloatKind }
func (BoolValue) Kind() types.PrimKind   { return types.BoolKind }
func (StringValue) Kind() types.PrimKind { return types.StringKind }
func (CharValue) Kind() types.PrimKind   { return types.CharKind }

func (v IntValue) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v FloatValue) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v BoolValue) String() string   { return strconv.FormatBool(bool(v)) }
func (v StringValue) String() string { return strconv.Quote(string(v)) }
func (v CharValue) String() string   { return strconv.QuoteRune(rune(v)) }

// BindingPath locates a bound value relative to the matched value.
type BindingPath interface {
	// Name of the path-variant.
	PathName() string
}

var (
	_ BindingPath = DirectPath{}
	_ BindingPath = (*FieldPath)(nil)
	_ BindingPath = (*TupleElementPath)(nil)
	_ BindingPath = EnumDataPath{}
	_ BindingPath = (*NestedPath)(nil)
)

// DirectPath is the matched value itself.
type DirectPath struct{}

// "Direct"
func (DirectPath) PathName() string { return "Direct" }

type FieldPath struct {
	Name string
}

// "Field"
func (p *FieldPath) PathName() string { return "Field" }

type TupleElementPath struct {
	Index int
}

// "TupleElement"
func (p *TupleElementPath) PathName() string { return "TupleElement" }

// EnumDataPath is the single payload of an enum variant.
type EnumDataPath struct{}

// "EnumData"
func (EnumDataPath) PathName() string { return "EnumData" }

// NestedPath applies Inner to the value located by Base.
type NestedPath struct {
	Base, Inner BindingPath
}

// "Nested"
func (p *NestedPath) PathName() string { return "Nested" }

func nest(base, inner BindingPath) BindingPath { return &NestedPath{Base: base, Inner: inner} }

// Binding extracts a named value from the matched value.
type Binding struct {
	Name string
	Type types.Ty
	Path BindingPath
}

// PatternCode is a compiled pattern. Conditions are evaluated in order and must all hold;
// Bindings are extracted once the conditions hold.
type PatternCode struct {
	Conditions []Condition
	Bindings   []Binding
}

// CompilePattern compiles p, matched against a value of type t, into conditions and bindings.
func (pm *PatternMatcher) CompilePattern(cat TypeCatalog, p ast.Pattern, t types.Ty) (PatternCode, error) {
	c := &pm.c
	c.cat, c.conds, c.binds = cat, c.conds[:0], c.binds[:0]
	defer func() { c.cat = nil }()
	if err := c.compile(p, t, DirectPath{}, c.push); err != nil {
		return PatternCode{}, err
	}
	return PatternCode{
		Conditions: append([]Condition(nil), c.conds...),
		Bindings:   append([]Binding(nil), c.binds...),
	}, nil
}

type patternCompiler struct {
	cat   TypeCatalog
	conds []Condition
	binds []Binding
}

func (c *patternCompiler) push(cond Condition) { c.conds = append(c.conds, cond) }

// within returns an emitter which wraps each non-trivial condition before passing it to emit.
func within(emit func(Condition), wrap func(Condition) Condition) func(Condition) {
	return func(cond Condition) {
		if _, ok := cond.(Always); ok {
			emit(cond)
			return
		}
		emit(wrap(cond))
	}
}

func (c *patternCompiler) bind(name string, t types.Ty, path BindingPath) {
	c.binds = append(c.binds, Binding{Name: name, Type: t, Path: path})
}

func (c *patternCompiler) compile(p ast.Pattern, t types.Ty, path BindingPath, emit func(Condition)) error {
	switch p := p.(type) {
	case *ast.WildcardPattern:
		emit(Always{})

	case *ast.IdentPattern:
		emit(Always{})
		c.bind(p.Name, t, path)

	case *ast.LiteralPattern:
		v, err := literalValue(p.Value, t)
		if err != nil {
			return err
		}
		emit(&ValueEquals{Value: v})

	case *ast.EnumPattern:
		return c.compileEnum(p, t, path, emit)

	case *ast.StructPattern:
		st, ok := t.(*types.Struct)
		if !ok || st.Name != p.Name {
			return types.Errorf(types.PatternShapeMismatch, "Struct pattern '%s' doesn't match type '%s'", p.Name, types.TyString(t))
		}
		for _, f := range p.Fields {
			ft, err := c.cat.FieldType(st.Name, f.Name)
			if err != nil {
				return err
			}
			name := f.Name
			sub := within(emit, func(cond Condition) Condition { return &FieldMatch{Field: name, Cond: cond} })
			if err = c.compile(f.Pattern, ft, nest(path, &FieldPath{Name: name}), sub); err != nil {
				return err
			}
		}

	case *ast.TuplePattern:
		// Without a tuple type of matching arity, each element is matched against t.
		tt, threaded := t.(*types.Tuple)
		threaded = threaded && len(tt.Elems) == len(p.Elems)
		for i, elem := range p.Elems {
			et := t
			if threaded {
				et = tt.Elems[i]
			}
			if err := c.compileElem(elem, et, path, i, emit); err != nil {
				return err
			}
		}

	case *ast.RangePattern:
		start, err := rangeBound(p.Start, t, "start")
		if err != nil {
			return err
		}
		end, err := rangeBound(p.End, t, "end")
		if err != nil {
			return err
		}
		if start.Kind() != end.Kind() {
			return types.Errorf(types.PatternShapeMismatch, "Range pattern bounds %s and %s have different types", start, end)
		}
		emit(&InRange{Start: start, End: end, Inclusive: p.Inclusive})

	case *ast.OrPattern:
		return c.compileOr(p, t, path, emit)

	case *ast.BindingPattern:
		c.bind(p.Name, t, path)
		return c.compile(p.Pattern, t, path, emit)

	default:
		return types.Errorf(types.PatternShapeMismatch, "Unsupported pattern: %s", ast.PatternString(p))
	}
	return nil
}

func (c *patternCompiler) compileElem(p ast.Pattern, t types.Ty, path BindingPath, i int, emit func(Condition)) error {
	sub := within(emit, func(cond Condition) Condition { return &TupleElementMatch{Index: i, Cond: cond} })
	return c.compile(p, t, nest(path, &TupleElementPath{Index: i}), sub)
}

func (c *patternCompiler) compileEnum(p *ast.EnumPattern, t types.Ty, path BindingPath, emit func(Condition)) error {
	et, ok := t.(*types.Enum)
	if !ok {
		return types.Errorf(types.PatternShapeMismatch, "Enum pattern '%s' used on non-enum type '%s'", p.Variant, types.TyString(t))
	}
	index, err := c.cat.VariantDiscriminant(et.Name, p.Variant)
	if err != nil {
		return err
	}
	emit(&DiscriminantEquals{Index: index})
	if p.Data == nil {
		return nil
	}

	dataTypes, err := c.cat.VariantDataTypes(et.Name, p.Variant)
	if err != nil {
		return err
	}
	switch len(dataTypes) {
	case 0:
		return types.Errorf(types.PatternShapeMismatch, "Variant '%s::%s' carries no data", et.Name, p.Variant)
	case 1:
		sub := within(emit, func(cond Condition) Condition { return &DataMatch{Cond: cond} })
		return c.compile(p.Data, dataTypes[0], nest(path, EnumDataPath{}), sub)
	}

	tuple, ok := p.Data.(*ast.TuplePattern)
	if !ok {
		return types.Errorf(types.PatternShapeMismatch, "Expected tuple pattern for multi-data enum variant '%s::%s'", et.Name, p.Variant)
	}
	if len(tuple.Elems) != len(dataTypes) {
		return types.Errorf(types.ArityMismatch, "Pattern tuple length %d doesn't match variant data length %d", len(tuple.Elems), len(dataTypes))
	}
	for i, elem := range tuple.Elems {
		if err = c.compileElem(elem, dataTypes[i], path, i, emit); err != nil {
			return err
		}
	}
	return nil
}

// compileOr compiles each alternative into the tail of the scratch buffers, then replaces the
// tail with a single disjunction.
func (c *patternCompiler) compileOr(p *ast.OrPattern, t types.Ty, path BindingPath, emit func(Condition)) error {
	alts := make([]Condition, 0, len(p.Alts))
	for _, alt := range p.Alts {
		nc, nb := len(c.conds), len(c.binds)
		if err := c.compile(alt, t, path, c.push); err != nil {
			return err
		}
		if len(c.binds) != nb {
			return types.Errorf(types.InvalidBindingContext, "Bindings not allowed in or-patterns")
		}
		switch conds := c.conds[nc:]; len(conds) {
		case 0:
			alts = append(alts, Always{})
		case 1:
			alts = append(alts, conds[0])
		default:
			alts = append(alts, &And{Conds: append([]Condition(nil), conds...)})
		}
		c.conds = c.conds[:nc]
	}
	emit(&Or{Conds: alts})
	return nil
}

// literalValue converts a literal expression into a value. If t is primitive, the literal
// must be of the same kind.
func literalValue(e ast.Expr, t types.Ty) (Value, error) {
	var v Value
	switch e := e.(type) {
	case *ast.IntLit:
		v = IntValue(e.Value)
	case *ast.FloatLit:
		v = FloatValue(e.Value)
	case *ast.BoolLit:
		v = BoolValue(e.Value)
	case *ast.StringLit:
		v = StringValue(e.Value)
	case *ast.CharLit:
		v = CharValue(e.Value)
	default:
		return nil, types.Errorf(types.PatternShapeMismatch, "Invalid literal in pattern: %s", ast.ExprString(e))
	}
	if p, ok := t.(*types.Prim); ok && p.Kind != v.Kind() {
		return nil, types.Errorf(types.PatternShapeMismatch, "Literal %s doesn't match type '%s'", v, p.Name)
	}
	return v, nil
}

func rangeBound(p ast.Pattern, t types.Ty, which string) (Value, error) {
	lit, ok := p.(*ast.LiteralPattern)
	if !ok {
		return nil, types.Errorf(types.PatternShapeMismatch, "Range pattern %s must be a literal", which)
	}
	return literalValue(lit.Value, t)
}

// ConditionString formats a condition for diagnostics.
func ConditionString(c Condition) string {
	var sb strings.Builder
	conditionString(&sb, c)
	return sb.String()
}

func conditionString(sb *strings.Builder, c Condition) {
	switch c := c.(type) {
	case Always:
		sb.WriteString("always")
	case *DiscriminantEquals:
		sb.WriteString("tag == ")
		sb.WriteString(strconv.Itoa(c.Index))
	case *ValueEquals:
		sb.WriteString("== ")
		sb.WriteString(c.Value.String())
	case *InRange:
		sb.WriteString("in ")
		sb.WriteString(c.Start.String())
		if c.Inclusive {
			sb.WriteString("..=")
		} else {
			sb.WriteString("..")
		}
		sb.WriteString(c.End.String())
	case *FieldMatch:
		sb.WriteString(".")
		sb.WriteString(c.Field)
		sb.WriteString(" ")
		conditionString(sb, c.Cond)
	case *TupleElementMatch:
		sb.WriteString(".")
		sb.WriteString(strconv.Itoa(c.Index))
		sb.WriteString(" ")
		conditionString(sb, c.Cond)
	case *DataMatch:
		sb.WriteString(".data ")
		conditionString(sb, c.Cond)
	case *And:
		joinConditions(sb, c.Conds, " && ")
	case *Or:
		joinConditions(sb, c.Conds, " || ")
	}
}

func joinConditions(sb *strings.Builder, conds []Condition, sep string) {
	sb.WriteByte('(')
	for i, c := range conds {
		if i > 0 {
			sb.WriteString(sep)
		}
		conditionString(sb, c)
	}
	sb.WriteByte(')')
}

// PathString formats a binding path, using "$" for the matched value.
func PathString(p BindingPath) string {
	var sb strings.Builder
	sb.WriteByte('$')
	pathString(&sb, p)
	return sb.String()
}

func pathString(sb *strings.Builder, p BindingPath) {
	switch p := p.(type) {
	case *FieldPath:
		sb.WriteByte('.')
		sb.WriteString(p.Name)
	case *TupleElementPath:
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(p.Index))
	case EnumDataPath:
		sb.WriteString(".data")
	case *NestedPath:
		pathString(sb, p.Base)
		pathString(sb, p.Inner)
	}
}
