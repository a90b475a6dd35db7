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
	"sort"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/internal/util"
	"github.com/wdamron/mono/types"
)

// DefaultMaxDepth is the default nesting limit for specializations requested by other
// specializations.
const DefaultMaxDepth = 64

// DefinitionSink receives concrete definitions in dependency order.
type DefinitionSink interface {
	Define(d types.Definition) error
}

// Request names a generic definition and the type-arguments to specialize it with.
type Request struct {
	Base string
	Args []ast.Type
}

// Program is the closed set of concrete definitions reachable from a set of requests.
type Program struct {
	// Defs holds concrete definitions, each listed after the definitions it contains by value.
	Defs []types.Definition
	// Names maps each mangled name to the source form of the instantiation which produced it.
	Names map[string]string
}

// Monomorphizer specializes every generic definition reachable from a set of requests.
//
// A Monomorphizer is not safe for concurrent use.
type Monomorphizer struct {
	// MaxDepth limits how deeply specializations may request further specializations.
	// Values <= 0 select DefaultMaxDepth.
	MaxDepth int

	r    *GenericResolver
	sink DefinitionSink

	queue  []workItem
	queued *set.Set[string]
}

type workItem struct {
	inst  *Instance
	depth int
}

// NewMonomorphizer creates a Monomorphizer which specializes definitions registered with r.
// If sink is non-nil, each concrete definition is passed to it in dependency order.
func NewMonomorphizer(r *GenericResolver, sink DefinitionSink) *Monomorphizer {
	return &Monomorphizer{MaxDepth: DefaultMaxDepth, r: r, sink: sink}
}

// Run specializes each root request and everything the resulting definitions refer to.
//
// Nested generic types naming registered definitions are rewritten to their mangled names,
// and calls with explicit type-arguments to registered functions are rewritten to call the
// mangled instance.
func (m *Monomorphizer) Run(roots []Request) (*Program, error) {
	m.queue = m.queue[:0]
	m.queued = set.New[string](len(roots))
	for _, req := range roots {
		if _, err := m.enqueue(ParseDefKey(req.Base), req.Args, 0); err != nil {
			return nil, errors.Wrapf(err, "requesting %s", req.Base)
		}
	}

	var insts []*Instance
	for len(m.queue) > 0 {
		item := m.queue[0]
		m.queue = m.queue[1:]
		if err := m.expand(item); err != nil {
			return nil, errors.Wrapf(err, "specializing %s", item.inst.Name)
		}
		insts = append(insts, item.inst)
	}

	g := containmentGraph(insts)
	order := g.DependencyOrder()
	for _, c := range order {
		if !g.IsCyclic(c) {
			continue
		}
		members := set.New[string](len(c))
		for _, v := range c {
			members.Insert(insts[v].Name)
		}
		names := members.Slice()
		sort.Strings(names)
		return nil, types.Errorf(types.InfiniteSize, "Recursive types without indirection have infinite size: %s", strings.Join(names, ", "))
	}

	prog := &Program{Defs: make([]types.Definition, 0, len(insts)), Names: make(map[string]string, len(insts))}
	for _, c := range order {
		for _, v := range c {
			inst := insts[v]
			if d, ok := inst.Def.(*types.StructDef); ok {
				d.Layout = m.r.layout.StructLayout(d.Fields)
			}
			if m.sink != nil {
				if err := m.sink.Define(inst.Def); err != nil {
					return nil, errors.Wrapf(err, "defining %s", inst.Name)
				}
			}
			prog.Defs = append(prog.Defs, inst.Def)
			prog.Names[inst.Name] = sourceName(inst)
		}
	}
	return prog, nil
}

func (m *Monomorphizer) maxDepth() int {
	if m.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return m.MaxDepth
}

// enqueue specializes key with args and schedules the instance for expansion, returning the
// mangled name of the instance.
func (m *Monomorphizer) enqueue(key DefKey, args []ast.Type, depth int) (string, error) {
	inst, err := m.r.specialize(key, args)
	if err != nil {
		return "", err
	}
	if m.queued.Contains(inst.Name) {
		return inst.Name, nil
	}
	if depth > m.maxDepth() {
		return "", types.Errorf(types.RecursionLimit, "Specialization of '%s' exceeds the maximum depth of %d", inst.Name, m.maxDepth())
	}
	m.queued.Insert(inst.Name)
	m.queue = append(m.queue, workItem{inst: inst, depth: depth})
	return inst.Name, nil
}

// expand rewrites the references within a concrete definition, enqueueing the instances
// they name.
func (m *Monomorphizer) expand(item workItem) error {
	depth := item.depth + 1
	var err error
	switch d := item.inst.Def.(type) {
	case *types.StructDef:
		for i := range d.Fields {
			if d.Fields[i].Type, err = m.rewriteType(d.Fields[i].Type, depth); err != nil {
				return err
			}
		}

	case *types.EnumDef:
		for _, v := range d.Variants {
			if v.Data == nil {
				continue
			}
			if err = m.rewriteTypes(v.Data.Types, depth); err != nil {
				return err
			}
			for i := range v.Data.Fields {
				if v.Data.Fields[i].Type, err = m.rewriteType(v.Data.Fields[i].Type, depth); err != nil {
					return err
				}
			}
		}

	case *types.FuncDef:
		return m.expandFunction(d.Func, depth)
	}
	return nil
}

func (m *Monomorphizer) expandFunction(fn *ast.Function, depth int) error {
	var err error
	for i := range fn.Params {
		if fn.Params[i].Type, err = m.rewriteType(fn.Params[i].Type, depth); err != nil {
			return err
		}
	}
	if fn.ReturnType, err = m.rewriteType(fn.ReturnType, depth); err != nil {
		return err
	}
	if fn.Body == nil {
		return nil
	}
	for _, s := range fn.Body.Stmts {
		if let, ok := s.(*ast.Let); ok {
			if let.Type, err = m.rewriteType(let.Type, depth); err != nil {
				return err
			}
		}
	}
	ast.WalkBlock(fn.Body, func(e ast.Expr) {
		call, ok := e.(*ast.Call)
		if !ok || err != nil {
			return
		}
		err = m.rewriteCall(call, depth)
	})
	return err
}

func (m *Monomorphizer) rewriteCall(call *ast.Call, depth int) error {
	key := ParseDefKey(call.Func)
	fd, ok := m.r.defs[key].(*types.FuncDef)
	if !ok {
		return m.rewriteTypes(call.TypeArgs, depth)
	}
	// Generic callees without explicit type-arguments are left for inference.
	if len(call.TypeArgs) == 0 && len(fd.Func.Generics) != 0 {
		return nil
	}
	name, err := m.enqueue(key, call.TypeArgs, depth)
	if err != nil {
		return err
	}
	call.Func, call.TypeArgs = name, nil
	return nil
}

// rewriteType returns t with each type naming a registered struct or enum replaced by the
// name of its instance. Nodes of t are not modified.
func (m *Monomorphizer) rewriteType(t ast.Type, depth int) (ast.Type, error) {
	switch t := t.(type) {
	case *ast.Named:
		if d, ok := m.registeredType(t.Name); ok && len(d.TypeParams()) == 0 {
			if _, err := m.enqueue(TypeKey(t.Name), nil, depth); err != nil {
				return nil, err
			}
		}
		return t, nil

	case *ast.Generic:
		if _, ok := m.registeredType(t.Name); ok {
			name, err := m.enqueue(TypeKey(t.Name), t.Args, depth)
			if err != nil {
				return nil, err
			}
			return &ast.Named{Name: name}, nil
		}
		args := ast.CopyTypes(t.Args)
		if err := m.rewriteTypes(args, depth); err != nil {
			return nil, err
		}
		return &ast.Generic{Name: t.Name, Args: args}, nil

	case *ast.Array:
		elem, err := m.rewriteType(t.Elem, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Array{Elem: elem, Size: t.Size}, nil

	case *ast.Slice:
		elem, err := m.rewriteType(t.Elem, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Slice{Elem: elem}, nil

	case *ast.Vec:
		elem, err := m.rewriteType(t.Elem, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Vec{Elem: elem}, nil

	case *ast.HashMap:
		k, err := m.rewriteType(t.Key, depth)
		if err != nil {
			return nil, err
		}
		v, err := m.rewriteType(t.Value, depth)
		if err != nil {
			return nil, err
		}
		return &ast.HashMap{Key: k, Value: v}, nil

	case *ast.Reference:
		inner, err := m.rewriteType(t.Inner, depth)
		if err != nil {
			return nil, err
		}
		return &ast.Reference{Mutable: t.Mutable, Inner: inner}, nil
	}
	return t, nil
}

// rewriteTypes rewrites each type of ts in place.
func (m *Monomorphizer) rewriteTypes(ts []ast.Type, depth int) error {
	for i := range ts {
		t, err := m.rewriteType(ts[i], depth)
		if err != nil {
			return err
		}
		ts[i] = t
	}
	return nil
}

func (m *Monomorphizer) registeredType(name string) (types.Definition, bool) {
	switch d := m.r.defs[TypeKey(name)].(type) {
	case *types.StructDef:
		return d, true
	case *types.EnumDef:
		return d, true
	}
	return nil, false
}

// containmentGraph links each concrete struct or enum to the instances it contains by value.
// Heap-backed and reference types do not contain their element types.
func containmentGraph(insts []*Instance) util.Graph {
	index := make(map[string]int, len(insts))
	for i, inst := range insts {
		index[inst.Name] = i
	}
	g := util.NewGraph(len(insts))
	for i, inst := range insts {
		var fields []ast.Type
		switch d := inst.Def.(type) {
		case *types.StructDef:
			for _, f := range d.Fields {
				fields = append(fields, f.Type)
			}
		case *types.EnumDef:
			for _, v := range d.Variants {
				fields = append(fields, v.Data.DataTypes()...)
			}
		}
		for _, t := range fields {
			if name, ok := containedName(t); ok {
				if j, ok := index[name]; ok {
					g.AddEdge(i, j)
				}
			}
		}
	}
	return g
}

func containedName(t ast.Type) (string, bool) {
	for {
		switch tt := t.(type) {
		case *ast.Named:
			return tt.Name, true
		case *ast.Array:
			if !tt.Sized() {
				return "", false
			}
			t = tt.Elem
		default:
			return "", false
		}
	}
}

func sourceName(inst *Instance) string {
	if inst.TypeArgs.Len() == 0 {
		return inst.Base.String()
	}
	var sb strings.Builder
	sb.WriteString(inst.Base.String())
	sb.WriteByte('<')
	inst.TypeArgs.Range(func(i int, t ast.Type) bool {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(ast.TypeString(t))
		return true
	})
	sb.WriteByte('>')
	return sb.String()
}
