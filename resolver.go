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
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/catalog"
	"github.com/wdamron/mono/internal/typeutil"
	"github.com/wdamron/mono/types"
)

// LayoutCalculator computes the layout of struct fields during monomorphization.
type LayoutCalculator interface {
	StructLayout(fields []ast.StructField) types.Layout
}

// Constraint requires a type-parameter of a generic definition to implement each trait in Bounds.
type Constraint struct {
	TypeParam string
	Bounds    []string
}

// Instance is a generic definition instantiated with concrete type arguments.
type Instance struct {
	Base     DefKey
	TypeArgs types.TypeList
	// Name is the mangled symbol name of the instance.
	Name string
	// Def is the concrete definition of the instance. Def is only set by Specialize.
	Def types.Definition
}

// GenericResolver registers generic definitions, instantiates them under deterministic mangled
// names, and monomorphizes them into concrete definitions.
//
// Instances are cached for the lifetime of the resolver: instantiating a definition with
// structurally-equal type arguments always returns the same instance.
//
// A resolver cannot be used concurrently.
type GenericResolver struct {
	defs        map[DefKey]types.Definition
	constraints map[DefKey][]Constraint
	// owners holds the owner types of registered methods.
	owners *set.Set[string]
	// instances maps each DefKey to an immutable list of *Instance, in insertion order.
	instances map[DefKey]*immutable.List
	// byName maps mangled names to instances.
	byName *immutable.SortedMap

	traits TraitRegistry
	layout LayoutCalculator
}

// NewGenericResolver creates an empty resolver which validates trait bounds against BuiltinTraits
// and computes layouts with a catalog-less layout calculator.
func NewGenericResolver() *GenericResolver {
	return &GenericResolver{
		defs:        make(map[DefKey]types.Definition),
		constraints: make(map[DefKey][]Constraint),
		owners:      set.New[string](8),
		instances:   make(map[DefKey]*immutable.List),
		byName:      immutable.NewSortedMap(nil),
		traits:      BuiltinTraits(),
		layout:      catalog.NewLayoutCalculator(nil),
	}
}

// SetTraitRegistry replaces the registry used to validate trait bounds.
func (r *GenericResolver) SetTraitRegistry(traits TraitRegistry) { r.traits = traits }

// SetLayoutCalculator replaces the calculator used for struct layouts during monomorphization.
func (r *GenericResolver) SetLayoutCalculator(layout LayoutCalculator) { r.layout = layout }

// Layout returns the calculator used for struct layouts.
func (r *GenericResolver) Layout() LayoutCalculator { return r.layout }

// Register a generic (or non-generic) struct.
func (r *GenericResolver) RegisterStruct(d *types.StructDef) error {
	return r.register(TypeKey(d.Name), d)
}

// Register a generic (or non-generic) enum.
func (r *GenericResolver) RegisterEnum(d *types.EnumDef) error {
	return r.register(TypeKey(d.Name), d)
}

// Register a generic (or non-generic) function. Functions with an Owner are registered as methods.
func (r *GenericResolver) RegisterFunction(d *types.FuncDef) error {
	if d.Owner != "" {
		return r.RegisterMethod(d.Owner, d.Func)
	}
	return r.register(TypeKey(d.Func.Name), d)
}

// Register a method declared on the owner type. The method's generics are its own type-parameters.
func (r *GenericResolver) RegisterMethod(owner string, fn *ast.Function) error {
	if err := r.register(MethodKey(owner, fn.Name), &types.FuncDef{Owner: owner, Func: fn}); err != nil {
		return err
	}
	r.owners.Insert(owner)
	return nil
}

func (r *GenericResolver) register(key DefKey, d types.Definition) error {
	if _, exists := r.defs[key]; exists {
		return types.Errorf(types.DuplicateDefinition, "Generic definition '%s' already exists", key)
	}
	params := set.New[string](len(d.TypeParams()))
	for _, p := range d.TypeParams() {
		if !params.Insert(p) {
			return types.Errorf(types.DuplicateDefinition, "Duplicate type parameter '%s' in generic definition '%s'", p, key)
		}
	}
	r.defs[key] = d
	return nil
}

// AddConstraint attaches a trait-bound constraint to a definition, which may be a method key.
// Constraints are validated when the definition is instantiated.
func (r *GenericResolver) AddConstraint(key DefKey, c Constraint) {
	r.constraints[key] = append(r.constraints[key], c)
}

// Definition returns the registered definition for base, which may be a method as `Owner::name`.
func (r *GenericResolver) Definition(base string) (types.Definition, bool) {
	d, ok := r.defs[ParseDefKey(base)]
	return d, ok
}

func (r *GenericResolver) lookup(key DefKey) (types.Definition, error) {
	d, ok := r.defs[key]
	if !ok {
		return nil, types.Errorf(types.NotFound, "Generic definition '%s' not found", key)
	}
	return d, nil
}

func checkArity(key DefKey, d types.Definition, numArgs int) error {
	if want := len(d.TypeParams()); want != numArgs {
		if key.IsMethod() {
			return types.Errorf(types.ArityMismatch, "Generic method '%s' expects %d type arguments, but %d were provided", key, want, numArgs)
		}
		return types.Errorf(types.ArityMismatch, "Generic '%s' expects %d type arguments, but %d were provided", key, want, numArgs)
	}
	return nil
}

func (r *GenericResolver) checkConstraints(key DefKey, d types.Definition, args []ast.Type) error {
	for _, c := range r.constraints[key] {
		i := indexOf(d.TypeParams(), c.TypeParam)
		if i < 0 {
			return types.Errorf(types.NotFound, "Type parameter '%s' not found in generic definition '%s'", c.TypeParam, key)
		}
		for _, bound := range c.Bounds {
			if !r.traits.Implements(args[i], bound) {
				return types.Errorf(types.ConstraintViolation, "Type '%s' does not implement required trait '%s'", ast.TypeString(args[i]), bound)
			}
		}
	}
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

// Instantiate returns the mangled name of base instantiated with args, which may be a method as
// `Owner::name`. The instance is cached; instantiating again with structurally-equal arguments
// returns the same name without growing the cache.
func (r *GenericResolver) Instantiate(base string, args []ast.Type) (string, error) {
	inst, err := r.instantiate(ParseDefKey(base), args)
	if err != nil {
		return "", err
	}
	return inst.Name, nil
}

func (r *GenericResolver) instantiate(key DefKey, args []ast.Type) (*Instance, error) {
	d, err := r.lookup(key)
	if err != nil {
		return nil, err
	}
	if err = checkArity(key, d, len(args)); err != nil {
		return nil, err
	}
	if err = r.checkConstraints(key, d, args); err != nil {
		return nil, err
	}
	typeArgs := types.NewTypeList(args...)
	if inst := r.findInstance(key, typeArgs); inst != nil {
		return inst, nil
	}
	name := instanceKey(key, args).String()
	if existing, ok := r.byName.Get(name); ok {
		other := existing.(*Instance)
		return nil, types.Errorf(types.DuplicateDefinition, "Mangled name '%s' is already used by an instance of '%s'", name, other.Base)
	}
	inst := &Instance{Base: key, TypeArgs: typeArgs, Name: name}
	list, ok := r.instances[key]
	if !ok {
		list = immutable.NewList()
	}
	r.instances[key] = list.Append(inst)
	r.byName = r.byName.Set(name, inst)
	return inst, nil
}

func (r *GenericResolver) findInstance(key DefKey, typeArgs types.TypeList) *Instance {
	list, ok := r.instances[key]
	if !ok {
		return nil
	}
	iter := list.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		if inst := v.(*Instance); inst.TypeArgs.Equal(typeArgs) {
			return inst
		}
	}
	return nil
}

// Monomorphize returns the concrete definition of base instantiated with args. Every occurrence of
// a type-parameter is substituted, struct layouts are recomputed, and enum discriminant types are
// derived from the variant count. The definition is named by its mangled name and declares no
// type-parameters. A specialized method keeps its owner, so `Owner::name` of the definition is the
// name returned by Instantiate.
//
// Monomorphize does not read or write the instance cache; see Specialize.
func (r *GenericResolver) Monomorphize(base string, args []ast.Type) (types.Definition, error) {
	return r.monomorphize(ParseDefKey(base), args)
}

func (r *GenericResolver) monomorphize(key DefKey, args []ast.Type) (types.Definition, error) {
	d, err := r.lookup(key)
	if err != nil {
		return nil, err
	}
	if err = checkArity(key, d, len(args)); err != nil {
		return nil, err
	}
	subs := types.ZipTypeMap(d.TypeParams(), args)
	name := instanceKey(key, args).Name

	switch d := d.(type) {
	case *types.StructDef:
		fields := typeutil.SubstituteFields(d.Fields, subs)
		return &types.StructDef{
			Name:    name,
			Fields:  fields,
			IsTuple: d.IsTuple,
			Layout:  r.layout.StructLayout(fields),
		}, nil

	case *types.EnumDef:
		return &types.EnumDef{
			Name:             name,
			Variants:         typeutil.SubstituteVariants(d.Variants, subs),
			DiscriminantType: types.DiscriminantType(len(d.Variants)),
		}, nil

	case *types.FuncDef:
		fn := typeutil.SubstituteFunction(d.Func, subs)
		fn.Name = name
		return &types.FuncDef{Owner: d.Owner, Func: fn}, nil
	}
	return nil, types.Errorf(types.NotFound, "Generic definition '%s' not found", key)
}

// instanceKey returns the key naming the instance of key with args. Methods keep their owner.
func instanceKey(key DefKey, args []ast.Type) DefKey {
	return DefKey{Owner: key.Owner, Name: typeutil.MangleName(key.Name, args)}
}

// Specialize instantiates base with args and monomorphizes it, caching the concrete definition on
// the instance. The concrete definition is only computed once per instance.
func (r *GenericResolver) Specialize(base string, args []ast.Type) (*Instance, error) {
	return r.specialize(ParseDefKey(base), args)
}

func (r *GenericResolver) specialize(key DefKey, args []ast.Type) (*Instance, error) {
	inst, err := r.instantiate(key, args)
	if err != nil {
		return nil, err
	}
	if inst.Def == nil {
		if inst.Def, err = r.monomorphize(key, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// ResolveMethod returns the symbol name of a method called on typeName with type arguments args.
//
// When typeName is itself the mangled name of an instance (`Container_i32`), methods are looked up on
// its base type (`Container`). A generic method found on the base type is instantiated when type
// arguments are given (`Container::display_i32`); otherwise, as for methods which are not
// registered, the symbol is `typeName::method` (`Container_i32::get`), so each instance of the
// base type keeps its own symbol.
func (r *GenericResolver) ResolveMethod(typeName, method string, args []ast.Type) (string, error) {
	key := MethodKey(typeName, method)
	if _, direct := r.defs[key]; !direct {
		base, ok := r.methodKey(typeName, method)
		if !ok || len(args) == 0 || len(r.defs[base].TypeParams()) == 0 {
			return key.String(), nil
		}
		key = base
	}
	inst, err := r.instantiate(key, args)
	if err != nil {
		return "", err
	}
	return inst.Name, nil
}

// methodKey finds the registered key of a method called on typeName, or on the base type of typeName.
func (r *GenericResolver) methodKey(typeName, method string) (DefKey, bool) {
	key := MethodKey(typeName, method)
	if _, ok := r.defs[key]; ok {
		return key, true
	}
	base, ok := r.BaseTypeName(typeName)
	if !ok {
		return key, false
	}
	key = MethodKey(base, method)
	_, ok = r.defs[key]
	return key, ok
}

// BaseTypeName recovers the generic base type of a mangled type name. Names of cached instances are
// resolved exactly; otherwise the longest underscore-delimited prefix of name which is a registered
// type or method owner is returned.
func (r *GenericResolver) BaseTypeName(name string) (string, bool) {
	if v, ok := r.byName.Get(name); ok {
		if inst := v.(*Instance); !inst.Base.IsMethod() {
			return inst.Base.Name, true
		}
	}
	for i := strings.LastIndexByte(name, '_'); i > 0; i = strings.LastIndexByte(name[:i], '_') {
		prefix := name[:i]
		if _, ok := r.defs[TypeKey(prefix)]; ok || r.owners.Contains(prefix) {
			return prefix, true
		}
	}
	return "", false
}

// Instances returns the cached instances of base, in the order they were first instantiated.
func (r *GenericResolver) Instances(base string) []*Instance {
	list, ok := r.instances[ParseDefKey(base)]
	if !ok {
		return nil
	}
	out := make([]*Instance, 0, list.Len())
	iter := list.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		out = append(out, v.(*Instance))
	}
	return out
}

// AllInstances returns every cached instance, sorted by mangled name.
func (r *GenericResolver) AllInstances() []*Instance {
	out := make([]*Instance, 0, r.byName.Len())
	iter := r.byName.Iterator()
	for !iter.Done() {
		_, v := iter.Next()
		out = append(out, v.(*Instance))
	}
	return out
}

// InstanceByName returns the cached instance with the given mangled name.
func (r *GenericResolver) InstanceByName(name string) (*Instance, bool) {
	v, ok := r.byName.Get(name)
	if !ok {
		return nil, false
	}
	return v.(*Instance), true
}

// IsInstantiated reports whether base has been instantiated with args.
func (r *GenericResolver) IsInstantiated(base string, args []ast.Type) bool {
	return r.findInstance(ParseDefKey(base), types.NewTypeList(args...)) != nil
}

// InstantiatedName returns the mangled name of a cached instance of base with args.
func (r *GenericResolver) InstantiatedName(base string, args []ast.Type) (string, bool) {
	inst := r.findInstance(ParseDefKey(base), types.NewTypeList(args...))
	if inst == nil {
		return "", false
	}
	return inst.Name, true
}

// ClearInstantiations drops every cached instance. Registered definitions and constraints are kept.
func (r *GenericResolver) ClearInstantiations() {
	r.instances = make(map[DefKey]*immutable.List)
	r.byName = immutable.NewSortedMap(nil)
}
