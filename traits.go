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
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/internal/typeutil"
	"github.com/wdamron/mono/types"
)

// TraitRegistry decides whether concrete types implement traits. The resolver consults its registry
// when validating the trait bounds of generic instantiations.
type TraitRegistry interface {
	Implements(t ast.Type, trait string) bool
}

type builtinTraits struct{}

// BuiltinTraits returns a registry covering the primitive types: `i32`, `f64`, `bool`, and `String`
// implement Display, Clone, and Debug; vectors and arrays implement Clone and Debug.
func BuiltinTraits() TraitRegistry { return builtinTraits{} }

func (builtinTraits) Implements(t ast.Type, trait string) bool {
	switch t := t.(type) {
	case *ast.Named:
		switch t.Name {
		case "i32", "f64", "bool", "String":
			return trait == "Display" || trait == "Clone" || trait == "Debug"
		}
	case *ast.Vec, *ast.Array:
		return trait == "Clone" || trait == "Debug"
	}
	return false
}

// Trait is a named trait with (transitive) supertraits and subtraits.
type Trait struct {
	Name  string
	Super map[string]*Trait
	Sub   map[string]*Trait
	Impls []*Impl
}

// Impl implements a trait for a type. The type may mention the impl's own type-parameters:
// `impl<T> Clone for Vec<T>`.
type Impl struct {
	Trait    *Trait
	Generics []string
	For      ast.Type
}

// Matches reports whether the impl applies to the concrete type t.
func (impl *Impl) Matches(t ast.Type) bool {
	if len(impl.Generics) == 0 {
		return ast.TypeEqual(impl.For, t)
	}
	return typeutil.NewUnifier(impl.Generics).Unify(impl.For, t) == nil
}

// Add a supertrait to the trait. This is an alias for `super.AddSubTrait(sub)`.
func (sub *Trait) AddSuperTrait(super *Trait) { super.AddSubTrait(sub) }

// Add a subtrait to the trait.
func (super *Trait) AddSubTrait(sub *Trait) {
	if super.Sub != nil && super.Sub[sub.Name] != nil {
		return
	}
	if sub.Super == nil {
		sub.Super = make(map[string]*Trait)
	}
	if super.Sub == nil {
		super.Sub = make(map[string]*Trait)
	}
	sub.Super[super.Name] = super
	super.Sub[sub.Name] = sub
}

// Check if a trait is declared as a (transitive) subtrait of another trait.
func (t *Trait) HasSuperTrait(super *Trait) bool {
	return t.hasSuperTrait(set.New[string](8), super.Name)
}

func (t *Trait) hasSuperTrait(seen *set.Set[string], name string) bool {
	if !seen.Insert(t.Name) {
		return false
	}
	for superName, super := range t.Super {
		if superName == name || super.hasSuperTrait(seen, name) {
			return true
		}
	}
	return false
}

// Visit all impls for the trait and all subtraits. Subtraits will be visited first.
func (t *Trait) FindImpl(found func(*Impl) bool) bool {
	ok, _ := t.findImpl(set.New[string](8), found)
	return ok
}

func (t *Trait) findImpl(seen *set.Set[string], found func(*Impl) bool) (ok, shouldContinue bool) {
	if !seen.Insert(t.Name) {
		return false, true
	}
	for _, sub := range t.Sub {
		if ok, shouldContinue = sub.findImpl(seen, found); !shouldContinue {
			return ok, false
		}
	}
	for _, impl := range t.Impls {
		if found(impl) {
			return true, false
		}
	}
	return false, true
}

// Traits is a registry of declared traits and their impls. Traits which are not declared, or which
// have no matching impl, are looked up in a fallback registry.
//
// Traits cannot be used concurrently.
type Traits struct {
	traits   map[string]*Trait
	fallback TraitRegistry
}

var _ TraitRegistry = (*Traits)(nil)

// NewTraits creates an empty trait registry. fallback may be nil.
func NewTraits(fallback TraitRegistry) *Traits {
	return &Traits{traits: make(map[string]*Trait), fallback: fallback}
}

// Declare a trait with the given (already declared) supertraits.
func (ts *Traits) Declare(name string, supers ...string) (*Trait, error) {
	if _, exists := ts.traits[name]; exists {
		return nil, types.Errorf(types.DuplicateDefinition, "Trait '%s' is already declared", name)
	}
	t := &Trait{Name: name}
	for _, superName := range supers {
		super, ok := ts.traits[superName]
		if !ok {
			return nil, types.Errorf(types.NotFound, "Trait '%s' not found", superName)
		}
		t.AddSuperTrait(super)
	}
	ts.traits[name] = t
	return t, nil
}

// Lookup a declared trait.
func (ts *Traits) Trait(name string) (*Trait, bool) {
	t, ok := ts.traits[name]
	return t, ok
}

// AddImpl implements a declared trait for a type, which may mention the given type-parameters.
func (ts *Traits) AddImpl(trait string, generics []string, forType ast.Type) (*Impl, error) {
	t, ok := ts.traits[trait]
	if !ok {
		return nil, types.Errorf(types.NotFound, "Trait '%s' not found", trait)
	}
	for _, existing := range t.Impls {
		if ast.TypeEqual(existing.For, forType) {
			return nil, types.Errorf(types.DuplicateDefinition, "Trait '%s' is already implemented for '%s'", trait, ast.TypeString(forType))
		}
	}
	impl := &Impl{Trait: t, Generics: generics, For: forType}
	t.Impls = append(t.Impls, impl)
	return impl, nil
}

// Implements reports whether t implements the trait, directly or through an impl of a subtrait.
func (ts *Traits) Implements(t ast.Type, trait string) bool {
	if tr, ok := ts.traits[trait]; ok {
		if tr.FindImpl(func(impl *Impl) bool { return impl.Matches(t) }) {
			return true
		}
	}
	return ts.fallback != nil && ts.fallback.Implements(t, trait)
}
