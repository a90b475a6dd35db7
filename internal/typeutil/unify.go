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

package typeutil

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/types"
)

// Unifier infers type-parameters by structurally matching declared (parameter) types against
// concrete (argument) types. Bindings accumulate across calls to Unify.
//
// Unifier is not safe for concurrent use.
type Unifier struct {
	params *set.Set[string]
	bound  types.TypeMapBuilder
}

// NewUnifier creates a Unifier which infers the given type-parameters.
func NewUnifier(params []string) *Unifier {
	return &Unifier{params: set.From(params), bound: types.NewTypeMapBuilder()}
}

// IsParam reports whether name is one of the type-parameters being inferred.
func (u *Unifier) IsParam(name string) bool { return u.params.Contains(name) }

// Lookup returns the type inferred for a type-parameter, if any.
func (u *Unifier) Lookup(name string) (ast.Type, bool) { return u.bound.Get(name) }

// Bindings finalizes the inferred types into an immutable map. The Unifier should not be used afterwards.
func (u *Unifier) Bindings() types.TypeMap { return u.bound.Build() }

// Unify matches param against arg:
//
//   - a Named type-parameter binds to arg, or must equal its earlier binding;
//   - Vec, Array, Reference, and Generic types of the same shape unify element-wise;
//   - any other pair of types must be structurally equal.
func (u *Unifier) Unify(param, arg ast.Type) error {
	switch p := param.(type) {
	case *ast.Named:
		if !u.params.Contains(p.Name) {
			break
		}
		if prev, ok := u.bound.Get(p.Name); ok {
			if !ast.TypeEqual(prev, arg) {
				return types.Errorf(types.TypeInferenceConflict, "Type inference conflict for '%s': inferred both '%s' and '%s'",
					p.Name, ast.TypeString(prev), ast.TypeString(arg))
			}
			return nil
		}
		u.bound.Set(p.Name, arg)
		return nil

	case *ast.Vec:
		if a, ok := arg.(*ast.Vec); ok {
			return u.Unify(p.Elem, a.Elem)
		}

	case *ast.Array:
		if a, ok := arg.(*ast.Array); ok {
			return u.Unify(p.Elem, a.Elem)
		}

	case *ast.Reference:
		if a, ok := arg.(*ast.Reference); ok && a.Mutable == p.Mutable {
			return u.Unify(p.Inner, a.Inner)
		}

	case *ast.Generic:
		if a, ok := arg.(*ast.Generic); ok && a.Name == p.Name && len(a.Args) == len(p.Args) {
			for i := range p.Args {
				if err := u.Unify(p.Args[i], a.Args[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if !ast.TypeEqual(param, arg) {
		return types.Errorf(types.TypeInferenceConflict, "Cannot infer generic types: parameter type '%s' does not match argument type '%s'",
			ast.TypeString(param), ast.TypeString(arg))
	}
	return nil
}
