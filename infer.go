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
	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/internal/typeutil"
	"github.com/wdamron/mono/types"
)

// InferMethodGenerics infers the type arguments of a generic method from the types of the arguments
// it is called with. Declared parameter types are unified structurally against argTypes, and the
// inferred types are returned in the order of the method's type-parameters.
//
// A method which is not registered infers no type arguments.
func (r *GenericResolver) InferMethodGenerics(typeName, method string, argTypes []ast.Type) ([]ast.Type, error) {
	key, ok := r.methodKey(typeName, method)
	if !ok {
		return nil, nil
	}
	return r.inferGenerics(key, argTypes)
}

// InferFunctionGenerics infers the type arguments of a generic free function from the types of the
// arguments it is called with.
func (r *GenericResolver) InferFunctionGenerics(name string, argTypes []ast.Type) ([]ast.Type, error) {
	if _, err := r.lookup(TypeKey(name)); err != nil {
		return nil, err
	}
	return r.inferGenerics(TypeKey(name), argTypes)
}

func (r *GenericResolver) inferGenerics(key DefKey, argTypes []ast.Type) ([]ast.Type, error) {
	fd, ok := r.defs[key].(*types.FuncDef)
	if !ok {
		return nil, types.Errorf(types.NotFound, "'%s' is not a generic function", key)
	}
	fn := fd.Func
	if len(fn.Params) != len(argTypes) {
		return nil, types.Errorf(types.ArityMismatch, "Parameter count mismatch: expected %d, got %d", len(fn.Params), len(argTypes))
	}
	u := typeutil.NewUnifier(fn.Generics)
	for i, param := range fn.Params {
		if err := u.Unify(param.Type, argTypes[i]); err != nil {
			return nil, err
		}
	}
	inferred := make([]ast.Type, len(fn.Generics))
	for i, name := range fn.Generics {
		t, ok := u.Lookup(name)
		if !ok {
			return nil, types.Errorf(types.TypeInferenceIncomplete, "Could not infer type for generic parameter '%s'", name)
		}
		inferred[i] = t
	}
	return inferred, nil
}
