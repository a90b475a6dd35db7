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

package ast

// TypeEqual reports whether a and b are structurally equal.
func TypeEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch a := a.(type) {
	case *Named:
		b, ok := b.(*Named)
		return ok && a.Name == b.Name
	case *Generic:
		b, ok := b.(*Generic)
		return ok && a.Name == b.Name && TypesEqual(a.Args, b.Args)
	case *Array:
		b, ok := b.(*Array)
		if !ok || a.Sized() != b.Sized() || (a.Sized() && *a.Size != *b.Size) {
			return false
		}
		return TypeEqual(a.Elem, b.Elem)
	case *Slice:
		b, ok := b.(*Slice)
		return ok && TypeEqual(a.Elem, b.Elem)
	case *Vec:
		b, ok := b.(*Vec)
		return ok && TypeEqual(a.Elem, b.Elem)
	case *HashMap:
		b, ok := b.(*HashMap)
		return ok && TypeEqual(a.Key, b.Key) && TypeEqual(a.Value, b.Value)
	case *Reference:
		b, ok := b.(*Reference)
		return ok && a.Mutable == b.Mutable && TypeEqual(a.Inner, b.Inner)
	}
	return false
}

// TypesEqual reports whether a and b have equal length and pairwise equal types.
func TypesEqual(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !TypeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
