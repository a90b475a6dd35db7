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

import "strings"

// DefKey identifies a generic definition. Methods are keyed by their owner type and name; structs,
// enums, and free functions have an empty Owner. All keys share a single namespace.
type DefKey struct {
	Owner string
	Name  string
}

// Key for a struct, enum, or free function.
func TypeKey(name string) DefKey { return DefKey{Name: name} }

// Key for a method declared on an owner type.
func MethodKey(owner, name string) DefKey { return DefKey{Owner: owner, Name: name} }

// ParseDefKey parses `Owner::name` into a method key, or any other string into a plain key.
func ParseDefKey(s string) DefKey {
	if i := strings.LastIndex(s, "::"); i > 0 {
		return DefKey{Owner: s[:i], Name: s[i+2:]}
	}
	return DefKey{Name: s}
}

// IsMethod reports whether k names a method.
func (k DefKey) IsMethod() bool { return k.Owner != "" }

func (k DefKey) String() string {
	if k.Owner == "" {
		return k.Name
	}
	return k.Owner + "::" + k.Name
}
