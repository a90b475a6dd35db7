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
	"testing"

	"github.com/wdamron/mono/ast"
	. "github.com/wdamron/mono/construct"
	"github.com/wdamron/mono/types"
)

func TestExtractBindings(t *testing.T) {
	p := PEnum("Some", PTuple(PIdent("a"), PBind("b", PWild()), PStruct("P", PField("c", PIdent("c")))))
	binds := ExtractBindings(p, shapeTy)
	names := make([]string, len(binds))
	for i, b := range binds {
		names[i] = b.Name
	}
	if len(names) != 3 || names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Fatalf("unexpected bindings: %v", names)
	}
	if s := PathString(binds[2].Path); s != "$.2.c" {
		t.Fatalf("unexpected path: %s", s)
	}

	pair := &types.Tuple{Elems: []types.Ty{types.I32, types.String}}
	binds = ExtractBindings(PTuple(PIdent("n"), PIdent("s")), pair)
	if len(binds) != 2 || !types.TyEqual(binds[1].Type, types.String) {
		t.Fatalf("unexpected bindings: %+v", binds)
	}
	if binds = ExtractBindings(PRange(Int(1), Int(2), true), types.I32); len(binds) != 0 {
		t.Fatalf("expected no bindings, got %+v", binds)
	}
}

func TestIsIrrefutable(t *testing.T) {
	cases := []struct {
		p    ast.Pattern
		want bool
	}{
		{PWild(), true},
		{PIdent("x"), true},
		{PBind("x", PWild()), true},
		{PBind("x", PLit(Int(1))), false},
		{PTuple(PIdent("a"), PWild()), true},
		{PTuple(PIdent("a"), PLit(Int(1))), false},
		{PStruct("P", PField("a", PIdent("a"))), true},
		{PStruct("P", PField("a", PLit(Int(1)))), false},
		{PStructRest("P", PField("a", PLit(Int(1)))), true},
		{PEnum("Some", PWild()), false},
		{POr(PWild(), PWild()), false},
		{PLit(Bool(true)), false},
	}
	for i, c := range cases {
		if got := IsIrrefutable(c.p); got != c.want {
			t.Fatalf("case %d (%s): expected %v", i, ast.PatternString(c.p), c.want)
		}
	}
}
