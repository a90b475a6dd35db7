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

package main

import (
	"bytes"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wdamron/mono/ast"
	"github.com/wdamron/mono/internal/syntax"
)

// supportedFormats constrains the format version declared by session files.
var supportedFormats = mustConstraint("^1")

func mustConstraint(c string) *semver.Constraints {
	cs, err := semver.NewConstraint(c)
	if err != nil {
		panic(err)
	}
	return cs
}

// Session is the contents of a session file: declarations, followed by the requests and
// queries to run against them.
type Session struct {
	Format string `yaml:"format"`

	Structs     []StructDecl     `yaml:"structs"`
	Enums       []EnumDecl       `yaml:"enums"`
	Functions   []FuncDecl       `yaml:"functions"`
	Methods     []FuncDecl       `yaml:"methods"`
	Traits      []TraitDecl      `yaml:"traits"`
	Impls       []ImplDecl       `yaml:"impls"`
	Constraints []ConstraintDecl `yaml:"constraints"`

	Instantiate    []RequestDecl `yaml:"instantiate"`
	ResolveMethods []MethodQuery `yaml:"resolve_methods"`
	Infer          []InferQuery  `yaml:"infer"`
	Matches        []MatchQuery  `yaml:"matches"`
}

type FieldDecl struct {
	Name   string   `yaml:"name"`
	Type   TypeExpr `yaml:"type"`
	Public bool     `yaml:"pub"`
}

type StructDecl struct {
	Name     string      `yaml:"name"`
	Generics []string    `yaml:"generics"`
	Fields   []FieldDecl `yaml:"fields"`
	Tuple    bool        `yaml:"tuple"`
}

type VariantDecl struct {
	Name   string      `yaml:"name"`
	Data   []TypeExpr  `yaml:"data"`
	Fields []FieldDecl `yaml:"fields"`
}

type EnumDecl struct {
	Name     string        `yaml:"name"`
	Generics []string      `yaml:"generics"`
	Variants []VariantDecl `yaml:"variants"`
}

type ParamDecl struct {
	Name string   `yaml:"name"`
	Type TypeExpr `yaml:"type"`
}

// CallDecl is a call statement in a function body.
type CallDecl struct {
	Func     string     `yaml:"func"`
	TypeArgs []TypeExpr `yaml:"type_args"`
}

type FuncDecl struct {
	Owner    string      `yaml:"owner"`
	Name     string      `yaml:"name"`
	Generics []string    `yaml:"generics"`
	Params   []ParamDecl `yaml:"params"`
	Returns  *TypeExpr   `yaml:"returns"`
	Calls    []CallDecl  `yaml:"calls"`
}

type TraitDecl struct {
	Name   string   `yaml:"name"`
	Supers []string `yaml:"supers"`
}

type ImplDecl struct {
	Trait    string   `yaml:"trait"`
	Generics []string `yaml:"generics"`
	For      TypeExpr `yaml:"for"`
}

type ConstraintDecl struct {
	Def    string   `yaml:"def"`
	Param  string   `yaml:"param"`
	Bounds []string `yaml:"bounds"`
}

type RequestDecl struct {
	Base string     `yaml:"base"`
	Args []TypeExpr `yaml:"args"`
}

type MethodQuery struct {
	Type   string     `yaml:"type"`
	Method string     `yaml:"method"`
	Args   []TypeExpr `yaml:"args"`
}

// InferQuery infers the type-arguments of a call from its argument types. Owner is set for
// method calls.
type InferQuery struct {
	Owner string     `yaml:"owner"`
	Name  string     `yaml:"name"`
	Args  []TypeExpr `yaml:"args"`
}

type MatchQuery struct {
	Type string        `yaml:"type"`
	Arms []PatternExpr `yaml:"arms"`
}

// TypeExpr is a type written in surface syntax.
type TypeExpr struct {
	ast.Type
}

func (t *TypeExpr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected a type, found a %s", node.Line, nodeKind(node))
	}
	ty, err := syntax.ParseType(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	t.Type = ty
	return nil
}

// PatternExpr is a pattern written in surface syntax.
type PatternExpr struct {
	ast.Pattern
}

func (p *PatternExpr) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected a pattern, found a %s", node.Line, nodeKind(node))
	}
	pat, err := syntax.ParsePattern(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	p.Pattern = pat
	return nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	}
	return "node"
}

func typeArgs(exprs []TypeExpr) []ast.Type {
	if len(exprs) == 0 {
		return nil
	}
	ts := make([]ast.Type, len(exprs))
	for i, e := range exprs {
		ts[i] = e.Type
	}
	return ts
}

// LoadSession reads and decodes a session file.
func LoadSession(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodeSession(data)
}

// DecodeSession decodes a session, rejecting unknown keys and unsupported format versions.
func DecodeSession(data []byte) (*Session, error) {
	var s Session
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decoding session")
	}
	if s.Format == "" {
		return nil, errors.New("session format version is required")
	}
	v, err := semver.NewVersion(s.Format)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid session format %q", s.Format)
	}
	if !supportedFormats.Check(v) {
		return nil, errors.Errorf("unsupported session format %s (supported: %s)", v, supportedFormats)
	}
	return &s, nil
}
