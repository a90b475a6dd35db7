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
	"github.com/wdamron/mono/types"
)

// TypeCatalog provides the definitions of the nominal types which patterns are matched against.
type TypeCatalog interface {
	// VariantDiscriminant returns the declaration index of a variant.
	VariantDiscriminant(enum, variant string) (int, error)
	// VariantDataTypes returns the payload types of a variant, or nil if the variant carries no data.
	VariantDataTypes(enum, variant string) ([]types.Ty, error)
	// FieldType returns the type of a struct field.
	FieldType(strct, field string) (types.Ty, error)
	// EnumVariants returns the variant names of an enum in declaration order.
	EnumVariants(enum string) ([]string, error)
}

// Status classifies the result of an exhaustiveness check.
type Status uint8

const (
	// Every value is matched by some arm, and every arm is reachable.
	Exhaustive Status = iota
	// Some values are not matched by any arm.
	Missing
	// Every value is matched, but some arms can never be selected.
	Unreachable
)

func (s Status) String() string {
	switch s {
	case Exhaustive:
		return "exhaustive"
	case Missing:
		return "missing"
	case Unreachable:
		return "unreachable"
	}
	return "invalid"
}

// MissingPattern describes a value which is not matched by any arm.
type MissingPattern struct {
	Description string
	Type        types.Ty
}

type ExhaustivenessResult struct {
	Status Status
	// Missing is set when Status is Missing.
	Missing []MissingPattern
	// Unreachable holds the indices of unreachable arms, in ascending order, when Status is Unreachable.
	Unreachable []int
}

// PatternMatcher checks match arms for exhaustiveness and compiles patterns into conditions and
// bindings. Scratch space is reused across calls.
//
// A PatternMatcher is not safe for concurrent use.
type PatternMatcher struct {
	unreachable []int
	c           patternCompiler
}

func NewPatternMatcher() *PatternMatcher { return &PatternMatcher{} }

// CheckExhaustiveness reports whether the arms in patterns cover every value of t, and which
// arms are shadowed by earlier arms. Arms are selected first-match: every arm following a
// catch-all pattern is unreachable.
//
// Integer coverage only considers catch-all patterns; literal and range arms never make an
// integer match exhaustive.
func (pm *PatternMatcher) CheckExhaustiveness(cat TypeCatalog, patterns []ast.Pattern, t types.Ty) (ExhaustivenessResult, error) {
	pm.unreachable = pm.unreachable[:0]
	switch t := t.(type) {
	case *types.Enum:
		return pm.checkEnum(cat, patterns, t)
	case *types.Prim:
		switch t.Kind {
		case types.BoolKind:
			return pm.checkBool(patterns, t)
		case types.IntKind:
			return pm.checkInt(patterns, t)
		}
	}
	return pm.checkCatchAll(patterns, t)
}

func (pm *PatternMatcher) checkEnum(cat TypeCatalog, patterns []ast.Pattern, t *types.Enum) (ExhaustivenessResult, error) {
	variants, err := cat.EnumVariants(t.Name)
	if err != nil {
		return ExhaustivenessResult{}, err
	}
	known := set.From(variants)
	covered := set.New[string](len(variants))
	cover := func(variant string) error {
		if !known.Contains(variant) {
			return types.Errorf(types.NotFound, "Unknown variant '%s' for enum '%s'", variant, t.Name)
		}
		covered.Insert(variant)
		return nil
	}

	hasWildcard := false
	for i, p := range patterns {
		if hasWildcard {
			pm.unreachable = append(pm.unreachable, i)
			continue
		}
		switch p := stripBindings(p).(type) {
		case *ast.WildcardPattern, *ast.IdentPattern:
			hasWildcard = true

		case *ast.EnumPattern:
			if covered.Contains(p.Variant) {
				pm.unreachable = append(pm.unreachable, i)
				continue
			}
			if err = cover(p.Variant); err != nil {
				return ExhaustivenessResult{}, err
			}

		case *ast.OrPattern:
			// Alternatives which are already covered do not make the arm unreachable.
			for _, alt := range p.Alts {
				switch alt := stripBindings(alt).(type) {
				case *ast.WildcardPattern, *ast.IdentPattern:
					hasWildcard = true
				case *ast.EnumPattern:
					if err = cover(alt.Variant); err != nil {
						return ExhaustivenessResult{}, err
					}
				}
			}

		default:
			return ExhaustivenessResult{}, types.Errorf(types.PatternShapeMismatch, "Invalid pattern type for enum matching: %s", ast.PatternString(p))
		}
	}

	if hasWildcard || covered.Size() == len(variants) {
		return pm.reachability(), nil
	}
	var missing []MissingPattern
	for _, v := range variants {
		if !covered.Contains(v) {
			missing = append(missing, MissingPattern{Description: t.Name + "::" + v, Type: t})
		}
	}
	return ExhaustivenessResult{Status: Missing, Missing: missing}, nil
}

func (pm *PatternMatcher) checkBool(patterns []ast.Pattern, t *types.Prim) (ExhaustivenessResult, error) {
	seen := set.New[bool](2)
	hasWildcard := false
	for i, p := range patterns {
		if hasWildcard {
			pm.unreachable = append(pm.unreachable, i)
			continue
		}
		switch p := stripBindings(p).(type) {
		case *ast.WildcardPattern, *ast.IdentPattern:
			hasWildcard = true

		case *ast.LiteralPattern:
			v, ok := p.Value.(*ast.BoolLit)
			if !ok {
				return ExhaustivenessResult{}, types.Errorf(types.PatternShapeMismatch, "Invalid pattern type for boolean matching: %s", ast.PatternString(p))
			}
			if !seen.Insert(v.Value) {
				pm.unreachable = append(pm.unreachable, i)
			}

		case *ast.OrPattern:
			for _, alt := range p.Alts {
				switch alt := stripBindings(alt).(type) {
				case *ast.WildcardPattern, *ast.IdentPattern:
					hasWildcard = true
				case *ast.LiteralPattern:
					v, ok := alt.Value.(*ast.BoolLit)
					if !ok {
						return ExhaustivenessResult{}, types.Errorf(types.PatternShapeMismatch, "Invalid pattern type for boolean matching: %s", ast.PatternString(alt))
					}
					seen.Insert(v.Value)
				default:
					return ExhaustivenessResult{}, types.Errorf(types.PatternShapeMismatch, "Invalid pattern type for boolean matching: %s", ast.PatternString(alt))
				}
			}

		default:
			return ExhaustivenessResult{}, types.Errorf(types.PatternShapeMismatch, "Invalid pattern type for boolean matching: %s", ast.PatternString(p))
		}
	}

	if hasWildcard || seen.Size() == 2 {
		return pm.reachability(), nil
	}
	var missing []MissingPattern
	for _, v := range [2]bool{true, false} {
		if !seen.Contains(v) {
			desc := "false"
			if v {
				desc = "true"
			}
			missing = append(missing, MissingPattern{Description: desc, Type: t})
		}
	}
	return ExhaustivenessResult{Status: Missing, Missing: missing}, nil
}

func (pm *PatternMatcher) checkInt(patterns []ast.Pattern, t *types.Prim) (ExhaustivenessResult, error) {
	for _, p := range patterns {
		switch p := stripBindings(p).(type) {
		case *ast.WildcardPattern, *ast.IdentPattern, *ast.LiteralPattern, *ast.RangePattern, *ast.OrPattern:
		default:
			return ExhaustivenessResult{}, types.Errorf(types.PatternShapeMismatch, "Invalid pattern type for integer matching: %s", ast.PatternString(p))
		}
	}
	return pm.checkCatchAll(patterns, t)
}

func (pm *PatternMatcher) checkCatchAll(patterns []ast.Pattern, t types.Ty) (ExhaustivenessResult, error) {
	hasWildcard := false
	for i, p := range patterns {
		if hasWildcard {
			pm.unreachable = append(pm.unreachable, i)
			continue
		}
		hasWildcard = isCatchAll(p)
	}
	if !hasWildcard {
		return ExhaustivenessResult{Status: Missing, Missing: []MissingPattern{{Description: "_ (wildcard)", Type: t}}}, nil
	}
	return pm.reachability(), nil
}

func (pm *PatternMatcher) reachability() ExhaustivenessResult {
	if len(pm.unreachable) == 0 {
		return ExhaustivenessResult{Status: Exhaustive}
	}
	return ExhaustivenessResult{Status: Unreachable, Unreachable: append([]int(nil), pm.unreachable...)}
}

// isCatchAll reports whether p matches every value without testing it.
func isCatchAll(p ast.Pattern) bool {
	switch p := stripBindings(p).(type) {
	case *ast.WildcardPattern, *ast.IdentPattern:
		return true
	case *ast.OrPattern:
		for _, alt := range p.Alts {
			if isCatchAll(alt) {
				return true
			}
		}
	}
	return false
}

func stripBindings(p ast.Pattern) ast.Pattern {
	for {
		b, ok := p.(*ast.BindingPattern)
		if !ok {
			return p
		}
		p = b.Pattern
	}
}
