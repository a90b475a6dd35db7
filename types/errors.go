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

package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies errors returned while resolving generics and compiling patterns.
type ErrorKind int

const (
	DuplicateDefinition ErrorKind = iota + 1
	NotFound
	ArityMismatch
	ConstraintViolation
	TypeInferenceConflict
	TypeInferenceIncomplete
	PatternShapeMismatch
	InvalidBindingContext
	InfiniteSize
	RecursionLimit
)

var kindNames = [...]string{
	DuplicateDefinition:     "duplicate definition",
	NotFound:                "not found",
	ArityMismatch:           "arity mismatch",
	ConstraintViolation:     "constraint violation",
	TypeInferenceConflict:   "type inference conflict",
	TypeInferenceIncomplete: "type inference incomplete",
	PatternShapeMismatch:    "pattern shape mismatch",
	InvalidBindingContext:   "invalid binding context",
	InfiniteSize:            "infinite size",
	RecursionLimit:          "recursion limit",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown error"
}

// Error is returned for invalid definitions, instantiations, and patterns.
// Errors of the same Kind match with errors.Is, regardless of their message.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Msg
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Errorf creates an Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinels for use with errors.Is.
var (
	ErrDuplicateDefinition     = &Error{Kind: DuplicateDefinition}
	ErrNotFound                = &Error{Kind: NotFound}
	ErrArityMismatch           = &Error{Kind: ArityMismatch}
	ErrConstraintViolation     = &Error{Kind: ConstraintViolation}
	ErrTypeInferenceConflict   = &Error{Kind: TypeInferenceConflict}
	ErrTypeInferenceIncomplete = &Error{Kind: TypeInferenceIncomplete}
	ErrPatternShapeMismatch    = &Error{Kind: PatternShapeMismatch}
	ErrInvalidBindingContext   = &Error{Kind: InvalidBindingContext}
	ErrInfiniteSize            = &Error{Kind: InfiniteSize}
	ErrRecursionLimit          = &Error{Kind: RecursionLimit}
)

// KindOf returns the kind of the first *Error in the chain of err, or 0 if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
