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

// mono provides generic monomorphization and pattern-match compilation for a statically typed,
// Rust-like language.
//
// A GenericResolver holds generic struct, enum, function, and method templates. It instantiates them
// with concrete type arguments under deterministic mangled names, validates trait bounds, infers
// method type arguments from argument types, and produces fully substituted concrete definitions.
// A Monomorphizer drives a resolver over a whole program, specializing every generic it reaches.
//
// A PatternMatcher checks match arms for exhaustiveness and reachability, and compiles individual
// patterns into ordered runtime conditions plus value bindings for code generation.
//
//
// Supported Features:
//
//   * Instance caching keyed by structural equality of type arguments
//   * Pluggable trait registries with supertraits and generic impls
//   * Method type-argument inference by structural unification
//   * Transitive specialization with infinite-size and recursion-depth checks
//   * First-match reachability for enum, bool, and catch-all matches
//   * Nested enum, struct, tuple, range, or-, and binding patterns
//
//
// Links:
//
// Monomorphization: https://en.wikipedia.org/wiki/Monomorphization
//
// Warnings for pattern matching (Maranget, 2007): http://moscova.inria.fr/~maranget/papers/warn/index.html
package mono
