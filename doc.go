// Copyright 2026 The xnd Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ndt implements datashape: a structural type system for
// n-dimensional typed data.
//
// A [Type] is an immutable, reference-counted description of the memory
// layout and element type of a multidimensional array, a heterogeneous
// record or tuple, a tagged union, or a polymorphic function signature.
// Types are built with constructor functions (NewFixedDim, NewVarDim,
// NewTuple, NewRecord, ...), compared structurally with Equal and Hash, matched
// against polymorphic patterns with Match, joined with Unify,
// instantiated from a solved symbol table with Substitute, and
// typechecked against a call site with Typecheck.
//
// This package is the type-level engine only: it manipulates
// descriptions, not payloads. The concrete-syntax parser, the
// pretty-printer, the buffer-protocol codec, the binary serializer, and
// multi-signature overload dispatch are external collaborators; see
// package ndt/external for their interface boundary.
package ndt
