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

package ndt

import (
	"github.com/google/uuid"
)

// EllipsisKind discriminates the three shapes an ellipsis capture can
// take, depending on what dimension constructor the candidate used.
type EllipsisKind uint8

const (
	// FixedSeq captures a run of FixedDim constructors.
	FixedSeq EllipsisKind = iota
	// VarSeq captures a single VarDim, plus the logical index the match
	// descended through (needed to reconstruct the ragged dtype later).
	VarSeq
	// ArraySeq captures a run of flexible Array constructors.
	ArraySeq
)

// EllipsisBinding is what an ellipsis pattern variable is bound to
// after a successful Match.
type EllipsisBinding struct {
	Kind EllipsisKind

	// FixedDims holds the matched FixedDim types, captured outermost
	// first, for Kind == FixedSeq.
	FixedDims []Type

	// VarDim and LinearIndex are set for Kind == VarSeq: VarDim is the
	// single matched var dimension (or the zero Type if the sequence
	// captured zero dimensions) and LinearIndex is the logical index
	// Match was resolving when it captured it.
	VarDim      Type
	LinearIndex int64

	// ArrayDims holds the matched Array types, captured outermost
	// first, for Kind == ArraySeq.
	ArrayDims []Type
}

// SymbolTable holds the bindings a Matcher produces for one pattern
// match: symbolic shapes, typevars, and named ellipsis captures. Each
// call to Match gets a fresh table; MatchWithTable uses the caller's
// table, so matches that are handed the same table share its bindings.
// Session is a per-table id for log correlation only (symtable_t in
// the original is per-call and stack-allocated).
type SymbolTable struct {
	Session uuid.UUID

	shapes   map[string]int64
	typevars map[string]Type
	ellipsis map[string]EllipsisBinding
}

// NewSymbolTable returns an empty table for one match session.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Session:  uuid.New(),
		shapes:   make(map[string]int64),
		typevars: make(map[string]Type),
		ellipsis: make(map[string]EllipsisBinding),
	}
}

// BindShape records a symbolic dimension's concrete shape. Re-binding
// the same name to a different shape is a caller error; Match never
// does this (it unifies before binding).
func (s *SymbolTable) BindShape(name string, shape int64) {
	s.shapes[name] = shape
}

// FindShape looks up a symbolic dimension's bound shape.
func (s *SymbolTable) FindShape(name string) (int64, bool) {
	v, ok := s.shapes[name]
	return v, ok
}

// BindTypevar records a type variable's bound type.
func (s *SymbolTable) BindTypevar(name string, t Type) {
	s.typevars[name] = t
}

// FindTypevar looks up a type variable's bound type.
func (s *SymbolTable) FindTypevar(name string) (Type, bool) {
	v, ok := s.typevars[name]
	return v, ok
}

// BindEllipsis records a named ellipsis capture.
func (s *SymbolTable) BindEllipsis(name string, b EllipsisBinding) {
	s.ellipsis[name] = b
}

// FindEllipsis looks up a named ellipsis capture.
func (s *SymbolTable) FindEllipsis(name string) (EllipsisBinding, bool) {
	v, ok := s.ellipsis[name]
	return v, ok
}
