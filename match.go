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

import "maps"

// Match decides whether candidate is an instance of pattern, binding
// any symbolic dimensions, typevars and named ellipses it contains
// into a fresh SymbolTable that is discarded afterwards (MatchWithTable
// keeps the bindings). It returns (matched, failed): matched is false
// on a structural mismatch, and failed reports a *Context failure,
// meaning the match itself could not be attempted (never a plain
// mismatch).
func Match(pattern, candidate Type, ctx *Context) (bool, bool) {
	tbl := NewSymbolTable()
	ok := matchWith(pattern, candidate, tbl, ctx)
	return ok, ctx.Failed()
}

// MatchWithTable is Match but lets the caller supply (and inspect) the
// SymbolTable, for callers that need the bindings on success.
func MatchWithTable(pattern, candidate Type, tbl *SymbolTable, ctx *Context) bool {
	return matchWith(pattern, candidate, tbl, ctx)
}

func matchWith(pattern, candidate Type, tbl *SymbolTable, ctx *Context) bool {
	if !pattern.IsValid() || !candidate.IsValid() {
		return false
	}

	if pattern.Tag() == Typevar {
		name := pattern.raw.payload.(*typevarPayload).name
		if bound, ok := tbl.FindTypevar(name); ok {
			return typesStructurallyEqual(bound, candidate)
		}
		tbl.BindTypevar(name, candidate)
		return true
	}

	if pattern.Tag() == EllipsisDim {
		return matchEllipsis(pattern, candidate, tbl, ctx)
	}

	if pattern.Tag() == SymbolicDim {
		return matchSymbolicDim(pattern, candidate, tbl, ctx)
	}

	if pattern.Tag() != candidate.Tag() {
		return false
	}
	if pattern.IsOptional() != candidate.IsOptional() {
		return false
	}

	switch pattern.Tag() {
	case Bool, Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64,
		BFloat16, Float16, Float32, Float64,
		BComplex32, Complex32, Complex64, Complex128,
		String, Bytes, Char, FixedString, FixedBytes:
		return matchEndian(pattern, candidate)

	case AnyKind, ScalarKind, SignedKind, UnsignedKind, FloatKind, ComplexKind,
		FixedStringKind, FixedBytesKind:
		return true

	case FixedDim:
		p := pattern.raw.payload.(*fixedDimPayload)
		c := candidate.raw.payload.(*fixedDimPayload)
		if p.shape != c.shape {
			return false
		}
		return matchWith(p.inner, c.inner, tbl, ctx)

	case VarDim, VarDimElem:
		p := pattern.raw.payload.(*varDimPayload)
		var c *varDimPayload
		switch cp := candidate.raw.payload.(type) {
		case *varDimPayload:
			c = cp
		case *varDimElemPayload:
			c = &cp.varDimPayload
		default:
			return false
		}
		return matchWith(p.inner, c.inner, tbl, ctx)

	case Array:
		p := pattern.raw.payload.(*arrayPayload)
		c := candidate.raw.payload.(*arrayPayload)
		return matchWith(p.inner, c.inner, tbl, ctx)

	case Ref:
		p := pattern.raw.payload.(*refPayload)
		c := candidate.raw.payload.(*refPayload)
		return matchWith(p.inner, c.inner, tbl, ctx)

	case Constr:
		p := pattern.raw.payload.(*constrPayload)
		c := candidate.raw.payload.(*constrPayload)
		return p.name == c.name && matchWith(p.inner, c.inner, tbl, ctx)

	case Nominal:
		p := pattern.raw.payload.(*nominalPayload)
		c := candidate.raw.payload.(*nominalPayload)
		return p.name == c.name && matchWith(p.inner, c.inner, tbl, ctx)

	case Tuple:
		p := pattern.raw.payload.(*tuplePayload)
		c := candidate.raw.payload.(*tuplePayload)
		if len(p.types) != len(c.types) {
			return false
		}
		for i := range p.types {
			if !matchWith(p.types[i], c.types[i], tbl, ctx) {
				return false
			}
		}
		return true

	case Record:
		p := pattern.raw.payload.(*recordPayload)
		c := candidate.raw.payload.(*recordPayload)
		if len(p.types) != len(c.types) {
			return false
		}
		for i := range p.types {
			if p.names[i] != c.names[i] {
				return false
			}
			if !matchWith(p.types[i], c.types[i], tbl, ctx) {
				return false
			}
		}
		return true

	case Union:
		p := pattern.raw.payload.(*unionPayload)
		c := candidate.raw.payload.(*unionPayload)
		if len(p.types) != len(c.types) {
			return false
		}
		for i := range p.types {
			if p.tags[i] != c.tags[i] {
				return false
			}
			if !matchWith(p.types[i], c.types[i], tbl, ctx) {
				return false
			}
		}
		return true

	case Categorical:
		p := pattern.raw.payload.(*categoricalPayload)
		c := candidate.raw.payload.(*categoricalPayload)
		if len(p.values) != len(c.values) {
			return false
		}
		for i := range p.values {
			if compareCategoryValues(p.values[i], c.values[i]) != 0 {
				return false
			}
		}
		return true

	default:
		return ctx.Fail(NotImplementedError, "match not implemented for this type")
	}
}

// matchSymbolicDim matches a symbolic dimension against a concrete
// FixedDim candidate, binding (or checking) the symbol's shape in tbl.
// Handled as a pre-check alongside Typevar and EllipsisDim since a
// SymbolicDim pattern's tag never equals the FixedDim tag it matches
// against.
func matchSymbolicDim(pattern, candidate Type, tbl *SymbolTable, ctx *Context) bool {
	if pattern.IsOptional() != candidate.IsOptional() {
		return false
	}
	p := pattern.raw.payload.(*symbolicDimPayload)

	var cShape int64
	var cInner Type
	switch cp := candidate.raw.payload.(type) {
	case *fixedDimPayload:
		cShape, cInner = cp.shape, cp.inner
	default:
		return false
	}

	if bound, ok := tbl.FindShape(p.name); ok {
		if bound != cShape {
			return false
		}
	} else {
		tbl.BindShape(p.name, cShape)
	}
	return matchWith(p.inner, cInner, tbl, ctx)
}

func matchEndian(pattern, candidate Type) bool {
	pf := pattern.Flags() & (FlagLittleEndian | FlagBigEndian)
	cf := candidate.Flags() & (FlagLittleEndian | FlagBigEndian)
	return pf == 0 || cf == 0 || pf == cf
}

// matchEllipsis absorbs a (possibly empty) prefix of candidate's outer
// FixedDim/VarDim/Array dimensions, per spec §4.4: the captured
// sequence is recorded under three mutually-exclusive flavors
// depending on the dimension kind it consumed.
func matchEllipsis(pattern, candidate Type, tbl *SymbolTable, ctx *Context) bool {
	ep := pattern.raw.payload.(*ellipsisDimPayload)

	var fixedCaptured []Type
	var arrayCaptured []Type
	cur := candidate

	for {
		// A failed trial must not leave its bindings behind for the
		// next, shorter candidate suffix.
		saved := *tbl
		saved.shapes = maps.Clone(tbl.shapes)
		saved.typevars = maps.Clone(tbl.typevars)
		saved.ellipsis = maps.Clone(tbl.ellipsis)
		if matchWith(ep.inner, cur, tbl, ctx) {
			break
		}
		*tbl = saved
		switch cur.Tag() {
		case FixedDim:
			fixedCaptured = append(fixedCaptured, cur)
			cur = cur.raw.payload.(*fixedDimPayload).inner
		case Array:
			arrayCaptured = append(arrayCaptured, cur)
			cur = cur.raw.payload.(*arrayPayload).inner
		case VarDim, VarDimElem:
			if ep.name != nil {
				var linearIndex int64
				if vep, ok := cur.raw.payload.(*varDimElemPayload); ok {
					linearIndex = vep.index
				}
				tbl.BindEllipsis(*ep.name, EllipsisBinding{Kind: VarSeq, VarDim: cur, LinearIndex: linearIndex})
			}
			return true
		default:
			return false
		}
	}

	if ep.name != nil {
		switch {
		case len(fixedCaptured) > 0:
			tbl.BindEllipsis(*ep.name, EllipsisBinding{Kind: FixedSeq, FixedDims: fixedCaptured})
		case len(arrayCaptured) > 0:
			tbl.BindEllipsis(*ep.name, EllipsisBinding{Kind: ArraySeq, ArrayDims: arrayCaptured})
		default:
			tbl.BindEllipsis(*ep.name, EllipsisBinding{Kind: FixedSeq})
		}
	}
	return true
}
