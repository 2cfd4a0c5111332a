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

import "math"

// ContigTag requests a contiguity property of a FixedDim (RequireC and
// RequireF make the dimension abstract until layout is fixed up by the
// external frontend; RequireNA means "take the step as given").
type ContigTag uint8

const (
	RequireNA ContigTag = iota
	RequireC
	RequireF
)

// noStep is the sentinel meaning "derive the step from the inner type"
// (INT64_MAX in libndtypes).
const noStep = math.MaxInt64

// NoStep is noStep exported for callers building FixedDim chains who
// want the engine to derive a natural (C-contiguous) step.
const NoStep = noStep

// checkTypeInvariants enforces the invariants common to every
// non-dimension constructor: no nested modules, ndim within bound.
func checkTypeInvariants(inner Type, ctx *Context) bool {
	if inner.Tag() == Module {
		return ctx.Fail(TypeError, "nested module types are not supported")
	}
	if inner.NDim() >= MaxDim {
		return ctx.Fail(TypeError, "ndim > %d", MaxDim)
	}
	return true
}

func checkFixedInvariants(inner Type, ctx *Context) bool {
	if inner.Tag() == Module {
		return ctx.Fail(TypeError, "nested module types are not supported")
	}
	if inner.Tag() == VarDim || inner.Tag() == VarDimElem || inner.Tag() == Array {
		return ctx.Fail(TypeError, "fixed dimensions cannot contain var dimensions or flexible arrays")
	}
	if inner.NDim() >= MaxDim {
		return ctx.Fail(TypeError, "ndim > %d", MaxDim)
	}
	return true
}

// checkVarInvariants is the single predicate resolving the open
// question in spec.md §9: a var-dim chain is abstract or concrete
// end-to-end, and this is the one place that decides it, depending on
// whether the caller is building a concrete or an abstract var dim.
func checkVarInvariants(inner Type, buildingConcrete bool, ctx *Context) bool {
	if inner.Tag() == Module {
		return ctx.Fail(TypeError, "nested module types are not supported")
	}
	if inner.Tag() == FixedDim || inner.Tag() == SymbolicDim || inner.Tag() == Array {
		return ctx.Fail(TypeError, "var dimensions cannot contain fixed dimensions or flexible arrays")
	}
	if buildingConcrete {
		if (inner.Tag() == VarDim || inner.Tag() == VarDimElem) && inner.IsAbstract() {
			return ctx.Fail(TypeError, "mixing abstract and concrete var dimensions is not allowed")
		}
	} else {
		if (inner.Tag() == VarDim && inner.IsConcrete()) || inner.Tag() == VarDimElem {
			return ctx.Fail(TypeError, "mixing abstract and concrete var dimensions is not allowed")
		}
	}
	if inner.NDim() >= MaxDim {
		return ctx.Fail(TypeError, "ndim > %d", MaxDim)
	}
	return true
}

func checkArrayInvariants(inner Type, ctx *Context) bool {
	if inner.Tag() == Module {
		return ctx.Fail(TypeError, "nested module types are not supported")
	}
	if inner.Tag() == FixedDim || inner.Tag() == SymbolicDim || inner.Tag() == VarDim || inner.Tag() == VarDimElem {
		return ctx.Fail(TypeError, "cannot mix fixed or var dimensions with flexible arrays")
	}
	if !inner.IsRefFree() {
		return ctx.Fail(TypeError, "flexible array elements cannot contain references")
	}
	return true
}

func checkEllipsisInvariants(inner Type, ctx *Context) bool {
	if inner.Tag() == Module {
		return ctx.Fail(TypeError, "nested module types are not supported")
	}
	if inner.NDim() >= MaxDim {
		return ctx.Fail(TypeError, "ndim > %d", MaxDim)
	}
	return true
}

// ---------------------------------------------------------------------
// FixedDim

type fixedDimPayload struct {
	shape    int64
	step     int64
	itemsize int64
	tag      ContigTag
	inner    Type
}

func (p *fixedDimPayload) children() []Type { return []Type{p.inner} }

// fixedStep derives the step in the fixed dimension that contains
// inner, when the caller did not supply one explicitly.
func fixedStep(inner Type, step int64) (int64, bool) {
	if step != noStep {
		return step, false
	}
	if inner.Tag() == FixedDim {
		fd := inner.raw.payload.(*fixedDimPayload)
		if fd.itemsize == 0 {
			return mulOverflow(fd.shape, fd.step)
		}
		return divOverflow(inner.DataSize(), fd.itemsize)
	}
	return 1, false
}

func fixedDatasize(inner Type, shape, step, itemsize int64) (int64, bool) {
	if shape == 0 || inner.DataSize() == 0 {
		return 0, false
	}
	absStep, overflow := absOverflow(step)
	if overflow {
		return 0, true
	}
	indexRange, overflow := mulOverflow(shape-1, absStep)
	if overflow {
		return 0, true
	}
	datasize, overflow := mulOverflow(indexRange, itemsize)
	if overflow {
		return 0, true
	}
	return addOverflow(datasize, inner.DataSize())
}

// NewFixedDim builds a statically-sized outer dimension around inner.
// step may be noStep to request automatic derivation.
func NewFixedDim(inner Type, shape, step int64, ctx *Context) (Type, bool) {
	return newFixedDimTag(inner, shape, step, RequireNA, ctx)
}

// NewFixedDimTag is NewFixedDim plus a requested contiguity tag; a tag
// other than RequireNA leaves the result abstract (layout is pinned by
// the external frontend once the tag is resolved).
func NewFixedDimTag(inner Type, shape, step int64, tag ContigTag, ctx *Context) (Type, bool) {
	return newFixedDimTag(inner, shape, step, tag, ctx)
}

func newFixedDimTag(inner Type, shape, step int64, tag ContigTag, ctx *Context) (Type, bool) {
	if !checkFixedInvariants(inner, ctx) {
		return Type{}, false
	}
	if shape < 0 {
		return Type{}, ctx.Fail(ValueError, "shape must be a natural number")
	}

	u := newAbstract(FixedDim, 0)
	u.flags |= dimFlags(inner)
	u.ndim = inner.NDim() + 1

	p := &fixedDimPayload{shape: shape, step: noStep, tag: tag}

	u.access = inner.Access()
	if u.access == Concrete && tag == RequireNA {
		itemsize := inner.Itemsize()
		derived, overflow := fixedStep(inner, step)
		if overflow {
			return Type{}, ctx.Fail(ValueError, "data size too large")
		}
		p.itemsize = itemsize
		p.step = derived

		datasize, overflow := fixedDatasize(inner, shape, derived, itemsize)
		if overflow {
			return Type{}, ctx.Fail(ValueError, "data size too large")
		}
		u.datasize = datasize
		u.align = inner.Align()
	} else if tag != RequireNA {
		u.access = Abstract
	}

	inner.IncRef()
	p.inner = inner
	u.payload = p
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// VarDim / VarDimElem

type varDimPayload struct {
	inner    Type
	itemsize int64
	offsets  OffsetTable
	slices   []Slice
}

func (p *varDimPayload) children() []Type        { return []Type{p.inner} }
func (p *varDimPayload) offsetTable() OffsetTable { return p.offsets }

type varDimElemPayload struct {
	varDimPayload
	index int64
}

// Slice is one entry of a VarDim's pending-slice stack.
type Slice struct {
	Start, Stop, Step int64
}

// NewAbstractVarDim builds an abstract (no offsets) ragged dimension.
func NewAbstractVarDim(inner Type, opt bool, ctx *Context) (Type, bool) {
	if !checkVarInvariants(inner, false, ctx) {
		return Type{}, false
	}
	flags := dimFlags(inner)
	if opt {
		flags |= FlagOption
	}
	u := newAbstract(VarDim, flags)
	u.ndim = inner.NDim() + 1
	u.access = Abstract

	inner.IncRef()
	u.payload = &varDimPayload{inner: inner}
	return Type{raw: u}, true
}

// NewVarDim builds a concrete ragged dimension over a shared offset
// table, with an optional pending-slice stack (reslicing without
// recomputing offsets).
func NewVarDim(inner Type, offsets OffsetTable, slices []Slice, opt bool, ctx *Context) (Type, bool) {
	if !checkVarInvariants(inner, true, ctx) {
		return Type{}, false
	}
	if offsets.Len() < 2 {
		return Type{}, ctx.Fail(InvalidArgumentError, "var_dim: noffsets < 2")
	}
	if !inner.IsConcrete() {
		return Type{}, ctx.Fail(InvalidArgumentError, "var_dim: expected concrete type")
	}

	var datasize, itemsize int64
	if inner.Tag() == VarDim || inner.Tag() == VarDimElem {
		innerOffsets := inner.raw.payload.(hasOffsetTable).offsetTable()
		if offsets.At(offsets.Len()-1) != innerOffsets.Len()-1 {
			return Type{}, ctx.Fail(ValueError, "var_dim: missing or invalid number of offset arguments")
		}
		datasize = inner.DataSize()
		itemsize = inner.Itemsize()
	} else {
		var overflow bool
		datasize, overflow = mulOverflow(int64(offsets.At(offsets.Len()-1)), inner.DataSize())
		if overflow {
			return Type{}, ctx.Fail(ValueError, "overflow in creating var dimension")
		}
		itemsize = inner.DataSize()
	}

	flags := dimFlags(inner)
	if opt {
		flags |= FlagOption
	}
	u := newAbstract(VarDim, flags)
	u.ndim = inner.NDim() + 1
	u.access = Concrete
	u.datasize = datasize
	u.align = inner.Align()

	inner.IncRef()
	offsets.IncRef()
	cp := append([]Slice(nil), slices...)
	u.payload = &varDimPayload{inner: inner, itemsize: itemsize, offsets: offsets, slices: cp}
	return Type{raw: u}, true
}

// NewVarDimElem projects a concrete VarDim/VarDimElem down to a single
// logical index, collapsing its shape to 1 (ndt_convert_to_var_elem).
func NewVarDimElem(t Type, innerType Type, index int64, ctx *Context) (Type, bool) {
	if t.Tag() != VarDim && t.Tag() != VarDimElem {
		return Type{}, ctx.Fail(ValueError, "NewVarDimElem: need var dim as input")
	}
	if t.IsAbstract() {
		return Type{}, ctx.Fail(ValueError, "cannot convert abstract var dim into var elem")
	}
	if t.IsOptional() {
		return Type{}, ctx.Fail(ValueError, "cannot convert optional var dim into var elem")
	}

	vd := t.raw.payload.(hasOffsetTable).offsetTable()
	var slices []Slice
	if vdp, ok := t.raw.payload.(*varDimPayload); ok {
		slices = vdp.slices
	} else if vep, ok := t.raw.payload.(*varDimElemPayload); ok {
		slices = vep.slices
	}

	built, ok := NewVarDim(innerType, vd, slices, false, ctx)
	if !ok {
		return Type{}, false
	}
	built.raw.tag = VarDimElem
	p := built.raw.payload.(*varDimPayload)
	built.raw.payload = &varDimElemPayload{varDimPayload: *p, index: index}
	return built, true
}

// ---------------------------------------------------------------------
// SymbolicDim

type symbolicDimPayload struct {
	name  string
	inner Type
	tag   ContigTag
}

func (p *symbolicDimPayload) children() []Type { return []Type{p.inner} }

// NewSymbolicDim builds a dimension whose shape is parameterized by a
// named variable, to be resolved by Match/Substitute.
func NewSymbolicDim(name string, inner Type, ctx *Context) (Type, bool) {
	return newSymbolicDimTag(name, inner, RequireNA, ctx)
}

// NewSymbolicDimTag is NewSymbolicDim with a requested contiguity tag.
func NewSymbolicDimTag(name string, inner Type, tag ContigTag, ctx *Context) (Type, bool) {
	return newSymbolicDimTag(name, inner, tag, ctx)
}

func newSymbolicDimTag(name string, inner Type, tag ContigTag, ctx *Context) (Type, bool) {
	if !checkFixedInvariants(inner, ctx) {
		return Type{}, false
	}
	u := newAbstract(SymbolicDim, dimFlags(inner))
	u.ndim = inner.NDim() + 1

	inner.IncRef()
	u.payload = &symbolicDimPayload{name: name, inner: inner, tag: tag}
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// EllipsisDim

type ellipsisDimPayload struct {
	name  *string
	inner Type
	tag   ContigTag
}

func (p *ellipsisDimPayload) children() []Type { return []Type{p.inner} }

// NewEllipsisDim builds a meta-dimension absorbing zero or more leading
// dimensions; name may be nil for an anonymous ellipsis. At most one
// ellipsis is allowed per dimension chain.
func NewEllipsisDim(name *string, inner Type, ctx *Context) (Type, bool) {
	return newEllipsisDimTag(name, inner, RequireNA, ctx)
}

// NewEllipsisDimTag is NewEllipsisDim with a requested contiguity tag.
func NewEllipsisDimTag(name *string, inner Type, tag ContigTag, ctx *Context) (Type, bool) {
	return newEllipsisDimTag(name, inner, tag, ctx)
}

func newEllipsisDimTag(name *string, inner Type, tag ContigTag, ctx *Context) (Type, bool) {
	if !checkEllipsisInvariants(inner, ctx) {
		return Type{}, false
	}
	flags := dimFlags(inner)
	if flags&FlagEllipsis != 0 {
		return Type{}, ctx.Fail(ValueError, "more than one ellipsis")
	}

	u := newAbstract(EllipsisDim, flags|FlagEllipsis)
	u.ndim = inner.NDim() + 1

	inner.IncRef()
	u.payload = &ellipsisDimPayload{name: name, inner: inner, tag: tag}
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Array (flexible, runtime-sized)

type arrayPayload struct {
	inner    Type
	itemsize int64
}

func (p *arrayPayload) children() []Type { return []Type{p.inner} }

// arrayHeaderSize/arrayHeaderAlign model the runtime descriptor for a
// flexible array (a pointer plus a shape word, analogous to ndt_array_t).
const (
	arrayHeaderSize  = 16
	arrayHeaderAlign = 8
)

// NewArray builds a flexible (runtime-sized) array; it is always
// pointer-bearing and its elements may not contain references.
func NewArray(inner Type, opt bool, ctx *Context) (Type, bool) {
	if !checkArrayInvariants(inner, ctx) {
		return Type{}, false
	}
	flags := subtreeFlags(inner) | FlagPointer
	if opt {
		flags |= FlagOption
	}
	u := newAbstract(Array, flags)
	u.ndim = inner.NDim() + 1
	u.access = inner.Access()
	u.datasize = arrayHeaderSize
	u.align = arrayHeaderAlign

	inner.IncRef()
	u.payload = &arrayPayload{inner: inner, itemsize: inner.DataSize()}
	return Type{raw: u}, true
}
