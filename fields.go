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

// Variadic marks a Tuple or Record as open-ended, which makes it
// abstract. Match and Unify still compare field counts exactly; a
// variadic type is not extended to a longer candidate.
type Variadic bool

const (
	Fixed   Variadic = false
	VarArgs Variadic = true
)

// Field describes one tuple or record member, with its optional
// explicit alignment/packing/padding attributes (ndt_field_t).
type Field struct {
	Name string // empty for a tuple field
	Type Type

	explicitAlign bool
	explicitPad   bool
	align         uint16
	pad           uint16
}

// NewField builds a field. align and pack are mutually exclusive; pad,
// when given, is checked against the computed padding rather than
// overriding it.
func NewField(name string, typ Type, align, pack, pad *uint16, ctx *Context) (Field, bool) {
	minAlign, ok := minFieldAlign(typ, align, pack, ctx)
	if !ok {
		return Field{}, false
	}
	f := Field{Name: name, Type: typ}
	typ.IncRef()
	if typ.IsConcrete() {
		f.align = minAlign
		f.explicitAlign = align != nil || pack != nil
		if pad != nil {
			f.pad = *pad
			f.explicitPad = true
		} else {
			f.pad = math.MaxUint16
		}
	}
	return f, true
}

// minFieldAlign resolves the field's minimum alignment per the
// align/pack/natural-alignment precedence rules; UINT16_MAX in the C
// original is reported as (0, false) here.
func minFieldAlign(t Type, align, pack *uint16, ctx *Context) (uint16, bool) {
	minAlign := uint16(1)

	switch {
	case align != nil:
		if pack != nil {
			ctx.Fail(InvalidArgumentError, "field has both 'align' and 'pack' attributes")
			return 0, false
		}
		if t.IsAbstract() {
			ctx.Fail(InvalidArgumentError, "'align' or 'pack' attribute given for abstract type")
			return 0, false
		}
		minAlign = maxU16(*align, t.Align())
	case pack != nil:
		if t.IsAbstract() {
			ctx.Fail(InvalidArgumentError, "'align' or 'pack' attribute given for abstract type")
			return 0, false
		}
		minAlign = *pack
	default:
		if t.IsConcrete() {
			minAlign = t.Align()
		}
	}

	if !isPowerOfTwo(minAlign) {
		ctx.Fail(ValueError, "'align' must be a power of two, got %d", minAlign)
		return 0, false
	}
	return minAlign, true
}

func getAlign(align *uint16, def uint16, ctx *Context) (uint16, bool) {
	if align == nil {
		return def, true
	}
	if !isPowerOfTwo(*align) {
		ctx.Fail(ValueError, "'align' must be a power of two, got %d", *align)
		return 0, false
	}
	return *align, true
}

// fieldLayout is the computed per-field offset/align/pad triple shared
// by Tuple and Record, mirroring init_concrete_fields.
func fieldLayout(fields []Field, align, pack *uint16, ctx *Context) (offsets []int64, aligns []uint16, pads []uint16, datasize int64, maxAlign uint16, ok bool) {
	shape := len(fields)
	offsets = make([]int64, shape)
	aligns = make([]uint16, shape)
	pads = make([]uint16, shape)

	maxAlign, ok = getAlign(align, 1, ctx)
	if !ok {
		return nil, nil, nil, 0, 0, false
	}
	if _, ok = getAlign(pack, 1, ctx); !ok {
		return nil, nil, nil, 0, 0, false
	}

	var offset int64
	var overflow bool
	for i, f := range fields {
		if pack != nil {
			if f.explicitAlign {
				ctx.Fail(InvalidArgumentError, "cannot have 'pack' tuple attribute and field attributes")
				return nil, nil, nil, 0, 0, false
			}
			aligns[i] = *pack
		} else {
			aligns[i] = f.align
		}
		maxAlign = maxU16(aligns[i], maxAlign)

		if i > 0 {
			n := offset
			offset, overflow = roundUp(offset, aligns[i])
			if overflow {
				break
			}
			pads[i-1] = uint16(offset - n)
		}

		offsets[i] = offset
		offset, overflow = addOverflow(offset, f.Type.DataSize())
		if overflow {
			break
		}
	}

	var size int64
	if !overflow {
		size, overflow = roundUp(offset, maxAlign)
	}
	if overflow {
		ctx.Fail(ValueError, "tuple or record too large")
		return nil, nil, nil, 0, 0, false
	}

	if shape > 0 {
		last := fields[shape-1]
		pads[shape-1] = uint16((size - offsets[shape-1]) - last.Type.DataSize())
	}

	for i, f := range fields {
		if f.explicitPad && f.pad != pads[i] {
			ctx.Fail(ValueError, "field %d has invalid padding, natural padding is %d, got %d", i, pads[i], f.pad)
			return nil, nil, nil, 0, 0, false
		}
	}

	return offsets, aligns, pads, size, maxAlign, true
}

// ---------------------------------------------------------------------
// Tuple

type tuplePayload struct {
	variadic Variadic
	types    []Type
	offsets  []int64
	align    []uint16
	pad      []uint16
}

func (p *tuplePayload) children() []Type { return p.types }

// NewTuple builds an (optionally variadic) unnamed product type.
func NewTuple(flag Variadic, fields []Field, align, pack *uint16, opt bool, ctx *Context) (Type, bool) {
	for _, f := range fields {
		if !checkTypeInvariants(f.Type, ctx) {
			return Type{}, false
		}
	}

	u := newAbstract(Tuple, 0)
	if opt {
		u.flags |= FlagOption
	}
	u.access = Concrete
	if flag == VarArgs {
		u.access = Abstract
	}
	for _, f := range fields {
		if f.Type.IsAbstract() {
			u.access = Abstract
		}
	}

	p := &tuplePayload{variadic: flag, types: make([]Type, len(fields))}

	if u.access == Abstract {
		for _, f := range fields {
			if f.Type.IsConcrete() && f.explicitAlign {
				return Type{}, ctx.Fail(InvalidArgumentError, "explicit field alignment in abstract tuple")
			}
		}
		for i, f := range fields {
			f.Type.IncRef()
			p.types[i] = f.Type
			u.flags |= subtreeFlags(f.Type)
		}
		u.payload = p
		return Type{raw: u}, true
	}

	offsets, aligns, pads, size, maxAlign, ok := fieldLayout(fields, align, pack, ctx)
	if !ok {
		return Type{}, false
	}
	u.datasize = size
	u.align = maxAlign
	p.offsets, p.align, p.pad = offsets, aligns, pads
	for i, f := range fields {
		f.Type.IncRef()
		p.types[i] = f.Type
		u.flags |= subtreeFlags(f.Type)
	}
	u.payload = p
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Record

type recordPayload struct {
	variadic Variadic
	names    []string
	types    []Type
	offsets  []int64
	align    []uint16
	pad      []uint16
}

func (p *recordPayload) children() []Type { return p.types }

// NewRecord builds an (optionally variadic) named product type.
func NewRecord(flag Variadic, fields []Field, align, pack *uint16, opt bool, ctx *Context) (Type, bool) {
	for _, f := range fields {
		if !checkTypeInvariants(f.Type, ctx) {
			return Type{}, false
		}
	}

	u := newAbstract(Record, 0)
	if opt {
		u.flags |= FlagOption
	}
	u.access = Concrete
	if flag == VarArgs {
		u.access = Abstract
	}
	for _, f := range fields {
		if f.Type.IsAbstract() {
			u.access = Abstract
		}
	}

	p := &recordPayload{variadic: flag, names: make([]string, len(fields)), types: make([]Type, len(fields))}

	if u.access == Abstract {
		for _, f := range fields {
			if f.Type.IsConcrete() && f.explicitAlign {
				return Type{}, ctx.Fail(InvalidArgumentError, "explicit field alignment in abstract tuple")
			}
		}
		for i, f := range fields {
			p.names[i] = f.Name
			f.Type.IncRef()
			p.types[i] = f.Type
			u.flags |= subtreeFlags(f.Type)
		}
		u.payload = p
		return Type{raw: u}, true
	}

	offsets, aligns, pads, size, maxAlign, ok := fieldLayout(fields, align, pack, ctx)
	if !ok {
		return Type{}, false
	}
	u.datasize = size
	u.align = maxAlign
	p.offsets, p.align, p.pad = offsets, aligns, pads
	for i, f := range fields {
		p.names[i] = f.Name
		f.Type.IncRef()
		p.types[i] = f.Type
		u.flags |= subtreeFlags(f.Type)
	}
	u.payload = p
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Union

type unionPayload struct {
	tags  []string
	types []Type
}

func (p *unionPayload) children() []Type { return p.types }

// NewUnion builds a tagged union of at most 255 concrete, ref-free
// alternatives; its datasize is 1 (tag byte) plus the widest member.
func NewUnion(fields []Field, opt bool, ctx *Context) (Type, bool) {
	if len(fields) == 0 {
		return Type{}, ctx.Fail(ValueError, "unions cannot be empty")
	}
	if len(fields) > 255 {
		return Type{}, ctx.Fail(ValueError, "union too large (max 255 members)")
	}
	for _, f := range fields {
		if !checkTypeInvariants(f.Type, ctx) {
			return Type{}, false
		}
	}

	u := newAbstract(Union, 0)
	if opt {
		u.flags |= FlagOption
	}
	u.access = Concrete
	for _, f := range fields {
		if f.Type.IsAbstract() {
			u.access = Abstract
		}
	}

	p := &unionPayload{tags: make([]string, len(fields)), types: make([]Type, len(fields))}

	if u.access == Abstract {
		for _, f := range fields {
			if f.Type.IsConcrete() && f.explicitAlign {
				return Type{}, ctx.Fail(InvalidArgumentError, "explicit field alignment in abstract tuple")
			}
		}
		for i, f := range fields {
			p.tags[i] = f.Name
			f.Type.IncRef()
			p.types[i] = f.Type
			u.flags |= subtreeFlags(f.Type)
		}
		u.payload = p
		return Type{raw: u}, true
	}

	var maxsize int64
	for _, f := range fields {
		if !f.Type.IsRefFree() {
			return Type{}, ctx.Fail(ValueError, "union types cannot contain references")
		}
		maxsize = maxI64(f.Type.DataSize(), maxsize)
	}
	u.align = 1
	u.datasize = 1 + maxsize

	for i, f := range fields {
		p.tags[i] = f.Name
		f.Type.IncRef()
		p.types[i] = f.Type
		u.flags |= subtreeFlags(f.Type)
	}
	u.payload = p
	return Type{raw: u}, true
}
