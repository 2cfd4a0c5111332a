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

// Copy returns a structurally identical type with fresh-but-shared
// children (incref, not deep clone) per spec §4.7. Static scalars and
// kinds are their own copy (IncRef is a no-op for them).
func Copy(t Type, ctx *Context) (Type, bool) {
	if t.raw.static {
		return t, true
	}

	opt := t.IsOptional()

	switch p := t.raw.payload.(type) {
	case *fixedDimPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewFixedDimTag(u, p.shape, p.step, p.tag, ctx)
		u.DecRef()
		return w, ok

	case *varDimElemPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewVarDimElem(t, u, p.index, ctx)
		u.DecRef()
		return w, ok

	case *varDimPayload:
		if t.IsAbstract() {
			u, ok := Copy(p.inner, ctx)
			if !ok {
				return Type{}, false
			}
			w, ok := NewAbstractVarDim(u, opt, ctx)
			u.DecRef()
			return w, ok
		}
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewVarDim(u, p.offsets, p.slices, opt, ctx)
		u.DecRef()
		return w, ok

	case *symbolicDimPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewSymbolicDimTag(p.name, u, p.tag, ctx)
		u.DecRef()
		return w, ok

	case *ellipsisDimPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewEllipsisDimTag(p.name, u, p.tag, ctx)
		u.DecRef()
		return w, ok

	case *arrayPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewArray(u, opt, ctx)
		u.DecRef()
		return w, ok

	case *refPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewRef(u, opt, ctx)
		u.DecRef()
		return w, ok

	case *constrPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewConstr(p.name, u, opt, ctx)
		u.DecRef()
		return w, ok

	case *nominalPayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewNominal(p.name, u, opt, ctx)
		u.DecRef()
		return w, ok

	case *tuplePayload:
		fields := make([]Field, len(p.types))
		for i, ty := range p.types {
			u, ok := Copy(ty, ctx)
			if !ok {
				return Type{}, false
			}
			fields[i] = Field{Type: u}
		}
		return NewTuple(p.variadic, fields, nil, nil, opt, ctx)

	case *recordPayload:
		fields := make([]Field, len(p.types))
		for i, ty := range p.types {
			u, ok := Copy(ty, ctx)
			if !ok {
				return Type{}, false
			}
			fields[i] = Field{Name: p.names[i], Type: u}
		}
		return NewRecord(p.variadic, fields, nil, nil, opt, ctx)

	case *unionPayload:
		fields := make([]Field, len(p.types))
		for i, ty := range p.types {
			u, ok := Copy(ty, ctx)
			if !ok {
				return Type{}, false
			}
			fields[i] = Field{Name: p.tags[i], Type: u}
		}
		return NewUnion(fields, opt, ctx)

	case *categoricalPayload:
		return NewCategorical(p.values, opt, ctx)

	case *typevarPayload:
		return NewTypevar(p.name, ctx)

	case *functionPayload:
		types := append([]Type(nil), p.types...)
		for _, ty := range types {
			ty.IncRef()
		}
		return NewFunction(types, p.nin, p.nout, ctx)

	case *modulePayload:
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewModule(p.name, u, ctx)
		u.DecRef()
		return w, ok

	default:
		t.IncRef()
		return t, true
	}
}

// offsetBuilder accumulates, per nesting depth, the VarDim offset
// tables a contiguous-dtype copy needs. varCopyContiguous uses it in
// two passes over the same walk: a measure pass counts the entries
// each depth needs, the tables are then allocated at that size, and a
// write pass fills in the prefix sums.
type offsetBuilder struct {
	maxdim  int
	active  []bool
	count   []int32
	offsets [][]int32
}

func newOffsetBuilder(maxdim int) *offsetBuilder {
	return &offsetBuilder{
		maxdim:  maxdim,
		active:  make([]bool, maxdim+1),
		count:   make([]int32, maxdim+1),
		offsets: make([][]int32, maxdim+1),
	}
}

func clampIndex(shape, index int64, ctx *Context) (int64, bool) {
	if index < 0 {
		sum, overflow := addOverflow(index, shape)
		if overflow {
			return 0, ctx.Fail(IndexError, "index with value %d out of bounds", index)
		}
		index = sum
	}
	if index < 0 || index >= shape {
		return 0, ctx.Fail(IndexError, "index with value %d out of bounds", index)
	}
	return index, true
}

// varCopyShapes walks t's ragged shape starting from linearIndex,
// recording (in the measure pass) how many offset entries each depth
// needs, and (in the write pass) the prefix-sum offsets themselves.
// A VarDimElem subindex fixes a single element and marks its depth
// inactive, collapsing it out of the rebuilt type.
func varCopyShapes(write bool, m *offsetBuilder, linearIndex int64, t Type, ctx *Context) bool {
	if t.NDim() == 0 {
		return true
	}

	start, step, shape, ok := varIndices(t, linearIndex, ctx)
	if !ok {
		return false
	}

	depth := t.NDim()
	m.active[depth] = true

	var inner Type
	k := int64(0)
	if ep, isElem := t.raw.payload.(*varDimElemPayload); isElem {
		idx, ok := clampIndex(shape, ep.index, ctx)
		if !ok {
			return false
		}
		k = idx
		shape = 1
		m.active[depth] = false
		inner = ep.inner
	} else {
		inner = t.raw.payload.(*varDimPayload).inner
	}

	if write {
		sum := m.offsets[depth][m.count[depth]]
		m.count[depth]++
		m.offsets[depth][m.count[depth]] = sum + int32(shape)
	} else {
		m.count[depth]++
	}

	for i := k; i < k+shape; i++ {
		next := start + i*step
		if !varCopyShapes(write, m, next, inner, ctx) {
			return false
		}
	}
	return true
}

// varFromOffsetsAndDtype rebuilds t's VarDim chain, innermost depth
// first, wrapping dtype in a fresh VarDim per active, non-collapsed
// depth.
func varFromOffsetsAndDtype(m *offsetBuilder, dtype Type, ctx *Context) (Type, bool) {
	cur := dtype
	cur.IncRef()
	for depth := 1; depth <= m.maxdim; depth++ {
		if !m.active[depth] {
			continue
		}
		ot := NewOffsetTable(m.offsets[depth])
		next, ok := NewVarDim(cur, ot, nil, false, ctx)
		cur.DecRef()
		if !ok {
			return Type{}, false
		}
		cur = next
	}
	return cur, true
}

func varCopyContiguous(t, dtype Type, linearIndex int64, ctx *Context) (Type, bool) {
	m := newOffsetBuilder(t.NDim())

	if !varCopyShapes(false, m, linearIndex, t, ctx) {
		return Type{}, false
	}
	for depth := 1; depth <= m.maxdim; depth++ {
		m.offsets[depth] = make([]int32, m.count[depth]+1)
	}
	for depth := range m.count {
		m.count[depth] = 0
	}
	if !varCopyShapes(true, m, linearIndex, t, ctx) {
		return Type{}, false
	}

	return varFromOffsetsAndDtype(m, dtype, ctx)
}

func fixedCopyContiguous(t, dtype Type, ctx *Context) (Type, bool) {
	if t.NDim() == 0 {
		dtype.IncRef()
		return dtype, true
	}
	p := t.raw.payload.(*fixedDimPayload)
	u, ok := fixedCopyContiguous(p.inner, dtype, ctx)
	if !ok {
		return Type{}, false
	}
	w, ok := NewFixedDimTag(u, p.shape, noStep, p.tag, ctx)
	u.DecRef()
	return w, ok
}

// copyContiguousDtype produces a contiguous copy of t's outer
// dimension chain wrapping dtype as its new element type, rooted at
// linearIndex (the element Substitute's var-dim ellipsis capture was
// resolving). Grounded on spec §4.7's two-pass description.
func copyContiguousDtype(t, dtype Type, linearIndex int64, ctx *Context) (Type, bool) {
	if t.IsAbstract() || dtype.IsAbstract() {
		return Type{}, ctx.Fail(ValueError, "copyContiguousDtype called on abstract type")
	}

	switch t.Tag() {
	case FixedDim:
		return fixedCopyContiguous(t, dtype, ctx)
	case VarDim, VarDimElem:
		return varCopyContiguous(t, dtype, linearIndex, ctx)
	default:
		dtype.IncRef()
		return dtype, true
	}
}
