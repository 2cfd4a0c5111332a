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

// adjustSliceIndices clamps (start, stop) into [0, length] for the
// given non-zero step and returns the resulting shape, following
// Python's documented slice.indices() semantics (the same contract
// ndt_slice_adjust_indices implements).
func adjustSliceIndices(length int64, start, stop *int64, step int64) int64 {
	if step == 0 {
		step = 1
	}

	if step > 0 {
		if *start < 0 {
			*start += length
			if *start < 0 {
				*start = 0
			}
		} else if *start > length {
			*start = length
		}
		if *stop < 0 {
			*stop += length
			if *stop < 0 {
				*stop = 0
			}
		} else if *stop > length {
			*stop = length
		}
		if *stop <= *start {
			return 0
		}
		return (*stop-*start-1)/step + 1
	}

	if *start < 0 {
		*start += length
		if *start < -1 {
			*start = -1
		}
	} else if *start >= length {
		*start = length - 1
	}
	if *stop < 0 {
		*stop += length
		if *stop < -1 {
			*stop = -1
		}
	} else if *stop >= length {
		*stop = length - 1
	}
	if *start <= *stop {
		return 0
	}
	return (*start-*stop-1)/(-step) + 1
}

// varIndices recomputes the current (start, step, shape) of the
// index'th element of a concrete VarDim/VarDimElem, folding in its
// pending-slice stack. Recomputing avoids keeping a full shape array
// per dimension, the same size as the offset table.
func varIndices(t Type, index int64, ctx *Context) (start, step, shape int64, ok bool) {
	return varIndicesImpl(t, index, false, ctx)
}

// varIndicesNonEmpty is varIndices but skips slices in the stack that
// would otherwise zero out the shape, matching ndt_var_indices_non_empty.
func varIndicesNonEmpty(t Type, index int64, ctx *Context) (start, step, shape int64, ok bool) {
	return varIndicesImpl(t, index, true, ctx)
}

func varIndicesImpl(t Type, index int64, skipEmpty bool, ctx *Context) (int64, int64, int64, bool) {
	p, ok := t.raw.payload.(*varDimPayload)
	if !ok {
		if ep, ok2 := t.raw.payload.(*varDimElemPayload); ok2 {
			p = &ep.varDimPayload
		} else {
			return 0, 0, 0, ctx.Fail(RuntimeError, "varIndices: internal error: not a var dim")
		}
	}

	if index < 0 || index+1 >= int64(p.offsets.Len()) {
		return 0, 0, 0, ctx.Fail(IndexError, "index with value %d out of bounds", index)
	}

	listStart := int64(p.offsets.At(int32(index)))
	listStop := int64(p.offsets.At(int32(index) + 1))
	resShape := listStop - listStart

	resStart := int64(0)
	resStep := int64(1)

	for _, s := range p.slices {
		start, stop := s.Start, s.Stop
		shape := adjustSliceIndices(resShape, &start, &stop, s.Step)
		if skipEmpty && shape == 0 {
			continue
		}
		resShape = shape
		resStart += start * resStep
		resStep *= s.Step
	}

	resStart += listStart
	return resStart, resStep, resShape, true
}

// addSlice pushes (start, stop, step) onto t's pending-slice stack,
// returning a new concrete VarDim sharing t's offset table and inner
// type. Slicing a ragged dimension never touches the offsets: it only
// grows the slice stack every index computation folds through.
func addSlice(t Type, start, stop, step int64, ctx *Context) (Type, bool) {
	if t.Tag() != VarDim || t.IsAbstract() {
		return Type{}, ctx.Fail(RuntimeError, "addSlice: internal error: argument must be a concrete var dim")
	}
	p := t.raw.payload.(*varDimPayload)

	slices := append(append([]Slice(nil), p.slices...), Slice{Start: start, Stop: stop, Step: step})
	return NewVarDim(p.inner, p.offsets, slices, t.IsOptional(), ctx)
}
