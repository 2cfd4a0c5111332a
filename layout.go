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

// IsNDArray reports whether t's outer dimension chain is made
// entirely of FixedDim constructors (or t has no dimensions at all) —
// the shape every contiguity predicate below requires.
func IsNDArray(t Type) bool {
	if t.Tag() == FixedDim {
		return true
	}
	return t.NDim() == 0
}

// fixedDimChain walks t's outer FixedDim constructors, returning them
// outermost-first together with the dtype they bottom out at.
func fixedDimChain(t Type) ([]Type, Type) {
	var dims []Type
	cur := t
	for cur.Tag() == FixedDim {
		dims = append(dims, cur)
		cur = cur.raw.payload.(*fixedDimPayload).inner
	}
	return dims, cur
}

// IsCContiguous reports whether t's FixedDim chain has row-major
// (C order) strides: the innermost dimension has step 1, and every
// outer step equals the product of the inner shapes.
func IsCContiguous(t Type) bool {
	if t.IsAbstract() || !IsNDArray(t) {
		return false
	}
	if t.NDim() == 0 {
		return true
	}

	dims, _ := fixedDimChain(t)
	step := int64(1)
	for i := len(dims) - 1; i >= 0; i-- {
		p := dims[i].raw.payload.(*fixedDimPayload)
		if p.shape > 1 && p.step != step {
			return false
		}
		step *= p.shape
	}
	return true
}

// IsFContiguous reports whether t's FixedDim chain has column-major
// (Fortran order) strides: the outermost dimension has step 1.
func IsFContiguous(t Type) bool {
	if t.IsAbstract() || !IsNDArray(t) {
		return false
	}
	if t.NDim() == 0 {
		return true
	}

	dims, _ := fixedDimChain(t)
	step := int64(1)
	for i := 0; i < len(dims); i++ {
		p := dims[i].raw.payload.(*fixedDimPayload)
		if p.shape > 1 && p.step != step {
			return false
		}
		step *= p.shape
	}
	return true
}

// IsReallyFortran reports whether t is F-contiguous but not also
// (trivially) C-contiguous — the case a caller actually cares about
// when deciding whether to materialize a Fortran-order copy.
func IsReallyFortran(t Type) bool {
	return IsFContiguous(t) && !IsCContiguous(t)
}

func isVarContiguousFrom(t Type, nitems int32) bool {
	if t.NDim() == 0 {
		return true
	}
	if t.Tag() != VarDim {
		return false
	}
	p := t.raw.payload.(*varDimPayload)
	if p.offsets.Len() != nitems+1 {
		return false
	}
	if len(p.slices) != 0 {
		return false
	}
	return isVarContiguousFrom(p.inner, p.offsets.At(p.offsets.Len()-1))
}

// IsVarContiguous reports whether every VarDim in t's outer chain
// exactly spans its offset table, with no pending reslice, so the
// ragged data is laid out back-to-back with no gaps.
func IsVarContiguous(t Type) bool {
	if t.IsAbstract() {
		return false
	}
	return isVarContiguousFrom(t, 1)
}

func toFortranStep(t Type, step int64, ctx *Context) (Type, bool) {
	if t.NDim() == 0 {
		t.IncRef()
		return t, true
	}

	p := t.raw.payload.(*fixedDimPayload)
	nextStep, overflow := mulOverflow(step, p.shape)
	if overflow {
		return Type{}, ctx.Fail(ValueError, "overflow in converting to Fortran order")
	}

	dt, ok := toFortranStep(p.inner, nextStep, ctx)
	if !ok {
		return Type{}, false
	}
	u, ok := NewFixedDim(dt, p.shape, step, ctx)
	dt.DecRef()
	return u, ok
}

// ToFortran returns a new type identical to a C-contiguous t, except
// that its FixedDim strides are rewritten in column-major order.
func ToFortran(t Type, ctx *Context) (Type, bool) {
	if t.IsAbstract() {
		return Type{}, ctx.Fail(TypeError, "cannot convert abstract type to Fortran order")
	}
	if !IsCContiguous(t) {
		return Type{}, ctx.Fail(TypeError, "array must be C-contiguous for conversion to Fortran order")
	}
	return toFortranStep(t, 1, ctx)
}
