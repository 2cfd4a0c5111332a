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

// scalarWidth orders same-class scalars so Unify can widen to the
// larger of two otherwise-unifiable concrete types.
var scalarWidth = map[Tag]int{
	Int8: 1, Int16: 2, Int32: 3, Int64: 4,
	Uint8: 1, Uint16: 2, Uint32: 3, Uint64: 4,
	BFloat16: 1, Float16: 1, Float32: 2, Float64: 3,
	BComplex32: 1, Complex32: 1, Complex64: 2, Complex128: 3,
}

var scalarKindOf = map[Tag]Tag{
	Int8: SignedKind, Int16: SignedKind, Int32: SignedKind, Int64: SignedKind,
	Uint8: UnsignedKind, Uint16: UnsignedKind, Uint32: UnsignedKind, Uint64: UnsignedKind,
	BFloat16: FloatKind, Float16: FloatKind, Float32: FloatKind, Float64: FloatKind,
	BComplex32: ComplexKind, Complex32: ComplexKind, Complex64: ComplexKind, Complex128: ComplexKind,
}

func isKindTag(tag Tag) bool {
	switch tag {
	case AnyKind, ScalarKind, SignedKind, UnsignedKind, FloatKind, ComplexKind,
		FixedStringKind, FixedBytesKind:
		return true
	default:
		return false
	}
}

// Unify computes the join of a and b: the most specific type that is
// a supertype of both, per spec §4.5. It returns the invalid Type on
// failure (a plain mismatch, not a *Context error).
func Unify(a, b Type, ctx *Context) (Type, bool) {
	if typesStructurallyEqual(a, b) {
		a.IncRef()
		return a, true
	}

	opt := a.IsOptional() || b.IsOptional()

	if isKindTag(a.Tag()) {
		if kindAbsorbs(a.Tag(), b.Tag()) {
			return unifyOptional(b, opt, ctx)
		}
	}
	if isKindTag(b.Tag()) {
		if kindAbsorbs(b.Tag(), a.Tag()) {
			return unifyOptional(a, opt, ctx)
		}
	}

	if widthA, ok := scalarWidth[a.Tag()]; ok {
		if widthB, ok2 := scalarWidth[b.Tag()]; ok2 {
			if scalarKindOf[a.Tag()] == scalarKindOf[b.Tag()] {
				winner := a
				if widthB > widthA {
					winner = b
				}
				return unifyEndian(winner, a, b, opt, ctx)
			}
		}
	}

	if a.Tag() != b.Tag() {
		return Type{}, false
	}

	switch a.Tag() {
	case FixedDim:
		pa := a.raw.payload.(*fixedDimPayload)
		pb := b.raw.payload.(*fixedDimPayload)
		if pa.shape != pb.shape {
			return Type{}, false
		}
		inner, ok := Unify(pa.inner, pb.inner, ctx)
		if !ok {
			return Type{}, false
		}
		u, ok := NewFixedDim(inner, pa.shape, noStep, ctx)
		inner.DecRef()
		return u, ok

	case Tuple:
		pa := a.raw.payload.(*tuplePayload)
		pb := b.raw.payload.(*tuplePayload)
		if len(pa.types) != len(pb.types) {
			return Type{}, false
		}
		fields := make([]Field, len(pa.types))
		for i := range pa.types {
			inner, ok := Unify(pa.types[i], pb.types[i], ctx)
			if !ok {
				return Type{}, false
			}
			fields[i] = Field{Type: inner}
		}
		return NewTuple(Fixed, fields, nil, nil, opt, ctx)

	default:
		return Type{}, false
	}
}

func unifyOptional(t Type, opt bool, ctx *Context) (Type, bool) {
	if t.IsOptional() == opt {
		t.IncRef()
		return t, true
	}
	return reoption(t, opt, ctx)
}

func unifyEndian(winner, a, b Type, opt bool, ctx *Context) (Type, bool) {
	af := a.Flags() & (FlagLittleEndian | FlagBigEndian)
	bf := b.Flags() & (FlagLittleEndian | FlagBigEndian)
	endian := af
	if af != bf {
		endian = 0
	}
	_ = winner
	return rebuildScalarEndian(winner.Tag(), opt, endian, ctx)
}

// kindAbsorbs reports whether kind absorbs candidate (candidate unifies
// up to kind unchanged).
func kindAbsorbs(kind, candidate Tag) bool {
	switch kind {
	case AnyKind:
		return true
	case ScalarKind:
		_, isScalar := scalarWidth[candidate]
		return isScalar || candidate == Bool
	case SignedKind:
		return scalarKindOf[candidate] == SignedKind
	case UnsignedKind:
		return scalarKindOf[candidate] == UnsignedKind
	case FloatKind:
		return scalarKindOf[candidate] == FloatKind
	case ComplexKind:
		return scalarKindOf[candidate] == ComplexKind
	case FixedStringKind:
		return candidate == FixedString
	case FixedBytesKind:
		return candidate == FixedBytes
	default:
		return false
	}
}

// reoption and rebuildScalarEndian rebuild a scalar singleton with a
// different optionality/endianness, used only by Unify since scalars
// are otherwise immutable interned values.
func reoption(t Type, opt bool, ctx *Context) (Type, bool) {
	return rebuildScalarEndian(t.Tag(), opt, t.Flags()&(FlagLittleEndian|FlagBigEndian), ctx)
}

func rebuildScalarEndian(tag Tag, opt bool, endian Flags, ctx *Context) (Type, bool) {
	switch tag {
	case Bool:
		return NewBool(opt), true
	case Int8:
		return NewInt8(opt), true
	case Int16:
		return NewInt16(opt, endian), true
	case Int32:
		return NewInt32(opt, endian), true
	case Int64:
		return NewInt64(opt, endian), true
	case Uint8:
		return NewUint8(opt), true
	case Uint16:
		return NewUint16(opt, endian), true
	case Uint32:
		return NewUint32(opt, endian), true
	case Uint64:
		return NewUint64(opt, endian), true
	case BFloat16:
		return NewBFloat16(opt, endian), true
	case Float16:
		return NewFloat16(opt, endian), true
	case Float32:
		return NewFloat32(opt, endian), true
	case Float64:
		return NewFloat64(opt, endian), true
	case BComplex32:
		return NewBComplex32(opt, endian), true
	case Complex32:
		return NewComplex32(opt, endian), true
	case Complex64:
		return NewComplex64(opt, endian), true
	case Complex128:
		return NewComplex128(opt, endian), true
	case String:
		return NewString(opt), true
	default:
		return Type{}, ctx.Fail(NotImplementedError, "unify not implemented for this type")
	}
}
