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

import "sync"

// scalarKey identifies one statically-interned scalar singleton: its
// tag, optionality, and (for multi-byte numeric types) endianness.
type scalarKey struct {
	tag    Tag
	opt    bool
	endian Flags
}

var (
	scalarMu    sync.Mutex
	scalarCache = map[scalarKey]Type{}
)

// internScalar returns the unique immortal instance for (tag, opt,
// endian), building it on first use. All concrete scalars are
// statically interned (spec ndtypes.c's ndt_is_static): IncRef/DecRef
// on the returned Type are no-ops.
func internScalar(tag Tag, opt bool, endian Flags, datasize int64, align uint16) Type {
	key := scalarKey{tag: tag, opt: opt, endian: endian}

	scalarMu.Lock()
	defer scalarMu.Unlock()
	if t, ok := scalarCache[key]; ok {
		return t
	}

	flags := endian
	if opt {
		flags |= FlagOption
	}
	t := newStatic(tag, flags, datasize, align)
	scalarCache[key] = t
	return t
}

// NewBool returns the Bool scalar.
func NewBool(opt bool) Type { return internScalar(Bool, opt, 0, 1, 1) }

// NewInt8 returns the Int8 scalar.
func NewInt8(opt bool) Type { return internScalar(Int8, opt, 0, 1, 1) }

// NewInt16 returns the Int16 scalar with the given endianness (0 means
// unspecified, which defaults to the host's).
func NewInt16(opt bool, endian Flags) Type { return internScalar(Int16, opt, endian, 2, 2) }

// NewInt32 returns the Int32 scalar.
func NewInt32(opt bool, endian Flags) Type { return internScalar(Int32, opt, endian, 4, 4) }

// NewInt64 returns the Int64 scalar.
func NewInt64(opt bool, endian Flags) Type { return internScalar(Int64, opt, endian, 8, 8) }

// NewUint8 returns the Uint8 scalar.
func NewUint8(opt bool) Type { return internScalar(Uint8, opt, 0, 1, 1) }

// NewUint16 returns the Uint16 scalar.
func NewUint16(opt bool, endian Flags) Type { return internScalar(Uint16, opt, endian, 2, 2) }

// NewUint32 returns the Uint32 scalar.
func NewUint32(opt bool, endian Flags) Type { return internScalar(Uint32, opt, endian, 4, 4) }

// NewUint64 returns the Uint64 scalar.
func NewUint64(opt bool, endian Flags) Type { return internScalar(Uint64, opt, endian, 8, 8) }

// NewBFloat16 returns the BFloat16 scalar.
func NewBFloat16(opt bool, endian Flags) Type { return internScalar(BFloat16, opt, endian, 2, 2) }

// NewFloat16 returns the Float16 scalar.
func NewFloat16(opt bool, endian Flags) Type { return internScalar(Float16, opt, endian, 2, 2) }

// NewFloat32 returns the Float32 scalar.
func NewFloat32(opt bool, endian Flags) Type { return internScalar(Float32, opt, endian, 4, 4) }

// NewFloat64 returns the Float64 scalar.
func NewFloat64(opt bool, endian Flags) Type { return internScalar(Float64, opt, endian, 8, 8) }

// NewBComplex32 returns the BComplex32 scalar.
func NewBComplex32(opt bool, endian Flags) Type {
	return internScalar(BComplex32, opt, endian, 4, 2)
}

// NewComplex32 returns the Complex32 scalar.
func NewComplex32(opt bool, endian Flags) Type { return internScalar(Complex32, opt, endian, 4, 2) }

// NewComplex64 returns the Complex64 scalar.
func NewComplex64(opt bool, endian Flags) Type { return internScalar(Complex64, opt, endian, 8, 4) }

// NewComplex128 returns the Complex128 scalar.
func NewComplex128(opt bool, endian Flags) Type {
	return internScalar(Complex128, opt, endian, 16, 8)
}

// NewString returns the variable-length String scalar. Its in-memory
// representation is a pointer-bearing descriptor, not inline bytes.
func NewString(opt bool) Type {
	return internScalar(String, opt, FlagPointer, 0, 1)
}

// NewBytes returns the variable-length Bytes scalar, aligned to
// targetAlign (the alignment the backing allocation must satisfy).
func NewBytes(opt bool, targetAlign uint16) Type {
	if targetAlign == 0 {
		targetAlign = 1
	}
	return internScalar(Bytes, opt, FlagPointer, 0, targetAlign)
}

// Kind abstractions: underspecified scalar supertypes. They are
// abstract (no layout) and unify with any matching concrete subtype.
func newKind(tag Tag, opt bool) Type {
	flags := Flags(0)
	if opt {
		flags |= FlagOption
	}
	// Kinds have no parameters beyond optionality, so two singletons
	// (opt/!opt) suffice; they share the scalar cache, whose keys
	// cannot collide since kind tags differ from every scalar tag.
	key := scalarKey{tag: tag, opt: opt}
	scalarMu.Lock()
	defer scalarMu.Unlock()
	if t, ok := scalarCache[key]; ok {
		return t
	}
	u := &term{tag: tag, access: Abstract, flags: flags, static: true}
	t := Type{raw: u}
	scalarCache[key] = t
	return t
}

// NewAnyKind returns the AnyKind abstraction, which unifies with
// anything.
func NewAnyKind(opt bool) Type { return newKind(AnyKind, opt) }

// NewScalarKind returns the ScalarKind abstraction.
func NewScalarKind(opt bool) Type { return newKind(ScalarKind, opt) }

// NewSignedKind returns the SignedKind abstraction (Int8..Int64).
func NewSignedKind(opt bool) Type { return newKind(SignedKind, opt) }

// NewUnsignedKind returns the UnsignedKind abstraction (Uint8..Uint64).
func NewUnsignedKind(opt bool) Type { return newKind(UnsignedKind, opt) }

// NewFloatKind returns the FloatKind abstraction.
func NewFloatKind(opt bool) Type { return newKind(FloatKind, opt) }

// NewComplexKind returns the ComplexKind abstraction.
func NewComplexKind(opt bool) Type { return newKind(ComplexKind, opt) }

// NewFixedStringKind returns the FixedStringKind abstraction.
func NewFixedStringKind(opt bool) Type { return newKind(FixedStringKind, opt) }

// NewFixedBytesKind returns the FixedBytesKind abstraction.
func NewFixedBytesKind(opt bool) Type { return newKind(FixedBytesKind, opt) }

// Encoding names a fixed-string or char character encoding.
type Encoding string

const (
	Ascii Encoding = "ascii"
	UTF8  Encoding = "utf8"
	UTF16 Encoding = "utf16"
	UTF32 Encoding = "utf32"
	UCS2  Encoding = "ucs2"
)

func (e Encoding) codepointSize() int64 {
	switch e {
	case Ascii:
		return 1
	case UTF8:
		return 1
	case UTF16, UCS2:
		return 2
	case UTF32:
		return 4
	default:
		return 1
	}
}

type fixedStringPayload struct {
	size     int64
	encoding Encoding
}

func (*fixedStringPayload) children() []Type { return nil }

// FixedString constructs a fixed-width string of size codepoints in the
// given encoding. Concrete: datasize = size * encoding width.
func FixedString(size int64, encoding Encoding, ctx *Context) (Type, bool) {
	if size < 0 {
		return Type{}, ctx.Fail(ValueError, "FixedString: size must be a natural number")
	}
	width := encoding.codepointSize()
	datasize, overflow := mulOverflow(size, width)
	if overflow {
		return Type{}, ctx.Fail(ValueError, "FixedString: size too large")
	}
	u := newAbstract(FixedString, FlagChar)
	u.access = Concrete
	u.datasize = datasize
	u.align = uint16(width)
	u.payload = &fixedStringPayload{size: size, encoding: encoding}
	return Type{raw: u}, true
}

type fixedBytesPayload struct {
	size  int64
	align uint16
}

func (*fixedBytesPayload) children() []Type { return nil }

// FixedBytes constructs a fixed-size byte buffer aligned to align
// (default 1).
func FixedBytes(size int64, align uint16, ctx *Context) (Type, bool) {
	if size < 0 {
		return Type{}, ctx.Fail(ValueError, "FixedBytes: size must be a natural number")
	}
	if align == 0 {
		align = 1
	}
	if !isPowerOfTwo(align) {
		return Type{}, ctx.Fail(ValueError, "FixedBytes: align must be a power of two")
	}
	u := newAbstract(FixedBytes, 0)
	u.access = Concrete
	u.datasize = size
	u.align = align
	u.payload = &fixedBytesPayload{size: size, align: align}
	return Type{raw: u}, true
}

type charPayload struct {
	encoding Encoding
}

func (*charPayload) children() []Type { return nil }

// Char constructs a single character in the given encoding.
func Char(encoding Encoding, ctx *Context) (Type, bool) {
	width := encoding.codepointSize()
	u := newAbstract(Char, FlagChar)
	u.access = Concrete
	u.datasize = width
	u.align = uint16(width)
	u.payload = &charPayload{encoding: encoding}
	return Type{raw: u}, true
}

func isPowerOfTwo(n uint16) bool {
	return n != 0 && n&(n-1) == 0
}
