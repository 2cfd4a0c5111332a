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
	"crypto/sha256"
	"math"
	"math/bits"

	"golang.org/x/crypto/blake2b"
)

// hashState is an fxhash-derived mixer (the Rust-compiler rustc-hash
// variant): branchless, order-sensitive combination of a running
// state with each new 64-bit word. Hash uses it to fold a type's tag
// and every payload field into one stable value.
type hashState uint64

const (
	hashRotate = 26
	hashKey    = 0xf1357aea2e62a9c5
)

func (h hashState) mixU64(n uint64) hashState {
	x := (uint64(h) + n) * hashKey
	return hashState(bits.RotateLeft64(x, hashRotate))
}

func (h hashState) mixString(s string) hashState {
	out := h
	for len(s) >= 8 {
		out = out.mixU64(uint64(s[0]) | uint64(s[1])<<8 | uint64(s[2])<<16 | uint64(s[3])<<24 |
			uint64(s[4])<<32 | uint64(s[5])<<40 | uint64(s[6])<<48 | uint64(s[7])<<56)
		s = s[8:]
	}
	var tail uint64
	for i := 0; i < len(s); i++ {
		tail |= uint64(s[i]) << (8 * i)
	}
	return out.mixU64(tail ^ uint64(len(s)))
}

func (h hashState) mixBool(b bool) hashState {
	if b {
		return h.mixU64(1)
	}
	return h.mixU64(0)
}

func (h hashState) mixTag(tag Tag) hashState { return h.mixU64(uint64(tag)) }

// Hash returns a stable hash of t: identical structural terms (per
// Equal) hash identically, within a process and across processes,
// since the mixer carries no per-run seed.
func Hash(t Type) uint64 {
	return uint64(hashType(hashState(0xcbf29ce484222325), t))
}

func hashType(h hashState, t Type) hashState {
	if !t.IsValid() {
		return h.mixU64(0)
	}
	h = h.mixTag(t.Tag()).mixU64(uint64(t.Flags()))

	switch p := t.raw.payload.(type) {
	case *fixedDimPayload:
		h = h.mixU64(uint64(p.shape)).mixU64(uint64(p.step))
		return hashType(h, p.inner)

	case *varDimElemPayload:
		h = h.mixU64(uint64(p.index))
		return hashVarDim(h, &p.varDimPayload)

	case *varDimPayload:
		return hashVarDim(h, p)

	case *symbolicDimPayload:
		h = h.mixString(p.name)
		return hashType(h, p.inner)

	case *ellipsisDimPayload:
		if p.name != nil {
			h = h.mixString(*p.name)
		} else {
			h = h.mixU64(0)
		}
		return hashType(h, p.inner)

	case *arrayPayload:
		return hashType(h, p.inner)

	case *refPayload:
		return hashType(h, p.inner)

	case *constrPayload:
		return hashType(h.mixString(p.name), p.inner)

	case *nominalPayload:
		return hashType(h.mixString(p.name), p.inner)

	case *tuplePayload:
		h = h.mixBool(bool(p.variadic)).mixU64(uint64(len(p.types)))
		for _, ty := range p.types {
			h = hashType(h, ty)
		}
		return h

	case *recordPayload:
		h = h.mixBool(bool(p.variadic)).mixU64(uint64(len(p.types)))
		for i, ty := range p.types {
			h = hashType(h.mixString(p.names[i]), ty)
		}
		return h

	case *unionPayload:
		h = h.mixU64(uint64(len(p.types)))
		for i, ty := range p.types {
			h = hashType(h.mixString(p.tags[i]), ty)
		}
		return h

	case *categoricalPayload:
		h = h.mixU64(uint64(len(p.values)))
		for _, v := range p.values {
			h = h.mixU64(uint64(v.Kind)).mixU64(uint64(v.Int64)).mixString(v.Str)
		}
		return h

	case *typevarPayload:
		return h.mixString(p.name)

	case *functionPayload:
		h = h.mixU64(uint64(p.nin)).mixU64(uint64(p.nout))
		for _, ty := range p.types {
			h = hashType(h, ty)
		}
		return h

	case *modulePayload:
		return hashType(h.mixString(p.name), p.inner)

	case *fixedStringPayload:
		return h.mixU64(uint64(p.size)).mixString(string(p.encoding))

	case *fixedBytesPayload:
		return h.mixU64(uint64(p.size)).mixU64(uint64(p.align))

	case *charPayload:
		return h.mixString(string(p.encoding))

	default:
		return h
	}
}

func hashVarDim(h hashState, p *varDimPayload) hashState {
	h = h.mixU64(uint64(p.offsets.Len()))
	for i := int32(0); i < p.offsets.Len(); i++ {
		h = h.mixU64(uint64(uint32(p.offsets.At(i))))
	}
	h = h.mixU64(uint64(len(p.slices)))
	for _, s := range p.slices {
		h = h.mixU64(uint64(s.Start)).mixU64(uint64(s.Stop)).mixU64(uint64(s.Step))
	}
	return hashType(h, p.inner)
}

// StrongHash returns a cryptographic (blake2b-256) digest of t's
// canonical byte encoding, for callers that need collision resistance
// across untrusted input rather than Hash's speed (e.g. a cache key
// shared between mutually distrusting processes).
func StrongHash(t Type, ctx *Context) ([32]byte, bool) {
	enc, ok := canonicalEncoding(t)
	if !ok {
		return [32]byte{}, ctx.Fail(NotImplementedError, "strong hash not implemented for this type")
	}
	sum := blake2b.Sum256(enc)
	return sum, true
}

// FallbackHash is StrongHash's sha256 alternative, used only when a
// blake2b digest cannot be produced (never in this package; kept so
// callers that persist hashes across the registry/session boundary
// have a second digest to cross-check against).
func FallbackHash(t Type) [32]byte {
	enc, _ := canonicalEncoding(t)
	return sha256.Sum256(enc)
}

func canonicalEncoding(t Type) ([]byte, bool) {
	if !t.IsValid() {
		return nil, false
	}
	var buf []byte
	appendCanonical(&buf, t)
	return buf, true
}

func appendCanonical(buf *[]byte, t Type) {
	*buf = append(*buf, byte(t.Tag()), byte(t.Flags()))
	switch p := t.raw.payload.(type) {
	case *fixedDimPayload:
		*buf = appendI64(*buf, p.shape)
		*buf = appendI64(*buf, p.step)
		appendCanonical(buf, p.inner)

	case *varDimElemPayload:
		*buf = appendI64(*buf, p.index)
		appendCanonicalVarDim(buf, &p.varDimPayload)

	case *varDimPayload:
		appendCanonicalVarDim(buf, p)

	case *symbolicDimPayload:
		*buf = append(*buf, p.name...)
		appendCanonical(buf, p.inner)

	case *ellipsisDimPayload:
		if p.name != nil {
			*buf = append(*buf, *p.name...)
		}
		appendCanonical(buf, p.inner)

	case *arrayPayload:
		appendCanonical(buf, p.inner)

	case *refPayload:
		appendCanonical(buf, p.inner)

	case *constrPayload:
		*buf = append(*buf, p.name...)
		appendCanonical(buf, p.inner)

	case *nominalPayload:
		*buf = append(*buf, p.name...)
		appendCanonical(buf, p.inner)

	case *tuplePayload:
		*buf = append(*buf, boolByte(bool(p.variadic)))
		for _, ty := range p.types {
			appendCanonical(buf, ty)
		}

	case *recordPayload:
		*buf = append(*buf, boolByte(bool(p.variadic)))
		for i, ty := range p.types {
			*buf = append(*buf, p.names[i]...)
			appendCanonical(buf, ty)
		}

	case *unionPayload:
		for i, ty := range p.types {
			*buf = append(*buf, p.tags[i]...)
			appendCanonical(buf, ty)
		}

	case *categoricalPayload:
		for _, v := range p.values {
			*buf = append(*buf, byte(v.Kind), boolByte(v.Bool))
			*buf = appendI64(*buf, v.Int64)
			*buf = appendI64(*buf, int64(math.Float64bits(v.Float)))
			*buf = append(*buf, v.Str...)
		}

	case *typevarPayload:
		*buf = append(*buf, p.name...)

	case *functionPayload:
		*buf = appendI64(*buf, int64(p.nin))
		*buf = appendI64(*buf, int64(p.nout))
		for _, ty := range p.types {
			appendCanonical(buf, ty)
		}

	case *modulePayload:
		*buf = append(*buf, p.name...)
		appendCanonical(buf, p.inner)

	case *fixedStringPayload:
		*buf = appendI64(*buf, p.size)
		*buf = append(*buf, p.encoding...)

	case *fixedBytesPayload:
		*buf = appendI64(*buf, p.size)
		*buf = appendI64(*buf, int64(p.align))

	case *charPayload:
		*buf = append(*buf, p.encoding...)
	}
}

func appendCanonicalVarDim(buf *[]byte, p *varDimPayload) {
	*buf = appendI64(*buf, int64(p.offsets.Len()))
	for i := int32(0); i < p.offsets.Len(); i++ {
		*buf = appendI64(*buf, int64(p.offsets.At(i)))
	}
	*buf = appendI64(*buf, int64(len(p.slices)))
	for _, s := range p.slices {
		*buf = appendI64(*buf, s.Start)
		*buf = appendI64(*buf, s.Stop)
		*buf = appendI64(*buf, s.Step)
	}
	appendCanonical(buf, p.inner)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func appendI64(buf []byte, v int64) []byte {
	return append(buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
