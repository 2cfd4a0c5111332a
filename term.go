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
	"strconv"
	"sync/atomic"
)

// MaxDim is the maximum number of outer dimension constructors a type
// may nest (NDT_MAX_DIM in libndtypes).
const MaxDim = 16

// Tag is the constructor of a type term.
type Tag uint8

const (
	// Scalars, all concrete and statically interned.
	Bool Tag = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	BFloat16
	Float16
	Float32
	Float64
	BComplex32
	Complex32
	Complex64
	Complex128
	String
	Bytes
	Char
	FixedString
	FixedBytes

	// Kind abstractions: abstract, unify with any matching subtype.
	AnyKind
	ScalarKind
	SignedKind
	UnsignedKind
	FloatKind
	ComplexKind
	FixedStringKind
	FixedBytesKind

	// Dimension constructors.
	FixedDim
	VarDim
	VarDimElem
	SymbolicDim
	EllipsisDim
	Array

	// Composite constructors.
	Tuple
	Record
	Union
	Function
	Ref
	Constr
	Nominal
	Categorical
	Typevar
	Module
)

var tagNames = [...]string{
	Bool: "Bool", Int8: "Int8", Int16: "Int16", Int32: "Int32", Int64: "Int64",
	Uint8: "Uint8", Uint16: "Uint16", Uint32: "Uint32", Uint64: "Uint64",
	BFloat16: "BFloat16", Float16: "Float16", Float32: "Float32", Float64: "Float64",
	BComplex32: "BComplex32", Complex32: "Complex32", Complex64: "Complex64", Complex128: "Complex128",
	String: "String", Bytes: "Bytes", Char: "Char",
	FixedString: "FixedString", FixedBytes: "FixedBytes",
	AnyKind: "AnyKind", ScalarKind: "ScalarKind", SignedKind: "SignedKind",
	UnsignedKind: "UnsignedKind", FloatKind: "FloatKind", ComplexKind: "ComplexKind",
	FixedStringKind: "FixedStringKind", FixedBytesKind: "FixedBytesKind",
	FixedDim: "FixedDim", VarDim: "VarDim", VarDimElem: "VarDimElem",
	SymbolicDim: "SymbolicDim", EllipsisDim: "EllipsisDim", Array: "Array",
	Tuple: "Tuple", Record: "Record", Union: "Union", Function: "Function",
	Ref: "Ref", Constr: "Constr", Nominal: "Nominal", Categorical: "Categorical",
	Typevar: "Typevar", Module: "Module",
}

// String returns the constructor's name, e.g. "FixedDim".
func (t Tag) String() string {
	if int(t) < len(tagNames) && tagNames[t] != "" {
		return tagNames[t]
	}
	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

// Access describes whether a type has a fully determined memory layout.
type Access uint8

const (
	// Abstract types are underspecified: no layout.
	Abstract Access = iota
	// Concrete types have known size/alignment/padding.
	Concrete
)

// Flags is a bitset of subtree properties, carried bottom-up by every
// constructor (ndt_subtree_flags / ndt_dim_flags in libndtypes).
type Flags uint32

const (
	FlagOption Flags = 1 << iota
	FlagSubtreeOption
	FlagPointer
	FlagReference
	FlagChar
	FlagEllipsis
	FlagLittleEndian
	FlagBigEndian
)

// subtreeFlags computes the flags a parent constructor inherits from a
// child, per ndt_subtree_flags.
func subtreeFlags(t Type) Flags {
	if t.raw == nil {
		return 0
	}
	var f Flags
	if t.raw.flags&(FlagOption|FlagSubtreeOption) != 0 {
		f |= FlagSubtreeOption
	}
	if t.raw.flags&FlagPointer != 0 {
		f |= FlagPointer
	}
	if t.raw.flags&FlagReference != 0 {
		f |= FlagReference
	}
	if t.raw.flags&FlagChar != 0 {
		f |= FlagChar
	}
	return f
}

// dimFlags is subtreeFlags plus ellipsis propagation, per ndt_dim_flags.
func dimFlags(t Type) Flags {
	f := subtreeFlags(t)
	f |= t.raw.flags & FlagEllipsis
	return f
}

// term is the payload-bearing, reference-counted node behind a Type.
// Go's GC makes manual freeing unnecessary; the refcount is still kept,
// atomically, because the spec requires it as part of the API contract
// (shared offset tables and the typedef registry rely on knowing when a
// term's last owner has let go) and because eagerly dropping child
// references on the last DecRef keeps large graphs from lingering.
type term struct {
	tag      Tag
	access   Access
	flags    Flags
	ndim     int
	datasize int64
	align    uint16

	refcnt   atomic.Int64
	static   bool
	released atomic.Bool

	payload any
}

// childSet is implemented by every non-scalar payload to let release
// walk and decref its children.
type childSet interface {
	children() []Type
}

// hasOffsetTable is implemented by VarDim/VarDimElem payloads to let
// release drop their shared offset table reference.
type hasOffsetTable interface {
	offsetTable() OffsetTable
}

// Type is an immutable reference to a type term. The zero Type is not a
// valid type (comparable to nil); use IsValid to check.
//
// Type is intentionally a single-pointer-sized value (not *Type) so it
// inlines into interfaces without an extra indirection, matching the
// convention hyperpb-go's Type/typeHeader pair uses.
type Type struct {
	raw *term
}

// IsValid reports whether t refers to an actual term.
func (t Type) IsValid() bool { return t.raw != nil }

// Children returns t's immediate child types, outermost first, or nil
// for a scalar or kind term. It does not take references on the
// returned types; callers that retain them must IncRef.
func (t Type) Children() []Type {
	if cs, ok := t.raw.payload.(childSet); ok {
		return cs.children()
	}
	return nil
}

// Tag returns the type's constructor tag.
func (t Type) Tag() Tag { return t.raw.tag }

// Access returns whether the type is Abstract or Concrete.
func (t Type) Access() Access { return t.raw.access }

// IsAbstract reports whether the type lacks a fully determined layout.
func (t Type) IsAbstract() bool { return t.raw.access == Abstract }

// IsConcrete reports whether the type has known size and alignment.
func (t Type) IsConcrete() bool { return t.raw.access == Concrete }

// NDim returns the number of outer dimension constructors.
func (t Type) NDim() int { return t.raw.ndim }

// DataSize returns the byte size of the type. Only meaningful for
// concrete types.
func (t Type) DataSize() int64 { return t.raw.datasize }

// Align returns the byte alignment of the type. Only meaningful for
// concrete types.
func (t Type) Align() uint16 { return t.raw.align }

// Flags returns the type's flag bitset.
func (t Type) Flags() Flags { return t.raw.flags }

// IsOptional reports whether the type itself is optional.
func (t Type) IsOptional() bool { return t.raw.flags&FlagOption != 0 }

// SubtreeIsOptional reports whether any type in the subtree is optional.
func (t Type) SubtreeIsOptional() bool { return t.raw.flags&FlagSubtreeOption != 0 }

// IsPointerFree reports whether the type's representation contains no
// pointers.
func (t Type) IsPointerFree() bool { return t.raw.flags&FlagPointer == 0 }

// IsRefFree reports whether the type contains no Ref constructor.
func (t Type) IsRefFree() bool { return t.raw.flags&FlagReference == 0 }

// Itemsize returns the byte size of the immediate element of a
// dimension constructor (ndt_itemsize). Panics if t is abstract.
func (t Type) Itemsize() int64 {
	if t.IsAbstract() {
		panic("ndt: Itemsize of abstract type")
	}
	switch p := t.raw.payload.(type) {
	case *fixedDimPayload:
		return p.itemsize
	case *varDimPayload:
		return p.itemsize
	default:
		return t.raw.datasize
	}
}

// IncRef increments the reference count. Static singletons ignore it.
func (t Type) IncRef() {
	if t.raw == nil || t.raw.static {
		return
	}
	t.raw.refcnt.Add(1)
}

// DecRef decrements the reference count, releasing child references
// (recursively) when it reaches zero. Static singletons ignore it.
func (t Type) DecRef() {
	if t.raw == nil || t.raw.static {
		return
	}
	if t.raw.refcnt.Add(-1) == 0 {
		t.raw.release()
	}
}

// release drops this term's references to its children. It is called
// exactly once, when the refcount reaches zero.
func (u *term) release() {
	if u.released.Swap(true) {
		return
	}
	if cs, ok := u.payload.(childSet); ok {
		for _, c := range cs.children() {
			c.DecRef()
		}
	}
	if o, ok := u.payload.(hasOffsetTable); ok {
		if ot := o.offsetTable(); ot.IsValid() {
			ot.DecRef()
		}
	}
	u.payload = nil
}

// newAbstract allocates a fresh abstract term with refcount 1.
func newAbstract(tag Tag, flags Flags) *term {
	t := &term{tag: tag, access: Abstract, flags: flags, align: 0}
	t.refcnt.Store(1)
	return t
}

// newStatic allocates an immortal, statically-interned term (a concrete
// scalar singleton). Its refcount is a sentinel: IncRef/DecRef no-op.
func newStatic(tag Tag, flags Flags, datasize int64, align uint16) Type {
	t := &term{
		tag:      tag,
		access:   Concrete,
		flags:    flags,
		datasize: datasize,
		align:    align,
		static:   true,
	}
	return Type{raw: t}
}
