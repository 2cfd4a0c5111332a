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

// Equal reports whether a and b are structurally identical: same tag,
// same flags/layout fields, same payload (names byte-exact), and
// pairwise-equal children, per spec §4.8.
func Equal(a, b Type) bool {
	return typesStructurallyEqual(a, b)
}

func typesStructurallyEqual(a, b Type) bool {
	if a.raw == b.raw {
		return true
	}
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Tag() != b.Tag() || a.Flags() != b.Flags() || a.Access() != b.Access() {
		return false
	}
	if a.IsConcrete() && (a.DataSize() != b.DataSize() || a.Align() != b.Align()) {
		return false
	}

	switch pa := a.raw.payload.(type) {
	case *fixedDimPayload:
		pb := b.raw.payload.(*fixedDimPayload)
		return pa.shape == pb.shape && pa.step == pb.step && pa.tag == pb.tag &&
			typesStructurallyEqual(pa.inner, pb.inner)

	case *varDimElemPayload:
		pb, ok := b.raw.payload.(*varDimElemPayload)
		if !ok {
			return false
		}
		return pa.index == pb.index && varDimPayloadsEqual(&pa.varDimPayload, &pb.varDimPayload)

	case *varDimPayload:
		pb, ok := b.raw.payload.(*varDimPayload)
		if !ok {
			return false
		}
		return varDimPayloadsEqual(pa, pb)

	case *symbolicDimPayload:
		pb := b.raw.payload.(*symbolicDimPayload)
		return pa.name == pb.name && typesStructurallyEqual(pa.inner, pb.inner)

	case *ellipsisDimPayload:
		pb := b.raw.payload.(*ellipsisDimPayload)
		return ellipsisNamesEqual(pa.name, pb.name) && typesStructurallyEqual(pa.inner, pb.inner)

	case *arrayPayload:
		pb := b.raw.payload.(*arrayPayload)
		return typesStructurallyEqual(pa.inner, pb.inner)

	case *refPayload:
		pb := b.raw.payload.(*refPayload)
		return typesStructurallyEqual(pa.inner, pb.inner)

	case *constrPayload:
		pb := b.raw.payload.(*constrPayload)
		return pa.name == pb.name && typesStructurallyEqual(pa.inner, pb.inner)

	case *nominalPayload:
		pb := b.raw.payload.(*nominalPayload)
		return pa.name == pb.name && typesStructurallyEqual(pa.inner, pb.inner)

	case *tuplePayload:
		pb := b.raw.payload.(*tuplePayload)
		if pa.variadic != pb.variadic || len(pa.types) != len(pb.types) {
			return false
		}
		for i := range pa.types {
			if !typesStructurallyEqual(pa.types[i], pb.types[i]) {
				return false
			}
		}
		return true

	case *recordPayload:
		pb := b.raw.payload.(*recordPayload)
		if pa.variadic != pb.variadic || len(pa.types) != len(pb.types) {
			return false
		}
		for i := range pa.types {
			if pa.names[i] != pb.names[i] || !typesStructurallyEqual(pa.types[i], pb.types[i]) {
				return false
			}
		}
		return true

	case *unionPayload:
		pb := b.raw.payload.(*unionPayload)
		if len(pa.types) != len(pb.types) {
			return false
		}
		for i := range pa.types {
			if pa.tags[i] != pb.tags[i] || !typesStructurallyEqual(pa.types[i], pb.types[i]) {
				return false
			}
		}
		return true

	case *categoricalPayload:
		pb := b.raw.payload.(*categoricalPayload)
		if len(pa.values) != len(pb.values) {
			return false
		}
		for i := range pa.values {
			if compareCategoryValues(pa.values[i], pb.values[i]) != 0 {
				return false
			}
		}
		return true

	case *typevarPayload:
		pb := b.raw.payload.(*typevarPayload)
		return pa.name == pb.name

	case *functionPayload:
		pb := b.raw.payload.(*functionPayload)
		if pa.nin != pb.nin || pa.nout != pb.nout || len(pa.types) != len(pb.types) {
			return false
		}
		for i := range pa.types {
			if !typesStructurallyEqual(pa.types[i], pb.types[i]) {
				return false
			}
		}
		return true

	case *modulePayload:
		pb := b.raw.payload.(*modulePayload)
		return pa.name == pb.name && typesStructurallyEqual(pa.inner, pb.inner)

	case *fixedStringPayload:
		pb := b.raw.payload.(*fixedStringPayload)
		return pa.size == pb.size && pa.encoding == pb.encoding

	case *fixedBytesPayload:
		pb := b.raw.payload.(*fixedBytesPayload)
		return pa.size == pb.size && pa.align == pb.align

	case *charPayload:
		pb := b.raw.payload.(*charPayload)
		return pa.encoding == pb.encoding

	default:
		// Scalars and kinds carry no payload beyond tag/flags, already
		// compared above.
		return true
	}
}

func varDimPayloadsEqual(pa, pb *varDimPayload) bool {
	if pa.itemsize != pb.itemsize {
		return false
	}
	if pa.offsets.Len() != pb.offsets.Len() {
		return false
	}
	for i := int32(0); i < pa.offsets.Len(); i++ {
		if pa.offsets.At(i) != pb.offsets.At(i) {
			return false
		}
	}
	if len(pa.slices) != len(pb.slices) {
		return false
	}
	for i := range pa.slices {
		if pa.slices[i] != pb.slices[i] {
			return false
		}
	}
	return typesStructurallyEqual(pa.inner, pb.inner)
}
