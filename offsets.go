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

import "sync/atomic"

// offsetTable is a shared, refcounted int32 prefix-sum array describing
// a VarDim's ragged extents (ndt_offsets_t). It is shared between VarDim
// instances produced by reslicing, which is why it is refcounted
// independently of its owning term (spec design notes).
type offsetTable struct {
	refcnt atomic.Int64
	v      []int32
}

func newOffsetTableFrom(v []int32) *offsetTable {
	cp := make([]int32, len(v))
	copy(cp, v)
	o := &offsetTable{v: cp}
	o.refcnt.Store(1)
	return o
}

func (o *offsetTable) incref() {
	if o != nil {
		o.refcnt.Add(1)
	}
}

func (o *offsetTable) decref() {
	if o == nil {
		return
	}
	if o.refcnt.Add(-1) == 0 {
		o.v = nil
	}
}

// OffsetTable is a shareable handle to a VarDim's offset array.
type OffsetTable struct {
	raw *offsetTable
}

// NewOffsetTable copies values into a fresh, refcount-1 offset table.
func NewOffsetTable(values []int32) OffsetTable {
	return OffsetTable{raw: newOffsetTableFrom(values)}
}

// Len returns the number of entries (nitems + 1), or 0 for an invalid
// (abstract var dim's) table.
func (o OffsetTable) Len() int32 {
	if o.raw == nil {
		return 0
	}
	return int32(len(o.raw.v))
}

// At returns the i'th offset.
func (o OffsetTable) At(i int32) int32 { return o.raw.v[i] }

// IncRef shares this offset table with another owner.
func (o OffsetTable) IncRef() { o.raw.incref() }

// DecRef releases this owner's share of the offset table.
func (o OffsetTable) DecRef() { o.raw.decref() }

// IsValid reports whether o refers to an actual table.
func (o OffsetTable) IsValid() bool { return o.raw != nil }
