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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdjustSliceIndicesPositiveStep(t *testing.T) {
	t.Parallel()

	start, stop := int64(1), int64(5)
	shape := adjustSliceIndices(10, &start, &stop, 1)
	require.Equal(t, int64(4), shape)
	require.Equal(t, int64(1), start)
	require.Equal(t, int64(5), stop)
}

func TestAdjustSliceIndicesNegativeIndices(t *testing.T) {
	t.Parallel()

	start, stop := int64(-3), int64(-1)
	shape := adjustSliceIndices(10, &start, &stop, 1)
	require.Equal(t, int64(2), shape)
	require.Equal(t, int64(7), start)
	require.Equal(t, int64(9), stop)
}

func TestAdjustSliceIndicesNegativeStep(t *testing.T) {
	t.Parallel()

	start, stop := int64(5), int64(1)
	shape := adjustSliceIndices(10, &start, &stop, -1)
	require.Equal(t, int64(4), shape)
}

func TestAdjustSliceIndicesEmptyRange(t *testing.T) {
	t.Parallel()

	start, stop := int64(5), int64(5)
	shape := adjustSliceIndices(10, &start, &stop, 1)
	require.Equal(t, int64(0), shape)
}

func TestVarIndicesRespectsOffsetTable(t *testing.T) {
	t.Parallel()

	ctx := NewContext()
	offsets := NewOffsetTable([]int32{0, 2, 5})
	v, ok := NewVarDim(NewInt32(false, 0), offsets, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	start, step, shape, ok := varIndices(v, 0, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, int64(0), start)
	require.Equal(t, int64(1), step)
	require.Equal(t, int64(2), shape)

	start, step, shape, ok = varIndices(v, 1, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, int64(2), start)
	require.Equal(t, int64(1), step)
	require.Equal(t, int64(3), shape)
}

func TestVarIndicesOutOfBounds(t *testing.T) {
	t.Parallel()

	ctx := NewContext()
	offsets := NewOffsetTable([]int32{0, 2, 5})
	v, ok := NewVarDim(NewInt32(false, 0), offsets, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	_, _, _, ok = varIndices(v, 2, ctx)
	require.False(t, ok)
	require.Equal(t, IndexError, ctx.Code())
}

func TestAddSliceGrowsPendingStack(t *testing.T) {
	t.Parallel()

	ctx := NewContext()
	offsets := NewOffsetTable([]int32{0, 2, 5})
	v, ok := NewVarDim(NewInt32(false, 0), offsets, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	sliced, ok := addSlice(v, 0, 1, 1, ctx)
	require.True(t, ok, ctx.Error())

	_, _, shape, ok := varIndices(sliced, 1, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, int64(1), shape, "the pending slice narrows row 1's 3 items down to 1")
}
