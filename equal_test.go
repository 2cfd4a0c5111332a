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

package ndt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skrah/xnd"
)

func TestEqualScalarsMatchOnTagAndOptionality(t *testing.T) {
	t.Parallel()

	require.True(t, xnd.Equal(xnd.NewInt32(false, 0), xnd.NewInt32(false, 0)))
	require.False(t, xnd.Equal(xnd.NewInt32(false, 0), xnd.NewInt32(true, 0)))
	require.False(t, xnd.Equal(xnd.NewInt32(false, 0), xnd.NewInt64(false, 0)))
}

func TestEqualFixedDimComparesShapeAndInner(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	a, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 4, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())
	b, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 4, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())
	c, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 5, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())

	require.True(t, xnd.Equal(a, b))
	require.False(t, xnd.Equal(a, c))
}

func TestEqualRecordComparesNamesAndOrder(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	fx, ok := xnd.NewField("x", f64, nil, nil, nil, ctx)
	require.True(t, ok, ctx.Error())
	fy, ok := xnd.NewField("y", f64, nil, nil, nil, ctx)
	require.True(t, ok, ctx.Error())

	rec1, ok := xnd.NewRecord(xnd.Fixed, []xnd.Field{fx, fy}, nil, nil, false, ctx)
	require.True(t, ok, ctx.Error())
	rec2, ok := xnd.NewRecord(xnd.Fixed, []xnd.Field{fy, fx}, nil, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	require.False(t, xnd.Equal(rec1, rec2), "field order is part of record identity")
}

func TestEqualVarDimComparesOffsetsAndSlices(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	offsetsA := xnd.NewOffsetTable([]int32{0, 2, 5})
	offsetsB := xnd.NewOffsetTable([]int32{0, 3, 5})

	a, ok := xnd.NewVarDim(xnd.NewInt32(false, 0), offsetsA, nil, false, ctx)
	require.True(t, ok, ctx.Error())
	b, ok := xnd.NewVarDim(xnd.NewInt32(false, 0), offsetsA, nil, false, ctx)
	require.True(t, ok, ctx.Error())
	c, ok := xnd.NewVarDim(xnd.NewInt32(false, 0), offsetsB, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	require.True(t, xnd.Equal(a, b))
	require.False(t, xnd.Equal(a, c))
}

func TestEqualFunctionComparesAritiesAndTypes(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	i32 := xnd.NewInt32(false, 0)
	f64 := xnd.NewFloat64(false, 0)

	a, ok := xnd.NewFunction([]xnd.Type{i32, f64}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())
	b, ok := xnd.NewFunction([]xnd.Type{i32, f64}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())
	c, ok := xnd.NewFunction([]xnd.Type{f64, i32}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())

	require.True(t, xnd.Equal(a, b))
	require.False(t, xnd.Equal(a, c))
}
