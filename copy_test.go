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

func TestCopyScalarIsItsOwnCopy(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	u, ok := xnd.Copy(f64, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(f64, u))
}

func TestCopyFixedDimIsStructurallyEqual(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	row, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 4, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())

	u, ok := xnd.Copy(row, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(row, u))
	require.Equal(t, row.DataSize(), u.DataSize())
}

func TestCopyRecordPreservesFieldNames(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	fx, ok := xnd.NewField("x", f64, nil, nil, nil, ctx)
	require.True(t, ok, ctx.Error())
	fy, ok := xnd.NewField("y", f64, nil, nil, nil, ctx)
	require.True(t, ok, ctx.Error())
	rec, ok := xnd.NewRecord(xnd.Fixed, []xnd.Field{fx, fy}, nil, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	u, ok := xnd.Copy(rec, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(rec, u))
}

func TestCopyVarDimPreservesOffsets(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	offsets := xnd.NewOffsetTable([]int32{0, 2, 5})
	v, ok := xnd.NewVarDim(xnd.NewInt32(false, 0), offsets, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	u, ok := xnd.Copy(v, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(v, u))
}

func TestCopyAbstractVarDimStaysAbstract(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	v, ok := xnd.NewAbstractVarDim(xnd.NewInt32(false, 0), false, ctx)
	require.True(t, ok, ctx.Error())

	u, ok := xnd.Copy(v, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, u.IsAbstract())
}
