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

func TestTagStringKnownAndUnknown(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Float64", xnd.Float64.String())
	require.Equal(t, "Bool", xnd.Bool.String())
	require.Equal(t, "Tag(255)", xnd.Tag(255).String())
}

func TestTypeChildrenScalarIsNil(t *testing.T) {
	t.Parallel()

	require.Nil(t, xnd.NewFloat64(false, 0).Children())
}

func TestTypeChildrenFixedDimReturnsInner(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	row, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 4, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())

	children := row.Children()
	require.Len(t, children, 1)
	require.True(t, xnd.Equal(xnd.NewFloat64(false, 0), children[0]))
}

func TestTypeChildrenRecordReturnsEachField(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	i32 := xnd.NewInt32(false, 0)
	fx, ok := xnd.NewField("x", f64, nil, nil, nil, ctx)
	require.True(t, ok, ctx.Error())
	fy, ok := xnd.NewField("y", i32, nil, nil, nil, ctx)
	require.True(t, ok, ctx.Error())

	rec, ok := xnd.NewRecord(xnd.Fixed, []xnd.Field{fx, fy}, nil, nil, false, ctx)
	require.True(t, ok, ctx.Error())

	children := rec.Children()
	require.Len(t, children, 2)
	require.True(t, xnd.Equal(f64, children[0]))
	require.True(t, xnd.Equal(i32, children[1]))
}
