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

func TestUnifyIdenticalTypesReturnsSame(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	a := xnd.NewInt32(false, 0)
	u, ok := xnd.Unify(a, a, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(a, u))
}

func TestUnifyKindAbsorbsScalar(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	kind := xnd.NewFloatKind(false)
	f32 := xnd.NewFloat32(false, 0)

	u, ok := xnd.Unify(kind, f32, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(f32, u))

	u, ok = xnd.Unify(f32, kind, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, xnd.Equal(f32, u))
}

func TestUnifyWidensToLargerScalar(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	i16 := xnd.NewInt16(false, 0)
	i64 := xnd.NewInt64(false, 0)

	u, ok := xnd.Unify(i16, i64, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, xnd.Int64, u.Tag())
}

func TestUnifyRejectsDifferentScalarKinds(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	i32 := xnd.NewInt32(false, 0)
	f32 := xnd.NewFloat32(false, 0)

	_, ok := xnd.Unify(i32, f32, ctx)
	require.False(t, ok)
	require.False(t, ctx.Failed(), "a plain unification mismatch is not a *Context failure")
}

func TestUnifyOptionalityIsDisjunction(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	plain := xnd.NewInt32(false, 0)
	opt := xnd.NewInt32(true, 0)

	u, ok := xnd.Unify(plain, opt, ctx)
	require.True(t, ok, ctx.Error())
	require.True(t, u.IsOptional())
}

func TestUnifyFixedDimRequiresEqualShape(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	a, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 3, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())
	b, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 4, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())

	_, ok = xnd.Unify(a, b, ctx)
	require.False(t, ok)
}

func TestUnifyFixedDimUnifiesInner(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	a, ok := xnd.NewFixedDim(xnd.NewInt16(false, 0), 3, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())
	b, ok := xnd.NewFixedDim(xnd.NewInt64(false, 0), 3, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())

	u, ok := xnd.Unify(a, b, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, xnd.FixedDim, u.Tag())
}
