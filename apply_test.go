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

func TestTypecheckRejectsNonFunctionSignature(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	_, ok := xnd.Typecheck(xnd.NewInt32(false, 0), nil, ctx)
	require.False(t, ok)
	require.Equal(t, xnd.ValueError, ctx.Code())
}

func TestTypecheckRejectsArityMismatch(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	sig, ok := xnd.NewFunction([]xnd.Type{f64, f64}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())

	_, ok = xnd.Typecheck(sig, []xnd.Type{f64, f64}, ctx)
	require.False(t, ok)
	require.Equal(t, xnd.ValueError, ctx.Code())
}

func TestTypecheckScalarSignatureIsElemwise(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	sig, ok := xnd.NewFunction([]xnd.Type{f64, f64}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())

	spec, ok := xnd.Typecheck(sig, []xnd.Type{f64}, ctx)
	require.True(t, ok, ctx.Error())
	require.NotZero(t, spec.Flags&xnd.ApplyElemwise)
	require.Equal(t, 0, spec.OuterDims)
	require.Len(t, spec.Types, 2)
}

func TestTypecheckSharedEllipsisReportsOuterDims(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	name := "Dims"
	in, ok := xnd.NewEllipsisDim(&name, xnd.NewFloat64(false, 0), ctx)
	require.True(t, ok, ctx.Error())
	out, ok := xnd.NewEllipsisDim(&name, xnd.NewInt32(false, 0), ctx)
	require.True(t, ok, ctx.Error())

	sig, ok := xnd.NewFunction([]xnd.Type{in, out}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())

	row, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), 4, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())
	matrix, ok := xnd.NewFixedDim(row, 3, xnd.NoStep, ctx)
	require.True(t, ok, ctx.Error())

	spec, ok := xnd.Typecheck(sig, []xnd.Type{matrix}, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, 2, spec.OuterDims, "two FixedDim levels (3 then 4) were absorbed by the shared ellipsis")
}

func TestTypecheckRejectsMismatchedArgument(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	f64 := xnd.NewFloat64(false, 0)
	sig, ok := xnd.NewFunction([]xnd.Type{f64, f64}, 1, 1, ctx)
	require.True(t, ok, ctx.Error())

	_, ok = xnd.Typecheck(sig, []xnd.Type{xnd.NewInt32(false, 0)}, ctx)
	require.False(t, ok)
	require.Equal(t, xnd.ValueError, ctx.Code())
}
