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
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflow(t *testing.T) {
	t.Parallel()

	r, overflow := addOverflow(1, 2)
	require.False(t, overflow)
	require.Equal(t, int64(3), r)

	_, overflow = addOverflow(math.MaxInt64, 1)
	require.True(t, overflow)

	_, overflow = addOverflow(math.MinInt64, -1)
	require.True(t, overflow)
}

func TestMulOverflow(t *testing.T) {
	t.Parallel()

	r, overflow := mulOverflow(6, 7)
	require.False(t, overflow)
	require.Equal(t, int64(42), r)

	_, overflow = mulOverflow(math.MaxInt64, 2)
	require.True(t, overflow)

	r, overflow = mulOverflow(0, math.MaxInt64)
	require.False(t, overflow)
	require.Equal(t, int64(0), r)
}

func TestAbsOverflow(t *testing.T) {
	t.Parallel()

	r, overflow := absOverflow(-5)
	require.False(t, overflow)
	require.Equal(t, int64(5), r)

	_, overflow = absOverflow(math.MinInt64)
	require.True(t, overflow, "the minimum int64 has no positive counterpart")
}

func TestDivOverflow(t *testing.T) {
	t.Parallel()

	r, overflow := divOverflow(10, 3)
	require.False(t, overflow)
	require.Equal(t, int64(3), r)

	_, overflow = divOverflow(10, 0)
	require.True(t, overflow)

	_, overflow = divOverflow(math.MinInt64, -1)
	require.True(t, overflow)
}

func TestRoundUp(t *testing.T) {
	t.Parallel()

	r, overflow := roundUp(5, 8)
	require.False(t, overflow)
	require.Equal(t, int64(8), r)

	r, overflow = roundUp(16, 8)
	require.False(t, overflow)
	require.Equal(t, int64(16), r)

	_, overflow = roundUp(math.MaxInt64, 8)
	require.True(t, overflow)
}

func TestMaxHelpers(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint16(8), maxU16(8, 4))
	require.Equal(t, uint16(8), maxU16(4, 8))
	require.Equal(t, int64(8), maxI64(8, 4))
	require.Equal(t, int64(8), maxI64(4, 8))
}
