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

func TestSymbolTableSessionsAreUnique(t *testing.T) {
	t.Parallel()

	a := xnd.NewSymbolTable()
	b := xnd.NewSymbolTable()
	require.NotEqual(t, a.Session, b.Session)
}

func TestSymbolTableShapeBindings(t *testing.T) {
	t.Parallel()

	tbl := xnd.NewSymbolTable()
	_, found := tbl.FindShape("N")
	require.False(t, found)

	tbl.BindShape("N", 42)
	shape, found := tbl.FindShape("N")
	require.True(t, found)
	require.Equal(t, int64(42), shape)
}

func TestSymbolTableTypevarBindings(t *testing.T) {
	t.Parallel()

	tbl := xnd.NewSymbolTable()
	_, found := tbl.FindTypevar("T")
	require.False(t, found)

	f64 := xnd.NewFloat64(false, 0)
	tbl.BindTypevar("T", f64)
	bound, found := tbl.FindTypevar("T")
	require.True(t, found)
	require.True(t, xnd.Equal(f64, bound))
}

func TestSymbolTableEllipsisBindings(t *testing.T) {
	t.Parallel()

	tbl := xnd.NewSymbolTable()
	_, found := tbl.FindEllipsis("Dims")
	require.False(t, found)

	tbl.BindEllipsis("Dims", xnd.EllipsisBinding{Kind: xnd.FixedSeq})
	binding, found := tbl.FindEllipsis("Dims")
	require.True(t, found)
	require.Equal(t, xnd.FixedSeq, binding.Kind)
}
