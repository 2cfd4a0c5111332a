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

func TestRegisterAndLookupRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	require.True(t, xnd.Register("registry_test.Meters", xnd.NewFloat64(false, 0), nil, ctx))
	defer xnd.Unregister("registry_test.Meters")

	n, ok := xnd.NewNominal("registry_test.Meters", xnd.Type{}, false, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, int64(8), n.DataSize())
}

func TestRegisterOverwriteReplacesDefinition(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	require.True(t, xnd.Register("registry_test.Overwrite", xnd.NewInt32(false, 0), nil, ctx))
	defer xnd.Unregister("registry_test.Overwrite")

	n1, ok := xnd.NewNominal("registry_test.Overwrite", xnd.Type{}, false, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, int64(4), n1.DataSize())

	require.True(t, xnd.Register("registry_test.Overwrite", xnd.NewFloat64(false, 0), nil, ctx))
	n2, ok := xnd.NewNominal("registry_test.Overwrite", xnd.Type{}, false, ctx)
	require.True(t, ok, ctx.Error())
	require.Equal(t, int64(8), n2.DataSize())
}

func TestRegisterRejectsInvalidType(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	ok := xnd.Register("registry_test.Invalid", xnd.Type{}, nil, ctx)
	require.False(t, ok)
	require.Equal(t, xnd.ValueError, ctx.Code())
}

func TestUnregisterIsNoopForUnknownName(t *testing.T) {
	t.Parallel()

	require.False(t, xnd.Unregister("registry_test.NeverRegistered"))
}

func TestRegisteredNamesIncludesRegistered(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	require.True(t, xnd.Register("registry_test.Listed", xnd.NewInt8(false), nil, ctx))
	defer xnd.Unregister("registry_test.Listed")

	names := xnd.RegisteredNames()
	found := false
	for _, n := range names {
		if n == "registry_test.Listed" {
			found = true
			break
		}
	}
	require.True(t, found)
}

func TestRegisterAcceptsAMethodsTable(t *testing.T) {
	t.Parallel()

	ctx := xnd.NewContext()
	methods := &xnd.Methods{
		Equal: func(a, b xnd.Type) bool { return xnd.Equal(a, b) },
	}
	require.True(t, xnd.Register("registry_test.WithMethods", xnd.NewInt32(false, 0), methods, ctx))
	defer xnd.Unregister("registry_test.WithMethods")
}
