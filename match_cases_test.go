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
	"embed"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/skrah/xnd"
)

//go:embed testdata/match_cases.yaml
var matchCasesFS embed.FS

type matchCase struct {
	Name           string `yaml:"name"`
	PatternShape   int64  `yaml:"pattern_shape"`
	CandidateShape int64  `yaml:"candidate_shape"`
	Want           bool   `yaml:"want"`
}

type matchCaseFile struct {
	Cases []matchCase `yaml:"cases"`
}

func loadMatchCases(t *testing.T) []matchCase {
	t.Helper()
	data, err := matchCasesFS.ReadFile("testdata/match_cases.yaml")
	require.NoError(t, err)

	var file matchCaseFile
	require.NoError(t, yaml.Unmarshal(data, &file))
	return file.Cases
}

func TestMatchCasesFromFixtures(t *testing.T) {
	t.Parallel()

	for _, c := range loadMatchCases(t) {
		t.Run(c.Name, func(t *testing.T) {
			t.Parallel()

			ctx := xnd.NewContext()
			pattern, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), c.PatternShape, xnd.NoStep, ctx)
			require.True(t, ok, ctx.Error())
			candidate, ok := xnd.NewFixedDim(xnd.NewFloat64(false, 0), c.CandidateShape, xnd.NoStep, ctx)
			require.True(t, ok, ctx.Error())

			matched, failed := xnd.Match(pattern, candidate, ctx)
			require.False(t, failed)
			require.Equal(t, c.Want, matched)
		})
	}
}
