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

// Command ndtinfo builds a handful of sample type terms and prints
// their layout, contiguity, and hash — a small diagnostic tool that
// exercises the core type algebra end to end without needing a parser
// front end.
package main

import (
	"fmt"
	"os"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/stoewer/go-strcase"
	"golang.org/x/term"

	"github.com/skrah/xnd"
	"github.com/skrah/xnd/internal/dump"
)

func main() {
	ctx := xnd.NewContext()
	samples, ok := buildSamples(ctx)
	if !ok {
		fmt.Fprintf(os.Stderr, "ndtinfo: %s\n", ctx.Error())
		os.Exit(1)
	}

	width := terminalWidth()
	for _, s := range samples {
		printSample(s, width)
	}
}

type sample struct {
	name string
	typ  xnd.Type
}

func buildSamples(ctx *xnd.Context) ([]sample, bool) {
	f64 := xnd.NewFloat64(false, 0)
	i32 := xnd.NewInt32(false, 0)

	matrix, ok := xnd.NewFixedDim(f64, 4, xnd.NoStep, ctx)
	if !ok {
		return nil, false
	}
	matrix, ok = xnd.NewFixedDim(matrix, 3, xnd.NoStep, ctx)
	if !ok {
		return nil, false
	}

	fx, ok := xnd.NewField("x", f64, nil, nil, nil, ctx)
	if !ok {
		return nil, false
	}
	fy, ok := xnd.NewField("y", f64, nil, nil, nil, ctx)
	if !ok {
		return nil, false
	}
	flabel, ok := xnd.NewField("label", i32, nil, nil, nil, ctx)
	if !ok {
		return nil, false
	}

	point, ok := xnd.NewRecord(xnd.Fixed, []xnd.Field{fx, fy, flabel}, nil, nil, false, ctx)
	if !ok {
		return nil, false
	}

	return []sample{
		{name: "matrix_3x4_float64", typ: matrix},
		{name: "point_record", typ: point},
	}, true
}

func printSample(s sample, width int) {
	fmt.Println(strings.Repeat("=", min(width, len(s.name)+4)))
	fmt.Printf("== %s\n", shellescape.Quote(s.name))
	fmt.Printf("ndim=%d datasize=%d align=%d contiguous=%v hash=%016x\n",
		s.typ.NDim(), s.typ.DataSize(), s.typ.Align(), xnd.IsCContiguous(s.typ), xnd.Hash(s.typ))

	for _, child := range s.typ.Children() {
		fmt.Printf("  field as go identifier: %s\n", strcase.UpperCamelCase(fieldHint(child)))
	}

	fmt.Println(dump.Sdump(s.typ))
}

// fieldHint has no access to field names from a bare child Type, so it
// falls back to the child's tag for the demo "as Go struct" preview.
func fieldHint(t xnd.Type) string {
	return t.Tag().String()
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
