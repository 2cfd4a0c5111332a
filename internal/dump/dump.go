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

// Package dump renders a type term's structure for debugging: either
// a deep Go-value dump of a flattened node tree (via go-spew, for
// interactive inspection) or a YAML document (for diffable golden
// files in tests). It is not a serialization format: byte
// serialization is left to the external Serializer interface.
package dump

import (
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/skrah/xnd"
)

// Node is a flattened mirror of one type term, suitable for dumping
// without reaching into the library's unexported payload types.
type Node struct {
	Tag         string `yaml:"tag"`
	Abstract    bool   `yaml:"abstract,omitempty"`
	Optional    bool   `yaml:"optional,omitempty"`
	NDim        int    `yaml:"ndim,omitempty"`
	DataSize    int64  `yaml:"datasize,omitempty"`
	Align       uint16 `yaml:"align,omitempty"`
	PointerFree bool   `yaml:"pointer_free,omitempty"`
	Children    []Node `yaml:"children,omitempty"`
}

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Flatten walks t into a Node tree.
func Flatten(t xnd.Type) Node {
	if !t.IsValid() {
		return Node{Tag: "<invalid>"}
	}
	n := Node{
		Tag:         t.Tag().String(),
		Abstract:    t.IsAbstract(),
		Optional:    t.IsOptional(),
		NDim:        t.NDim(),
		PointerFree: t.IsPointerFree(),
	}
	if t.IsConcrete() {
		n.DataSize = t.DataSize()
		n.Align = t.Align()
	}
	for _, c := range t.Children() {
		n.Children = append(n.Children, Flatten(c))
	}
	return n
}

// Sdump renders t as a multi-line, human-oriented value dump.
func Sdump(t xnd.Type) string {
	var b strings.Builder
	b.WriteString(spewConfig.Sdump(Flatten(t)))
	return b.String()
}

// YAML renders t as a YAML document, suitable for golden-file tests.
func YAML(t xnd.Type) (string, error) {
	out, err := yaml.Marshal(Flatten(t))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
