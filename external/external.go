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

// Package external declares the collaborators the type-algebra core
// assumes but does not implement: a concrete-syntax parser, a
// renderer, a stable byte serializer, a buffer-protocol codec, and an
// overload dispatcher. None are instantiated here — every term in
// this module is built through the ndt constructors directly.
package external

import "github.com/skrah/xnd"

// Parser turns datashape source text into a term.
type Parser interface {
	Parse(src string) (xnd.Type, error)
}

// Renderer is Parser's inverse: it turns a term back into source text.
type Renderer interface {
	Render(t xnd.Type) (string, error)
}

// Serializer produces a byte stream round-trippable to a structurally
// equal term. The wire format is private to whatever implements this
// and is not defined by this package.
type Serializer interface {
	Marshal(t xnd.Type) ([]byte, error)
	Unmarshal(b []byte) (xnd.Type, error)
}

// BufferCodec translates to and from a third-party array-interchange
// buffer-protocol descriptor.
type BufferCodec interface {
	DecodeBufferFormat(desc []byte) (xnd.Type, error)
	EncodeBufferFormat(t xnd.Type) ([]byte, error)
}

// Dispatcher resolves an overload set — several Function signatures
// competing for the same call — down to the one ApplySpec that
// matches. The core package only implements single-signature
// typechecking (xnd.Typecheck); choosing among several signatures is
// a frontend concern left to callers of this package.
type Dispatcher interface {
	Dispatch(candidates []xnd.Type, args []xnd.Type) (xnd.ApplySpec, error)
}
