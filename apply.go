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

// ApplySpecFlags records properties of an ApplySpec discovered during
// Typecheck.
type ApplySpecFlags uint8

const (
	// ApplyElemwise is set when every input/output absorbs the shared
	// outer ellipsis elementwise (spec's isElemwise notion).
	ApplyElemwise ApplySpecFlags = 1 << iota
)

// ApplySpec is the result of matching concrete argument types against
// a Function signature and instantiating its outputs, per spec §4.9.
type ApplySpec struct {
	Flags     ApplySpecFlags
	OuterDims int
	Nin       int
	Nout      int
	Nargs     int
	// Types lists the Nin instantiated input types followed by the
	// Nout instantiated output types.
	Types []Type
}

// Typecheck matches args against sig (a Function type) and, on
// success, instantiates sig's outputs through the bindings gathered
// from args, returning the combined ApplySpec.
//
// Outputs are substituted with requireConcrete unless the signature's
// shared ellipsis permits broadcasting a residual symbolic result (an
// elemwise signature echoes the caller's outer dims verbatim, so its
// outputs stay abstract in that dimension until the caller supplies a
// concrete outer shape).
func Typecheck(sig Type, args []Type, ctx *Context) (ApplySpec, bool) {
	if sig.Tag() != Function {
		return ApplySpec{}, ctx.Fail(ValueError, "Typecheck: signature is not a function type")
	}
	fp := sig.raw.payload.(*functionPayload)
	if len(args) != fp.nin {
		return ApplySpec{}, ctx.Fail(ValueError, "Typecheck: expected %d arguments, got %d", fp.nin, len(args))
	}

	tbl := NewSymbolTable()
	for i, arg := range args {
		matched := MatchWithTable(fp.types[i], arg, tbl, ctx)
		if ctx.Failed() {
			return ApplySpec{}, false
		}
		if !matched {
			return ApplySpec{}, ctx.Fail(ValueError, "argument %d does not match signature parameter", i)
		}
	}

	outerDims, ellipsisName := sharedOuterDims(fp.types[:fp.nin], tbl)

	requireConcrete := !fp.elemwise
	types := make([]Type, 0, fp.nin+fp.nout)
	for i, arg := range args {
		u, ok := Substitute(fp.types[i], tbl, requireConcrete, ctx)
		if !ok {
			releaseAll(types)
			return ApplySpec{}, false
		}
		_ = arg
		types = append(types, u)
	}
	for _, out := range fp.types[fp.nin:] {
		u, ok := Substitute(out, tbl, requireConcrete, ctx)
		if !ok {
			releaseAll(types)
			return ApplySpec{}, false
		}
		types = append(types, u)
	}

	var flags ApplySpecFlags
	if fp.elemwise {
		flags |= ApplyElemwise
	}
	_ = ellipsisName

	return ApplySpec{
		Flags:     flags,
		OuterDims: outerDims,
		Nin:       fp.nin,
		Nout:      fp.nout,
		Nargs:     fp.nin + fp.nout,
		Types:     types,
	}, true
}

// sharedOuterDims reports how many broadcast dimensions the named
// ellipsis common to every input absorbed, by inspecting the capture
// recorded in tbl for the first input that carries a named ellipsis.
func sharedOuterDims(inputs []Type, tbl *SymbolTable) (int, string) {
	for _, t := range inputs {
		if t.Tag() != EllipsisDim {
			continue
		}
		p := t.raw.payload.(*ellipsisDimPayload)
		if p.name == nil {
			continue
		}
		binding, ok := tbl.FindEllipsis(*p.name)
		if !ok {
			continue
		}
		switch binding.Kind {
		case FixedSeq:
			return len(binding.FixedDims), *p.name
		case ArraySeq:
			return len(binding.ArrayDims), *p.name
		case VarSeq:
			return 1, *p.name
		}
	}
	return 0, ""
}

func releaseAll(types []Type) {
	for _, t := range types {
		t.DecRef()
	}
}
