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

// ---------------------------------------------------------------------
// Ref

type refPayload struct {
	inner Type
}

func (p *refPayload) children() []Type { return []Type{p.inner} }

// NewRef wraps inner behind an indirection: a single allocation is
// shared by every copy of the Ref until the owning value is duplicated
// deeply, which is why IsRefFree matters to Union and flexible Array.
func NewRef(inner Type, opt bool, ctx *Context) (Type, bool) {
	if !checkTypeInvariants(inner, ctx) {
		return Type{}, false
	}
	flags := FlagPointer | FlagReference
	if opt {
		flags |= FlagOption
	}
	u := newAbstract(Ref, flags)
	u.flags |= subtreeFlags(inner)
	u.access = inner.Access()
	if u.access == Concrete {
		u.datasize = ptrSize
		u.align = ptrAlign
	}

	inner.IncRef()
	u.payload = &refPayload{inner: inner}
	return Type{raw: u}, true
}

// ptrSize/ptrAlign model a native pointer's footprint (8/8 on every
// platform this module targets).
const (
	ptrSize  = 8
	ptrAlign = 8
)

// ---------------------------------------------------------------------
// Constr

type constrPayload struct {
	name  string
	inner Type
}

func (p *constrPayload) children() []Type { return []Type{p.inner} }

// NewConstr wraps inner in a named, otherwise transparent, constructor
// tag (e.g. "Some(int64)"); it carries inner's layout unchanged.
func NewConstr(name string, inner Type, opt bool, ctx *Context) (Type, bool) {
	if !checkTypeInvariants(inner, ctx) {
		return Type{}, false
	}
	u := newAbstract(Constr, 0)
	if opt {
		u.flags |= FlagOption
	}
	u.flags |= subtreeFlags(inner)
	u.access = inner.Access()
	if u.access == Concrete {
		u.datasize = inner.DataSize()
		u.align = inner.Align()
	}

	inner.IncRef()
	u.payload = &constrPayload{name: name, inner: inner}
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Nominal

type nominalPayload struct {
	name    string
	inner   Type
	methods *Methods
}

func (p *nominalPayload) children() []Type { return []Type{p.inner} }

// NewNominal looks up name in the process-wide typedef registry and
// wraps its definition; when inner is given, it must Match the
// registered definition (a nominal instance, not a redefinition).
func NewNominal(name string, inner Type, opt bool, ctx *Context) (Type, bool) {
	def, meth, ok := lookupTypedef(name, ctx)
	if !ok {
		return Type{}, false
	}

	target := def
	if inner.IsValid() {
		matched, err := Match(def, inner, ctx)
		if err {
			return Type{}, false
		}
		if !matched {
			return Type{}, ctx.Fail(ValueError, "type is not an instance of %s", name)
		}
		target = inner
	}

	u := newAbstract(Nominal, 0)
	if opt {
		u.flags |= FlagOption
	}
	u.flags |= subtreeFlags(target)
	u.access = target.Access()
	u.datasize = target.DataSize()
	u.align = target.Align()

	target.IncRef()
	u.payload = &nominalPayload{name: name, inner: target, methods: meth}
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Categorical

type categoricalPayload struct {
	values []CategoryValue
}

func (*categoricalPayload) children() []Type { return nil }

// CategoryValue is one entry of a Categorical's fixed value set. Exactly
// one of the fields is meaningful, selected by Kind.
type CategoryValue struct {
	Kind  CategoryKind
	Bool  bool
	Int64 int64
	Float float64
	Str   string
}

// CategoryKind discriminates a CategoryValue's payload.
type CategoryKind uint8

const (
	CategoryNA CategoryKind = iota
	CategoryBool
	CategoryInt64
	CategoryFloat
	CategoryString
)

func compareCategoryValues(a, b CategoryValue) int {
	if a.Kind != b.Kind {
		if a.Kind < b.Kind {
			return -1
		}
		return 1
	}
	switch a.Kind {
	case CategoryBool:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case CategoryInt64:
		switch {
		case a.Int64 < b.Int64:
			return -1
		case a.Int64 > b.Int64:
			return 1
		default:
			return 0
		}
	case CategoryFloat:
		switch {
		case a.Float < b.Float:
			return -1
		case a.Float > b.Float:
			return 1
		default:
			return 0
		}
	case CategoryString:
		switch {
		case a.Str < b.Str:
			return -1
		case a.Str > b.Str:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

// categoricalHeaderSize/Align model the runtime index word into the
// category table (ndt_categorical_t).
const (
	categoricalHeaderSize  = 8
	categoricalHeaderAlign = 8
)

// NewCategorical builds a fixed, sorted, duplicate-free set of typed
// values (NA included by convention as the zero CategoryValue).
func NewCategorical(values []CategoryValue, opt bool, ctx *Context) (Type, bool) {
	sorted := append([]CategoryValue(nil), values...)
	insertionSortCategories(sorted)
	for i := 0; i+1 < len(sorted); i++ {
		if compareCategoryValues(sorted[i], sorted[i+1]) == 0 {
			return Type{}, ctx.Fail(ValueError, "duplicate category entries")
		}
	}

	u := newAbstract(Categorical, 0)
	if opt {
		u.flags |= FlagOption
	}
	u.access = Concrete
	u.datasize = categoricalHeaderSize
	u.align = categoricalHeaderAlign
	u.payload = &categoricalPayload{values: sorted}
	return Type{raw: u}, true
}

func insertionSortCategories(v []CategoryValue) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && compareCategoryValues(v[j-1], v[j]) > 0; j-- {
			v[j-1], v[j] = v[j], v[j-1]
		}
	}
}

// ---------------------------------------------------------------------
// Typevar

type typevarPayload struct {
	name string
}

func (*typevarPayload) children() []Type { return nil }

// NewTypevar builds an unbound type variable, resolved by Match into a
// SymbolTable binding and later replaced by Substitute.
func NewTypevar(name string, ctx *Context) (Type, bool) {
	u := newAbstract(Typevar, 0)
	u.payload = &typevarPayload{name: name}
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Module

type modulePayload struct {
	name  string
	inner Type
}

func (p *modulePayload) children() []Type { return []Type{p.inner} }

// NewModule builds a named namespace around inner. Modules cannot be
// nested (checked here and by every other constructor's
// checkTypeInvariants).
func NewModule(name string, inner Type, ctx *Context) (Type, bool) {
	if !checkTypeInvariants(inner, ctx) {
		return Type{}, false
	}
	u := newAbstract(Module, 0)
	u.flags |= subtreeFlags(inner)

	inner.IncRef()
	u.payload = &modulePayload{name: name, inner: inner}
	return Type{raw: u}, true
}

// ---------------------------------------------------------------------
// Function

type functionPayload struct {
	types    []Type
	nin      int
	nout     int
	elemwise bool
}

func (p *functionPayload) children() []Type { return p.types }

func checkFunctionInvariants(types []Type, nin int, ctx *Context) bool {
	nargs := len(types)
	if nargs == 0 {
		return true
	}
	if nin == 0 {
		for _, t := range types {
			if t.IsAbstract() {
				return ctx.Fail(ValueError, "output types cannot be inferred for function with no arguments")
			}
		}
	}

	count := 0
	for _, t := range types {
		if t.Tag() == EllipsisDim {
			count++
		}
	}
	if count == 0 {
		return true
	}
	if count != nargs {
		return ctx.Fail(ValueError, "invalid combination of ellipsis dimensions")
	}

	first := types[0].raw.payload.(*ellipsisDimPayload).name
	for _, t := range types[1:] {
		name := t.raw.payload.(*ellipsisDimPayload).name
		if !ellipsisNamesEqual(first, name) {
			return ctx.Fail(ValueError, "invalid combination of ellipsis dimensions")
		}
	}
	return true
}

func ellipsisNamesEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// isElemwise reports whether every argument is either a scalar (ndim
// 0) or a bare (ndim 1) ellipsis, i.e. the function broadcasts
// elementwise over its outer dimensions.
func isElemwise(types []Type) bool {
	for _, t := range types {
		if (t.NDim() == 1 && t.Tag() == EllipsisDim) || t.NDim() == 0 {
			continue
		}
		return false
	}
	return true
}

// NewFunction builds an abstract function signature: nin input types
// followed by nout output types, nargs == nin+nout.
func NewFunction(types []Type, nin, nout int, ctx *Context) (Type, bool) {
	if len(types) != nin+nout {
		return Type{}, ctx.Fail(InvalidArgumentError, "NewFunction: nargs != nin+nout")
	}
	if !checkFunctionInvariants(types, nin, ctx) {
		return Type{}, false
	}

	u := newAbstract(Function, 0)
	p := &functionPayload{
		types:    append([]Type(nil), types...),
		nin:      nin,
		nout:     nout,
		elemwise: isElemwise(types),
	}
	for _, t := range types {
		t.IncRef()
		u.flags |= dimFlags(t)
	}
	u.payload = p
	return Type{raw: u}, true
}
