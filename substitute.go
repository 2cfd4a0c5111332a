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

// Substitute replaces the symbolic dimensions, typevars and named
// ellipses in t with their bindings in tbl, per spec §4.6. When
// requireConcrete is true, an unbound variable is a failure rather
// than being echoed back unchanged — the frontend sets this for
// output types it must fully instantiate.
func Substitute(t Type, tbl *SymbolTable, requireConcrete bool, ctx *Context) (Type, bool) {
	if t.IsConcrete() {
		t.IncRef()
		return t, true
	}

	opt := t.IsOptional()

	switch t.Tag() {
	case FixedDim:
		p := t.raw.payload.(*fixedDimPayload)
		u, ok := Substitute(p.inner, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewFixedDim(u, p.shape, p.step, ctx)
		u.DecRef()
		return w, ok

	case VarDim, VarDimElem:
		p := t.raw.payload.(*varDimPayload)
		u, ok := Substitute(p.inner, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewAbstractVarDim(u, opt, ctx)
		u.DecRef()
		return w, ok

	case SymbolicDim:
		p := t.raw.payload.(*symbolicDimPayload)
		u, ok := Substitute(p.inner, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}

		shape, found := tbl.FindShape(p.name)
		if !found {
			if requireConcrete {
				u.DecRef()
				return Type{}, ctx.Fail(ValueError, "unbound symbolic dimension %q", p.name)
			}
			ctx.Clear()
			w, ok := NewSymbolicDim(p.name, u, ctx)
			u.DecRef()
			return w, ok
		}

		w, ok := NewFixedDim(u, shape, noStep, ctx)
		u.DecRef()
		return w, ok

	case EllipsisDim:
		p := t.raw.payload.(*ellipsisDimPayload)
		if p.name == nil {
			return Substitute(p.inner, tbl, true, ctx)
		}
		return substituteNamedEllipsis(t, tbl, ctx)

	case Typevar:
		p := t.raw.payload.(*typevarPayload)
		v, found := tbl.FindTypevar(p.name)
		if !found {
			if requireConcrete {
				return Type{}, ctx.Fail(ValueError, "unbound type variable %q", p.name)
			}
			ctx.Clear()
			return NewTypevar(p.name, ctx)
		}
		return Substitute(v, tbl, requireConcrete, ctx)

	case Constr:
		p := t.raw.payload.(*constrPayload)
		u, ok := Substitute(p.inner, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewConstr(p.name, u, opt, ctx)
		u.DecRef()
		return w, ok

	case Nominal:
		p := t.raw.payload.(*nominalPayload)
		u, ok := Copy(p.inner, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewNominal(p.name, u, opt, ctx)
		u.DecRef()
		return w, ok

	case Ref:
		p := t.raw.payload.(*refPayload)
		u, ok := Substitute(p.inner, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		w, ok := NewRef(u, opt, ctx)
		u.DecRef()
		return w, ok

	case Tuple:
		p := t.raw.payload.(*tuplePayload)
		fields, ok := substituteFields(p.types, nil, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		return NewTuple(p.variadic, fields, nil, nil, opt, ctx)

	case Record:
		p := t.raw.payload.(*recordPayload)
		fields, ok := substituteFields(p.types, p.names, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		return NewRecord(p.variadic, fields, nil, nil, opt, ctx)

	case Union:
		p := t.raw.payload.(*unionPayload)
		fields, ok := substituteFields(p.types, p.tags, tbl, requireConcrete, ctx)
		if !ok {
			return Type{}, false
		}
		return NewUnion(fields, opt, ctx)

	case Categorical:
		p := t.raw.payload.(*categoricalPayload)
		return NewCategorical(p.values, opt, ctx)

	default:
		return Type{}, ctx.Fail(NotImplementedError, "substitution not implemented for this type")
	}
}

func substituteFields(types []Type, names []string, tbl *SymbolTable, requireConcrete bool, ctx *Context) ([]Field, bool) {
	out := make([]Field, len(types))
	for i, ty := range types {
		u, ok := Substitute(ty, tbl, requireConcrete, ctx)
		if !ok {
			return nil, false
		}
		f := Field{Type: u}
		if names != nil {
			f.Name = names[i]
		}
		out[i] = f
	}
	return out, true
}

// substituteNamedEllipsis rebuilds a named ellipsis capture into
// concrete dimension chains, dispatching on the three ellipsis-capture
// flavors a Match can have recorded.
func substituteNamedEllipsis(t Type, tbl *SymbolTable, ctx *Context) (Type, bool) {
	p := t.raw.payload.(*ellipsisDimPayload)

	u, ok := Substitute(p.inner, tbl, true, ctx)
	if !ok {
		return Type{}, false
	}

	binding, found := tbl.FindEllipsis(*p.name)
	if !found {
		u.DecRef()
		return Type{}, ctx.Fail(ValueError, "variable not found or has incorrect type")
	}

	switch binding.Kind {
	case FixedSeq:
		w := u
		for i := len(binding.FixedDims) - 1; i >= 0; i-- {
			shape := binding.FixedDims[i].raw.payload.(*fixedDimPayload).shape
			next, ok := NewFixedDim(w, shape, noStep, ctx)
			w.DecRef()
			if !ok {
				return Type{}, false
			}
			w = next
		}
		return w, true

	case VarSeq:
		if !binding.VarDim.IsValid() {
			return u, true
		}
		w, ok := copyContiguousDtype(binding.VarDim, u, binding.LinearIndex, ctx)
		u.DecRef()
		return w, ok

	case ArraySeq:
		w := u
		for range binding.ArrayDims {
			next, ok := NewArray(w, false, ctx)
			w.DecRef()
			if !ok {
				return Type{}, false
			}
			w = next
		}
		return w, true

	default:
		u.DecRef()
		return Type{}, ctx.Fail(ValueError, "variable not found or has incorrect type")
	}
}
