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
	"sync"

	"github.com/tiendc/go-deepcopy"
	"github.com/timandy/routine"
)

// Methods holds the callable operations attached to a Nominal typedef
// at registration time (constructor/destructor/equal/compare hooks in
// the original system; kept here as opaque named callbacks since this
// package has no notion of a runtime value to invoke them on).
type Methods struct {
	Constructor func(Type, *Context) bool
	Destructor  func(Type)
	Equal       func(a, b Type) bool
	Compare     func(a, b Type) int
}

// registryEntry is one typedef binding: the concrete or abstract type
// a Nominal name expands to, plus its Methods table.
type registryEntry struct {
	def     Type
	methods *Methods
}

var (
	registryMu    sync.RWMutex
	registry      = map[string]registryEntry{}
	registryGuard = routine.NewInheritableThreadLocal[bool]()
)

// Register binds name to def in the process-wide typedef table, per
// spec §5's single-writer discipline: once inserted, an entry is never
// mutated, only replaced wholesale by a later Register of the same
// name (callers are expected to serialize redefinition themselves; the
// reentrancy guard below only catches the same goroutine recursing
// into Register through a Methods callback while still holding the
// lock, which would otherwise deadlock).
func Register(name string, def Type, methods *Methods, ctx *Context) bool {
	if guard := registryGuard.Get(); guard {
		return ctx.Fail(ValueError, "recursive typedef registration for %q", name)
	}
	registryGuard.Set(true)
	defer registryGuard.Set(false)

	if !def.IsValid() {
		return ctx.Fail(ValueError, "cannot register invalid type as %q", name)
	}

	var methodsCopy *Methods
	if methods != nil {
		methodsCopy = &Methods{}
		if err := deepcopy.Copy(methodsCopy, methods); err != nil {
			return ctx.Fail(InvalidArgumentError, "could not copy methods for %q: %v", name, err)
		}
	}

	def.IncRef()

	registryMu.Lock()
	defer registryMu.Unlock()

	if old, exists := registry[name]; exists {
		old.def.DecRef()
	}
	registry[name] = registryEntry{def: def, methods: methodsCopy}
	return true
}

// Unregister removes name from the typedef table, releasing its
// reference to the stored definition. It is a no-op (returns false)
// if name was never registered.
func Unregister(name string) bool {
	registryMu.Lock()
	defer registryMu.Unlock()

	entry, ok := registry[name]
	if !ok {
		return false
	}
	entry.def.DecRef()
	delete(registry, name)
	return true
}

// lookupTypedef resolves name against the typedef table for
// NewNominal. The returned Type is not IncRef'd for the caller; the
// caller takes its own reference as part of building the Nominal
// payload.
func lookupTypedef(name string, ctx *Context) (Type, *Methods, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	entry, ok := registry[name]
	if !ok {
		return Type{}, nil, ctx.Fail(InvalidArgumentError, "nominal type %q not found", name)
	}
	return entry.def, entry.methods, true
}

// RegisteredNames returns a snapshot of every currently registered
// typedef name, for diagnostics and introspection tools.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
