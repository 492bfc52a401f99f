package dodo

import (
	"maps"
	"slices"
)

// Environment is the flat variable store of one program run. Every value is
// a sequence of integers: one element for a scalar, more for a vector or a
// matrix row.
type Environment struct {
	values map[string][]int64
	kinds  map[string]DeclKind
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string][]int64),
		kinds:  make(map[string]DeclKind),
	}
}

// Define binds name, replacing any earlier binding.
func (e *Environment) Define(name string, kind DeclKind, values []int64) {
	e.values[name] = values
	e.kinds[name] = kind
}

// Assign overwrites an existing binding. It reports false and leaves the
// environment untouched when name was never defined.
func (e *Environment) Assign(name string, values []int64) bool {
	if _, ok := e.values[name]; !ok {
		return false
	}
	e.values[name] = values
	return true
}

func (e *Environment) Get(name string) ([]int64, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Environment) Kind(name string) DeclKind {
	return e.kinds[name]
}

// Names returns the defined names in sorted order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.values))
}

// Kinds returns a copy of the declared kind of every name.
func (e *Environment) Kinds() map[string]DeclKind {
	return maps.Clone(e.kinds)
}

// Snapshot returns a deep copy of every binding.
func (e *Environment) Snapshot() map[string][]int64 {
	out := make(map[string][]int64, len(e.values))
	for name, vals := range e.values {
		out[name] = slices.Clone(vals)
	}
	return out
}

func (e *Environment) Reset() {
	clear(e.values)
	clear(e.kinds)
}
