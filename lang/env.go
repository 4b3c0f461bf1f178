package lang

import (
	"iter"
	"maps"
	"slices"
)

// Environment maps names to runtime objects. Lookups fall through to the
// enclosing environment; writes always go to the innermost one.
type Environment struct {
	store map[string]Object
	outer *Environment
}

// NewEnvironment returns an empty top-level environment.
func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// NewEnclosedEnvironment returns an empty environment whose lookups fall
// through to outer.
func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer

	return env
}

// Get resolves name in this environment or the nearest enclosing one.
func (e *Environment) Get(name string) (Object, bool) {
	for env := e; env != nil; env = env.outer {
		if obj, ok := env.store[name]; ok {
			return obj, true
		}
	}

	return nil, false
}

// Set binds name in this environment and returns val.
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val

	return val
}

// Outer returns the enclosing environment, or nil.
func (e *Environment) Outer() *Environment { return e.outer }

// Names returns every name visible from e in sorted order, without
// duplicates.
func (e *Environment) Names() iter.Seq[string] {
	seen := make(map[string]struct{})

	for env := e; env != nil; env = env.outer {
		for name := range env.store {
			seen[name] = struct{}{}
		}
	}

	return slices.Values(slices.Sorted(maps.Keys(seen)))
}
