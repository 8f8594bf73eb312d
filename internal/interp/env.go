package interp

import (
	"errors"
	"sort"
)

var (
	errAlreadyDeclared = errors.New("already declared")
	errNotDeclared     = errors.New("not declared")
)

// Environment maps variable names to their current values.
type Environment struct {
	vars map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]Value)}
}

// Declare binds a new name; it fails if the name is already bound.
func (e *Environment) Declare(name string, v Value) error {
	if _, ok := e.vars[name]; ok {
		return errAlreadyDeclared
	}
	e.vars[name] = v
	return nil
}

// Assign updates an existing binding.
func (e *Environment) Assign(name string, v Value) error {
	if _, ok := e.vars[name]; !ok {
		return errNotDeclared
	}
	e.vars[name] = v
	return nil
}

// Get returns the value bound to name.
func (e *Environment) Get(name string) (Value, error) {
	v, ok := e.vars[name]
	if !ok {
		return Value{}, errNotDeclared
	}
	return v, nil
}

func (e *Environment) Len() int { return len(e.vars) }

// Names returns the bound names sorted alphabetically.
func (e *Environment) Names() []string {
	out := make([]string, 0, len(e.vars))
	for name := range e.vars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
