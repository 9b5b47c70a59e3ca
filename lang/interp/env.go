package interp

import (
	"maps"
	"slices"

	"github.com/ardnew/snow/lang/token"
	"github.com/ardnew/snow/lang/value"
)

// Environment maps identifiers to the values bound by a program.
//
// There is one flat Environment per run; blocks do not introduce scopes.
// An Environment is not safe for concurrent use.
type Environment struct {
	vars map[string]value.Value
}

// NewEnvironment returns an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]value.Value)}
}

// Get returns the value bound to name.
func (e *Environment) Get(name string) (value.Value, bool) {
	v, ok := e.vars[name]

	return v, ok
}

// Set binds name to v, replacing any previous binding.
func (e *Environment) Set(name string, v value.Value) {
	e.vars[name] = v
}

// Len returns the number of bound names.
func (e *Environment) Len() int { return len(e.vars) }

// Names returns the bound names in lexical order.
func (e *Environment) Names() []string {
	return slices.Sorted(maps.Keys(e.vars))
}

//nolint:gochecknoglobals
var builtins = map[string]value.Value{
	"Void":  value.NewVoid(token.Span{}),
	"True":  value.Bool(true, token.Span{}),
	"False": value.Bool(false, token.Span{}),
}

// Builtin returns the value of a reserved identifier. Builtins are consulted
// only when the environment has no binding for name and can never be
// reassigned.
func Builtin(name string) (value.Value, bool) {
	v, ok := builtins[name]

	return v, ok
}

// IsBuiltin reports whether name is reserved.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]

	return ok
}

// Builtins returns the reserved identifiers in lexical order.
func Builtins() []string {
	return slices.Sorted(maps.Keys(builtins))
}
