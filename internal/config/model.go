package config

import "github.com/zclconf/go-cty/cty"

// Model is the unified, format-agnostic representation of all declarations
// read from one or more manifests, in declaration order.
type Model struct {
	Natives []*NativeDefinition
}

// Merge appends the declarations of other after those of m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Natives = append(m.Natives, other.Natives...)
}

// NativeDefinition declares one native implementation of an operation.
type NativeDefinition struct {
	// Ident is the identifier of the Go handler implementing the operation.
	Ident string
	// Name is the symbolic operation name. Empty means "derive it from Ident".
	Name string
	// Category is "call", "guard", or empty for "call".
	Category string
	// Params are the parameter types, in order.
	Params []cty.Type
	// Result is the result type.
	Result cty.Type
	// Source locates the declaration, e.g. "arith.hcl:12".
	Source string
}
