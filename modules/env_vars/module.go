// Package env_vars provides built-ins that read the process environment.
package env_vars

import (
	"os"
	"strings"

	"github.com/specialistvlad/opreg/internal/registrar"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registrar.Module interface for this package.
type Module struct{}

// Name implements registrar.Module.
func (m *Module) Name() string { return "env_vars" }

// EnvVars returns every environment variable as a map of strings.
func EnvVars() cty.Value {
	envMap := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = cty.StringVal(pair[1])
		}
	}
	if len(envMap) == 0 {
		return cty.MapValEmpty(cty.String)
	}
	return cty.MapVal(envMap)
}

// Getenv returns the named variable, or "" when it is unset.
func Getenv(name cty.Value) cty.Value {
	if !name.IsKnown() || name.IsNull() {
		return cty.UnknownVal(cty.String)
	}
	return cty.StringVal(os.Getenv(name.AsString()))
}

// Register declares the natives in Go; this module ships no manifest.
func (m *Module) Register(r *registrar.Registrar) {
	r.Declare(registrar.Declaration{
		Ident:  "EnvVars",
		Result: cty.Map(cty.String),
		Impl:   EnvVars,
	})
	r.Declare(registrar.Declaration{
		Ident:  "Getenv",
		Params: []cty.Type{cty.String},
		Result: cty.String,
		Impl:   Getenv,
	})
}
