// Package compare provides equality and ordering built-ins.
package compare

import (
	_ "embed"

	"github.com/specialistvlad/opreg/internal/registrar"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

//go:embed manifest.hcl
var manifest []byte

// Module implements the registrar.Module interface for this package.
type Module struct{}

// Name implements registrar.Module.
func (m *Module) Name() string { return "compare" }

// EqInts reports whether a == b.
func EqInts(a, b int64) bool { return a == b }

// LessInts reports whether a < b.
func LessInts(a, b int64) bool { return a < b }

// LessDoubles reports whether a < b. Comparisons with NaN are false.
func LessDoubles(a, b float64) bool { return a < b }

// Register registers the handlers and the manifest declaring them.
func (m *Module) Register(r *registrar.Registrar) {
	r.Handle("EqInts", EqInts)
	r.Handle("Equal", stdlib.EqualFunc)
	r.Handle("NotEqual", stdlib.NotEqualFunc)
	r.Handle("LessInts", LessInts)
	r.Handle("LessDoubles", LessDoubles)
	r.Handle("LessThan", stdlib.LessThanFunc)
	r.Handle("GreaterThan", stdlib.GreaterThanFunc)
	r.Manifest("compare/manifest.hcl", manifest)
}
