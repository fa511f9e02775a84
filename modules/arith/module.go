// Package arith provides the arithmetic built-in operations.
package arith

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
func (m *Module) Name() string { return "arith" }

// AddInts returns a + b, wrapping on overflow.
func AddInts(a, b int64) int64 { return a + b }

// AddDoubles returns a + b.
func AddDoubles(a, b float64) float64 { return a + b }

// SubInts returns a - b, wrapping on overflow.
func SubInts(a, b int64) int64 { return a - b }

// SubDoubles returns a - b.
func SubDoubles(a, b float64) float64 { return a - b }

// MulInts returns a * b, wrapping on overflow.
func MulInts(a, b int64) int64 { return a * b }

// MulDoubles returns a * b.
func MulDoubles(a, b float64) float64 { return a * b }

// DivDoubles returns a / b following IEEE 754, so division by zero yields an
// infinity or NaN.
func DivDoubles(a, b float64) float64 { return a / b }

// NegInt returns -a.
func NegInt(a int64) int64 { return -a }

// NegDouble returns -a.
func NegDouble(a float64) float64 { return -a }

// IntToDouble widens a to a double.
func IntToDouble(a int64) float64 { return float64(a) }

// AbsInt returns |a|. The minimum int64 has no positive counterpart and is
// returned unchanged.
func AbsInt(a int64) int64 {
	if a < 0 {
		return -a
	}
	return a
}

// Register registers the handlers and the manifest declaring them.
func (m *Module) Register(r *registrar.Registrar) {
	r.Handle("AddInts", AddInts)
	r.Handle("AddDoubles", AddDoubles)
	r.Handle("Add", stdlib.AddFunc)
	r.Handle("SubInts", SubInts)
	r.Handle("SubDoubles", SubDoubles)
	r.Handle("Subtract", stdlib.SubtractFunc)
	r.Handle("MulInts", MulInts)
	r.Handle("MulDoubles", MulDoubles)
	r.Handle("Multiply", stdlib.MultiplyFunc)
	r.Handle("DivDoubles", DivDoubles)
	r.Handle("Divide", stdlib.DivideFunc)
	r.Handle("NegInt", NegInt)
	r.Handle("NegDouble", NegDouble)
	r.Handle("Negate", stdlib.NegateFunc)
	r.Handle("AbsInt", AbsInt)
	r.Handle("Absolute", stdlib.AbsoluteFunc)
	r.Handle("IntToDouble", IntToDouble)
	r.Manifest("arith/manifest.hcl", manifest)
}
