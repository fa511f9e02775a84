// Package typecheck provides guard built-ins that test the type of a value.
package typecheck

import (
	_ "embed"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/opreg/internal/registrar"
)

//go:embed manifest.yaml
var manifest []byte

// Module implements the registrar.Module interface for this package.
type Module struct{}

// Name implements registrar.Module.
func (m *Module) Name() string { return "typecheck" }

// IsNumber reports whether v is a known number.
func IsNumber(v cty.Value) bool {
	return v.IsKnown() && v.Type().Equals(cty.Number)
}

// IsInt serves call sites whose operand is statically an unboxed int.
func IsInt(int64) bool { return true }

// IsDouble serves call sites whose operand is statically an unboxed double.
func IsDouble(float64) bool { return true }

// IsString reports whether v is a known string.
func IsString(v cty.Value) bool {
	return v.IsKnown() && v.Type().Equals(cty.String)
}

// IsBool reports whether v is a known bool.
func IsBool(v cty.Value) bool {
	return v.IsKnown() && v.Type().Equals(cty.Bool)
}

// IsList accepts lists and tuples.
func IsList(v cty.Value) bool {
	t := v.Type()
	return v.IsKnown() && (t.IsListType() || t.IsTupleType())
}

// IsMap accepts maps and objects.
func IsMap(v cty.Value) bool {
	t := v.Type()
	return v.IsKnown() && (t.IsMapType() || t.IsObjectType())
}

// Register registers the handlers and the manifest declaring them.
func (m *Module) Register(r *registrar.Registrar) {
	r.Handle("IsNumber", IsNumber)
	r.Handle("IsInt", IsInt)
	r.Handle("IsDouble", IsDouble)
	r.Handle("IsString", IsString)
	r.Handle("IsBool", IsBool)
	r.Handle("IsList", IsList)
	r.Handle("IsMap", IsMap)
	r.Handle("Length", stdlib.LengthFunc)
	r.Manifest("typecheck/manifest.yaml", manifest)
}
