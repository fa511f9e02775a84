// Package optype defines the type tokens the registry keys overloads on.
//
// Tokens are go-cty types. cty.DynamicPseudoType is the universal
// "dynamic value" token every generic implementation accepts. Unboxed native
// shapes that cty has no primitive for (a machine integer, a double) are
// modelled as capsule types so they stay distinct from the boxed cty.Number.
package optype

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

var (
	// Dynamic accepts any operand shape.
	Dynamic = cty.DynamicPseudoType

	// Int is an unboxed 64-bit integer operand.
	Int = cty.Capsule("int", reflect.TypeOf(int64(0)))

	// Double is an unboxed 64-bit float operand.
	Double = cty.Capsule("double", reflect.TypeOf(float64(0)))

	Number = cty.Number
	String = cty.String
	Bool   = cty.Bool
)

// keywords maps the bare identifiers accepted in manifests to tokens.
var keywords = map[string]cty.Type{
	"any":    Dynamic,
	"int":    Int,
	"double": Double,
	"number": Number,
	"string": String,
	"bool":   Bool,
}

// Keyword returns the token for a bare type keyword.
func Keyword(name string) (cty.Type, bool) {
	t, ok := keywords[name]
	return t, ok
}

// Name returns the manifest spelling of t.
func Name(t cty.Type) string {
	switch {
	case t == cty.NilType:
		return "<nil>"
	case t.Equals(Dynamic):
		return "any"
	case t.Equals(Int):
		return "int"
	case t.Equals(Double):
		return "double"
	}
	return t.FriendlyName()
}

// IsDynamic reports whether t is the dynamic-value token.
func IsDynamic(t cty.Type) bool {
	return t != cty.NilType && t.Equals(Dynamic)
}
