// This file parses HCL type expressions (e.g. `int`, `list(number)`) into
// type tokens.

package optype

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/opreg/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// ParseString parses the textual spelling of a type, as found in YAML
// manifests and on the command line.
func ParseString(ctx context.Context, src string) (cty.Type, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return cty.NilType, fmt.Errorf("empty type expression")
	}
	expr, diags := hclsyntax.ParseExpression([]byte(src), "<type>", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("invalid type expression %q: %w", src, diags)
	}
	return Parse(ctx, expr)
}

// ParseList parses a tuple expression such as `[int, double]` into its
// element tokens, in order.
func ParseList(ctx context.Context, expr hcl.Expression) ([]cty.Type, error) {
	if expr == nil {
		return nil, nil
	}
	tuple, ok := expr.(*hclsyntax.TupleConsExpr)
	if !ok {
		return nil, fmt.Errorf("parameter list must be a tuple like [int, any], got %T", expr)
	}
	types := make([]cty.Type, 0, len(tuple.Exprs))
	for i, item := range tuple.Exprs {
		t, err := Parse(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}
		types = append(types, t)
	}
	return types, nil
}

// Parse converts an HCL type expression into its token.
func Parse(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return cty.NilType, fmt.Errorf("missing type expression")
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type constructor.", "call", v.Name)

		if v.Name == "object" {
			return parseObject(ctx, v)
		}

		if len(v.Args) != 1 {
			return cty.NilType, fmt.Errorf("type constructors (list, map, set) require exactly one argument, got %d", len(v.Args))
		}

		elementType, err := Parse(ctx, v.Args[0])
		if err != nil {
			return cty.NilType, err
		}
		if IsDynamic(elementType) {
			return cty.NilType, fmt.Errorf("collection types cannot contain type 'any'")
		}

		switch v.Name {
		case "list":
			return cty.List(elementType), nil
		case "map":
			return cty.Map(elementType), nil
		case "set":
			return cty.Set(elementType), nil
		default:
			return cty.NilType, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return cty.NilType, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		t, ok := Keyword(rootName)
		if !ok {
			return cty.NilType, fmt.Errorf("unknown primitive type %q", rootName)
		}
		return t, nil

	default:
		return cty.NilType, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

func parseObject(ctx context.Context, call *hclsyntax.FunctionCallExpr) (cty.Type, error) {
	if len(call.Args) != 1 {
		return cty.NilType, fmt.Errorf("the object() type constructor requires exactly one argument (the object definition), got %d", len(call.Args))
	}

	objExpr, ok := call.Args[0].(*hclsyntax.ObjectConsExpr)
	if !ok {
		return cty.NilType, fmt.Errorf("the argument to object() must be an object literal like { key = type, ... }, got %T", call.Args[0])
	}

	attrTypes := make(map[string]cty.Type, len(objExpr.Items))
	for _, item := range objExpr.Items {
		key := objectKey(item.KeyExpr)
		if key == "" {
			return cty.NilType, fmt.Errorf("invalid key in object type definition: keys must be simple identifiers or quoted strings, not complex expressions")
		}

		valueType, err := Parse(ctx, item.ValueExpr)
		if err != nil {
			return cty.NilType, fmt.Errorf("in object attribute '%s': %w", key, err)
		}
		attrTypes[key] = valueType
	}

	return cty.Object(attrTypes), nil
}

// objectKey unwraps the key of an object constructor item. Only bare
// identifiers and plain quoted strings are accepted.
func objectKey(expr hclsyntax.Expression) string {
	keyExpr, ok := expr.(*hclsyntax.ObjectConsKeyExpr)
	if !ok {
		return ""
	}
	switch k := keyExpr.Wrapped.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(k.Traversal) == 1 {
			return k.Traversal.RootName()
		}
	case *hclsyntax.TemplateExpr:
		if len(k.Parts) == 1 {
			if lit, isLit := k.Parts[0].(*hclsyntax.LiteralValueExpr); isLit && lit.Val.Type().Equals(cty.String) {
				return lit.Val.AsString()
			}
		}
	}
	return ""
}
