package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/opreg/internal/config"
	"github.com/specialistvlad/opreg/internal/ctxlog"
	"github.com/specialistvlad/opreg/internal/optype"
)

// hclRoot decodes the top-level blocks of an HCL manifest.
type hclRoot struct {
	Natives []*hclNative `hcl:"native,block"`
}

// hclNative is the schema of a `native "Ident" { ... }` block.
type hclNative struct {
	Ident    string         `hcl:"ident,label"`
	Name     *string        `hcl:"name,optional"`
	Category *string        `hcl:"category,optional"`
	Params   hcl.Expression `hcl:"params,optional"`
	Result   hcl.Expression `hcl:"result,optional"`
	DefRange hcl.Range      `hcl:",def_range"`
}

func parseHCL(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("manifest", filename)
	ctx = ctxlog.WithLogger(ctx, logger)

	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL manifest %s: %w", filename, diags)
	}

	var root hclRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL manifest %s: %w", filename, diags)
	}

	model := &config.Model{}
	for _, n := range root.Natives {
		def, err := translateHCLNative(ctx, filename, n)
		if err != nil {
			return nil, err
		}
		model.Natives = append(model.Natives, def)
	}

	logger.Debug("HCL manifest parsed.", "natives", len(model.Natives))
	return model, nil
}

func translateHCLNative(ctx context.Context, filename string, n *hclNative) (*config.NativeDefinition, error) {
	if !isExprDefined(ctx, n.Result, "result") {
		return nil, fmt.Errorf("%s:%d: native '%s' is missing 'result'", filename, n.DefRange.Start.Line, n.Ident)
	}

	def := &config.NativeDefinition{
		Ident:  n.Ident,
		Source: fmt.Sprintf("%s:%d", filename, n.Result.Range().Start.Line),
	}
	if n.Name != nil {
		def.Name = *n.Name
	}
	if n.Category != nil {
		def.Category = *n.Category
	}

	if isExprDefined(ctx, n.Params, "params") {
		params, err := optype.ParseList(ctx, n.Params)
		if err != nil {
			return nil, fmt.Errorf("%s: native '%s': %w", def.Source, n.Ident, err)
		}
		def.Params = params
	}

	result, err := optype.Parse(ctx, n.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: native '%s', result: %w", def.Source, n.Ident, err)
	}
	def.Result = result

	return def, nil
}

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder fills omitted optional attributes with zero-width
// placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName, "hcl_range", r.String(), "is_defined", defined)
	return defined
}
