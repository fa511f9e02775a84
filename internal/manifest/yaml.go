package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/opreg/internal/config"
	"github.com/specialistvlad/opreg/internal/ctxlog"
	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// yamlRoot is the top level of a YAML manifest. Entries stay raw nodes so
// each declaration keeps its line number.
type yamlRoot struct {
	Natives []yaml.Node `yaml:"natives"`
}

// yamlNative is one entry of the `natives` list.
type yamlNative struct {
	// Impl is the handler identifier.
	Impl string `yaml:"impl"`

	// Name overrides the operation name derived from Impl.
	Name string `yaml:"name,omitempty"`

	// Category is "call" (default) or "guard".
	Category string `yaml:"category,omitempty"`

	// Params are type expressions such as "int" or "list(number)".
	Params []string `yaml:"params,omitempty"`

	// Result is the result type expression.
	Result string `yaml:"result"`
}

func parseYAML(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx).With("manifest", filename)
	ctx = ctxlog.WithLogger(ctx, logger)

	var root yamlRoot
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML manifest %s: %w", filename, err)
	}

	model := &config.Model{}
	for i := range root.Natives {
		node := &root.Natives[i]
		source := fmt.Sprintf("%s:%d", filename, node.Line)

		var n yamlNative
		if err := node.Decode(&n); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		if n.Impl == "" {
			return nil, fmt.Errorf("%s: native is missing 'impl'", source)
		}

		def, err := translateYAMLNative(ctx, source, &n)
		if err != nil {
			return nil, err
		}
		model.Natives = append(model.Natives, def)
	}

	logger.Debug("YAML manifest parsed.", "natives", len(model.Natives))
	return model, nil
}

func translateYAMLNative(ctx context.Context, source string, n *yamlNative) (*config.NativeDefinition, error) {
	def := &config.NativeDefinition{
		Ident:    n.Impl,
		Name:     n.Name,
		Category: n.Category,
		Source:   source,
	}

	if len(n.Params) > 0 {
		def.Params = make([]cty.Type, len(n.Params))
		for i, p := range n.Params {
			t, err := optype.ParseString(ctx, p)
			if err != nil {
				return nil, fmt.Errorf("%s: native '%s': parameter %d: %w", source, n.Impl, i, err)
			}
			def.Params[i] = t
		}
	}

	if n.Result == "" {
		return nil, fmt.Errorf("%s: native '%s' is missing 'result'", source, n.Impl)
	}
	result, err := optype.ParseString(ctx, n.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: native '%s', result: %w", source, n.Impl, err)
	}
	def.Result = result

	return def, nil
}
