package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/specialistvlad/opreg/internal/registry"
	"github.com/specialistvlad/opreg/internal/signature"
	"github.com/spf13/cobra"
	"github.com/zclconf/go-cty/cty"
)

type resolveOutput struct {
	Operation string `json:"operation"`
	Category  string `json:"category"`
	Requested string `json:"requested"`
	Signature string `json:"signature"`
	Result    string `json:"result"`
	Impl      string `json:"impl"`
	Fallback  bool   `json:"fallback"`
}

type resultOutput struct {
	Operation string `json:"operation"`
	Category  string `json:"category"`
	Requested string `json:"requested"`
	Result    string `json:"result"`
}

func newResolveCommand(opts *RootOptions) *cobra.Command {
	var guard bool
	cmd := &cobra.Command{
		Use:   "resolve NAME [TYPE...]",
		Short: "Resolve the implementation bound to a call site",
		Long: `Resolve the implementation bound to a call site.

Each TYPE is a type expression such as int, double, any, string or
list(number). The output marks when the generic implementation was used.`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), opts, cmd.OutOrStdout(), args[0], args[1:], guard)
		},
	}
	cmd.Flags().BoolVar(&guard, "guard", false, "resolve in the guard namespace")
	return cmd
}

func newResultCommand(opts *RootOptions) *cobra.Command {
	var guard bool
	cmd := &cobra.Command{
		Use:   "result NAME [TYPE...]",
		Short: "Print the result type of a call site",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResult(cmd.Context(), opts, cmd.OutOrStdout(), args[0], args[1:], guard)
		},
	}
	cmd.Flags().BoolVar(&guard, "guard", false, "query the guard namespace")
	return cmd
}

func runResolve(ctx context.Context, opts *RootOptions, w io.Writer, name string, typeArgs []string, guard bool) error {
	sig, err := parseSignature(ctx, typeArgs)
	if err != nil {
		return err
	}
	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}

	d, err := a.Registry().Resolve(name, sig, guard)
	if err != nil {
		return resolutionError(err)
	}

	out := resolveOutput{
		Operation: d.Name,
		Category:  registry.CategoryOf(guard).String(),
		Requested: sig.String(),
		Signature: d.Params.String(),
		Result:    optype.Name(d.Result),
		Impl:      d.Qualified(),
		Fallback:  !d.Params.Equals(sig),
	}
	return newPrinter(opts, w).print(out, func(w io.Writer) {
		fmt.Fprintln(w, d)
		if out.Fallback {
			fmt.Fprintf(w, "generic fallback for %s\n", out.Requested)
		}
	})
}

func runResult(ctx context.Context, opts *RootOptions, w io.Writer, name string, typeArgs []string, guard bool) error {
	sig, err := parseSignature(ctx, typeArgs)
	if err != nil {
		return err
	}
	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}

	t, err := a.Registry().ResultType(name, sig, guard)
	if err != nil {
		return resolutionError(err)
	}

	out := resultOutput{
		Operation: name,
		Category:  registry.CategoryOf(guard).String(),
		Requested: sig.String(),
		Result:    optype.Name(t),
	}
	return newPrinter(opts, w).print(out, func(w io.Writer) {
		fmt.Fprintln(w, out.Result)
	})
}

// parseSignature parses each argument as a type expression.
func parseSignature(ctx context.Context, typeArgs []string) (*signature.Signature, error) {
	slots := make([]cty.Type, 0, len(typeArgs))
	for i, arg := range typeArgs {
		t, err := optype.ParseString(ctx, arg)
		if err != nil {
			return nil, usageError(fmt.Sprintf("invalid type for argument %d", i), err)
		}
		slots = append(slots, t)
	}
	return signature.Of(slots...), nil
}

func resolutionError(err error) error {
	if errors.Is(err, registry.ErrUnknownOperation) || errors.Is(err, registry.ErrUnresolvedOverload) {
		return &ExitError{Code: ExitFailure, Message: "resolution failed", Err: err}
	}
	return err
}
