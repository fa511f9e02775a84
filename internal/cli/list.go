package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/specialistvlad/opreg/internal/optype"
	"github.com/specialistvlad/opreg/internal/registry"
	"github.com/spf13/cobra"
)

type overloadOutput struct {
	Category  string `json:"category"`
	Operation string `json:"operation"`
	Signature string `json:"signature"`
	Result    string `json:"result"`
	Impl      string `json:"impl"`
}

func newListCommand(opts *RootOptions) *cobra.Command {
	var guard bool
	cmd := &cobra.Command{
		Use:   "list [NAME...]",
		Short: "List registered operations and their overloads",
		Long: `List registered operations and their overloads.

Without --guard both namespaces are listed, calls first. Names restrict the
listing to those operations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts, cmd.OutOrStdout(), args, guard)
		},
	}
	cmd.Flags().BoolVar(&guard, "guard", false, "list only the guard namespace")
	return cmd
}

func runList(ctx context.Context, opts *RootOptions, w io.Writer, names []string, guard bool) error {
	a, err := opts.newApp(ctx)
	if err != nil {
		return err
	}
	reg := a.Registry()

	categories := []registry.Category{registry.Call, registry.Guard}
	if guard {
		categories = []registry.Category{registry.Guard}
	}

	found := make(map[string]bool, len(names))
	out := []overloadOutput{}
	for _, c := range categories {
		ops := names
		if len(ops) == 0 {
			ops = reg.Operations(c)
		}
		for _, name := range ops {
			for _, d := range reg.Overloads(name, c) {
				found[name] = true
				out = append(out, overloadOutput{
					Category:  c.String(),
					Operation: d.Name,
					Signature: d.Params.String(),
					Result:    optype.Name(d.Result),
					Impl:      d.Qualified(),
				})
			}
		}
	}

	for _, name := range names {
		if !found[name] {
			return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("no operation named '%s'", name)}
		}
	}

	return newPrinter(opts, w).print(out, func(w io.Writer) {
		for _, o := range out {
			fmt.Fprintf(w, "%s %s%s -> %s [%s]\n", o.Category, o.Operation, o.Signature, o.Result, o.Impl)
		}
	})
}
