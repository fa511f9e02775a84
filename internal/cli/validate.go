package cli

import (
	"fmt"
	"io"

	"github.com/specialistvlad/opreg/internal/registry"
	"github.com/spf13/cobra"
)

type validateOutput struct {
	Valid           bool `json:"valid"`
	CallOperations  int  `json:"call_operations"`
	GuardOperations int  `json:"guard_operations"`
}

func newValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Populate the registry and report namespace sizes",
		Long: `Populate the registry from the core modules and any extra manifests and
report namespace sizes. Fails when any declaration is invalid.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.newApp(cmd.Context())
			if err != nil {
				return err
			}
			out := validateOutput{
				Valid:           true,
				CallOperations:  a.Registry().Len(registry.Call),
				GuardOperations: a.Registry().Len(registry.Guard),
			}
			return newPrinter(opts, cmd.OutOrStdout()).print(out, func(w io.Writer) {
				fmt.Fprintf(w, "ok: %d call operations, %d guard operations\n", out.CallOperations, out.GuardOperations)
			})
		},
	}
}
