package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/specialistvlad/opreg/internal/app"
	"github.com/specialistvlad/opreg/internal/manifest"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Manifests   []string
	LogLevel    string
	LogFormat   string
	OnDuplicate string
	Format      string // "text" | "json"

	logW io.Writer
}

// NewRootCommand creates the root command of the opreg CLI. Logs go to
// errW; command output goes to the command's out writer.
func NewRootCommand(errW io.Writer) *cobra.Command {
	opts := &RootOptions{logW: errW}

	cmd := &cobra.Command{
		Use:   "opreg",
		Short: "Inspect the built-in operation registry",
		Long: `Inspect the built-in operation registry.

Populates the registry from the core provider modules and any extra
manifests, then answers the same queries the compiler asks at a call site.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != "text" && opts.Format != "json" {
				return usageError(fmt.Sprintf("invalid format %q: must be 'text' or 'json'", opts.Format), nil)
			}
			return nil
		},
	}
	cmd.SetErr(errW)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("invalid flags", err)
	})

	flags := cmd.PersistentFlags()
	flags.StringArrayVarP(&opts.Manifests, "manifest", "m", nil, "extra manifest file or directory (repeatable)")
	flags.StringVar(&opts.LogLevel, "log-level", "warn", "logging level (debug|info|warn|error)")
	flags.StringVar(&opts.LogFormat, "log-format", defaultLogFormat(errW), "log output format (text|json)")
	flags.StringVar(&opts.OnDuplicate, "on-duplicate", "overwrite", "duplicate registration policy (overwrite|first|error)")
	flags.StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(newResolveCommand(opts))
	cmd.AddCommand(newResultCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))

	return cmd
}

// defaultLogFormat picks text logs for an interactive terminal and JSON
// otherwise.
func defaultLogFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return "text"
		}
	}
	return "json"
}

// newApp validates the global flags and builds the populated registry.
func (o *RootOptions) newApp(ctx context.Context) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		ManifestPaths:   o.Manifests,
		LogFormat:       o.LogFormat,
		LogLevel:        o.LogLevel,
		DuplicatePolicy: o.OnDuplicate,
	})
	if err != nil {
		return nil, usageError("invalid configuration", err)
	}

	a, err := app.NewApp(ctx, o.logW, cfg, manifest.NewLoader(), app.CoreModules...)
	if err != nil {
		return nil, usageError("failed to build registry", err)
	}
	return a, nil
}
