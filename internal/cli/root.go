// Package cli implements the cosmofield command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Workers int

	// Logger is configured before any subcommand runs.
	Logger *slog.Logger
}

// NewRootCommand creates the root command for the cosmofield CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cosmofield",
		Short: "Gaussian random field initial conditions",
		Long: `Realize Gaussian random density fields from a tabulated power spectrum
and a stored phase bank, so that runs at different resolutions share their
large-scale modes. Also deconvolves mass-assignment windows and measures
power spectra of density grids.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}

			opts.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().IntVarP(&opts.Workers, "workers", "j", 0, "worker goroutines (0 = all processors)")

	cmd.AddCommand(NewRealizeCommand(opts))
	cmd.AddCommand(NewAssignCommand(opts))
	cmd.AddCommand(NewDeconvolveCommand(opts))
	cmd.AddCommand(NewPowerspecCommand(opts))
	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewCurveKeyCommand(opts))

	return cmd
}
