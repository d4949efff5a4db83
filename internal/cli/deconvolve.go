package cli

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cosmo/field/mas"
)

// DeconvolveOptions holds flags for the deconvolve command.
type DeconvolveOptions struct {
	*RootOptions
	GridSize int
	Kernel   string
	Output   string
}

// NewDeconvolveCommand creates the deconvolve command.
func NewDeconvolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeconvolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deconvolve <grid>",
		Short: "Divide a mass-assignment window out of a grid",
		Long: `Divide the Fourier-space window of a mass-assignment kernel out of a raw
density grid, undoing the smoothing introduced when particles were deposited.

Example:
  cosmofield deconvolve delta_cic -n 128 --kernel CIC -o delta`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeconvolve(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.GridSize, "gridsize", "n", 0, "grid cells per side")
	cmd.Flags().StringVar(&opts.Kernel, "kernel", "None", "mass-assignment kernel (None|NGP|CIC|TSC|PCS)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output grid file")
	_ = cmd.MarkFlagRequired("gridsize")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runDeconvolve(cmd *cobra.Command, opts *DeconvolveOptions, path string) error {
	kernel, err := mas.ParseKernel(opts.Kernel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid kernel", err)
	}

	g, err := readGrid(path, opts.GridSize)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read grid", err)
	}

	out, err := mas.Deconvolve(cmd.Context(), g, kernel, mas.WithWorkers(opts.Workers))
	if err != nil {
		return WrapExitError(ExitFailure, "deconvolution failed", err)
	}

	m := newManifest("deconvolve", out)
	m.Kernel = &kernel
	m.Source = path

	if err := writeGrid(opts.Output, out, m); err != nil {
		return WrapExitError(ExitCommandError, "failed to write grid", err)
	}

	opts.Logger.Info("grid deconvolved", "kernel", kernel, "output", opts.Output)

	return nil
}
