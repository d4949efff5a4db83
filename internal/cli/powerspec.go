package cli

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-cosmo/field/mas"
	"github.com/cwbudde/algo-cosmo/measure/powerspec"
)

// PowerspecOptions holds flags for the powerspec command.
type PowerspecOptions struct {
	*RootOptions
	GridSize int
	BoxSize  float64
	Kernel   string
	Bins     int
	Cross    string
	Output   string
}

// NewPowerspecCommand creates the powerspec command.
func NewPowerspecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PowerspecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "powerspec <grid>",
		Short: "Measure the power spectrum of a grid",
		Long: `Measure the shell-averaged power spectrum of a raw overdensity grid and
print k, P(k) and the mode count per bin. With --cross the cross spectrum
of the two grids is measured instead.

Example:
  cosmofield powerspec delta -n 128 -L 512
  cosmofield powerspec delta_cic -n 128 -L 512 --kernel CIC --bins 30 -o pk.txt
  cosmofield powerspec delta_cdm -n 128 -L 512 --cross delta_ncdm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPowerspec(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.GridSize, "gridsize", "n", 0, "grid cells per side")
	cmd.Flags().Float64VarP(&opts.BoxSize, "boxsize", "L", 0, "box side length")
	cmd.Flags().StringVar(&opts.Kernel, "kernel", "None", "window to correct for (None|NGP|CIC|TSC|PCS)")
	cmd.Flags().IntVar(&opts.Bins, "bins", 0, "rebin into this many log-spaced bins (0 keeps fundamental-width shells)")
	cmd.Flags().StringVar(&opts.Cross, "cross", "", "second grid for a cross spectrum")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("gridsize")
	_ = cmd.MarkFlagRequired("boxsize")

	return cmd
}

func runPowerspec(cmd *cobra.Command, opts *PowerspecOptions, path string) error {
	kernel, err := mas.ParseKernel(opts.Kernel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid kernel", err)
	}

	g, err := readGrid(path, opts.GridSize)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read grid", err)
	}

	estOpts := []powerspec.Option{
		powerspec.WithWorkers(opts.Workers),
		powerspec.WithKernel(kernel),
	}

	var ps *powerspec.Spectrum
	if opts.Cross == "" {
		ps, err = powerspec.Estimate(cmd.Context(), g, opts.BoxSize, estOpts...)
	} else {
		other, readErr := readGrid(opts.Cross, opts.GridSize)
		if readErr != nil {
			return WrapExitError(ExitCommandError, "failed to read cross grid", readErr)
		}

		ps, err = powerspec.Cross(cmd.Context(), g, other, opts.BoxSize, estOpts...)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "power spectrum estimate failed", err)
	}

	if opts.Bins > 0 && ps.Len() > 1 {
		edges := make([]float64, opts.Bins+1)
		floats.LogSpan(edges, ps.K[0], ps.K[ps.Len()-1])
		rebinned := powerspec.Rebin(edges, ps.K, ps.P, ps.Modes)
		ps = &rebinned
	}

	if opts.Output == "" {
		if err := ps.WriteText(cmd.OutOrStdout()); err != nil {
			return WrapExitError(ExitFailure, "failed to write power spectrum", err)
		}

		return nil
	}

	if err := writeSpectrum(opts.Output, ps); err != nil {
		return WrapExitError(ExitCommandError, "failed to write power spectrum", err)
	}

	opts.Logger.Info("power spectrum written", "output", opts.Output, "bins", ps.Len())

	return nil
}
