package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cosmo/field/phase"
	"github.com/cwbudde/algo-cosmo/field/realize"
	"github.com/cwbudde/algo-cosmo/field/spectrum"
	"github.com/cwbudde/algo-cosmo/measure/powerspec"
)

// RealizeOptions holds flags for the realize command.
type RealizeOptions struct {
	*RootOptions
	ConfigPath string
	Flags      RunConfig
}

// NewRealizeCommand creates the realize command.
func NewRealizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RealizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "realize",
		Short: "Realize a Gaussian density field",
		Long: `Realize a Gaussian random overdensity field on an N³ grid.

Mode amplitudes come from the tabulated power spectrum, phases from the
phase bank indexed by curve key. Settings may come from a YAML run file;
explicit flags override it.

Example:
  cosmofield realize --config run.yaml
  cosmofield realize -n 128 -L 512 --phases ic/phase --spectrum powerspec_lin -o delta`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			return runRealize(cmd, opts.RootOptions, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML run file")
	cmd.Flags().IntVarP(&opts.Flags.GridSize, "gridsize", "n", 0, "grid cells per side (even)")
	cmd.Flags().Float64VarP(&opts.Flags.BoxSize, "boxsize", "L", 0, "box side length")
	cmd.Flags().StringVar(&opts.Flags.Phases, "phases", "", "phase bank file (float32 radians)")
	cmd.Flags().StringVar(&opts.Flags.Spectrum, "spectrum", "", "two-column power spectrum table")
	cmd.Flags().StringVarP(&opts.Flags.Output, "output", "o", "", "output grid file")
	cmd.Flags().StringVar(&opts.Flags.Powerspec, "powerspec", "", "also write the measured power spectrum to this file")

	return cmd
}

// resolve merges the run file with the flags that were set explicitly.
func (o *RealizeOptions) resolve(cmd *cobra.Command) (*RunConfig, error) {
	cfg := &RunConfig{}
	if o.ConfigPath != "" {
		loaded, err := LoadRunConfig(o.ConfigPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid run file", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("gridsize") {
		cfg.GridSize = o.Flags.GridSize
	}
	if flags.Changed("boxsize") {
		cfg.BoxSize = o.Flags.BoxSize
	}
	if flags.Changed("phases") {
		cfg.Phases = o.Flags.Phases
	}
	if flags.Changed("spectrum") {
		cfg.Spectrum = o.Flags.Spectrum
	}
	if flags.Changed("output") {
		cfg.Output = o.Flags.Output
	}
	if flags.Changed("powerspec") {
		cfg.Powerspec = o.Flags.Powerspec
	}
	if flags.Changed("workers") || cfg.Workers == 0 {
		cfg.Workers = o.Workers
	}

	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "incomplete run configuration", err)
	}

	return cfg, nil
}

func runRealize(cmd *cobra.Command, opts *RootOptions, cfg *RunConfig) error {
	log := opts.Logger

	sampler, err := loadSampler(cfg.Spectrum)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load power spectrum", err)
	}

	bank, err := phase.LoadN(cfg.Phases, cfg.GridSize)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load phases", err)
	}

	log.Info("realizing field", "gridsize", cfg.GridSize, "boxsize", cfg.BoxSize, "phases", bank.Name())

	r := realize.New(realize.WithWorkers(cfg.Workers), realize.WithLogger(log))
	g, err := r.Realize(cmd.Context(), realize.Request{
		GridSize: cfg.GridSize,
		BoxSize:  cfg.BoxSize,
		Sampler:  sampler,
		Phases:   bank,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "realization failed", err)
	}

	m := newManifest("realize", g)
	m.BoxSize = cfg.BoxSize
	m.Phases = cfg.Phases
	m.Spectrum = cfg.Spectrum

	if err := writeGrid(cfg.Output, g, m); err != nil {
		return WrapExitError(ExitCommandError, "failed to write grid", err)
	}

	log.Info("field written", "output", cfg.Output, "run_id", m.RunID, "rms", m.Stats.RMS)

	if cfg.Powerspec == "" {
		return nil
	}

	ps, err := powerspec.Estimate(cmd.Context(), g, cfg.BoxSize, powerspec.WithWorkers(cfg.Workers))
	if err != nil {
		return WrapExitError(ExitFailure, "power spectrum estimate failed", err)
	}

	if err := writeSpectrum(cfg.Powerspec, ps); err != nil {
		return WrapExitError(ExitCommandError, "failed to write power spectrum", err)
	}

	log.Info("power spectrum written", "output", cfg.Powerspec, "bins", ps.Len())

	return nil
}

func loadSampler(path string) (*spectrum.Sampler, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	table, err := spectrum.LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return spectrum.NewSampler(table)
}

func writeSpectrum(path string, ps *powerspec.Spectrum) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := ps.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
