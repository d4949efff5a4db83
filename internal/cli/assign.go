package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cosmo/field/mas"
	"github.com/cwbudde/algo-cosmo/internal/textio"
)

// AssignOptions holds flags for the assign command.
type AssignOptions struct {
	*RootOptions
	GridSize int
	BoxSize  float64
	Kernel   string
	Output   string
	Density  bool
}

// NewAssignCommand creates the assign command.
func NewAssignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AssignOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "assign <particles>",
		Short: "Deposit particles onto a density grid",
		Long: `Deposit particles read from a text file (x y z per line, # comments)
onto an N³ periodic grid with a mass-assignment kernel and write the
overdensity field.

Example:
  cosmofield assign snap.txt -n 128 -L 512 --kernel CIC -o delta_cic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssign(opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.GridSize, "gridsize", "n", 0, "grid cells per side")
	cmd.Flags().Float64VarP(&opts.BoxSize, "boxsize", "L", 0, "box side length")
	cmd.Flags().StringVar(&opts.Kernel, "kernel", "CIC", "mass-assignment kernel (NGP|CIC|TSC|PCS)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output grid file")
	cmd.Flags().BoolVar(&opts.Density, "density", false, "write the density instead of the overdensity")
	_ = cmd.MarkFlagRequired("gridsize")
	_ = cmd.MarkFlagRequired("boxsize")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runAssign(opts *AssignOptions, path string) error {
	kernel, err := mas.ParseKernel(opts.Kernel)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid kernel", err)
	}

	positions, err := loadPositions(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read particles", err)
	}

	g, err := mas.Assign(opts.GridSize, opts.BoxSize, kernel, positions, 1)
	if err != nil {
		return WrapExitError(ExitCommandError, "mass assignment failed", err)
	}

	if !opts.Density {
		if err := g.Overdensity(); err != nil {
			return WrapExitError(ExitFailure, "overdensity failed", err)
		}
	}

	m := newManifest("assign", g)
	m.BoxSize = opts.BoxSize
	m.Kernel = &kernel
	m.Source = path

	if err := writeGrid(opts.Output, g, m); err != nil {
		return WrapExitError(ExitCommandError, "failed to write grid", err)
	}

	opts.Logger.Info("particles assigned", "particles", len(positions), "kernel", kernel, "output", opts.Output)

	return nil
}

func loadPositions(path string) ([][3]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readPositions(f)
}

// readPositions parses whitespace-separated x y z rows.
func readPositions(r io.Reader) ([][3]float64, error) {
	rows, err := textio.ReadColumns(r, 3)
	if err != nil {
		return nil, err
	}

	out := make([][3]float64, len(rows))
	for i, row := range rows {
		out[i] = [3]float64{row[0], row[1], row[2]}
	}

	return out, nil
}
