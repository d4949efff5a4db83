package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ProjectOptions holds flags for the project command.
type ProjectOptions struct {
	*RootOptions
	GridSize int
	Depth    int
	Output   string
}

// NewProjectCommand creates the project command.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProjectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "project <grid>",
		Short: "Project a slab of a grid onto a 2D image",
		Long: `Sum the first planes along the last axis of a raw grid and write the
resulting N×N image as whitespace-separated text, one row per line.
The default slab depth is N/8 planes.

Example:
  cosmofield project delta -n 128 -o slice.txt
  cosmofield project delta -n 128 --depth 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVarP(&opts.GridSize, "gridsize", "n", 0, "grid cells per side")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "planes to sum (0 = N/8)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("gridsize")

	return cmd
}

func runProject(cmd *cobra.Command, opts *ProjectOptions, path string) error {
	if opts.Depth < 0 || opts.Depth > opts.GridSize {
		return NewExitError(ExitCommandError, fmt.Sprintf("depth must be in [0, %d]", opts.GridSize))
	}

	g, err := readGrid(path, opts.GridSize)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read grid", err)
	}

	image := g.Project(opts.Depth)

	if opts.Output == "" {
		if err := writeImage(cmd.OutOrStdout(), image); err != nil {
			return WrapExitError(ExitFailure, "failed to write image", err)
		}

		return nil
	}

	f, err := os.Create(opts.Output)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create image file", err)
	}

	if err := writeImage(f, image); err != nil {
		_ = f.Close()
		return WrapExitError(ExitCommandError, "failed to write image", err)
	}

	if err := f.Close(); err != nil {
		return WrapExitError(ExitCommandError, "failed to write image", err)
	}

	opts.Logger.Info("projection written", "output", opts.Output, "size", len(image))

	return nil
}

func writeImage(w io.Writer, image [][]float64) error {
	bw := bufio.NewWriter(w)

	for _, row := range image {
		for j, v := range row {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintf(bw, "%.8e", v); err != nil {
				return err
			}
		}

		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}

	return bw.Flush()
}
