package cli

import (
	"fmt"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-cosmo/field/curve"
	"github.com/cwbudde/algo-cosmo/field/fourier"
)

// CurveKeyOptions holds flags for the curvekey command.
type CurveKeyOptions struct {
	*RootOptions
	Table int
}

// NewCurveKeyCommand creates the curvekey command.
func NewCurveKeyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CurveKeyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "curvekey [ki kj kk]",
		Short: "Print phase-bank keys of Fourier modes",
		Long: `Print the phase-bank key and shell of a Fourier mode, or with --table the
keys of every stored mode of an N³ grid in key order.

Negative wavenumbers must follow "--".

Example:
  cosmofield curvekey 1 1 1
  cosmofield curvekey -- -2 -2 0
  cosmofield curvekey --table 4`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.Table > 0 {
				return cobra.NoArgs(cmd, args)
			}

			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Table > 0 {
				return printKeyTable(cmd, opts.Table)
			}

			return printKey(cmd, args)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().IntVar(&opts.Table, "table", 0, "print the full key table for this grid size")

	return cmd
}

func printKey(cmd *cobra.Command, args []string) error {
	var k [3]int
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid wavenumber", err)
		}
		k[i] = v
	}

	if k[2] < 0 {
		return NewExitError(ExitCommandError, "kk must be non-negative")
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", curve.Key(k[0], k[1], k[2]), curve.Shell(k[0], k[1], k[2]))

	return err
}

type keyRow struct {
	key, shell int
	mode       fourier.Mode
}

func printKeyTable(cmd *cobra.Command, n int) error {
	if err := fourier.ValidateSize(n); err != nil {
		return WrapExitError(ExitCommandError, "invalid grid size", err)
	}

	rows := make([]keyRow, 0, curve.Size(n))
	for m := range fourier.Modes(n) {
		key, err := curve.Check(n, m.KI, m.KJ, m.KK)
		if err != nil {
			return WrapExitError(ExitFailure, "key out of range", err)
		}
		rows = append(rows, keyRow{key: key, shell: curve.Shell(m.KI, m.KJ, m.KK), mode: m})
	}

	slices.SortFunc(rows, func(a, b keyRow) int { return a.key - b.key })

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tw, "Key\tShell\tki\tkj\tkk\t\n"); err != nil {
		return err
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t\n", r.key, r.shell, r.mode.KI, r.mode.KJ, r.mode.KK); err != nil {
			return err
		}
	}

	return tw.Flush()
}
