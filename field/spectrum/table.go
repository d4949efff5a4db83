package spectrum

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-cosmo/internal/textio"
)

// LoadTable reads a whitespace-separated text table whose first two columns
// are k and P(k). Blank lines and lines starting with '#' are skipped and any
// further columns (such as mode counts) are ignored.
func LoadTable(r io.Reader) (Table, error) {
	rows, err := textio.ReadColumns(r, 2)
	if errors.Is(err, textio.ErrMalformed) {
		return Table{}, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err != nil {
		return Table{}, fmt.Errorf("spectrum: read table: %w", err)
	}

	t := Table{K: make([]float64, len(rows)), P: make([]float64, len(rows))}
	for i, row := range rows {
		t.K[i], t.P[i] = row[0], row[1]
	}

	if err := t.Validate(); err != nil {
		return Table{}, err
	}

	return t, nil
}

// PowerLaw tabulates P(k) = amp·k^index at the given wavenumbers.
func PowerLaw(amp, index float64, k []float64) Table {
	t := Table{K: append([]float64(nil), k...), P: make([]float64, len(k))}
	for i, ki := range k {
		t.P[i] = amp * math.Pow(ki, index)
	}

	return t
}
