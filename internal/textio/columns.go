// Package textio reads whitespace-separated numeric tables, the plain-text
// format of power spectrum tables and particle position lists.
package textio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformed is returned for rows that are too short or not numeric.
var ErrMalformed = errors.New("textio: malformed table row")

// ReadColumns parses the first cols columns of every row of r. Blank lines
// and lines starting with '#' are skipped; extra columns are ignored.
func ReadColumns(r io.Reader, cols int) ([][]float64, error) {
	var rows [][]float64

	sc := bufio.NewScanner(r)
	line := 0

	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) < cols {
			return nil, fmt.Errorf("%w: line %d has %d columns, want at least %d", ErrMalformed, line, len(fields), cols)
		}

		row := make([]float64, cols)
		for c := range row {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
			}
			row[c] = v
		}

		rows = append(rows, row)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	return rows, nil
}
