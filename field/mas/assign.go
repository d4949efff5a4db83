package mas

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-cosmo/field/grid"
)

// ErrInvalidBoxSize is returned when particles are deposited into a box whose
// side is not a positive finite length.
var ErrInvalidBoxSize = errors.New("mas: box size must be positive")

// Assign deposits particles of equal mass onto an n³ periodic grid covering a
// box of side boxSize, using kernel k. Grid points sit at integer multiples
// of the cell size. Every particle contributes exactly mass to the grid.
func Assign(n int, boxSize float64, k Kernel, positions [][3]float64, mass float64) (*grid.Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", grid.ErrInvalidSize, n)
	}

	if !(boxSize > 0) || math.IsInf(boxSize, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidBoxSize, boxSize)
	}

	if k == None || !k.Valid() {
		return nil, fmt.Errorf("%w: %v cannot deposit particles", ErrUnknownKernel, k)
	}

	g := grid.New(n)
	scale := float64(n) / boxSize

	var (
		idx [3][4]int
		wt  [3][4]float64
	)

	width := k.Order()

	for _, pos := range positions {
		for axis := range 3 {
			weights(k, pos[axis]*scale, n, &idx[axis], &wt[axis])
		}

		for a := range width {
			for b := range width {
				wab := mass * wt[0][a] * wt[1][b]
				base := (idx[0][a]*n + idx[1][b]) * n

				for c := range width {
					g.Data[base+idx[2][c]] += wab * wt[2][c]
				}
			}
		}
	}

	return g, nil
}

// weights fills the grid indices and B-spline weights touched by a particle at
// grid coordinate u along one axis.
func weights(k Kernel, u float64, n int, idx *[4]int, wt *[4]float64) {
	switch k {
	case NGP:
		idx[0] = wrap(int(math.Floor(u+0.5)), n)
		wt[0] = 1
	case CIC:
		i0 := int(math.Floor(u))
		d := u - float64(i0)
		idx[0], idx[1] = wrap(i0, n), wrap(i0+1, n)
		wt[0], wt[1] = 1-d, d
	case TSC:
		i0 := int(math.Floor(u + 0.5))
		d := u - float64(i0)
		idx[0], idx[1], idx[2] = wrap(i0-1, n), wrap(i0, n), wrap(i0+1, n)
		wt[0] = 0.5 * (0.5 - d) * (0.5 - d)
		wt[1] = 0.75 - d*d
		wt[2] = 0.5 * (0.5 + d) * (0.5 + d)
	case PCS:
		i0 := int(math.Floor(u))
		d := u - float64(i0)
		d2, d3 := d*d, d*d*d
		idx[0], idx[1], idx[2], idx[3] = wrap(i0-1, n), wrap(i0, n), wrap(i0+1, n), wrap(i0+2, n)
		wt[0] = (1 - d) * (1 - d) * (1 - d) / 6
		wt[1] = (4 - 6*d2 + 3*d3) / 6
		wt[2] = (1 + 3*d + 3*d2 - 3*d3) / 6
		wt[3] = d3 / 6
	}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}

	return i
}
