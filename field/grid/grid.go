// Package grid holds real-valued density fields sampled on a periodic cubic
// lattice.
package grid

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by grid operations.
var (
	ErrInvalidSize    = errors.New("grid: size must be positive")
	ErrLengthMismatch = errors.New("grid: data length does not match size")
	ErrZeroMean       = errors.New("grid: mean density is zero")
)

// Grid is an N×N×N real field. Data is stored row-major, cell (i, j, k) at
// (i*N + j)*N + k, the layout expected by the three-dimensional transforms.
type Grid struct {
	N    int
	Data []float64
}

// New returns a zero-filled grid of size n.
func New(n int) *Grid {
	if n <= 0 {
		panic(fmt.Sprintf("grid: invalid size %d", n))
	}

	return &Grid{N: n, Data: make([]float64, n*n*n)}
}

// FromData wraps data as a grid of size n without copying.
func FromData(n int, data []float64) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	if len(data) != n*n*n {
		return nil, fmt.Errorf("%w: %d values for size %d", ErrLengthMismatch, len(data), n)
	}

	return &Grid{N: n, Data: data}, nil
}

// Index returns the storage offset of cell (i, j, k).
func (g *Grid) Index(i, j, k int) int {
	return (i*g.N+j)*g.N + k
}

// At returns the value of cell (i, j, k).
func (g *Grid) At(i, j, k int) float64 {
	return g.Data[g.Index(i, j, k)]
}

// Set assigns v to cell (i, j, k).
func (g *Grid) Set(i, j, k int, v float64) {
	g.Data[g.Index(i, j, k)] = v
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	data := make([]float64, len(g.Data))
	copy(data, g.Data)

	return &Grid{N: g.N, Data: data}
}

// Scale multiplies every cell by f.
func (g *Grid) Scale(f float64) {
	floats.Scale(f, g.Data)
}

// Mean returns the average cell value.
func (g *Grid) Mean() float64 {
	return floats.Sum(g.Data) / float64(len(g.Data))
}

// Overdensity converts a density grid in place to the contrast
// δ = ρ/ρ̄ - 1.
func (g *Grid) Overdensity() error {
	mean := g.Mean()
	if mean == 0 {
		return ErrZeroMean
	}

	floats.Scale(1/mean, g.Data)
	floats.AddConst(-1, g.Data)

	return nil
}

// Project sums the first depth planes along the last axis and returns the
// resulting N×N image indexed [i][j]. A non-positive depth selects N/8
// planes (at least one), the slab thickness used for rendering slices.
func (g *Grid) Project(depth int) [][]float64 {
	n := g.N
	if depth <= 0 {
		depth = max(n/8, 1)
	}

	depth = min(depth, n)

	out := make([][]float64, n)
	for i := range n {
		out[i] = make([]float64, n)
		for j := range n {
			base := g.Index(i, j, 0)
			out[i][j] = floats.Sum(g.Data[base : base+depth])
		}
	}

	return out
}
