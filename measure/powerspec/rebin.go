package powerspec

import (
	"fmt"
	"io"
	"math"
	"sort"
)

// Rebin averages a measured spectrum into the bins delimited by edges,
// weighting every input bin by its mode count. An input bin falls into
// [edges[b], edges[b+1]); the last bin also includes its upper edge.
// Output bins without modes are dropped and a zero average power is reported
// as NaN. NaN inputs contribute nothing to the quantity they spoil.
func Rebin(edges, k, p []float64, modes []int) Spectrum {
	var out Spectrum
	if len(edges) < 2 {
		return out
	}

	nb := len(edges) - 1
	sumK := make([]float64, nb)
	sumP := make([]float64, nb)
	sumM := make([]int, nb)

	for i := range min(len(k), len(p), len(modes)) {
		b := edgeBin(edges, k[i])
		if b < 0 {
			continue
		}

		m := float64(modes[i])
		if v := k[i] * m; !math.IsNaN(v) {
			sumK[b] += v
		}

		if v := p[i] * m; !math.IsNaN(v) {
			sumP[b] += v
		}

		sumM[b] += modes[i]
	}

	for b := range nb {
		if sumM[b] <= 0 {
			continue
		}

		m := float64(sumM[b])
		power := sumP[b] / m
		if power == 0 {
			power = math.NaN()
		}

		out.K = append(out.K, sumK[b]/m)
		out.P = append(out.P, power)
		out.Modes = append(out.Modes, sumM[b])
	}

	return out
}

func edgeBin(edges []float64, x float64) int {
	last := len(edges) - 1
	if math.IsNaN(x) || x < edges[0] || x > edges[last] {
		return -1
	}

	if x == edges[last] {
		return last - 1
	}

	return sort.Search(len(edges), func(i int) bool { return edges[i] > x }) - 1
}

// WriteText writes the spectrum as three whitespace-separated columns
// k, P and modes under a # header.
func (s *Spectrum) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "# k P modes"); err != nil {
		return err
	}

	for i := range s.K {
		if _, err := fmt.Fprintf(w, "%.8e %.8e %d\n", s.K[i], s.P[i], s.Modes[i]); err != nil {
			return err
		}
	}

	return nil
}
