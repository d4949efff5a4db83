package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Errors returned by the sampler.
var (
	ErrInvalidTable = errors.New("spectrum: invalid power spectrum table")
	ErrDomain       = errors.New("spectrum: wavenumber outside tabulated range")
)

// minSamples is the smallest table a not-a-knot cubic can be fitted to.
const minSamples = 4

// Table is a tabulated power spectrum. K must be strictly increasing and
// both K and P strictly positive.
type Table struct {
	K []float64
	P []float64
}

// Validate checks the table invariants.
func (t Table) Validate() error {
	if len(t.K) != len(t.P) {
		return fmt.Errorf("%w: %d wavenumbers but %d power values", ErrInvalidTable, len(t.K), len(t.P))
	}

	if len(t.K) < minSamples {
		return fmt.Errorf("%w: need at least %d samples, got %d", ErrInvalidTable, minSamples, len(t.K))
	}

	for i, k := range t.K {
		if !(k > 0) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: wavenumber %v at row %d is not positive", ErrInvalidTable, k, i)
		}

		if !(t.P[i] > 0) || math.IsInf(t.P[i], 0) {
			return fmt.Errorf("%w: power %v at row %d is not positive", ErrInvalidTable, t.P[i], i)
		}

		if i > 0 && k <= t.K[i-1] {
			return fmt.Errorf("%w: wavenumbers not strictly increasing at row %d", ErrInvalidTable, i)
		}
	}

	return nil
}

// Sampler interpolates √P(k) from a [Table]. It is safe for concurrent use.
type Sampler struct {
	fit    interp.NotAKnotCubic
	lo, hi float64
}

// NewSampler fits a cubic spline through (log k, log √P) of t.
func NewSampler(t Table) (*Sampler, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	logK := make([]float64, len(t.K))
	logAmp := make([]float64, len(t.K))

	for i := range t.K {
		logK[i] = math.Log(t.K[i])
		logAmp[i] = math.Log(math.Sqrt(t.P[i]))
	}

	s := &Sampler{lo: t.K[0], hi: t.K[len(t.K)-1]}
	if err := s.fit.Fit(logK, logAmp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}

	return s, nil
}

// Range returns the tabulated wavenumber interval.
func (s *Sampler) Range() (lo, hi float64) {
	return s.lo, s.hi
}

// Amplitude returns √P(k). It returns exactly 0 for k = 0 and [ErrDomain]
// for any other k outside the tabulated range.
func (s *Sampler) Amplitude(k float64) (float64, error) {
	if k == 0 {
		return 0, nil
	}

	if !(k >= s.lo && k <= s.hi) {
		return 0, fmt.Errorf("%w: k = %g not in [%g, %g]", ErrDomain, k, s.lo, s.hi)
	}

	return math.Exp(s.fit.Predict(math.Log(k))), nil
}

// Power returns P(k), the square of [Sampler.Amplitude].
func (s *Sampler) Power(k float64) (float64, error) {
	amp, err := s.Amplitude(k)
	if err != nil {
		return 0, err
	}

	return amp * amp, nil
}

// Covers reports whether every non-zero mode of an n³ grid in a box of side
// boxSize falls inside the tabulated range: the fundamental mode 2π/L and the
// corner mode √3·(n/2)·2π/L.
func (s *Sampler) Covers(n int, boxSize float64) error {
	if n < 2 || !(boxSize > 0) {
		return fmt.Errorf("%w: grid size %d, box size %g", ErrDomain, n, boxSize)
	}

	half := n / 2
	kMin := Wavenumber(boxSize, 1)
	kMax := Wavenumber(boxSize, 3*half*half)

	if kMin < s.lo || kMax > s.hi {
		return fmt.Errorf("%w: grid %d in box %g spans k in [%g, %g], table covers [%g, %g]",
			ErrDomain, n, boxSize, kMin, kMax, s.lo, s.hi)
	}

	return nil
}

// Wavenumber converts a squared integer wavevector length k2 into a physical
// wavenumber for a box of side boxSize: (2π/L)·√k2.
func Wavenumber(boxSize float64, k2 int) float64 {
	return 2 * math.Pi / boxSize * math.Sqrt(float64(k2))
}
