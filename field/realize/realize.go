package realize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"github.com/cwbudde/algo-cosmo/field/curve"
	"github.com/cwbudde/algo-cosmo/field/fourier"
	"github.com/cwbudde/algo-cosmo/field/grid"
	"github.com/cwbudde/algo-cosmo/field/phase"
	"github.com/cwbudde/algo-cosmo/field/spectrum"
	"github.com/cwbudde/algo-cosmo/internal/parallel"
)

// Errors returned for malformed requests.
var (
	ErrInvalidBoxSize = errors.New("realize: box size must be positive")
	ErrMissingInput   = errors.New("realize: request needs a sampler and a phase bank")
)

// Request describes one realization.
type Request struct {
	GridSize int
	BoxSize  float64
	Sampler  *spectrum.Sampler
	Phases   *phase.Bank
}

// Validate checks the request against the sampler range and bank length.
func (req Request) Validate() error {
	if err := fourier.ValidateSize(req.GridSize); err != nil {
		return err
	}

	if !(req.BoxSize > 0) || math.IsInf(req.BoxSize, 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidBoxSize, req.BoxSize)
	}

	if req.Sampler == nil || req.Phases == nil {
		return ErrMissingInput
	}

	if err := req.Phases.Require(req.GridSize); err != nil {
		return err
	}

	return req.Sampler.Covers(req.GridSize, req.BoxSize)
}

// Realizer builds density fields. It holds no per-realization state and may
// be shared between goroutines.
type Realizer struct {
	cfg Config
}

// New creates a Realizer.
func New(opts ...Option) *Realizer {
	return &Realizer{cfg: ApplyOptions(opts...)}
}

// Realize returns the real-space overdensity field described by req.
func (r *Realizer) Realize(ctx context.Context, req Request) (*grid.Grid, error) {
	half, err := r.Fourier(ctx, req)
	if err != nil {
		return nil, err
	}

	n := req.GridSize
	start := time.Now()

	tr, err := fourier.NewTransform(n, r.cfg.Workers)
	if err != nil {
		return nil, err
	}

	g := grid.New(n)
	if err := tr.Inverse(ctx, g.Data, half); err != nil {
		return nil, fmt.Errorf("realize: %w", err)
	}

	g.Scale(float64(n*n*n) / math.Pow(req.BoxSize, 1.5))

	r.cfg.Logger.Debug("inverse transform done", "gridsize", n, "elapsed", time.Since(start))

	return g, nil
}

// Fourier returns the filled half-space grid of req before it is
// transformed, in the storage layout of package fourier.
func (r *Realizer) Fourier(ctx context.Context, req Request) ([]complex128, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	n := req.GridSize
	start := time.Now()
	half := make([]complex128, fourier.Size(n))

	// Planes write disjoint slabs of half.
	err := parallel.For(ctx, r.cfg.Workers, n, func(i int) error {
		for m := range fourier.Plane(n, i) {
			k2 := m.KI*m.KI + m.KJ*m.KJ + m.KK*m.KK

			amp, err := req.Sampler.Amplitude(spectrum.Wavenumber(req.BoxSize, k2))
			if err != nil {
				return err
			}

			key, err := curve.Check(n, m.KI, m.KJ, m.KK)
			if err != nil {
				panic(err)
			}

			half[fourier.Index(n, m.I, m.J, m.K)] = cmplx.Rect(amp, req.Phases.At(key))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	r.cfg.Logger.Debug("fourier grid filled",
		"gridsize", n,
		"boxsize", req.BoxSize,
		"modes", len(half),
		"phases", req.Phases.Name(),
		"elapsed", time.Since(start),
	)

	return half, nil
}
