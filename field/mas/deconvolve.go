package mas

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-cosmo/field/fourier"
	"github.com/cwbudde/algo-cosmo/field/grid"
	"github.com/cwbudde/algo-cosmo/internal/parallel"
)

// Config holds deconvolution settings.
type Config struct {
	Workers int
}

// Option mutates a Config.
type Option func(*Config)

// WithWorkers bounds the number of goroutines used. Non-positive values
// select runtime.GOMAXPROCS(0).
func WithWorkers(workers int) Option {
	return func(cfg *Config) {
		cfg.Workers = workers
	}
}

func applyOptions(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Sinc returns the normalized sinc sin(πx)/(πx), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

// Window returns the Fourier-space response of kernel k at wavevector
// (ki, kj, kk) of an n³ grid.
func Window(k Kernel, ki, kj, kk, n int) float64 {
	w := Sinc(float64(ki)/float64(n)) * Sinc(float64(kj)/float64(n)) * Sinc(float64(kk)/float64(n))

	return math.Pow(w, float64(k.Order()))
}

// Deconvolve returns a copy of g with the window of kernel k divided out.
// The grid size must be even. For [None] the copy is returned unchanged.
func Deconvolve(ctx context.Context, g *grid.Grid, k Kernel, opts ...Option) (*grid.Grid, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKernel, int(k))
	}

	if k == None {
		return g.Clone(), nil
	}

	n := g.N
	cfg := applyOptions(opts)

	tr, err := fourier.NewTransform(n, cfg.Workers)
	if err != nil {
		return nil, err
	}

	half := make([]complex128, fourier.Size(n))
	if err := tr.Forward(ctx, half, g.Data); err != nil {
		return nil, fmt.Errorf("mas: %w", err)
	}

	if err := divideWindow(ctx, half, n, k, cfg.Workers); err != nil {
		return nil, err
	}

	out := grid.New(n)
	if err := tr.Inverse(ctx, out.Data, half); err != nil {
		return nil, fmt.Errorf("mas: %w", err)
	}

	return out, nil
}

// InverseWindows returns 1/sinc(w/n)^order for every storage index along a
// full axis and along the half axis. The window of a cell is the product of
// the three per-axis factors.
func InverseWindows(k Kernel, n int) (full, half []float64) {
	order := float64(k.Order())

	full = make([]float64, n)
	for idx := range full {
		full[idx] = math.Pow(Sinc(float64(fourier.Wavenumber(idx, n))/float64(n)), -order)
	}

	half = make([]float64, fourier.HalfLen(n))
	for idx := range half {
		half[idx] = math.Pow(Sinc(float64(idx)/float64(n)), -order)
	}

	return full, half
}

// divideWindow scales every half-grid cell by its inverse window. Lines along
// the last axis are split into real and imaginary parts and multiplied
// in blocks.
func divideWindow(ctx context.Context, half []complex128, n int, k Kernel, workers int) error {
	invFull, invHalf := InverseWindows(k, n)
	h := fourier.HalfLen(n)

	return parallel.For(ctx, workers, n, func(i int) error {
		factor := make([]float64, h)
		re := make([]float64, h)
		im := make([]float64, h)

		for j := range n {
			side := invFull[i] * invFull[j]
			for kk := range h {
				factor[kk] = side * invHalf[kk]
			}

			line := half[fourier.Index(n, i, j, 0) : fourier.Index(n, i, j, 0)+h]
			for kk, c := range line {
				re[kk], im[kk] = real(c), imag(c)
			}

			vecmath.MulBlockInPlace(re, factor)
			vecmath.MulBlockInPlace(im, factor)

			for kk := range line {
				line[kk] = complex(re[kk], im[kk])
			}
		}

		return nil
	})
}
