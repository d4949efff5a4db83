package fourier

import (
	"context"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-cosmo/internal/parallel"
)

// Transform computes three-dimensional real-to-complex transforms of an
// N×N×N grid by applying one-dimensional complex plans along each axis.
//
// The forward transform is unnormalized; the inverse carries the 1/N³ factor,
// matching the default ("backward") convention of NumPy and FFTW.
// A Transform may be used by several goroutines at once.
type Transform struct {
	n       int
	workers int

	// One plan and scratch line per worker; plans keep internal state and
	// must not be shared between goroutines.
	lines chan *lineWorker
}

type lineWorker struct {
	plan *algofft.Plan[complex128]
	line []complex128
}

// NewTransform creates a transform for grid size n that spreads its
// one-dimensional passes over at most workers goroutines.
// Non-positive workers selects runtime.GOMAXPROCS(0).
func NewTransform(n, workers int) (*Transform, error) {
	if err := ValidateSize(n); err != nil {
		return nil, err
	}

	workers = min(parallel.Workers(workers), n)

	t := &Transform{
		n:       n,
		workers: workers,
		lines:   make(chan *lineWorker, workers),
	}

	for range workers {
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, fmt.Errorf("fourier: failed to create FFT plan: %w", err)
		}

		t.lines <- &lineWorker{plan: plan, line: make([]complex128, n)}
	}

	return t, nil
}

// Size returns the grid size the transform was created for.
func (t *Transform) Size() int {
	return t.n
}

// Forward computes the half spectrum of the real grid src into dst.
// len(src) must be n³ and len(dst) must be [Size](n).
func (t *Transform) Forward(ctx context.Context, dst []complex128, src []float64) error {
	n := t.n
	h := HalfLen(n)

	if len(src) != n*n*n || len(dst) != Size(n) {
		return fmt.Errorf("%w: forward wants %d real and %d complex values, got %d and %d",
			ErrLengthMismatch, n*n*n, Size(n), len(src), len(dst))
	}

	// Real lines along the last axis; only the non-negative half is kept.
	err := t.run(ctx, n, func(w *lineWorker, i int) error {
		for j := range n {
			row := src[(i*n+j)*n : (i*n+j+1)*n]
			for x, v := range row {
				w.line[x] = complex(v, 0)
			}

			if err := w.plan.Forward(w.line, w.line); err != nil {
				return fmt.Errorf("fourier: forward FFT failed: %w", err)
			}

			copy(dst[Index(n, i, j, 0):Index(n, i, j, 0)+h], w.line[:h])
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := t.pass(ctx, dst, 1, false); err != nil {
		return err
	}

	return t.pass(ctx, dst, 0, false)
}

// Inverse computes the real grid whose half spectrum is src into dst.
// src is not modified. Imaginary parts of the kk = 0 and kk = n/2 cells are
// ignored, as in the complex-to-real transforms of FFTW and pocketfft.
func (t *Transform) Inverse(ctx context.Context, dst []float64, src []complex128) error {
	n := t.n
	h := HalfLen(n)

	if len(src) != Size(n) || len(dst) != n*n*n {
		return fmt.Errorf("%w: inverse wants %d complex and %d real values, got %d and %d",
			ErrLengthMismatch, Size(n), n*n*n, len(src), len(dst))
	}

	work := make([]complex128, len(src))
	copy(work, src)

	if err := t.pass(ctx, work, 0, true); err != nil {
		return err
	}

	if err := t.pass(ctx, work, 1, true); err != nil {
		return err
	}

	return t.run(ctx, n, func(w *lineWorker, i int) error {
		for j := range n {
			half := work[Index(n, i, j, 0) : Index(n, i, j, 0)+h]

			copy(w.line, half)
			for k := 1; k < n-k; k++ {
				c := half[k]
				w.line[n-k] = complex(real(c), -imag(c))
			}

			if err := w.plan.Inverse(w.line, w.line); err != nil {
				return fmt.Errorf("fourier: inverse FFT failed: %w", err)
			}

			row := dst[(i*n+j)*n : (i*n+j+1)*n]
			for x := range row {
				row[x] = real(w.line[x])
			}
		}

		return nil
	})
}

// pass applies complex transforms along axis 0 or 1 of the half grid.
func (t *Transform) pass(ctx context.Context, data []complex128, axis int, inverse bool) error {
	n := t.n
	h := HalfLen(n)

	offset := func(outer, x, k int) int {
		if axis == 0 {
			return Index(n, x, outer, k)
		}

		return Index(n, outer, x, k)
	}

	return t.run(ctx, n, func(w *lineWorker, outer int) error {
		for k := range h {
			for x := range n {
				w.line[x] = data[offset(outer, x, k)]
			}

			var err error
			if inverse {
				err = w.plan.Inverse(w.line, w.line)
			} else {
				err = w.plan.Forward(w.line, w.line)
			}

			if err != nil {
				return fmt.Errorf("fourier: axis %d FFT failed: %w", axis, err)
			}

			for x := range n {
				data[offset(outer, x, k)] = w.line[x]
			}
		}

		return nil
	})
}

func (t *Transform) run(ctx context.Context, count int, fn func(w *lineWorker, idx int) error) error {
	return parallel.For(ctx, t.workers, count, func(idx int) error {
		w := <-t.lines
		defer func() { t.lines <- w }()

		return fn(w, idx)
	})
}
