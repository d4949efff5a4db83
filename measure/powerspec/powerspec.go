package powerspec

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-cosmo/field/fourier"
	"github.com/cwbudde/algo-cosmo/field/grid"
	"github.com/cwbudde/algo-cosmo/field/mas"
	"github.com/cwbudde/algo-cosmo/internal/parallel"
)

// Errors returned for invalid estimator inputs.
var (
	ErrInvalidBoxSize = errors.New("powerspec: box size must be positive")
	ErrSizeMismatch   = errors.New("powerspec: grids differ in size")
)

// Spectrum is a binned power spectrum. K is in units of 1/length of the box,
// P in length³, Modes counts the Fourier modes averaged in each bin.
type Spectrum struct {
	K     []float64
	P     []float64
	Modes []int
}

// Len returns the number of bins.
func (s *Spectrum) Len() int {
	return len(s.K)
}

// shell accumulates one radial bin.
type shell struct {
	k, p  float64
	modes int
}

// Estimate measures the power spectrum of g, a field on a periodic box of
// side boxSize. Bin b collects the modes whose wavevector length in grid
// units rounds to b; the mean mode is excluded and empty bins are dropped.
func Estimate(ctx context.Context, g *grid.Grid, boxSize float64, opts ...Option) (*Spectrum, error) {
	return estimate(ctx, g, nil, boxSize, opts)
}

// Cross measures the cross power spectrum of a and b, averaging
// Re(δa·δb*) over the same shells as [Estimate]. With [WithKernel] both
// fields are corrected for the window, so each mode is divided by W².
// Cross(a, a) equals Estimate(a).
func Cross(ctx context.Context, a, b *grid.Grid, boxSize float64, opts ...Option) (*Spectrum, error) {
	if a.N != b.N {
		return nil, fmt.Errorf("%w: %d and %d", ErrSizeMismatch, a.N, b.N)
	}

	return estimate(ctx, a, b, boxSize, opts)
}

// estimate computes the auto spectrum of a when b is nil and the cross
// spectrum of a and b otherwise.
func estimate(ctx context.Context, a, b *grid.Grid, boxSize float64, opts []Option) (*Spectrum, error) {
	if !(boxSize > 0) || math.IsInf(boxSize, 0) {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidBoxSize, boxSize)
	}

	cfg := ApplyOptions(opts...)
	if !cfg.Kernel.Valid() {
		return nil, fmt.Errorf("%w: %d", mas.ErrUnknownKernel, int(cfg.Kernel))
	}

	n := a.N
	h := fourier.HalfLen(n)

	tr, err := fourier.NewTransform(n, cfg.Workers)
	if err != nil {
		return nil, err
	}

	halfA := make([]complex128, fourier.Size(n))
	if err := tr.Forward(ctx, halfA, a.Data); err != nil {
		return nil, fmt.Errorf("powerspec: %w", err)
	}

	var halfB []complex128
	if b != nil {
		halfB = make([]complex128, fourier.Size(n))
		if err := tr.Forward(ctx, halfB, b.Data); err != nil {
			return nil, fmt.Errorf("powerspec: %w", err)
		}
	}

	invFull, invHalf := mas.InverseWindows(cfg.Kernel, n)
	bins := int(math.Round(math.Sqrt(3)*float64(n/2))) + 1
	planes := make([][]shell, n)

	err = parallel.For(ctx, cfg.Workers, n, func(i int) error {
		acc := make([]shell, bins)
		reA := make([]float64, h)
		imA := make([]float64, h)
		reB := make([]float64, h)
		imB := make([]float64, h)
		pw := make([]float64, h)
		tmp := make([]float64, h)

		ki := fourier.Wavenumber(i, n)

		for j := range n {
			kj := fourier.Wavenumber(j, n)
			start := fourier.Index(n, i, j, 0)

			splitLine(reA, imA, halfA[start:start+h])

			if halfB == nil {
				vecmath.Power(pw, reA, imA)
			} else {
				// Re(a·conj(b)) = re_a·re_b + im_a·im_b
				splitLine(reB, imB, halfB[start:start+h])
				vecmath.MulBlock(pw, reA, reB)
				vecmath.MulBlock(tmp, imA, imB)
				vecmath.AddBlockInPlace(pw, tmp)
			}

			if cfg.Kernel != mas.None {
				side := invFull[i] * invFull[j]
				for kk := range tmp {
					w := side * invHalf[kk]
					tmp[kk] = w * w
				}

				vecmath.MulBlockInPlace(pw, tmp)
			}

			for kk := range h {
				k2 := ki*ki + kj*kj + kk*kk
				if k2 == 0 {
					continue
				}

				weight := 2
				if kk == 0 || kk == n/2 {
					weight = 1
				}

				kmag := math.Sqrt(float64(k2))
				bin := int(math.Round(kmag))

				acc[bin].k += float64(weight) * kmag
				acc[bin].p += float64(weight) * pw[kk]
				acc[bin].modes += weight
			}
		}

		planes[i] = acc

		return nil
	})
	if err != nil {
		return nil, err
	}

	total := make([]shell, bins)
	for _, acc := range planes {
		for bin, s := range acc {
			total[bin].k += s.k
			total[bin].p += s.p
			total[bin].modes += s.modes
		}
	}

	kf := 2 * math.Pi / boxSize
	norm := math.Pow(boxSize, 3) / math.Pow(float64(n), 6)

	out := &Spectrum{}
	for _, s := range total {
		if s.modes == 0 {
			continue
		}

		m := float64(s.modes)
		out.K = append(out.K, kf*s.k/m)
		out.P = append(out.P, norm*s.p/m)
		out.Modes = append(out.Modes, s.modes)
	}

	return out, nil
}

func splitLine(re, im []float64, line []complex128) {
	for kk, c := range line {
		re[kk], im[kk] = real(c), imag(c)
	}
}
