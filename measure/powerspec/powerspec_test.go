package powerspec

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-cosmo/field/fourier"
	"github.com/cwbudde/algo-cosmo/field/grid"
	"github.com/cwbudde/algo-cosmo/field/mas"
	"github.com/cwbudde/algo-cosmo/field/phase"
	"github.com/cwbudde/algo-cosmo/field/realize"
	"github.com/cwbudde/algo-cosmo/field/spectrum"
	"github.com/cwbudde/algo-cosmo/internal/testutil"
)

func TestEstimateFlatRealization(t *testing.T) {
	const (
		n   = 16
		box = 100.0
		amp = 50.0
	)

	sampler, err := spectrum.NewSampler(spectrum.PowerLaw(amp, 0, testutil.LogSpace(1e-3, 10, 32)))
	if err != nil {
		t.Fatal(err)
	}

	g, err := realize.New().Realize(context.Background(), realize.Request{
		GridSize: n,
		BoxSize:  box,
		Sampler:  sampler,
		Phases:   phase.NewBank("zero", make([]float32, fourier.Size(n))),
	})
	if err != nil {
		t.Fatal(err)
	}

	ps, err := Estimate(context.Background(), g, box, WithWorkers(4))
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	for i := range ps.Len() {
		testutil.RequireRelNearlyEqual(t, ps.P[i], amp, 1e-9)
		total += ps.Modes[i]
	}

	if total != n*n*n-1 {
		t.Fatalf("counted %d modes, want %d", total, n*n*n-1)
	}
}

func TestEstimatePlaneWave(t *testing.T) {
	const (
		n   = 8
		box = 10.0
		a   = 0.3
	)

	g, err := grid.FromData(n, testutil.CosineCube(n, 1, 0, 0, a))
	if err != nil {
		t.Fatal(err)
	}

	ps, err := Estimate(context.Background(), g, box)
	if err != nil {
		t.Fatal(err)
	}

	// Bin 1 holds the 6 modes with |k| = 1 and the 12 with |k| = √2.
	if ps.Modes[0] != 18 {
		t.Fatalf("first bin modes: got %d want 18", ps.Modes[0])
	}

	kf := 2 * math.Pi / box
	testutil.RequireRelNearlyEqual(t, ps.K[0], kf*(6+12*math.Sqrt2)/18, 1e-12)
	testutil.RequireRelNearlyEqual(t, ps.P[0], a*a*box*box*box/36, 1e-9)

	for i := 1; i < ps.Len(); i++ {
		if math.Abs(ps.P[i]) > 1e-12 {
			t.Fatalf("bin %d: leaked power %g", i, ps.P[i])
		}
	}
}

func TestEstimateKernelMatchesDeconvolution(t *testing.T) {
	const n, box = 8, 8.0

	g, err := grid.FromData(n, testutil.NoiseCube(3, n, 1))
	if err != nil {
		t.Fatal(err)
	}

	corrected, err := Estimate(context.Background(), g, box, WithKernel(mas.TSC))
	if err != nil {
		t.Fatal(err)
	}

	dec, err := mas.Deconvolve(context.Background(), g, mas.TSC)
	if err != nil {
		t.Fatal(err)
	}

	want, err := Estimate(context.Background(), dec, box)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, corrected.K, want.K, 1e-12)
	testutil.RequireSliceNearlyEqual(t, corrected.P, want.P, 1e-9)
}

func TestEstimateErrors(t *testing.T) {
	g := grid.New(4)

	if _, err := Estimate(context.Background(), g, 0); !errors.Is(err, ErrInvalidBoxSize) {
		t.Fatalf("got %v, want ErrInvalidBoxSize", err)
	}

	if _, err := Estimate(context.Background(), g, 1, WithKernel(mas.Kernel(11))); !errors.Is(err, mas.ErrUnknownKernel) {
		t.Fatalf("got %v, want ErrUnknownKernel", err)
	}

	if _, err := Estimate(context.Background(), grid.New(5), 1); !errors.Is(err, fourier.ErrInvalidSize) {
		t.Fatalf("got %v, want ErrInvalidSize", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Estimate(ctx, g, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestCrossWithItselfMatchesEstimate(t *testing.T) {
	const n, box = 8, 16.0

	g, err := grid.FromData(n, testutil.NoiseCube(4, n, 1))
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []mas.Kernel{mas.None, mas.CIC} {
		auto, err := Estimate(context.Background(), g, box, WithKernel(k))
		if err != nil {
			t.Fatal(err)
		}

		cross, err := Cross(context.Background(), g, g, box, WithKernel(k), WithWorkers(3))
		if err != nil {
			t.Fatal(err)
		}

		testutil.RequireSliceNearlyEqual(t, cross.K, auto.K, 1e-12)
		for i := range auto.P {
			testutil.RequireRelNearlyEqual(t, cross.P[i], auto.P[i], 1e-12)
			if cross.Modes[i] != auto.Modes[i] {
				t.Fatalf("%v bin %d: modes %d vs %d", k, i, cross.Modes[i], auto.Modes[i])
			}
		}
	}
}

func TestCrossScalesLinearly(t *testing.T) {
	const n, box = 8, 16.0

	a, err := grid.FromData(n, testutil.NoiseCube(6, n, 1))
	if err != nil {
		t.Fatal(err)
	}
	b := a.Clone()
	b.Scale(-2)

	auto, err := Estimate(context.Background(), a, box)
	if err != nil {
		t.Fatal(err)
	}
	cross, err := Cross(context.Background(), a, b, box)
	if err != nil {
		t.Fatal(err)
	}

	for i := range auto.P {
		testutil.RequireRelNearlyEqual(t, cross.P[i], -2*auto.P[i], 1e-12)
	}
}

func TestCrossOrthogonalWaves(t *testing.T) {
	const n, box = 8, 10.0

	tests := []struct {
		name string
		a, b []float64
	}{
		{"different wavevectors", testutil.CosineCube(n, 1, 0, 0, 1), testutil.CosineCube(n, 0, 2, 0, 1)},
		{"quadrature", testutil.CosineCube(n, 1, 1, 0, 1), sineCube(n, 1, 1, 0)},
	}

	for _, tc := range tests {
		a, err := grid.FromData(n, tc.a)
		if err != nil {
			t.Fatal(err)
		}
		b, err := grid.FromData(n, tc.b)
		if err != nil {
			t.Fatal(err)
		}

		ps, err := Cross(context.Background(), a, b, box)
		if err != nil {
			t.Fatal(err)
		}

		for i, p := range ps.P {
			if math.Abs(p) > 1e-9 {
				t.Fatalf("%s: bin %d has cross power %g", tc.name, i, p)
			}
		}
	}
}

func TestCrossSizeMismatch(t *testing.T) {
	if _, err := Cross(context.Background(), grid.New(4), grid.New(8), 1); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("got %v, want ErrSizeMismatch", err)
	}
}

func sineCube(n, ki, kj, kk int) []float64 {
	out := make([]float64, n*n*n)
	for i := range n {
		for j := range n {
			for k := range n {
				out[(i*n+j)*n+k] = math.Sin(2 * math.Pi * float64(ki*i+kj*j+kk*k) / float64(n))
			}
		}
	}
	return out
}

func TestRebin(t *testing.T) {
	k := []float64{0.5, 1.5, 2.5, 3.5, 4}
	p := []float64{10, 20, 0, 40, 50}
	modes := []int{1, 3, 2, 4, 4}

	got := Rebin([]float64{0, 2, 3, 4}, k, p, modes)

	testutil.RequireSliceNearlyEqual(t, got.K, []float64{(0.5 + 4.5) / 4, 2.5, (14 + 16) / 8.0}, 1e-12)
	if got.Modes[0] != 4 || got.Modes[1] != 2 || got.Modes[2] != 8 {
		t.Fatalf("modes: %v", got.Modes)
	}
	testutil.RequireRelNearlyEqual(t, got.P[0], 70.0/4, 1e-12)
	if !math.IsNaN(got.P[1]) {
		t.Fatalf("zero power should be NaN, got %v", got.P[1])
	}
	testutil.RequireRelNearlyEqual(t, got.P[2], 45, 1e-12)
}

func TestRebinDropsEmptyBins(t *testing.T) {
	got := Rebin([]float64{0, 1, 2, 3}, []float64{0.5, 2.5}, []float64{1, 2}, []int{1, 1})
	if len(got.K) != 2 {
		t.Fatalf("got %d bins, want 2", len(got.K))
	}

	if empty := Rebin([]float64{1}, nil, nil, nil); len(empty.K) != 0 {
		t.Fatal("single edge must give no bins")
	}
}

func TestWriteText(t *testing.T) {
	s := &Spectrum{K: []float64{0.1, 0.2}, P: []float64{1000, 500}, Modes: []int{6, 12}}

	var buf bytes.Buffer
	if err := s.WriteText(&buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "#") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if lines[2] != "2.00000000e-01 5.00000000e+02 12" {
		t.Fatalf("row: %q", lines[2])
	}
}

func BenchmarkEstimate32(b *testing.B) {
	g, err := grid.FromData(32, testutil.NoiseCube(1, 32, 1))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		if _, err := Estimate(context.Background(), g, 100); err != nil {
			b.Fatal(err)
		}
	}
}
