package spectrum

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-cosmo/internal/testutil"
)

func powerLawSampler(t *testing.T, amp, index float64) *Sampler {
	t.Helper()
	s, err := NewSampler(PowerLaw(amp, index, testutil.LogSpace(1e-3, 10, 60)))
	if err != nil {
		t.Fatalf("NewSampler: %v", err)
	}
	return s
}

func TestAmplitudeZeroAtOrigin(t *testing.T) {
	for _, index := range []float64{-2, 0, 0.96, 3} {
		s := powerLawSampler(t, 2e4, index)
		amp, err := s.Amplitude(0)
		if err != nil {
			t.Fatalf("index %v: %v", index, err)
		}
		if amp != 0 {
			t.Fatalf("index %v: Amplitude(0) = %v, want 0", index, amp)
		}
	}
}

func TestAmplitudeReproducesPowerLaw(t *testing.T) {
	// A power law is linear in log-log space, which the cubic fits exactly.
	const amp, index = 1.5e3, -1.3
	s := powerLawSampler(t, amp, index)

	for _, k := range []float64{1e-3, 2.7e-3, 0.05, 0.3333, 1, 7.5, 10} {
		got, err := s.Amplitude(k)
		if err != nil {
			t.Fatalf("k=%v: %v", k, err)
		}
		testutil.RequireRelNearlyEqual(t, got, math.Sqrt(amp*math.Pow(k, index)), 1e-9)

		p, err := s.Power(k)
		if err != nil {
			t.Fatalf("k=%v: %v", k, err)
		}
		testutil.RequireRelNearlyEqual(t, p, amp*math.Pow(k, index), 1e-9)
	}
}

func TestAmplitudePassesThroughSamples(t *testing.T) {
	table := Table{
		K: []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5},
		P: []float64{900, 2100, 4000, 3100, 1200, 240},
	}
	s, err := NewSampler(table)
	if err != nil {
		t.Fatal(err)
	}

	for i, k := range table.K {
		got, err := s.Power(k)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireRelNearlyEqual(t, got, table.P[i], 1e-9)
	}
}

func TestAmplitudeOutsideRange(t *testing.T) {
	s := powerLawSampler(t, 1, 0)
	for _, k := range []float64{1e-4, 10.0001, -1, math.NaN(), math.Inf(1)} {
		if _, err := s.Amplitude(k); !errors.Is(err, ErrDomain) {
			t.Fatalf("k=%v: got %v, want ErrDomain", k, err)
		}
	}
}

func TestCovers(t *testing.T) {
	s := powerLawSampler(t, 1, 0)

	// 2π/512 ≈ 0.0123 and √3·64·2π/512 ≈ 1.36 lie inside [1e-3, 10].
	if err := s.Covers(128, 512); err != nil {
		t.Fatalf("128 in 512: %v", err)
	}

	// √3·1024·2π/100 ≈ 111 exceeds the table.
	if err := s.Covers(2048, 100); !errors.Is(err, ErrDomain) {
		t.Fatalf("2048 in 100: got %v, want ErrDomain", err)
	}

	// 2π/1e4 ≈ 6.3e-4 is below the table.
	if err := s.Covers(4, 1e4); !errors.Is(err, ErrDomain) {
		t.Fatalf("4 in 1e4: got %v, want ErrDomain", err)
	}
}

func TestCoveredCornerModeIsQueryable(t *testing.T) {
	const n, box = 64, 40.0
	half := n / 2
	kMax := Wavenumber(box, 3*half*half)

	s, err := NewSampler(PowerLaw(1, 0, testutil.LogSpace(Wavenumber(box, 1), kMax, 10)))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Covers(n, box); err != nil {
		t.Fatalf("Covers: %v", err)
	}
	if _, err := s.Amplitude(kMax); err != nil {
		t.Fatalf("corner mode: %v", err)
	}
}

func TestInvalidTables(t *testing.T) {
	tests := map[string]Table{
		"too short":      {K: []float64{1, 2, 3}, P: []float64{1, 1, 1}},
		"length":         {K: []float64{1, 2, 3, 4}, P: []float64{1, 1, 1}},
		"unsorted":       {K: []float64{1, 3, 2, 4}, P: []float64{1, 1, 1, 1}},
		"duplicate":      {K: []float64{1, 2, 2, 4}, P: []float64{1, 1, 1, 1}},
		"zero power":     {K: []float64{1, 2, 3, 4}, P: []float64{1, 0, 1, 1}},
		"negative k":     {K: []float64{-1, 2, 3, 4}, P: []float64{1, 1, 1, 1}},
		"nan power":      {K: []float64{1, 2, 3, 4}, P: []float64{1, math.NaN(), 1, 1}},
		"infinite power": {K: []float64{1, 2, 3, 4}, P: []float64{1, math.Inf(1), 1, 1}},
	}

	for name, table := range tests {
		if _, err := NewSampler(table); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("%s: got %v, want ErrInvalidTable", name, err)
		}
	}
}

func TestLoadTable(t *testing.T) {
	const text = `# Auto power spectrum for 0.0eV class z=0 cdm
# k [h/Mpc]   P [(Mpc/h)^3]   modes

1.0e-3   2.0e3   12
2.0e-3   3.5e3   30
5.0e-3   6.0e3   100
1.0e-2   9.5e3   400
`
	table, err := LoadTable(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, table.K, []float64{1e-3, 2e-3, 5e-3, 1e-2}, 0)
	testutil.RequireSliceNearlyEqual(t, table.P, []float64{2e3, 3.5e3, 6e3, 9.5e3}, 0)
}

func TestLoadTableErrors(t *testing.T) {
	for name, text := range map[string]string{
		"one column": "1\n2\n3\n4\n",
		"bad number": "1 2\n2 x\n3 4\n4 5\n",
		"too short":  "1 2\n2 3\n",
	} {
		if _, err := LoadTable(strings.NewReader(text)); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("%s: got %v, want ErrInvalidTable", name, err)
		}
	}
}
