package curve

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/cwbudde/algo-cosmo/field/fourier"
)

func TestKeysFormContiguousRange(t *testing.T) {
	for _, n := range []int{2, 4, 8, 16} {
		size := Size(n)
		seen := make([]bool, size)

		for m := range fourier.Modes(n) {
			key, err := Check(n, m.KI, m.KJ, m.KK)
			if err != nil {
				t.Fatalf("n=%d: %v", n, err)
			}
			if seen[key] {
				t.Fatalf("n=%d: key %d assigned twice (at %+v)", n, key, m)
			}
			seen[key] = true
		}

		for key, ok := range seen {
			if !ok {
				t.Fatalf("n=%d: key %d never assigned", n, key)
			}
		}
	}
}

func TestKeysNestAcrossResolutions(t *testing.T) {
	sizes := []int{2, 4, 8, 16}
	for a := 0; a < len(sizes); a++ {
		for b := a + 1; b < len(sizes); b++ {
			small, large := sizes[a], sizes[b]

			keysLarge := make(map[[3]int]int, Size(large))
			for m := range fourier.Modes(large) {
				keysLarge[[3]int{m.KI, m.KJ, m.KK}] = Key(m.KI, m.KJ, m.KK)
			}

			for m := range fourier.Modes(small) {
				triplet := [3]int{m.KI, m.KJ, m.KK}
				want, ok := keysLarge[triplet]
				if !ok {
					t.Fatalf("%v valid at n=%d missing at n=%d", triplet, small, large)
				}
				if got := Key(m.KI, m.KJ, m.KK); got != want {
					t.Fatalf("%v: key %d at n=%d, %d at n=%d", triplet, got, small, want, large)
				}
			}
		}
	}
}

func TestReferencePermutation(t *testing.T) {
	tests := []struct {
		ki, kj, kk int
		want       int
	}{
		{0, 0, 0, 0},
		{0, -1, 0, 1},
		{-1, 0, 0, 2},
		{-1, -1, 0, 3},
		{-1, -1, 1, 4},
		{-1, 0, 1, 5},
		{0, -1, 1, 6},
		{0, 0, 1, 7},
	}

	for _, tc := range tests {
		if got := Key(tc.ki, tc.kj, tc.kk); got != tc.want {
			t.Errorf("Key(%d, %d, %d) = %d, want %d", tc.ki, tc.kj, tc.kk, got, tc.want)
		}
	}
}

func TestOuterShellKeys(t *testing.T) {
	tests := []struct {
		ki, kj, kk int
		want       int
	}{
		{1, 1, 1, 9},
		{-2, -2, 0, 22},
		{1, -2, 2, 44},
		{-4, -4, 0, 204},
		{3, -4, 4, 312},
		{-5, 3, 1, 376},
		{2, 2, 5, 577},
	}

	for _, tc := range tests {
		if got := Key(tc.ki, tc.kj, tc.kk); got != tc.want {
			t.Errorf("Key(%d, %d, %d) = %d, want %d", tc.ki, tc.kj, tc.kk, got, tc.want)
		}
	}
}

func TestKeysGolden(t *testing.T) {
	var buf bytes.Buffer
	for m := range fourier.Modes(4) {
		fmt.Fprintf(&buf, "%3d %3d %3d %4d\n", m.KI, m.KJ, m.KK, Key(m.KI, m.KJ, m.KK))
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "keys_n4", buf.Bytes())
}

func TestShell(t *testing.T) {
	tests := []struct {
		ki, kj, kk int
		want       int
	}{
		{0, 0, 0, 0},
		{0, 0, 1, 1},
		{-1, -1, 0, 1},
		{1, 0, 0, 2},
		{-2, 1, 0, 2},
		{0, 0, 3, 3},
		{-3, 2, 1, 3},
	}

	for _, tc := range tests {
		if got := Shell(tc.ki, tc.kj, tc.kk); got != tc.want {
			t.Errorf("Shell(%d, %d, %d) = %d, want %d", tc.ki, tc.kj, tc.kk, got, tc.want)
		}
	}
}

func TestCheckRejectsOutOfRangeTriplet(t *testing.T) {
	// (1, 0, 0) does not exist on a 2³ grid and lands beyond its key range.
	key, err := Check(2, 1, 0, 0)
	if !errors.Is(err, ErrIndexingViolation) {
		t.Fatalf("got key %d err %v, want ErrIndexingViolation", key, err)
	}
}

func TestSize(t *testing.T) {
	for n, want := range map[int]int{2: 8, 4: 48, 8: 320, 128: 128 * 128 * 65} {
		if got := Size(n); got != want {
			t.Errorf("Size(%d) = %d, want %d", n, got, want)
		}
	}
}

func BenchmarkKey(b *testing.B) {
	var sink int
	for i := range b.N {
		sink += Key(i%64-32, (i/64)%64-32, (i/4096)%33)
	}
	_ = sink
}
