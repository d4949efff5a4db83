package phase

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-cosmo/internal/testutil"
)

func writeBank(t *testing.T, phases []float32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phase")

	var buf bytes.Buffer
	if err := Write(&buf, phases); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRoundTrip(t *testing.T) {
	phases := testutil.UniformPhases(1, 100)
	bank, err := Load(writeBank(t, phases))
	if err != nil {
		t.Fatal(err)
	}

	if bank.Len() != len(phases) {
		t.Fatalf("len: got %d want %d", bank.Len(), len(phases))
	}
	for i, p := range phases {
		if bank.At(i) != float64(p) {
			t.Fatalf("index %d: got %v want %v", i, bank.At(i), p)
		}
	}
}

func TestLoadNReadsPrefix(t *testing.T) {
	phases := testutil.UniformPhases(2, 400)
	bank, err := LoadN(writeBank(t, phases), 8)
	if err != nil {
		t.Fatal(err)
	}
	if bank.Len() != 320 {
		t.Fatalf("len: got %d want 320", bank.Len())
	}
	if err := bank.Require(8); err != nil {
		t.Fatal(err)
	}
	if bank.At(319) != float64(phases[319]) {
		t.Fatal("prefix differs from file contents")
	}
}

func TestLoadNInsufficient(t *testing.T) {
	path := writeBank(t, testutil.UniformPhases(3, 319))
	_, err := LoadN(path, 8)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("got %v, want ErrInsufficientData", err)
	}
}

func TestMissingBank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent")

	if _, err := Load(path); !errors.Is(err, ErrMissingResource) {
		t.Fatalf("Load: got %v, want ErrMissingResource", err)
	}
	if _, err := LoadN(path, 2); !errors.Is(err, ErrMissingResource) {
		t.Fatalf("LoadN: got %v, want ErrMissingResource", err)
	}
}

func TestRequire(t *testing.T) {
	bank := NewBank("mem", make([]float32, 48))
	if err := bank.Require(4); err != nil {
		t.Fatalf("n=4: %v", err)
	}
	if err := bank.Require(8); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("n=8: got %v, want ErrInsufficientData", err)
	}
	if bank.Name() != "mem" {
		t.Fatalf("name: %q", bank.Name())
	}
}

func TestReadPartialValue(t *testing.T) {
	// Six bytes hold one complete value and a fragment.
	got, err := Read(bytes.NewReader([]byte{0, 0, 128, 63, 1, 2}), 2)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("got %v, want io.ErrUnexpectedEOF", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("got %v, want [1]", got)
	}
}
