// Package phase loads the shared bank of primordial phases that all field
// realizations draw from.
//
// A phase bank is a flat file of little-endian float32 angles in radians,
// addressed by the curve key of a wavevector (see package curve). A grid of
// size N needs the first N²(N/2+1) entries; larger grids read further into the
// same file, so the phases of the modes shared with a smaller grid are
// identical.
package phase

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/cwbudde/algo-cosmo/field/curve"
)

// Errors returned when loading or using a bank.
var (
	ErrMissingResource  = errors.New("phase: phase bank not found")
	ErrInsufficientData = errors.New("phase: insufficient phases for requested resolution")
)

// Bank is a read-only sequence of phases. It is safe for concurrent use.
type Bank struct {
	name   string
	phases []float32
}

// NewBank wraps phases without copying. name identifies the source in
// errors and run manifests.
func NewBank(name string, phases []float32) *Bank {
	return &Bank{name: name, phases: phases}
}

// Name returns the source name of the bank.
func (b *Bank) Name() string {
	return b.name
}

// Len returns the number of phases in the bank.
func (b *Bank) Len() int {
	return len(b.phases)
}

// At returns the phase stored under key.
func (b *Bank) At(key int) float64 {
	return float64(b.phases[key])
}

// Require returns an [ErrInsufficientData] error unless the bank covers
// every mode of an n³ grid.
func (b *Bank) Require(n int) error {
	if need := curve.Size(n); len(b.phases) < need {
		return fmt.Errorf("%w: %s holds %d phases, grid size %d needs %d",
			ErrInsufficientData, b.name, len(b.phases), n, need)
	}

	return nil
}

// Load reads the complete bank stored at path.
func Load(path string) (*Bank, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("phase: stat %s: %w", path, err)
	}

	phases, err := Read(f, int(info.Size()/4))
	if err != nil {
		return nil, fmt.Errorf("phase: read %s: %w", path, err)
	}

	return NewBank(path, phases), nil
}

// LoadN reads the prefix of the bank at path needed by an n³ grid.
func LoadN(path string, n int) (*Bank, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	need := curve.Size(n)

	phases, err := Read(f, need)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %s holds %d phases, grid size %d needs %d",
			ErrInsufficientData, path, len(phases), n, need)
	}

	if err != nil {
		return nil, fmt.Errorf("phase: read %s: %w", path, err)
	}

	return NewBank(path, phases), nil
}

// Read decodes count little-endian float32 values from r. If r ends early it
// returns the complete values read so far together with
// io.ErrUnexpectedEOF.
func Read(r io.Reader, count int) ([]float32, error) {
	br := bufio.NewReader(r)
	out := make([]float32, 0, count)

	var buf [4]byte
	for len(out) < count {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}

			return out, err
		}

		out = append(out, math.Float32frombits(binary.LittleEndian.Uint32(buf[:])))
	}

	return out, nil
}

// Write encodes phases as little-endian float32 values.
func Write(w io.Writer, phases []float32) error {
	bw := bufio.NewWriter(w)

	var buf [4]byte
	for _, p := range phases {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(p))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("phase: write: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("phase: write: %w", err)
	}

	return nil
}

func open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
	}

	if err != nil {
		return nil, fmt.Errorf("phase: open %s: %w", path, err)
	}

	return f, nil
}
