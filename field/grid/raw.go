package grid

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteRaw writes the grid as little-endian float32 values in storage order.
func (g *Grid) WriteRaw(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var buf [4]byte
	for _, v := range g.Data {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(v)))
		if _, err := bw.Write(buf[:]); err != nil {
			return fmt.Errorf("grid: write raw: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("grid: write raw: %w", err)
	}

	return nil
}

// ReadRaw reads an n³ grid of little-endian float32 values.
func ReadRaw(r io.Reader, n int) (*Grid, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	g := New(n)
	br := bufio.NewReader(r)

	var buf [4]byte
	for i := range g.Data {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, fmt.Errorf("%w: read %d of %d values: %v", ErrLengthMismatch, i, len(g.Data), err)
		}

		g.Data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[:])))
	}

	return g, nil
}
