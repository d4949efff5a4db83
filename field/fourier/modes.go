package fourier

import (
	"errors"
	"fmt"
	"iter"
)

// Errors returned by the Fourier helpers.
var (
	ErrInvalidSize    = errors.New("fourier: grid size must be a positive even integer")
	ErrLengthMismatch = errors.New("fourier: buffer length mismatch")
)

// Mode is one cell of the half-space Fourier grid: its storage indices
// (I, J, K) and the corresponding wavevector components (KI, KJ, KK).
type Mode struct {
	I, J, K    int
	KI, KJ, KK int
}

// ValidateSize reports whether n is a usable grid size.
func ValidateSize(n int) error {
	if n <= 0 || n%2 != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}

	return nil
}

// HalfLen returns the length of the last axis of the half grid, n/2 + 1.
func HalfLen(n int) int {
	return n/2 + 1
}

// Size returns the number of complex cells in the half grid, n*n*(n/2+1).
func Size(n int) int {
	return n * n * HalfLen(n)
}

// Index returns the storage offset of half-grid cell (i, j, k).
func Index(n, i, j, k int) int {
	return (i*n+j)*HalfLen(n) + k
}

// Wavenumber converts a storage index along a full axis of length n into the
// centered wavenumber in [-n/2, n/2).
func Wavenumber(idx, n int) int {
	if idx < n/2 {
		return idx
	}

	return idx - n
}

// Modes returns the sequence of all half-grid cells for grid size n in
// storage order. Each range over the sequence starts from the beginning.
// It panics if n is not a valid grid size.
func Modes(n int) iter.Seq[Mode] {
	mustValidate(n)

	return func(yield func(Mode) bool) {
		for i := range n {
			for m := range Plane(n, i) {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// Plane returns the half-grid cells whose first storage index is i.
// The planes for i in [0, n) partition [Modes].
func Plane(n, i int) iter.Seq[Mode] {
	mustValidate(n)

	if i < 0 || i >= n {
		panic(fmt.Sprintf("fourier: plane index %d out of range [0, %d)", i, n))
	}

	return func(yield func(Mode) bool) {
		nyquist := n / 2
		ki := Wavenumber(i, n)

		for j := range n {
			kj := Wavenumber(j, n)

			for k := 0; k <= nyquist; k++ {
				if !yield(Mode{I: i, J: j, K: k, KI: ki, KJ: kj, KK: k}) {
					return
				}
			}
		}
	}
}

func mustValidate(n int) {
	if err := ValidateSize(n); err != nil {
		panic(err)
	}
}
