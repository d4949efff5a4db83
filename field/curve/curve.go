package curve

import (
	"errors"
	"fmt"
)

// ErrIndexingViolation reports a key outside the contiguous range expected
// for a grid size. It can only arise from a defect in [Key].
var ErrIndexingViolation = errors.New("curve: key outside expected range")

// Key returns the curve index of the wavevector (ki, kj, kk), kk >= 0.
//
// Shell s holds the triplets on the boundary of the cuboid
// -s <= ki, kj <= s-1, 0 <= kk <= s. Each shell is laid out as three
// contiguous blocks: the face with ki at an extreme, the face with kj at an
// extreme, then the top face kk = s. Shells follow each other by increasing
// s. The block order and raster directions reproduce the layout of existing
// phase bank files bit for bit.
func Key(ki, kj, kk int) int {
	s := Shell(ki, kj, kk)

	var key int
	switch {
	case kk == s:
		// Top face, raster over (ki, kj).
		key = s*(1+2*ki) + 2*s*s + kj
	case ki == -s || ki == s-1:
		// Side face with ki at an extreme, raster over (kj, kk).
		key = s*(3-kj) + s*s*(-7+2*b2i(s == -ki)) + kk
	default:
		// Side face with kj at an extreme, raster over (ki, kk).
		key = s*(-2*ki+b2i(s == -kj)) - 2*s*s + kk
	}

	return key + 4*s*s*s
}

// Shell returns the shell radius s of (ki, kj, kk): the smallest s >= 0 such
// that -s <= ki, kj <= s-1 and kk <= s, except that the origin is shell 0.
func Shell(ki, kj, kk int) int {
	// kl is the side coordinate dominating in magnitude; ties go to the
	// larger of the two.
	var kl int
	switch aki, akj := abs(ki), abs(kj); {
	case aki > akj:
		kl = ki
	case aki < akj:
		kl = kj
	default:
		kl = max(ki, kj)
	}

	side := abs(kl) + b2i(kl > 0)
	if abs(kl) >= kk {
		return side
	}

	return kk
}

// Size returns the number of keys used by grid size n, n*n*(n/2 + 1).
func Size(n int) int {
	return n * n * (n/2 + 1)
}

// Check returns Key(ki, kj, kk) together with an [ErrIndexingViolation] if
// the key does not fall inside [0, Size(n)).
func Check(n, ki, kj, kk int) (int, error) {
	key := Key(ki, kj, kk)
	if key < 0 || key >= Size(n) {
		return key, fmt.Errorf("%w: key %d for (%d, %d, %d) not in [0, %d)",
			ErrIndexingViolation, key, ki, kj, kk, Size(n))
	}

	return key, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func b2i(b bool) int {
	if b {
		return 1
	}

	return 0
}
