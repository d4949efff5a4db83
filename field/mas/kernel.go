package mas

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKernel is returned for kernel names or values outside the family.
var ErrUnknownKernel = errors.New("mas: unknown mass-assignment kernel")

// Kernel identifies a mass-assignment scheme. Its value is the interpolation
// order.
type Kernel int

// Supported kernels.
const (
	None Kernel = iota
	NGP
	CIC
	TSC
	PCS
)

var kernelNames = [...]string{"None", "NGP", "CIC", "TSC", "PCS"}

// Order returns the interpolation order, the exponent of the kernel's
// Fourier-space window.
func (k Kernel) Order() int {
	return int(k)
}

// Valid reports whether k is one of the defined kernels.
func (k Kernel) Valid() bool {
	return k >= None && k <= PCS
}

func (k Kernel) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kernel(%d)", int(k))
	}

	return kernelNames[k]
}

// ParseKernel converts a case-insensitive kernel name into a Kernel.
// The empty string maps to None.
func ParseKernel(name string) (Kernel, error) {
	if name == "" {
		return None, nil
	}

	for i, candidate := range kernelNames {
		if strings.EqualFold(name, candidate) {
			return Kernel(i), nil
		}
	}

	return None, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kernel) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKernel, int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kernel) UnmarshalText(text []byte) error {
	parsed, err := ParseKernel(string(text))
	if err != nil {
		return err
	}

	*k = parsed

	return nil
}
