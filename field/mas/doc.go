// Package mas deposits particles onto a periodic grid with the standard
// mass-assignment kernels and removes the kernels' smoothing again in
// Fourier space.
//
// The kernels form a closed family of B-splines, identified by their
// interpolation order:
//
//	None  0  point-sampled, no window
//	NGP   1  nearest grid point
//	CIC   2  cloud in cell
//	TSC   3  triangular shaped cloud
//	PCS   4  piecewise cubic spline
//
// In Fourier space a kernel of order p multiplies every mode by
// [sinc(ki/N)·sinc(kj/N)·sinc(kk/N)]^p with the normalized sinc. [Deconvolve]
// divides that response out so that a particle-derived grid can be compared
// with a continuum field. The response never vanishes inside the grid, but
// near the Nyquist frequency the division amplifies noise; this is accepted
// rather than corrected.
package mas
