// Package fourier describes the half-space layout of a three-dimensional
// real-to-complex Fourier transform and implements that transform on top of
// one-dimensional complex plans.
//
// A real N×N×N grid is represented in Fourier space by N·N·(N/2+1) complex
// cells. The first two axes cover the full index range [0, N) and the last
// axis only [0, N/2]; the remaining cells follow from Hermitian symmetry.
// Storage is row-major, so cell (i, j, k) lives at (i*N + j)*(N/2+1) + k,
// the layout used by NumPy, SciPy and FFTW.
//
// Grid indices map to centered wavevector components by the wraparound
// convention: an index below N/2 is its own wavenumber, any other index i
// stands for i - N.
//
//	for m := range fourier.Modes(n) {
//		k2 := m.KI*m.KI + m.KJ*m.KJ + m.KK*m.KK
//		half[fourier.Index(n, m.I, m.J, m.K)] = amplitude(k2)
//	}
//
// [Transform] provides the forward (rfftn) and inverse (irfftn) transforms
// between a real grid and its half spectrum.
package fourier
