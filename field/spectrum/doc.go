// Package spectrum samples a tabulated power spectrum at arbitrary
// wavenumbers.
//
// A [Table] of (k, P(k)) samples, as produced by a Boltzmann code or read from
// a two-column text file, is turned into a [Sampler] by fitting a not-a-knot
// cubic spline through (log k, log √P). The sampler returns the fixed mode
// amplitude √P(k) used when realizing a field:
//
//	s, err := spectrum.NewSampler(table)
//	if err != nil { ... }
//	if err := s.Covers(gridSize, boxSize); err != nil { ... }
//	amp, err := s.Amplitude(k)
//
// The mean (k = 0) mode always has zero amplitude. Queries outside the
// tabulated wavenumber range fail with [ErrDomain]; use [Sampler.Covers] to
// bound a grid against the table before realizing it.
package spectrum
