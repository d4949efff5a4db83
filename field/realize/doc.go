// Package realize builds fixed-amplitude Gaussian density fields from a
// power spectrum and a shared phase bank.
//
// Every half-space Fourier mode (ki, kj, kk) of an N³ grid in a box of side L
// receives the deterministic amplitude √P(k), k = (2π/L)·|(ki, kj, kk)|, and
// the phase stored in the bank under the mode's curve key. Only the phases
// are random, which removes the amplitude scatter of a full Gaussian draw and
// reduces realization-to-realization sample variance.
//
// The mean mode carries no power. Reality constraints on the Nyquist planes
// are not imposed; the conjugate symmetry of the kk = 0 plane is expected to
// be present in the phase bank already.
//
// After inverse transforming, the grid is multiplied by N³/L^(3/2), turning
// the transform's normalization into a physical overdensity.
//
//	r := realize.New(realize.WithWorkers(8))
//	delta, err := r.Realize(ctx, realize.Request{
//		GridSize: 128,
//		BoxSize:  512,
//		Sampler:  sampler,
//		Phases:   bank,
//	})
//
// Results are a deterministic function of the request.
package realize
