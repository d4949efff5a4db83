// Package curve maps half-space wavevector triplets to linear indices into a
// shared bank of random phases.
//
// The mapping is a space-filling curve through Fourier space that starts at
// the origin and grows outward in cuboidal shells. It depends on the triplet
// alone, never on the grid size, so a phase bank written once serves every
// resolution: refining a grid only reveals new modes, it never redraws the
// ones already present.
//
// For any even grid size n, the keys of all triplets with
//
//	-n/2 <= ki < n/2
//	-n/2 <= kj < n/2
//	   0 <= kk <= n/2
//
// are exactly the integers 0 <= key < n*n*(n/2 + 1).
package curve
