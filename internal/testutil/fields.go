// Package testutil holds deterministic fixtures and tolerance helpers shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// NoiseCube returns n³ uniformly distributed values in [-amplitude, amplitude)
// from a fixed seed, laid out in row-major (i, j, k) order.
func NoiseCube(seed int64, n int, amplitude float64) []float64 {
	out := make([]float64, n*n*n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// CosineCube returns the real plane wave cos(2π(ki·i + kj·j + kk·k)/n) on an
// n³ lattice.
func CosineCube(n, ki, kj, kk int, amplitude float64) []float64 {
	out := make([]float64, n*n*n)
	for i := range n {
		for j := range n {
			for k := range n {
				phase := 2 * math.Pi * float64(ki*i+kj*j+kk*k) / float64(n)
				out[(i*n+j)*n+k] = amplitude * math.Cos(phase)
			}
		}
	}
	return out
}

// UniformPhases returns count angles uniformly distributed in [-π, π) from a
// fixed seed.
func UniformPhases(seed int64, count int) []float32 {
	out := make([]float32, count)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = float32((rng.Float64()*2 - 1) * math.Pi)
	}
	return out
}

// LogSpace returns count points spaced evenly in log between lo and hi,
// inclusive.
func LogSpace(lo, hi float64, count int) []float64 {
	out := make([]float64, count)
	step := (math.Log(hi) - math.Log(lo)) / float64(count-1)
	for i := range out {
		out[i] = math.Exp(math.Log(lo) + step*float64(i))
	}
	out[0], out[count-1] = lo, hi
	return out
}
