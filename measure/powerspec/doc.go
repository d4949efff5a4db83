// Package powerspec estimates the isotropic power spectrum of a periodic
// density grid and rebins measured spectra.
//
// Estimate averages |δ_k|² over spherical shells one fundamental mode wide.
// Modes with 0 < kk < N/2 stand for themselves and their Hermitian partner
// and are counted twice. Powers are normalized to the continuous
// convention P = ⟨|δ_k|²⟩·L³/N⁶, so a field realized from a flat spectrum A
// estimates to A.
package powerspec
