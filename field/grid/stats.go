package grid

import "math"

// Stats summarizes the one-point distribution of a grid.
type Stats struct {
	Cells    int     `json:"cells"`
	Mean     float64 `json:"mean"`
	RMS      float64 `json:"rms"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	MinPos   int     `json:"min_pos"`
	Max      float64 `json:"max"`
	MaxPos   int     `json:"max_pos"`
	Variance float64 `json:"variance"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis
}

// Stats computes the summary in a single pass using Welford's online update
// for the central moments.
func (g *Grid) Stats() Stats {
	data := g.Data
	if len(data) == 0 {
		return Stats{}
	}

	var (
		mean, m2, m3, m4 float64
		sumSq            float64
		minVal, maxVal   = data[0], data[0]
		minPos, maxPos   int
	)

	for i, x := range data {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal, maxPos = x, i
		}

		if x < minVal {
			minVal, minPos = x, i
		}
	}

	nf := float64(len(data))
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Cells:    len(data),
		Mean:     mean,
		RMS:      math.Sqrt(sumSq / nf),
		Std:      math.Sqrt(variance),
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Variance: variance,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}
