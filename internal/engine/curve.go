package engine

import "math"

// DistributionCurve returns a vector of length months with non-negative
// weights summing to 1, spreading a lump total across the duration.
//
// A MANUAL curve is used verbatim (percentages divided by 100) only when the
// manual vector covers the duration exactly; any mismatch falls back to
// LINEAR so the month loop never reads past the vector. Zero or negative
// months returns an empty vector.
func DistributionCurve(kind DistributionType, months int, manual []float64) []float64 {
	if months <= 0 {
		return []float64{}
	}

	if kind == DistributionManual && len(manual) == months {
		curve := make([]float64, months)
		for i, v := range manual {
			curve[i] = v / 100
		}
		return curve
	}

	curve := make([]float64, months)

	switch kind {
	case DistributionSCurve:
		// Logistic sigmoid sampled over [-3, 3], normalized. Approximates the
		// ramp-up/peak/ramp-down spend profile of construction work.
		denom := float64(months - 1)
		if denom == 0 {
			denom = 1
		}
		total := 0.0
		for i := 0; i < months; i++ {
			x := (float64(i)/denom)*6 - 3
			y := 1 / (1 + math.Exp(-x))
			curve[i] = y
			total += y
		}
		normalize(curve, total)

	case DistributionHeadLoaded:
		total := 0.0
		for i := 0; i < months; i++ {
			v := math.Max(0, 1-float64(i)/float64(months))
			curve[i] = v
			total += v
		}
		normalize(curve, total)

	case DistributionTailLoaded:
		total := 0.0
		for i := 0; i < months; i++ {
			v := float64(i+1) / float64(months)
			curve[i] = v
			total += v
		}
		normalize(curve, total)

	default:
		// LINEAR, and the fallback for MANUAL with a mismatched vector.
		v := 1 / float64(months)
		for i := range curve {
			curve[i] = v
		}
	}

	return curve
}

func normalize(curve []float64, total float64) {
	if total == 0 {
		return
	}
	for i := range curve {
		curve[i] /= total
	}
}
