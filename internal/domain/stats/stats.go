// Package stats provides the weighted summary statistics used for the
// resolution plots: per-bin RMS and mean of the reco-gen residuals.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WeightedMean returns the weighted arithmetic mean of xs.
func WeightedMean(xs, ws []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, ws)
}

// WeightedRMS returns the weighted root mean square of xs about zero,
// sqrt(sum(w*x^2)/sum(w)).
func WeightedRMS(xs, ws []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var num, den float64
	for i, x := range xs {
		w := 1.0
		if ws != nil {
			w = ws[i]
		}
		num += w * x * x
		den += w
	}
	if den <= 0 {
		return 0
	}
	return math.Sqrt(num / den)
}

// WeightedVariance returns the weighted variance of xs.
func WeightedVariance(xs, ws []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(xs, ws)
}

// Median returns the (unweighted) median of xs. The input is not modified.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	return stat.Quantile(0.5, stat.Empirical, s, nil)
}

// Q84Q16 returns the 84th-16th percentile spread of xs, a robust width
// estimate equal to 2 sigma for a Gaussian.
func Q84Q16(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	return stat.Quantile(0.84, stat.Empirical, s, nil) - stat.Quantile(0.16, stat.Empirical, s, nil)
}
