package engine

import (
	"sort"

	"pmf_fund_simulator/pkg/models"
)

// summarize computes the summary (mean, P10-P90, min, max) over v using the Type-7
// quantile convention (linear interpolation on the sorted sample at rank
// r = (P/100)*(n-1)). v must be non-empty.
func summarize(v []float64) models.SimulationSummary {
	sorted := append([]float64(nil), v...)
	sort.Float64s(sorted)
	n := len(sorted)

	mean := 0.0
	for _, x := range sorted {
		mean += x
	}
	mean /= float64(n)

	return models.SimulationSummary{
		Mean: mean,
		P10:  percentile(sorted, 10),
		P25:  percentile(sorted, 25),
		P50:  percentile(sorted, 50),
		P75:  percentile(sorted, 75),
		P90:  percentile(sorted, 90),
		Min:  sorted[0],
		Max:  sorted[n-1],
	}
}

// percentile returns the Type-7 percentile p (0-100) over an
// already-sorted, non-empty slice.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	r := (p / 100) * float64(n-1)
	lo := int(r)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	weight := r - float64(lo)
	return sorted[lo] + weight*(sorted[hi]-sorted[lo])
}

// thresholdProbability returns the share of runs whose NetTvpi meets or
// exceeds theta.
func thresholdProbability(runs []models.SimulationResult, theta float64) float64 {
	count := 0
	for _, r := range runs {
		if r.NetTvpi >= theta {
			count++
		}
	}
	return float64(count) / float64(len(runs))
}
