// Package stats computes summary statistics and paired-difference
// confidence intervals over latency samples.
//
// Every function here is pure: no shared state, safe to call any number of
// times on any subset of samples. Values stay unrounded; rounding to whole
// milliseconds happens at the reporting boundary, never here.
package stats

import (
	"math"
	"sort"
)

// zCritical is the two-sided 95% critical value of the standard normal
// distribution. No small-sample correction is applied.
const zCritical = 1.96

// Summary describes one set of duration samples.
type Summary struct {
	Label  string  `json:"label"`
	Count  int     `json:"count"`
	MeanMs float64 `json:"meanMs"`
	P50Ms  float64 `json:"p50Ms"`
	P95Ms  float64 `json:"p95Ms"`
	P99Ms  float64 `json:"p99Ms"`
}

// Interval is a mean with its 95% confidence bounds.
type Interval struct {
	N      int     `json:"n"`
	MeanMs float64 `json:"meanMs"`
	LowMs  float64 `json:"ciLowMs"`
	HighMs float64 `json:"ciHighMs"`
}

// Summarize computes mean and nearest-rank percentiles for a sample set,
// in milliseconds. An empty input yields a zero-valued Summary rather than
// an error.
func Summarize(label string, samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{Label: label}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	sum := float64(0)
	for _, s := range sorted {
		sum += s
	}

	return Summary{
		Label:  label,
		Count:  len(sorted),
		MeanMs: sum / float64(len(sorted)),
		P50Ms:  nearestRank(sorted, 0.50),
		P95Ms:  nearestRank(sorted, 0.95),
		P99Ms:  nearestRank(sorted, 0.99),
	}
}

// nearestRank selects an existing sample for percentile p: the element at
// index ceil(p*n)-1, clamped into [0, n-1]. For n=1 every percentile is the
// single sample.
func nearestRank(sorted []float64, p float64) float64 {
	idx := int(math.Ceil(p*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// PairedInterval computes the mean of the per-iteration differences and its
// 95% confidence interval under the normal approximation. Sample variance
// uses Bessel's correction, with the denominator floored at 1 so that n=1
// yields zero variance and a degenerate interval equal to the mean. For n=0
// every field is zero.
func PairedInterval(diffs []float64) Interval {
	n := len(diffs)
	if n == 0 {
		return Interval{}
	}

	mean := float64(0)
	for _, d := range diffs {
		mean += d / float64(n)
	}

	sumSquares := float64(0)
	for _, d := range diffs {
		sumSquares += (d - mean) * (d - mean)
	}
	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	variance := sumSquares / float64(denom)
	stdErr := math.Sqrt(variance / float64(n))
	margin := zCritical * stdErr

	return Interval{
		N:      n,
		MeanMs: mean,
		LowMs:  mean - margin,
		HighMs: mean + margin,
	}
}

// AddedMillis is the headline overhead estimate: the treatment mean minus
// the baseline mean, rounded to the nearest millisecond and clipped at zero.
// It deliberately ignores pairing; PairedInterval is the rigorous companion
// that can show this number is not significant.
func AddedMillis(baseline, treatment Summary) float64 {
	added := math.Round(treatment.MeanMs - baseline.MeanMs)
	if added < 0 {
		return 0
	}
	return added
}
