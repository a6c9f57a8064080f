package bench

import (
	"fmt"

	"github.com/ssebench/ssebench/internal/stats"
)

// Overhead is the headline per-operation estimate: mean treatment duration
// minus mean baseline duration, clipped at zero.
type Overhead struct {
	Operation Kind    `json:"operation"`
	AddedMs   float64 `json:"meanAddedMs"`
}

// Delta is the paired-difference confidence interval for one operation.
type Delta struct {
	Operation Kind `json:"operation"`
	stats.Interval
}

// Report is everything a run produces: summaries per operation/variant, the
// headline overhead estimates, and the rigorous paired deltas. Samples is
// the run's raw collector, kept for verbose distribution rendering.
type Report struct {
	Summaries []stats.Summary `json:"summaries"`
	Overheads []Overhead      `json:"overheads"`
	Deltas    []Delta         `json:"pairedDeltas"`
	Samples   *Collector      `json:"-"`
}

// buildReport derives all statistics from the collected samples. Baseline
// summaries always precede treatment summaries, uploads before downloads.
func buildReport(collector *Collector) *Report {
	report := &Report{Samples: collector}

	for _, kind := range collector.Kinds() {
		baseline := stats.Summarize(
			fmt.Sprintf("%s %s", kind, VariantBaseline),
			collector.Series(kind, VariantBaseline),
		)
		treatment := stats.Summarize(
			fmt.Sprintf("%s %s", kind, VariantTreatment),
			collector.Series(kind, VariantTreatment),
		)
		report.Summaries = append(report.Summaries, baseline, treatment)
		report.Overheads = append(report.Overheads, Overhead{
			Operation: kind,
			AddedMs:   stats.AddedMillis(baseline, treatment),
		})
		report.Deltas = append(report.Deltas, Delta{
			Operation: kind,
			Interval:  stats.PairedInterval(collector.Diffs(kind)),
		})
	}

	return report
}
