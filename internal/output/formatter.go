// Package output renders benchmark reports: a color summary table and
// overhead verdicts by default, machine-readable JSON on request, and a
// latency distribution ladder in verbose mode.
package output

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/ssebench/ssebench/internal/bench"
)

// Formatter renders a bench.Report for display.
type Formatter struct {
	Verbose bool
	NoColor bool
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(verbose, noColor bool) *Formatter {
	return &Formatter{
		Verbose: verbose,
		NoColor: noColor,
	}
}

func (f *Formatter) scheme() *ColorScheme {
	if f.NoColor {
		return NoColorScheme()
	}
	return DefaultColorScheme()
}

// FormatReport renders the full text report. All values are rounded to the
// nearest millisecond here, at the reporting boundary.
func (f *Formatter) FormatReport(report *bench.Report) string {
	scheme := f.scheme()
	var buf strings.Builder

	buf.WriteString(scheme.Heading.Sprint("── Latency summary ──") + "\n")
	buf.WriteString(fmt.Sprintf("  %-22s %6s %9s %9s %9s %9s\n",
		"operation", "n", "mean", "p50", "p95", "p99"))
	for _, s := range report.Summaries {
		buf.WriteString(fmt.Sprintf("  %-22s %6d %9s %9s %9s %9s\n",
			scheme.Label.Sprint(s.Label), s.Count,
			ms(s.MeanMs), ms(s.P50Ms), ms(s.P95Ms), ms(s.P99Ms)))
	}
	buf.WriteString("\n")

	buf.WriteString(scheme.Heading.Sprint("── Encryption overhead ──") + "\n")
	for i, overhead := range report.Overheads {
		delta := report.Deltas[i]
		buf.WriteString(fmt.Sprintf("  %-10s +%s mean  %s\n",
			overhead.Operation, ms(overhead.AddedMs), f.verdict(scheme, delta)))
	}

	if f.Verbose {
		buf.WriteString("\n")
		buf.WriteString(f.formatDistributions(scheme, report))
	}

	return buf.String()
}

// verdict renders a paired confidence interval with its significance call.
func (f *Formatter) verdict(scheme *ColorScheme, delta bench.Delta) string {
	ci := fmt.Sprintf("95%% CI [%s, %s], n=%d", ms(delta.LowMs), ms(delta.HighMs), delta.N)
	switch {
	case delta.N == 0:
		return scheme.Inconclusive.Sprint("no paired samples")
	case delta.LowMs > 0:
		return fmt.Sprintf("%s (%s)", scheme.Cost.Sprint("significant cost"), ci)
	case delta.HighMs < 0:
		return fmt.Sprintf("%s (%s)", scheme.Saving.Sprint("significant saving"), ci)
	default:
		return fmt.Sprintf("%s (%s)", scheme.Inconclusive.Sprint("not significant"), ci)
	}
}

// formatDistributions renders a percentile ladder per operation/variant.
// The histogram is display-only; the headline numbers come from the exact
// sample statistics.
func (f *Formatter) formatDistributions(scheme *ColorScheme, report *bench.Report) string {
	var buf strings.Builder
	buf.WriteString(scheme.Heading.Sprint("── Distributions ──") + "\n")

	for _, kind := range report.Samples.Kinds() {
		for _, variant := range []bench.Variant{bench.VariantBaseline, bench.VariantTreatment} {
			series := report.Samples.Series(kind, variant)
			if len(series) == 0 {
				continue
			}
			hist := hdrhistogram.New(1, 3_600_000, 3)
			for _, millis := range series {
				value := int64(millis)
				if value < 1 {
					value = 1
				}
				_ = hist.RecordValue(value)
			}
			buf.WriteString(fmt.Sprintf("  %s\n", scheme.Label.Sprintf("%s %s", kind, variant)))
			for _, q := range []float64{50, 75, 90, 95, 99} {
				buf.WriteString(fmt.Sprintf("    p%-4.0f %6d ms\n", q, hist.ValueAtQuantile(q)))
			}
			buf.WriteString(fmt.Sprintf("    max   %6d ms\n", hist.Max()))
		}
	}

	return buf.String()
}

// FormatJSON renders the report's value objects as indented JSON.
func (f *Formatter) FormatJSON(report *bench.Report) (string, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	return string(out), nil
}

// ms rounds a value to the nearest millisecond for display.
func ms(value float64) string {
	return fmt.Sprintf("%d ms", int64(math.Round(value)))
}
