package bench

import "sort"

// Sample is one timed measurement of a single operation. Samples are
// immutable once recorded and live only for the duration of the run.
type Sample struct {
	Kind      Kind    `json:"operation"`
	Variant   Variant `json:"variant"`
	Iteration int     `json:"iteration"`
	Millis    float64 `json:"milliseconds"`
}

// Collector accumulates duration samples across a run. It is append-only
// and not safe for concurrent use; the run loop is strictly sequential.
type Collector struct {
	samples []Sample
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Record appends one sample.
func (c *Collector) Record(kind Kind, variant Variant, iteration int, millis float64) {
	c.samples = append(c.samples, Sample{
		Kind:      kind,
		Variant:   variant,
		Iteration: iteration,
		Millis:    millis,
	})
}

// Len returns the number of recorded samples.
func (c *Collector) Len() int {
	return len(c.samples)
}

// Samples returns a copy of all recorded samples.
func (c *Collector) Samples() []Sample {
	out := make([]Sample, len(c.samples))
	copy(out, c.samples)
	return out
}

// Kinds returns the operation kinds present, uploads before downloads.
func (c *Collector) Kinds() []Kind {
	seen := make(map[Kind]bool)
	for _, s := range c.samples {
		seen[s.Kind] = true
	}
	var kinds []Kind
	for _, k := range []Kind{KindUpload, KindDownload} {
		if seen[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Series returns the measured durations for one operation and variant, in
// record order.
func (c *Collector) Series(kind Kind, variant Variant) []float64 {
	var out []float64
	for _, s := range c.samples {
		if s.Kind == kind && s.Variant == variant {
			out = append(out, s.Millis)
		}
	}
	return out
}

// Diffs returns the per-iteration treatment-minus-baseline differences for
// one operation kind, in ascending iteration order. Pairing is by iteration
// index, never by arrival order, so a partial run contributes only the
// iterations that completed both variants.
func (c *Collector) Diffs(kind Kind) []float64 {
	baseline := make(map[int]float64)
	treatment := make(map[int]float64)
	for _, s := range c.samples {
		if s.Kind != kind {
			continue
		}
		switch s.Variant {
		case VariantBaseline:
			baseline[s.Iteration] = s.Millis
		case VariantTreatment:
			treatment[s.Iteration] = s.Millis
		}
	}

	iterations := make([]int, 0, len(baseline))
	for iter := range baseline {
		if _, ok := treatment[iter]; ok {
			iterations = append(iterations, iter)
		}
	}
	sort.Ints(iterations)

	diffs := make([]float64, 0, len(iterations))
	for _, iter := range iterations {
		diffs = append(diffs, treatment[iter]-baseline[iter])
	}
	return diffs
}
