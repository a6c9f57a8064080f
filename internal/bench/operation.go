// Package bench contains the measurement core: the retry-aware request
// executor, timed operations, the sample collector, and the run orchestrator.
package bench

// Kind identifies the logical storage operation being measured.
type Kind string

const (
	KindUpload   Kind = "upload"
	KindDownload Kind = "download"
)

// Variant names one of the two compared configurations: the feature
// disabled (baseline) or enabled (treatment).
type Variant string

const (
	VariantBaseline  Variant = "baseline"
	VariantTreatment Variant = "treatment"
)

// Operation describes one logical storage call. Construct it fully, then
// treat it as immutable.
type Operation struct {
	Kind    Kind
	Variant Variant
	Method  string
	Key     string
	Payload []byte
	Headers map[string]string
}
