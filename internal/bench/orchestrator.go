package bench

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// sseHeader selects server-side encryption on a PUT.
const sseHeader = "x-amz-server-side-encryption"

// Options tunes a measurement run. The caller validates everything before
// it gets here.
type Options struct {
	Iterations    int
	Payload       []byte
	Downloads     bool
	KeyPrefix     string
	BaseKey       string
	SSEAlgorithm  string
	Pause         time.Duration
	Warmup        bool
	StrictCleanup bool
}

// Runner drives the measurement loop. Each iteration uploads a baseline and
// a treatment object, optionally downloads both back, and deletes both keys
// before the next iteration starts. Baseline always precedes treatment so
// systematic drift (cache warmth, connection reuse) lands on both variants
// symmetrically instead of biasing one.
type Runner struct {
	exec      *Executor
	opts      Options
	collector *Collector
	log       zerolog.Logger
	startedAt time.Time
}

// NewRunner creates a runner over the given executor.
func NewRunner(exec *Executor, opts Options, log zerolog.Logger) *Runner {
	if opts.BaseKey == "" {
		opts.BaseKey = "ssebench"
	}
	return &Runner{
		exec:      exec,
		opts:      opts,
		collector: NewCollector(),
		log:       log,
	}
}

// Run executes the whole benchmark and returns the final report. Any
// failure from a measured operation aborts the run immediately; no partial
// statistics are reported.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	r.startedAt = time.Now()

	if r.opts.Warmup {
		r.log.Info().Msg("running warm-up iteration")
		if err := r.iteration(ctx, -1, false); err != nil {
			return nil, fmt.Errorf("warm-up: %w", err)
		}
	}

	for iter := 0; iter < r.opts.Iterations; iter++ {
		r.log.Info().
			Int("iteration", iter+1).
			Int("of", r.opts.Iterations).
			Msg("starting iteration")
		if err := r.iteration(ctx, iter, true); err != nil {
			return nil, err
		}
		if r.opts.Pause > 0 && iter < r.opts.Iterations-1 {
			if err := sleep(ctx, r.opts.Pause); err != nil {
				return nil, err
			}
		}
	}

	return buildReport(r.collector), nil
}

// iteration runs one full measurement cycle. Its keys are unique to this
// iteration and are always attempted for deletion before it returns.
func (r *Runner) iteration(ctx context.Context, iter int, record bool) error {
	baselineKey := r.objectKey(iter, VariantBaseline)
	treatmentKey := r.objectKey(iter, VariantTreatment)

	steps := []Operation{
		{Kind: KindUpload, Variant: VariantBaseline, Method: http.MethodPut, Key: baselineKey, Payload: r.opts.Payload},
		{Kind: KindUpload, Variant: VariantTreatment, Method: http.MethodPut, Key: treatmentKey, Payload: r.opts.Payload,
			Headers: map[string]string{sseHeader: r.opts.SSEAlgorithm}},
	}
	if r.opts.Downloads {
		steps = append(steps,
			Operation{Kind: KindDownload, Variant: VariantBaseline, Method: http.MethodGet, Key: baselineKey},
			Operation{Kind: KindDownload, Variant: VariantTreatment, Method: http.MethodGet, Key: treatmentKey},
		)
	}

	for _, op := range steps {
		millis, err := r.exec.DoTimed(ctx, op)
		if err != nil {
			// Best-effort release of whatever this iteration created.
			r.cleanup(ctx, baselineKey, treatmentKey)
			return fmt.Errorf("%s %s (%s): %w", op.Kind, op.Variant, op.Key, err)
		}
		if record {
			r.collector.Record(op.Kind, op.Variant, iter, millis)
			r.log.Debug().
				Str("operation", string(op.Kind)).
				Str("variant", string(op.Variant)).
				Str("key", op.Key).
				Float64("ms", millis).
				Msg("recorded sample")
		}
	}

	if err := r.cleanup(ctx, baselineKey, treatmentKey); err != nil {
		return err
	}
	return nil
}

// cleanup deletes the iteration's keys. Both deletes are always attempted;
// a failure is logged and, unless StrictCleanup is set, does not abort the
// run. At worst an aborted run orphans the current iteration's two keys.
func (r *Runner) cleanup(ctx context.Context, keys ...string) error {
	var firstErr error
	for _, key := range keys {
		resp, err := r.exec.Do(ctx, Operation{Method: http.MethodDelete, Key: key})
		if err != nil {
			r.log.Warn().Str("key", key).Err(err).Msg("cleanup delete failed")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		_, _ = resp.Drain()
	}
	if firstErr != nil && r.opts.StrictCleanup {
		return fmt.Errorf("cleanup: %w", firstErr)
	}
	return nil
}

// objectKey builds a key unique across iterations and across concurrent
// runs against the same bucket.
func (r *Runner) objectKey(iter int, variant Variant) string {
	iterLabel := fmt.Sprintf("%d", iter)
	if iter < 0 {
		iterLabel = "warmup"
	}
	return fmt.Sprintf("%s/%s-%d-%s-%04x-%s.bin",
		r.opts.KeyPrefix, r.opts.BaseKey, r.startedAt.Unix(), iterLabel, rand.Intn(0x10000), variant)
}
