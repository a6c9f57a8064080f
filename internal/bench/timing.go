package bench

import (
	"context"
	"fmt"
	"time"
)

// DoTimed runs op and returns its duration in milliseconds, measured with
// the monotonic clock from just before the first attempt to the point where
// the result is fully materialized. For downloads that means the entire body
// has been read: timing only to the response header would understate the
// real transfer cost. Uploads and deletes still drain their (tiny) bodies so
// the connection stays reusable, but for them materialization is simply the
// response arriving.
func (e *Executor) DoTimed(ctx context.Context, op Operation) (float64, error) {
	start := time.Now()
	resp, err := e.Do(ctx, op)
	if err != nil {
		return 0, err
	}
	if op.Kind == KindDownload {
		if _, err := resp.Drain(); err != nil {
			return 0, fmt.Errorf("draining %s: %w", op.Key, err)
		}
		return millisSince(start), nil
	}
	elapsed := millisSince(start)
	// Connection hygiene only; the clock already stopped.
	_, _ = resp.Drain()
	return elapsed, nil
}

// millisSince converts the monotonic elapsed time to fractional
// milliseconds.
func millisSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
