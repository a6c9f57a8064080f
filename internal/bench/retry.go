package bench

import (
	"math/rand"
	"net/http"
	"time"
)

// RetryPolicy decides whether a failed attempt is worth repeating and how
// long to wait before the next try. It performs no I/O.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt, so a
	// request is tried at most MaxRetries+1 times.
	MaxRetries int

	// BaseDelay is the first backoff step and the jitter range.
	BaseDelay time.Duration

	// MaxDelay caps the exponential portion of the backoff.
	MaxDelay time.Duration
}

// RetryableStatus reports whether a response status code indicates a
// transient condition. Server faults and throttling are transient; every
// other status, success or client error, is terminal.
func (p RetryPolicy) RetryableStatus(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

// Delay computes the backoff before the next try after zero-based attempt:
// min(cap, base*2^attempt) plus a uniform random jitter in [0, base), so
// concurrent clients do not retry in lockstep.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	backoff := p.MaxDelay
	if attempt < 62 {
		if d := p.BaseDelay << uint(attempt); d > 0 && d < p.MaxDelay {
			backoff = d
		}
	}
	if p.BaseDelay > 0 {
		backoff += time.Duration(rand.Int63n(int64(p.BaseDelay)))
	}
	return backoff
}
