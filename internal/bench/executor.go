package bench

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssebench/ssebench/internal/s3"
)

// Sender issues a single authenticated request against the object store.
// Implementations never retry; the retry loop belongs to the Executor.
type Sender interface {
	Send(ctx context.Context, req *s3.Request) (*s3.Response, error)
}

// Executor runs logical storage operations, retrying transient failures
// according to its policy.
type Executor struct {
	sender Sender
	policy RetryPolicy
	log    zerolog.Logger
}

// NewExecutor creates an executor over the given sender.
func NewExecutor(sender Sender, policy RetryPolicy, log zerolog.Logger) *Executor {
	return &Executor{
		sender: sender,
		policy: policy,
		log:    log,
	}
}

// Do runs one operation to completion. Transport errors and retryable
// statuses (5xx, 429) are retried with backoff until the policy is
// exhausted, in which case a RetryExhaustedError carries the final cause.
// A terminal bad status fails immediately with an OperationFailedError.
// On success the response body is still open; the caller owns draining it.
func (e *Executor) Do(ctx context.Context, op Operation) (*s3.Response, error) {
	var lastErr error
	var lastStatus int
	var lastBody string

	for attempt := 0; attempt <= e.policy.MaxRetries; attempt++ {
		resp, err := e.sender.Send(ctx, e.buildRequest(op))
		if err == nil {
			if resp.IsSuccess() {
				return resp, nil
			}
			body := resp.Snippet()
			if !e.policy.RetryableStatus(resp.StatusCode) {
				return nil, &OperationFailedError{
					Method: op.Method,
					Key:    op.Key,
					Status: resp.StatusCode,
					Body:   body,
				}
			}
			lastErr, lastStatus, lastBody = nil, resp.StatusCode, body
		} else {
			lastErr, lastStatus, lastBody = err, 0, ""
		}

		if attempt == e.policy.MaxRetries {
			break
		}

		delay := e.policy.Delay(attempt)
		evt := e.log.Debug().
			Str("method", op.Method).
			Str("key", op.Key).
			Int("attempt", attempt+1).
			Dur("delay", delay)
		if lastErr != nil {
			evt = evt.AnErr("cause", lastErr)
		} else {
			evt = evt.Int("status", lastStatus)
		}
		evt.Msg("retrying request")

		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, &RetryExhaustedError{
		Method:   op.Method,
		Key:      op.Key,
		Attempts: e.policy.MaxRetries + 1,
		Status:   lastStatus,
		Body:     lastBody,
		Err:      lastErr,
	}
}

func (e *Executor) buildRequest(op Operation) *s3.Request {
	req := s3.NewRequest(op.Method, op.Key)
	if op.Payload != nil {
		req.WithBody(op.Payload)
	}
	for key, value := range op.Headers {
		req.WithHeader(key, value)
	}
	return req
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
