package bench

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ssebench/ssebench/internal/s3"
)

type senderResult struct {
	status int
	body   string
	err    error
}

// scriptedSender plays back a fixed sequence of outcomes and counts calls.
type scriptedSender struct {
	results []senderResult
	calls   int
}

func (s *scriptedSender) Send(ctx context.Context, req *s3.Request) (*s3.Response, error) {
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++

	r := s.results[idx]
	if r.err != nil {
		return nil, r.err
	}
	return &s3.Response{
		StatusCode: r.status,
		Status:     http.StatusText(r.status),
		Headers:    http.Header{},
		Body:       io.NopCloser(strings.NewReader(r.body)),
	}, nil
}

func testPolicy(maxRetries int) RetryPolicy {
	return RetryPolicy{
		MaxRetries: maxRetries,
		BaseDelay:  time.Microsecond,
		MaxDelay:   time.Millisecond,
	}
}

func testOp() Operation {
	return Operation{
		Kind:    KindUpload,
		Variant: VariantBaseline,
		Method:  http.MethodPut,
		Key:     "test/object.bin",
		Payload: []byte("payload"),
	}
}

func TestExecutor_SucceedsAfterTransientFailures(t *testing.T) {
	sender := &scriptedSender{results: []senderResult{
		{status: 503, body: "SlowDown"},
		{status: 503, body: "SlowDown"},
		{status: 200},
	}}
	exec := NewExecutor(sender, testPolicy(3), zerolog.Nop())

	resp, err := exec.Do(context.Background(), testOp())
	if err != nil {
		t.Fatalf("Do() error = %v, want success", err)
	}
	defer resp.Body.Close()

	if sender.calls != 3 {
		t.Errorf("attempts = %d, want 3", sender.calls)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
}

func TestExecutor_TerminalStatusFailsImmediately(t *testing.T) {
	sender := &scriptedSender{results: []senderResult{
		{status: 403, body: "<Error><Code>AccessDenied</Code></Error>"},
	}}
	exec := NewExecutor(sender, testPolicy(3), zerolog.Nop())

	_, err := exec.Do(context.Background(), testOp())
	if err == nil {
		t.Fatal("Do() succeeded, want OperationFailedError")
	}

	var opErr *OperationFailedError
	if !errors.As(err, &opErr) {
		t.Fatalf("error type = %T, want *OperationFailedError", err)
	}
	if opErr.Status != 403 {
		t.Errorf("Status = %d, want 403", opErr.Status)
	}
	if !strings.Contains(opErr.Body, "AccessDenied") {
		t.Errorf("Body = %q, want AccessDenied snippet", opErr.Body)
	}
	if sender.calls != 1 {
		t.Errorf("attempts = %d, want 1 (no retries)", sender.calls)
	}
}

func TestExecutor_ExhaustsRetriesOnStatus(t *testing.T) {
	sender := &scriptedSender{results: []senderResult{
		{status: 500, body: "InternalError"},
	}}
	exec := NewExecutor(sender, testPolicy(2), zerolog.Nop())

	_, err := exec.Do(context.Background(), testOp())
	if err == nil {
		t.Fatal("Do() succeeded, want RetryExhaustedError")
	}

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error type = %T, want *RetryExhaustedError", err)
	}
	if exhausted.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", exhausted.Attempts)
	}
	if exhausted.Status != 500 {
		t.Errorf("Status = %d, want 500", exhausted.Status)
	}
	if sender.calls != 3 {
		t.Errorf("sender calls = %d, want 3", sender.calls)
	}
}

func TestExecutor_TransportErrorsAreRetried(t *testing.T) {
	reset := errors.New("read: connection reset by peer")
	sender := &scriptedSender{results: []senderResult{
		{err: reset},
		{status: 200},
	}}
	exec := NewExecutor(sender, testPolicy(3), zerolog.Nop())

	resp, err := exec.Do(context.Background(), testOp())
	if err != nil {
		t.Fatalf("Do() error = %v, want success after transport retry", err)
	}
	resp.Body.Close()

	if sender.calls != 2 {
		t.Errorf("attempts = %d, want 2", sender.calls)
	}
}

func TestExecutor_ExhaustionCarriesLastTransportError(t *testing.T) {
	timeout := errors.New("dial tcp: i/o timeout")
	sender := &scriptedSender{results: []senderResult{{err: timeout}}}
	exec := NewExecutor(sender, testPolicy(1), zerolog.Nop())

	_, err := exec.Do(context.Background(), testOp())

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error type = %T, want *RetryExhaustedError", err)
	}
	if !errors.Is(err, timeout) {
		t.Errorf("exhaustion does not unwrap to the last transport error")
	}
	if exhausted.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", exhausted.Attempts)
	}
}

func TestExecutor_ZeroRetries(t *testing.T) {
	sender := &scriptedSender{results: []senderResult{{status: 503}}}
	exec := NewExecutor(sender, testPolicy(0), zerolog.Nop())

	_, err := exec.Do(context.Background(), testOp())

	var exhausted *RetryExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("error type = %T, want *RetryExhaustedError", err)
	}
	if sender.calls != 1 {
		t.Errorf("sender calls = %d, want 1", sender.calls)
	}
}

func TestExecutor_DoTimedDrainsDownloads(t *testing.T) {
	body := strings.Repeat("x", 64*1024)
	sender := &scriptedSender{results: []senderResult{{status: 200, body: body}}}
	exec := NewExecutor(sender, testPolicy(0), zerolog.Nop())

	op := testOp()
	op.Kind = KindDownload
	op.Method = http.MethodGet
	op.Payload = nil

	millis, err := exec.DoTimed(context.Background(), op)
	if err != nil {
		t.Fatalf("DoTimed() error = %v", err)
	}
	if millis < 0 {
		t.Errorf("millis = %v, want >= 0", millis)
	}
}
