package bench

import "fmt"

// OperationFailedError reports a terminal response status: one that must not
// be retried, such as a 403 or 404. It carries the status and a snippet of
// the error body for diagnostics.
type OperationFailedError struct {
	Method string
	Key    string
	Status int
	Body   string
}

func (e *OperationFailedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s failed with status %d", e.Method, e.Key, e.Status)
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Key, e.Status, e.Body)
}

// RetryExhaustedError reports that every attempt failed with a retryable
// condition. It carries the final cause: either the last transport error or
// the last response status and body.
type RetryExhaustedError struct {
	Method   string
	Key      string
	Attempts int
	Status   int    // last response status, 0 when the last failure was a transport error
	Body     string // snippet of the last response body
	Err      error  // last transport error, nil when the last failure was a status
}

func (e *RetryExhaustedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s failed after %d attempts: %v", e.Method, e.Key, e.Attempts, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s %s failed after %d attempts: last status %d", e.Method, e.Key, e.Attempts, e.Status)
	}
	return fmt.Sprintf("%s %s failed after %d attempts: last status %d: %s", e.Method, e.Key, e.Attempts, e.Status, e.Body)
}

func (e *RetryExhaustedError) Unwrap() error {
	return e.Err
}
