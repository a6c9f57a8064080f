package s3

import (
	"io"
	"net/http"
	"strings"
)

// snippetLimit bounds how much of an error body is kept for diagnostics.
const snippetLimit = 512

// Response represents an object-store response. The Body is the live network
// stream; callers must drain or close it so the underlying connection can be
// reused.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       io.ReadCloser
}

// IsSuccess returns true if the response status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsServerError returns true if the response status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// GetHeader returns the value of the specified header.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// Drain reads the body to completion and closes it, returning the number of
// bytes transferred.
func (r *Response) Drain() (int64, error) {
	defer r.Body.Close()
	return io.Copy(io.Discard, r.Body)
}

// Snippet reads up to snippetLimit bytes of the body and closes it. S3 error
// bodies are short XML documents, so this is enough for diagnostics.
func (r *Response) Snippet() string {
	defer r.Body.Close()
	buf, _ := io.ReadAll(io.LimitReader(r.Body, snippetLimit))
	return strings.TrimSpace(string(buf))
}
