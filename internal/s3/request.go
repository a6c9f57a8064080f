package s3

import "net/http"

// Request describes one object-store call before signing.
type Request struct {
	Method  string
	Key     string
	Headers map[string]string
	Body    []byte
}

// NewRequest creates a request for the given method and object key.
func NewRequest(method, key string) *Request {
	return &Request{
		Method:  method,
		Key:     key,
		Headers: make(map[string]string),
	}
}

// WithHeader adds a header to the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithBody sets the body of the request.
func (r *Request) WithBody(body []byte) *Request {
	r.Body = body
	return r
}

// apply copies the request headers onto the wire request.
func (r *Request) apply(req *http.Request) {
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}
}
