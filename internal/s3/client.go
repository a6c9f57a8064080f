// Package s3 issues signed requests against an S3 (or S3-compatible) bucket.
//
// Signing and credential resolution live here and nowhere else; the rest of
// the program sees an opaque Send. The Client performs exactly one wire call
// per Send — retry is the caller's concern.
package s3

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
)

const signingService = "s3"

// Client signs and sends requests for a single bucket. It owns the HTTP
// transport (and with it the persistent connection pool), so construct one
// at startup and share it for the whole run.
type Client struct {
	httpClient *http.Client
	signer     *v4.Signer
	creds      aws.CredentialsProvider
	bucket     string
	region     string
	endpoint   string
}

// ClientOption is a function that configures a Client.
type ClientOption func(*Client)

// NewClient creates a client for the given bucket and region. Credentials
// come from the provider resolved by the caller.
func NewClient(bucket, region string, creds aws.CredentialsProvider, options ...ClientOption) *Client {
	client := &Client{
		httpClient: &http.Client{Transport: newTransport()},
		signer:     v4.NewSigner(),
		creds:      creds,
		bucket:     bucket,
		region:     region,
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// WithEndpoint points the client at an S3-compatible endpoint (e.g. MinIO)
// using path-style addressing instead of the AWS virtual-hosted URL.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// newTransport builds the shared transport. Connect-phase timeouts keep a
// dead host from hanging an attempt forever; there is no per-request timeout
// on top of them.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// URL returns the object URL for a key.
func (c *Client) URL(key string) string {
	key = strings.TrimLeft(key, "/")
	if c.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key)
}

// Send signs and issues a single request, returning the raw response. The
// response body is the live stream; the caller owns draining it. Any
// transport-level failure is returned as-is so the caller can classify it.
func (c *Client) Send(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.URL(req.Key), bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", req.Key, err)
	}
	httpReq.ContentLength = int64(len(req.Body))
	req.apply(httpReq)

	// SigV4 for S3 requires the payload hash both in the signature and as
	// its own header.
	sum := sha256.Sum256(req.Body)
	payloadHash := hex.EncodeToString(sum[:])
	httpReq.Header.Set("X-Amz-Content-Sha256", payloadHash)

	creds, err := c.creds.Retrieve(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving credentials: %w", err)
	}
	if err := c.signer.SignHTTP(ctx, creds, httpReq, payloadHash, signingService, c.region, time.Now()); err != nil {
		return nil, fmt.Errorf("signing %s %s: %w", req.Method, req.Key, err)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       httpResp.Body,
	}, nil
}

// Close releases idle connections held by the transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
