package s3

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
)

func staticCreds() aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{AccessKeyID: "AKIATEST", SecretAccessKey: "secret"}, nil
	})
}

func TestClient_SendSignsRequests(t *testing.T) {
	var gotAuth, gotHash, gotPath, gotSSE string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotHash = r.Header.Get("X-Amz-Content-Sha256")
		gotPath = r.URL.Path
		gotSSE = r.Header.Get("x-amz-server-side-encryption")

		body, _ := io.ReadAll(r.Body)
		if string(body) != "hello" {
			t.Errorf("body = %q, want %q", body, "hello")
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient("my-bucket", "eu-west-1", staticCreds(), WithEndpoint(server.URL))

	req := NewRequest(http.MethodPut, "prefix/object.bin").
		WithBody([]byte("hello")).
		WithHeader("x-amz-server-side-encryption", "AES256")

	resp, err := client.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	resp.Drain()

	if !strings.HasPrefix(gotAuth, "AWS4-HMAC-SHA256") {
		t.Errorf("Authorization = %q, want SigV4 signature", gotAuth)
	}
	if !strings.Contains(gotAuth, "eu-west-1/s3/aws4_request") {
		t.Errorf("Authorization = %q, want region/service scope", gotAuth)
	}
	if len(gotHash) != 64 {
		t.Errorf("X-Amz-Content-Sha256 = %q, want hex sha256", gotHash)
	}
	if gotPath != "/my-bucket/prefix/object.bin" {
		t.Errorf("path = %q, want path-style bucket/key", gotPath)
	}
	if gotSSE != "AES256" {
		t.Errorf("sse header = %q, want AES256", gotSSE)
	}
}

func TestClient_URL(t *testing.T) {
	creds := staticCreds()

	tests := []struct {
		name   string
		client *Client
		key    string
		want   string
	}{
		{
			name:   "aws virtual-hosted",
			client: NewClient("bkt", "us-east-1", creds),
			key:    "a/b.bin",
			want:   "https://bkt.s3.us-east-1.amazonaws.com/a/b.bin",
		},
		{
			name:   "custom endpoint path-style",
			client: NewClient("bkt", "us-east-1", creds, WithEndpoint("http://localhost:9000/")),
			key:    "a/b.bin",
			want:   "http://localhost:9000/bkt/a/b.bin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.URL(tt.key); got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestResponse_Snippet(t *testing.T) {
	long := strings.Repeat("x", 2*snippetLimit)
	resp := &Response{
		StatusCode: 500,
		Body:       io.NopCloser(strings.NewReader(long)),
	}

	snippet := resp.Snippet()
	if len(snippet) != snippetLimit {
		t.Errorf("snippet length = %d, want %d", len(snippet), snippetLimit)
	}
}

func TestResponse_Drain(t *testing.T) {
	resp := &Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader("0123456789")),
	}

	n, err := resp.Drain()
	if err != nil {
		t.Fatalf("Drain() error = %v", err)
	}
	if n != 10 {
		t.Errorf("Drain() = %d bytes, want 10", n)
	}
}
