package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultBaseURL is where the generation backend listens when nothing else
// is configured.
const DefaultBaseURL = "http://localhost:8000"

// backendTransport stamps every request with a request ID and, when a token
// is set, a Bearer token.
type backendTransport struct {
	base  http.RoundTripper
	token string
}

func (t *backendTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient creates an *http.Client for backend calls.
// timeout is the per-request deadline (0 = no timeout).
func NewHTTPClient(timeout time.Duration, token string) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &backendTransport{
			base:  http.DefaultTransport,
			token: strings.TrimSpace(token),
		},
	}
}

// Client talks to the dataset-generation backend.
type Client struct {
	HTTP    *http.Client
	BaseURL string // optional; defaults to DefaultBaseURL
}

// New returns a Client for baseURL using NewHTTPClient.
func New(baseURL string, timeout time.Duration, token string) *Client {
	return &Client{
		HTTP:    NewHTTPClient(timeout, token),
		BaseURL: baseURL,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		return DefaultBaseURL
	}
	return base
}
