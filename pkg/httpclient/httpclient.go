package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxBodySize = 10 << 20

// HttpRequest is a struct to hold request parameters
type HttpRequest struct {
	URL     string
	Method  string
	Body    []byte
	Headers map[string]string
}

type HttpResponse struct {
	StatusCode int
	Body       []byte
}

// ResponseError is returned for any non-2xx answer. It keeps the downstream
// status and body so they can be forwarded to the caller untouched.
type ResponseError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s %s returned status %d", e.Method, e.URL, e.StatusCode)
}

type Client struct {
	httpClient *http.Client
}

// New builds a traced client. A zero timeout leaves the call bounded only by
// the request context.
func New(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// NewWithHTTPClient wraps an existing client as is.
func NewWithHTTPClient(client *http.Client) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	return &Client{httpClient: client}
}

// SendRequest sends an HTTP request based on the given HttpRequest struct
func (c *Client) SendRequest(ctx context.Context, req HttpRequest) (*HttpResponse, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	request, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range req.Headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer response.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(response.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &ResponseError{
			Method:     req.Method,
			URL:        req.URL,
			StatusCode: response.StatusCode,
			Body:       respBody,
		}
	}

	return &HttpResponse{StatusCode: response.StatusCode, Body: respBody}, nil
}
