package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// MaxResponseBodySize caps how much of a response body HTTPTransport reads.
const MaxResponseBodySize = 10 << 20

// TransportRequest is a single outbound call.
type TransportRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Transport performs the network round trip and returns the raw JSON body.
// An empty body yields a nil result and no error.
type Transport interface {
	Do(ctx context.Context, req *TransportRequest) (json.RawMessage, error)
}

// HTTPTransport is the default Transport backed by an *http.Client.
type HTTPTransport struct {
	httpClient *http.Client
}

func NewHTTPTransport(httpClient *http.Client) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &HTTPTransport{
		httpClient: httpClient,
	}
}

func (t *HTTPTransport) Do(ctx context.Context, req *TransportRequest) (json.RawMessage, error) {
	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	for key, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, req.URL, err)
	}
	if len(respBody) > MaxResponseBodySize {
		return nil, fmt.Errorf("%w: %s %s: body exceeds %d bytes", ErrMalformedResponse, req.Method, req.URL, MaxResponseBodySize)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(resp.StatusCode, respBody)
	}

	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("%w: %s %s", ErrMalformedResponse, req.Method, req.URL)
	}

	return json.RawMessage(respBody), nil
}
