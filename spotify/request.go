package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RequestOptions configures a call to an arbitrary Web API endpoint.
// Method defaults to GET. Body, when set, is sent as JSON.
type RequestOptions struct {
	Method string
	Body   any
}

func (o RequestOptions) build(endpointURL string) (*TransportRequest, error) {
	if endpointURL == "" {
		return nil, fmt.Errorf("%w: an API endpoint URL is required", ErrInvalidArgument)
	}

	method := strings.ToUpper(o.Method)
	switch method {
	case "":
		method = http.MethodGet
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: unsupported method %s", ErrInvalidArgument, o.Method)
	}

	req := &TransportRequest{
		Method: method,
		URL:    endpointURL,
		Header: http.Header{},
	}

	if o.Body != nil {
		body, err := json.Marshal(o.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %s", ErrInvalidArgument, err.Error())
		}
		req.Body = body
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// Request calls endpointURL, used verbatim, and returns the response body
// untouched.
func (c *Client) Request(ctx context.Context, endpointURL string, opts RequestOptions) (json.RawMessage, error) {
	req, err := opts.build(endpointURL)
	if err != nil {
		return nil, err
	}
	return c.request(ctx, req)
}

// RequestAsync validates its arguments and starts the call in the background.
func (c *Client) RequestAsync(ctx context.Context, endpointURL string, opts RequestOptions) (*Pending, error) {
	req, err := opts.build(endpointURL)
	if err != nil {
		return nil, err
	}
	return goPending(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.request(ctx, req)
	}), nil
}

// RequestFunc is the callback form of RequestAsync.
func (c *Client) RequestFunc(ctx context.Context, endpointURL string, opts RequestOptions, callback Callback) error {
	pending, err := c.RequestAsync(ctx, endpointURL, opts)
	if err != nil {
		return err
	}
	pending.notify(callback)
	return nil
}

func (c *Client) request(ctx context.Context, req *TransportRequest) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Request")
	defer span.End()

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL),
	)

	body, err := c.dispatch(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return body, nil
}
