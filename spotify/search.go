package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const DefaultSearchLimit = 20

// SearchParams describes a call to the search endpoint. Type is one or more
// comma separated item types ("track", "artist,album", ...). A zero Limit
// means DefaultSearchLimit.
type SearchParams struct {
	Type  string
	Query string
	Limit int
}

func (p SearchParams) validate() error {
	if p.Type == "" {
		return fmt.Errorf("%w: search type is required", ErrInvalidArgument)
	}
	if p.Query == "" {
		return fmt.Errorf("%w: search query is required", ErrInvalidArgument)
	}
	return nil
}

func (p SearchParams) limit() int {
	if p.Limit == 0 {
		return DefaultSearchLimit
	}
	return p.Limit
}

// Search runs a keyword search and returns the response body untouched.
func (c *Client) Search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return c.search(ctx, params)
}

// SearchAsync validates params and starts the search in the background.
func (c *Client) SearchAsync(ctx context.Context, params SearchParams) (*Pending, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return goPending(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return c.search(ctx, params)
	}), nil
}

// SearchFunc validates params and starts the search in the background,
// reporting the outcome to callback. Validation errors are returned and the
// callback is not called.
func (c *Client) SearchFunc(ctx context.Context, params SearchParams, callback Callback) error {
	pending, err := c.SearchAsync(ctx, params)
	if err != nil {
		return err
	}
	pending.notify(callback)
	return nil
}

func (c *Client) search(ctx context.Context, params SearchParams) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "Client.Search")
	defer span.End()

	span.SetAttributes(
		attribute.String("type", params.Type),
		attribute.String("query", params.Query),
		attribute.Int("limit", params.limit()),
	)

	body, err := c.dispatch(ctx, &TransportRequest{
		Method: http.MethodGet,
		URL:    c.searchRequestURL(params),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return body, nil
}

func (c *Client) searchRequestURL(params SearchParams) string {
	separator := "?"
	if strings.Contains(c.searchURL, "?") {
		separator = "&"
	}

	return c.searchURL + separator +
		"type=" + params.Type +
		"&q=" + escapeQueryComponent(params.Query) +
		"&limit=" + strconv.Itoa(params.limit())
}

// escapeQueryComponent percent-encodes s, spaces included, as %20.
func escapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// dispatch attaches a bearer header for a fresh token and sends req.
// Transport errors are returned as is.
func (c *Client) dispatch(ctx context.Context, req *TransportRequest) (json.RawMessage, error) {
	token, err := c.RenewTokenIfNeeded(ctx)
	if err != nil {
		return nil, err
	}

	header, err := bearerHeader(token)
	if err != nil {
		return nil, err
	}
	if req.Header == nil {
		req.Header = http.Header{}
	}
	for key, values := range header {
		req.Header[key] = values
	}

	return c.transport.Do(ctx, req)
}
