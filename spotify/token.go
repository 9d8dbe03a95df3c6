package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ExpiryMargin is subtracted from a token's expiry instant when deciding
// whether it must be renewed.
const ExpiryMargin = 5 * time.Minute

// Token is an application access token. A stored Token is never modified,
// renewal replaces it.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether now is within ExpiryMargin of the expiry instant.
// A nil token is expired.
func (t *Token) Expired(now time.Time) bool {
	if t == nil {
		return true
	}
	return !now.Before(t.ExpiresAt.Add(-ExpiryMargin))
}

// Valid reports whether t can be attached to a request at now.
func (t *Token) Valid(now time.Time) bool {
	return t != nil &&
		t.AccessToken != "" &&
		t.ExpiresIn != 0 &&
		!t.ExpiresAt.IsZero() &&
		!t.Expired(now)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// IsTokenExpired reports whether the current token needs renewal. It is true
// before the first token has been fetched.
func (c *Client) IsTokenExpired() bool {
	return c.currentToken().Expired(c.clock.Now())
}

// Token returns a copy of a token that is valid for at least ExpiryMargin,
// fetching a new one if needed.
func (c *Client) Token(ctx context.Context) (*Token, error) {
	token, err := c.RenewTokenIfNeeded(ctx)
	if err != nil {
		return nil, err
	}

	tokenCopy := *token
	return &tokenCopy, nil
}

func (c *Client) currentToken() *Token {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// RenewTokenIfNeeded returns the current token, or fetches and stores a new
// one if it is missing or about to expire. Concurrent callers share a single
// fetch. A caller whose ctx ends stops waiting without cancelling the fetch.
func (c *Client) RenewTokenIfNeeded(ctx context.Context) (*Token, error) {
	ctx, span := c.tracer.Start(ctx, "Client.RenewTokenIfNeeded")
	defer span.End()

	span.AddEvent("Checking if Spotify token needs to be renewed")

	now := c.clock.Now()
	if token := c.currentToken(); token.Valid(now) {
		span.AddEvent("Token is still valid, no need to refresh", trace.WithAttributes(
			attribute.Float64("minutes_until_expiry", token.ExpiresAt.Sub(now).Minutes()),
		))
		return token, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.renewal.DoChan("token", func() (any, error) {
		if token := c.currentToken(); token.Valid(c.clock.Now()) {
			return token, nil
		}
		return c.fetchToken(fetchCtx)
	})

	select {
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			span.RecordError(res.Err)
			span.SetStatus(codes.Error, res.Err.Error())
			return nil, res.Err
		}
		span.AddEvent("Token refreshed", trace.WithAttributes(attribute.Bool("shared", res.Shared)))
		return res.Val.(*Token), nil
	}
}

func (c *Client) fetchToken(ctx context.Context) (*Token, error) {
	ctx, span := c.tracer.Start(ctx, "Client.fetchToken")
	defer span.End()

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	header := c.BasicHeader()
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	raw, err := c.transport.Do(ctx, &TransportRequest{
		Method: http.MethodPost,
		URL:    c.tokenURL,
		Header: header,
		Body:   []byte(form.Encode()),
	})
	if err != nil {
		return nil, err
	}
	receivedAt := c.clock.Now()

	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedTokenResponse, err.Error())
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrMalformedTokenResponse)
	}
	if resp.ExpiresIn <= 0 {
		return nil, fmt.Errorf("%w: invalid expires_in %d", ErrMalformedTokenResponse, resp.ExpiresIn)
	}

	token := &Token{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
		ExpiresAt:   receivedAt.Add(time.Duration(resp.ExpiresIn) * time.Second),
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.logger.WithField("expires_in", token.ExpiresIn).Debug("Spotify token refreshed")

	return token, nil
}
