package spotify

import (
	"context"

	spotifyLib "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// OAuth2 converts t for use with golang.org/x/oauth2. The expiry is moved
// forward by ExpiryMargin so oauth2 renews on the same schedule as Client.
func (t *Token) OAuth2() *oauth2.Token {
	tokenType := t.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   tokenType,
		Expiry:      t.ExpiresAt.Add(-ExpiryMargin),
	}
}

type tokenSource struct {
	client *Client
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.client.RenewTokenIfNeeded(context.Background())
	if err != nil {
		return nil, err
	}
	return token.OAuth2(), nil
}

// TokenSource exposes the client's token lifecycle as an oauth2.TokenSource.
func (c *Client) TokenSource() oauth2.TokenSource {
	return tokenSource{client: c}
}

// API returns a typed Web API client whose requests carry this client's
// tokens. It is built on the client's *http.Client, not on a custom
// Transport set with WithTransport.
func (c *Client) API(ctx context.Context, opts ...spotifyLib.ClientOption) *spotifyLib.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return spotifyLib.New(oauth2.NewClient(ctx, c.TokenSource()), opts...)
}
