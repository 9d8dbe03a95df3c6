package spotify

import (
	"encoding/base64"
	"fmt"
	"net/http"
)

// BearerHeader returns the Authorization header for the current token.
func (c *Client) BearerHeader() (http.Header, error) {
	return bearerHeader(c.currentToken())
}

// BasicHeader returns the Authorization header used against the token endpoint.
func (c *Client) BasicHeader() http.Header {
	credentials := base64.StdEncoding.EncodeToString([]byte(c.credentials.ID + ":" + c.credentials.Secret))

	header := http.Header{}
	header.Set("Authorization", "Basic "+credentials)
	return header
}

func bearerHeader(token *Token) (http.Header, error) {
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token, check the client id and secret", ErrAuthNotReady)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token.AccessToken)
	return header, nil
}
