package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	spotifyLib "github.com/zmb3/spotify/v2"
)

var (
	ErrInvalidConfiguration   = errors.New("invalid configuration")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrAuthNotReady           = errors.New("auth not ready")
	ErrMalformedTokenResponse = errors.New("malformed token response")
	ErrMalformedResponse      = errors.New("malformed response")
)

// StatusError is returned by HTTPTransport when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("spotify: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("spotify: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func newStatusError(statusCode int, body []byte) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		Message:    errorMessage(body),
		Body:       body,
	}
}

// errorMessage extracts a message from either a Web API error body
// ({"error": {"status": 401, "message": "..."}}) or an accounts service
// error body ({"error": "invalid_client", "error_description": "..."}).
func errorMessage(body []byte) string {
	var apiErr struct {
		Error spotifyLib.Error `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}

	var authErr struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &authErr); err == nil {
		if authErr.Description != "" {
			return authErr.Description
		}
		return authErr.Error
	}

	return ""
}
