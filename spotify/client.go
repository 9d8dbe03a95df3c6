// Package spotify is a client for the Spotify Web API authenticated with the
// client-credentials grant. It fetches an application token on first use,
// renews it before it expires and attaches it to every request.
package spotify

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	TokenURL  = spotifyauth.TokenURL
	SearchURL = "https://api.spotify.com/v1/search"
)

// Credentials identify the application to the accounts service.
type Credentials struct {
	ID     string
	Secret string
}

type Client struct {
	credentials Credentials

	transport  Transport
	httpClient *http.Client
	clock      clockwork.Clock
	logger     logrus.FieldLogger
	tracer     trace.Tracer

	tokenURL  string
	searchURL string

	mu      sync.RWMutex
	token   *Token
	renewal singleflight.Group
}

type Option func(*Client)

// WithTransport replaces the transport used for both token and API calls.
func WithTransport(transport Transport) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithHTTPClient sets the *http.Client behind the default transport and the
// SDK client returned by API.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) {
		c.clock = clock
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

func WithTokenURL(tokenURL string) Option {
	return func(c *Client) {
		c.tokenURL = tokenURL
	}
}

func WithSearchURL(searchURL string) Option {
	return func(c *Client) {
		c.searchURL = searchURL
	}
}

// New returns a Client for the given application credentials. No network
// call is made until the first request.
func New(credentials Credentials, opts ...Option) (*Client, error) {
	if credentials.ID == "" {
		return nil, fmt.Errorf("%w: client id is required", ErrInvalidConfiguration)
	}
	if credentials.Secret == "" {
		return nil, fmt.Errorf("%w: client secret is required", ErrInvalidConfiguration)
	}

	c := &Client{
		credentials: Credentials{ID: credentials.ID, Secret: credentials.Secret},
		clock:       clockwork.NewRealClock(),
		logger:      logrus.StandardLogger(),
		tracer:      otel.Tracer("github.com/angristan/spotify-client/spotify"),
		tokenURL:    TokenURL,
		searchURL:   SearchURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport(c.httpClient)
	}

	return c, nil
}
