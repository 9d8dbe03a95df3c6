package spotify_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/angristan/spotify-client/spotify"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

var testCredentials = spotify.Credentials{ID: "client-id", Secret: "client-secret"}

var epoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// spyTransport records every call and answers token and API calls from
// the configured funcs.
type spyTransport struct {
	mu       sync.Mutex
	requests []spotify.TransportRequest

	token func(ctx context.Context) (json.RawMessage, error)
	api   func(ctx context.Context, req *spotify.TransportRequest) (json.RawMessage, error)
}

func newSpyTransport() *spyTransport {
	return &spyTransport{
		token: func(context.Context) (json.RawMessage, error) {
			return json.RawMessage(`{"access_token":"access-token-1","token_type":"Bearer","expires_in":3600}`), nil
		},
		api: func(context.Context, *spotify.TransportRequest) (json.RawMessage, error) {
			return json.RawMessage(`{"ok":true}`), nil
		},
	}
}

func (s *spyTransport) Do(ctx context.Context, req *spotify.TransportRequest) (json.RawMessage, error) {
	s.mu.Lock()
	s.requests = append(s.requests, *req)
	s.mu.Unlock()

	if req.URL == spotify.TokenURL {
		return s.token(ctx)
	}
	return s.api(ctx, req)
}

func (s *spyTransport) calls() []spotify.TransportRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]spotify.TransportRequest(nil), s.requests...)
}

func (s *spyTransport) tokenCalls() int {
	n := 0
	for _, req := range s.calls() {
		if req.URL == spotify.TokenURL {
			n++
		}
	}
	return n
}

func (s *spyTransport) apiCalls() int {
	return len(s.calls()) - s.tokenCalls()
}

func newTestClient(t *testing.T, transport spotify.Transport, clock clockwork.Clock) *spotify.Client {
	t.Helper()

	logger, _ := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	client, err := spotify.New(testCredentials,
		spotify.WithTransport(transport),
		spotify.WithClock(clock),
		spotify.WithLogger(logger),
		spotify.WithTracer(otel.Tracer("test")),
	)
	require.NoError(t, err)

	return client
}
