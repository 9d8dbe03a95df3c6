package spotify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/angristan/spotify-client/spotify"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search_InvalidArgument(t *testing.T) {
	tests := []struct {
		name   string
		params spotify.SearchParams
	}{
		{name: "missing type", params: spotify.SearchParams{Query: "TWICE"}},
		{name: "missing query", params: spotify.SearchParams{Type: "artist"}},
		{name: "missing both", params: spotify.SearchParams{Limit: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newSpyTransport()
			client := newTestClient(t, transport, clockwork.NewFakeClockAt(epoch))

			_, err := client.Search(context.Background(), tt.params)
			assert.ErrorIs(t, err, spotify.ErrInvalidArgument)

			pending, err := client.SearchAsync(context.Background(), tt.params)
			assert.ErrorIs(t, err, spotify.ErrInvalidArgument)
			assert.Nil(t, pending)

			var called atomic.Bool
			err = client.SearchFunc(context.Background(), tt.params, func(json.RawMessage, error) {
				called.Store(true)
			})
			assert.ErrorIs(t, err, spotify.ErrInvalidArgument)

			assert.Empty(t, transport.calls())
			assert.False(t, called.Load())
		})
	}
}

func TestClient_Search_URL(t *testing.T) {
	tests := []struct {
		name   string
		params spotify.SearchParams
		want   string
	}{
		{
			name:   "zero limit uses default",
			params: spotify.SearchParams{Type: "track", Query: "x", Limit: 0},
			want:   "https://api.spotify.com/v1/search?type=track&q=x&limit=20",
		},
		{
			name:   "explicit limit",
			params: spotify.SearchParams{Type: "track", Query: "x", Limit: 5},
			want:   "https://api.spotify.com/v1/search?type=track&q=x&limit=5",
		},
		{
			name:   "query is percent encoded",
			params: spotify.SearchParams{Type: "artist,album", Query: "AC/DC & friends?", Limit: 1},
			want:   "https://api.spotify.com/v1/search?type=artist,album&q=AC%2FDC%20%26%20friends%3F&limit=1",
		},
		{
			name:   "non ascii query",
			params: spotify.SearchParams{Type: "artist", Query: "Beyoncé"},
			want:   "https://api.spotify.com/v1/search?type=artist&q=Beyonc%C3%A9&limit=20",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newSpyTransport()
			client := newTestClient(t, transport, clockwork.NewFakeClockAt(epoch))

			_, err := client.Search(context.Background(), tt.params)
			require.NoError(t, err)

			calls := transport.calls()
			require.Len(t, calls, 2)
			assert.Equal(t, "GET", calls[1].Method)
			assert.Equal(t, tt.want, calls[1].URL)
		})
	}
}

func TestClient_Search_CustomSearchURL(t *testing.T) {
	transport := newSpyTransport()
	client, err := spotify.New(testCredentials,
		spotify.WithTransport(transport),
		spotify.WithSearchURL("https://api.example.com/v1/search?market=FR"),
	)
	require.NoError(t, err)

	_, err = client.Search(context.Background(), spotify.SearchParams{Type: "track", Query: "x"})
	require.NoError(t, err)

	calls := transport.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "https://api.example.com/v1/search?market=FR&type=track&q=x&limit=20", calls[1].URL)
}

func TestClient_Search_ReturnsBodyUntouched(t *testing.T) {
	body := json.RawMessage(`{"tracks":{"items":[{"name":"Around the World"}],"total":1}}`)

	transport := newSpyTransport()
	transport.api = func(context.Context, *spotify.TransportRequest) (json.RawMessage, error) {
		return body, nil
	}
	client := newTestClient(t, transport, clockwork.NewFakeClockAt(epoch))

	got, err := client.Search(context.Background(), spotify.SearchParams{Type: "track", Query: "daft punk"})
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestClient_SearchFunc(t *testing.T) {
	transportErr := errors.New("connection reset")

	tests := []struct {
		name    string
		body    json.RawMessage
		err     error
		wantErr error
	}{
		{name: "success", body: json.RawMessage(`{"ok":true}`)},
		{name: "failure", err: transportErr, wantErr: transportErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := newSpyTransport()
			transport.api = func(context.Context, *spotify.TransportRequest) (json.RawMessage, error) {
				return tt.body, tt.err
			}
			client := newTestClient(t, transport, clockwork.NewFakeClockAt(epoch))

			type outcome struct {
				body json.RawMessage
				err  error
			}
			outcomes := make(chan outcome, 2)

			err := client.SearchFunc(context.Background(), spotify.SearchParams{Type: "track", Query: "x"}, func(body json.RawMessage, err error) {
				outcomes <- outcome{body: body, err: err}
			})
			require.NoError(t, err)

			var got outcome
			select {
			case got = <-outcomes:
			case <-time.After(time.Second):
				t.Fatal("callback was not called")
			}

			if tt.wantErr != nil {
				assert.Same(t, tt.wantErr, got.err)
				assert.Nil(t, got.body)
			} else {
				assert.NoError(t, got.err)
				assert.Equal(t, tt.body, got.body)
			}

			select {
			case <-outcomes:
				t.Fatal("callback was called twice")
			case <-time.After(50 * time.Millisecond):
			}
		})
	}
}

func TestClient_SearchAsync(t *testing.T) {
	transportErr := &spotify.StatusError{StatusCode: 502, Message: "Bad gateway"}

	t.Run("resolves", func(t *testing.T) {
		transport := newSpyTransport()
		client := newTestClient(t, transport, clockwork.NewFakeClockAt(epoch))

		pending, err := client.SearchAsync(context.Background(), spotify.SearchParams{Type: "track", Query: "x"})
		require.NoError(t, err)

		body, err := pending.Wait()
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))

		select {
		case <-pending.Done():
		default:
			t.Fatal("Done should be closed after Wait")
		}
	})

	t.Run("rejects", func(t *testing.T) {
		transport := newSpyTransport()
		transport.api = func(context.Context, *spotify.TransportRequest) (json.RawMessage, error) {
			return nil, transportErr
		}
		client := newTestClient(t, transport, clockwork.NewFakeClockAt(epoch))

		pending, err := client.SearchAsync(context.Background(), spotify.SearchParams{Type: "track", Query: "x"})
		require.NoError(t, err)

		body, err := pending.Wait()
		assert.Same(t, transportErr, err)
		assert.Nil(t, body)
	})
}
