package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angristan/spotify-client/spotify"
	spotifyLib "github.com/zmb3/spotify/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrInvalidQueryType = errors.New("invalid query type")

type Searcher interface {
	Search(ctx context.Context, params spotify.SearchParams) (json.RawMessage, error)
}

// SpotifyClient returns the best match of a search as a zmb3 typed item.
type SpotifyClient struct {
	tracer    trace.Tracer
	apiClient Searcher
}

func New(tracer trace.Tracer, apiClient Searcher) *SpotifyClient {
	return &SpotifyClient{
		tracer:    tracer,
		apiClient: apiClient,
	}
}

func (client *SpotifyClient) Search(ctx context.Context, query string, qType string) (any, error) {
	ctx, span := client.tracer.Start(ctx, "SpotifyClient.Search")
	defer span.End()

	switch qType {
	case "artist", "album", "track":
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryType, qType)
	}

	body, err := client.apiClient.Search(ctx, spotify.SearchParams{
		Type:  qType,
		Query: query,
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}

	var results spotifyLib.SearchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	var result any

	switch qType {
	case "artist":
		if results.Artists != nil && len(results.Artists.Artists) > 0 {
			result = results.Artists.Artists[0]
		}
	case "album":
		if results.Albums != nil && len(results.Albums.Albums) > 0 {
			result = results.Albums.Albums[0]
		}
	case "track":
		if results.Tracks != nil && len(results.Tracks.Tracks) > 0 {
			result = results.Tracks.Tracks[0]
		}
	}

	span.SetAttributes(attribute.Bool("found", result != nil))

	return result, nil
}
