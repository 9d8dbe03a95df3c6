package spotify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/angristan/spotify-client/internal/infra/repository/cache/redis"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func cacheKey(searchType, query string) string {
	return "spotify:" + searchType + ":" + query
}

func (s SpotifySearchService) Search(ctx context.Context, query string, searchType string) (any, error) {
	ctx, span := s.tracer.Start(ctx, "SpotifySearchService.Search")
	defer span.End()

	span.SetAttributes(
		attribute.String("query", query),
		attribute.String("type", searchType),
	)

	switch searchType {
	case "artist", "album", "track":
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidQueryType, searchType)
	}

	key := cacheKey(searchType, query)
	val, err := s.cache.Get(ctx, key)
	if err != nil && !errors.Is(err, redis.ErrCacheMiss) {
		span.RecordError(err)
		s.logger.WithError(err).WithField("key", key).Warn("Failed to read cached search result")
	}
	if err == nil && val != "" {
		var cachedResult any
		if err := json.Unmarshal([]byte(val), &cachedResult); err == nil {
			span.AddEvent("Cache hit")
			return cachedResult, nil
		}
		s.logger.WithField("key", key).Warn("Ignoring undecodable cache entry")
	}
	span.AddEvent("Cache miss")

	// query is already path-decoded by the router and is sent as is.
	result, err := s.spotifyClient.Search(ctx, query, searchType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %s", ErrSpotifyClient, err.Error())
	}
	if result == nil {
		return nil, ErrNoResultsFound
	}

	marshaledResult, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	if err := s.cache.Set(ctx, key, marshaledResult, s.cacheTTL); err != nil {
		span.RecordError(err)
		s.logger.WithError(err).WithField("key", key).Warn("Failed to cache search result")
	}

	return result, nil
}
