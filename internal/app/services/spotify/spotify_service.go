package spotify

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const DefaultCacheTTL = 24 * time.Hour

// Cache stores marshaled search results. Get returns an error or an empty
// value on a miss.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SpotifyClient returns the best match for query, or nil when nothing matched.
type SpotifyClient interface {
	Search(ctx context.Context, query string, searchType string) (any, error)
}

type SpotifySearchService struct {
	tracer        trace.Tracer
	logger        logrus.FieldLogger
	spotifyClient SpotifyClient
	cache         Cache
	cacheTTL      time.Duration
}

func New(
	tracer trace.Tracer,
	logger logrus.FieldLogger,
	spotifyClient SpotifyClient,
	cache Cache,
	cacheTTL time.Duration,
) SpotifySearchService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return SpotifySearchService{
		tracer:        tracer,
		logger:        logger,
		spotifyClient: spotifyClient,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

var (
	ErrInvalidQueryType = errors.New("invalid query type")
	ErrNoResultsFound   = errors.New("no results found")
	ErrSpotifyClient    = errors.New("spotify client error")
)
