package spotify

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

type SpotifyService interface {
	Search(ctx context.Context, query string, searchType string) (any, error)
}

type SpotifyHandler struct {
	tracer               trace.Tracer
	logger               logrus.FieldLogger
	spotifySearchService SpotifyService
}

func New(
	tracer trace.Tracer,
	logger logrus.FieldLogger,
	spotifySearchService SpotifyService,
) *SpotifyHandler {
	return &SpotifyHandler{
		tracer:               tracer,
		logger:               logger,
		spotifySearchService: spotifySearchService,
	}
}
