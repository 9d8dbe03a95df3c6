package spotify

import (
	"errors"
	"net/http"
	"strings"

	appspotify "github.com/angristan/spotify-client/internal/app/services/spotify"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
)

func (h *SpotifyHandler) Search(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "SpotifyHandler.Search")
	defer span.End()

	qType := c.Param("type")
	if qType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	// Wildcard params keep their leading slash
	query := strings.TrimPrefix(c.Param("query"), "/")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result, err := h.spotifySearchService.Search(ctx, query, qType)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		status, message := errorResponse(err)
		if status >= http.StatusInternalServerError {
			h.logger.WithError(err).WithField("type", qType).Error("Search failed")
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, result)
}

func errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, appspotify.ErrInvalidQueryType):
		return http.StatusBadRequest, "invalid search type"
	case errors.Is(err, appspotify.ErrNoResultsFound):
		return http.StatusNotFound, "no results found"
	case errors.Is(err, appspotify.ErrSpotifyClient):
		return http.StatusBadGateway, "spotify client error"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
