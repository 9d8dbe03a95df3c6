package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Config holds the listener settings. DisableMiddleware skips recovery,
// request logging and tracing.
type Config struct {
	Port              string
	DisableMiddleware bool
	ServiceName       string
}

func NewConfig(port string, disableMiddleware bool) Config {
	return Config{
		Port:              port,
		DisableMiddleware: disableMiddleware,
		ServiceName:       "spotify-search-proxy",
	}
}

type SpotifyHandler interface {
	Search(c *gin.Context)
}

type Server struct {
	*http.Server
}

func New(cfg Config, logger logrus.FieldLogger, sh SpotifyHandler) (*Server, error) {
	httpPort, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", cfg.Port, err)
	}

	engine := gin.New()

	if !cfg.DisableMiddleware {
		engine.Use(gin.Recovery())
		engine.Use(requestLogger(logger))
		engine.Use(otelgin.Middleware(cfg.ServiceName))
	}

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/search/:type/*query", sh.Search)

	internalServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", httpPort),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{internalServer}, nil
}
