package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appspotify "github.com/angristan/spotify-client/internal/app/services/spotify"
	server "github.com/angristan/spotify-client/internal/infra/http"
	handler "github.com/angristan/spotify-client/internal/infra/http/handlers/spotify"
	"github.com/angristan/spotify-client/internal/infra/repository/cache/redis"
	repository "github.com/angristan/spotify-client/internal/infra/repository/spotify"
	"github.com/angristan/spotify-client/spotify"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

func main() {
	env, err := LoadEnv()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load environment variables")
	}

	logger := logrus.StandardLogger()
	if err := configureLogger(logger, env); err != nil {
		logger.WithError(err).Fatal("Failed to configure logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spanExporter, err := newSpanExporter(ctx, env)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create span exporter")
	}
	tracerProvider, err := newTracerProvider(ctx, env, spanExporter)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create tracer provider")
	}
	otel.SetTracerProvider(tracerProvider)
	tracer := tracerProvider.Tracer(env.ServiceName)

	redisOptions, err := goredis.ParseURL(env.RedisURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to parse redis URL")
	}
	redisClient := goredis.NewClient(redisOptions)

	spotifyClient, err := spotify.New(
		spotify.Credentials{
			ID:     env.SpotifyClientID,
			Secret: env.SpotifyClientSecret,
		},
		spotify.WithLogger(logger),
		spotify.WithTracer(tracer),
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Spotify client")
	}

	searchService := appspotify.New(
		tracer,
		logger,
		repository.New(tracer, spotifyClient),
		redis.NewCache(redisClient, env.CacheTTL, redis.WithNamespace(env.CacheNamespace)),
		env.CacheTTL,
	)

	gin.SetMode(gin.ReleaseMode)
	serverConfig := server.NewConfig(env.Port, env.DisableMiddleware)
	serverConfig.ServiceName = env.ServiceName
	srv, err := server.New(
		serverConfig,
		logger,
		handler.New(tracer, logger, searchService),
	)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create HTTP server")
	}

	go func() {
		logger.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down server")
	}
	if err := redisClient.Close(); err != nil {
		logger.WithError(err).Error("Failed to close redis client")
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down tracer provider")
	}
}
