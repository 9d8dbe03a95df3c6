package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Env struct {
	SpotifyClientID     string `env:"SPOTIFY_CLIENT_ID" env-required:"true"`
	SpotifyClientSecret string `env:"SPOTIFY_CLIENT_SECRET" env-required:"true"`

	RedisURL       string        `env:"REDIS_URL" env-required:"true"`
	CacheTTL       time.Duration `env:"CACHE_TTL" env-default:"24h"`
	CacheNamespace string        `env:"CACHE_NAMESPACE" env-default:""`

	Port              string `env:"PORT" env-default:"1323"`
	DisableMiddleware bool   `env:"DISABLE_MIDDLEWARE" env-default:"false"`

	ServiceName           string  `env:"SERVICE_NAME" env-default:"spotify-search-proxy"`
	DeploymentEnvironment string  `env:"DEPLOYMENT_ENVIRONMENT" env-default:"production"`
	OTLPEndpoint          string  `env:"OTLP_ENDPOINT" env-default:"tempo:4318"`
	TraceSampleRatio      float64 `env:"TRACE_SAMPLE_RATIO" env-default:"1"`

	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
}

func LoadEnv() (*Env, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("Failed to load env variables from file")
	}

	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, err
	}

	return &env, nil
}

func configureLogger(logger *logrus.Logger, env *Env) error {
	level, err := logrus.ParseLevel(env.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	switch env.LogFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", env.LogFormat)
	}

	return nil
}
