package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foodgram-go/backend/config"
	"github.com/foodgram-go/backend/internal/database"
	"github.com/foodgram-go/backend/internal/server"
	"github.com/foodgram-go/backend/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if config.IsDevelopment() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient == nil {
		log.Warn().Msg("redis not configured, token revocation and rate limiting disabled")
	}

	images, err := newImageService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up image storage")
	}

	srv := server.New(cfg, db, redisClient, images)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
}

// newImageService picks S3 when a bucket is configured and falls back to
// local disk storage otherwise.
func newImageService(cfg *config.Config) (*service.ImageService, error) {
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg.S3Bucket)
		if err != nil {
			return nil, err
		}
		return service.NewImageService(service.NewS3Store(s3Config)), nil
	}
	return service.NewImageService(service.NewLocalStore(cfg.MediaDir)), nil
}
