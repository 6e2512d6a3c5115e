package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/config"
	"github.com/foodgram-go/backend/internal/api"
	"github.com/foodgram-go/backend/internal/service"
)

// Server is the HTTP front of the application
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
}

// New builds the router, wires the API onto it and prepares the server
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images *service.ImageService) *Server {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api.SetupAPI(router, db, redisClient, cfg.JWTSecret, images)

	// Locally stored recipe images are served from the media directory.
	// With S3 the image URLs point at the bucket instead.
	if cfg.S3Bucket == "" && cfg.MediaDir != "" {
		router.Static("/media", cfg.MediaDir)
	}

	return &Server{cfg: cfg, router: router}
}

// Router exposes the configured gin engine, mainly for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the HTTP server until it is shut down
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:              s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().Str("addr", s.http.Addr).Msg("starting HTTP server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
