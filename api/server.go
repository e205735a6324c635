package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-interactions-backend/config"
	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/services"
	"github.com/rpupo63/blog-interactions-backend/visitor"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(cfg config.Config, database database.Database, summarizer services.Summarizer) Server {
	address := fmt.Sprintf("0.0.0.0:%s", cfg.Port) // Bind to 0.0.0.0 for external access

	server := &http.Server{
		Addr:         address,
		Handler:      NewHandler(cfg, database, summarizer, withRequestLogging()),
		ReadTimeout:  cfg.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: cfg.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  cfg.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, time.Now()}
}

type router struct {
	requestLogging bool
}

// withRequestLogging enables the colored per-request log line.
func withRequestLogging() func(*router) {
	return func(r *router) {
		r.requestLogging = true
	}
}

// NewHandler builds the complete route tree. A nil summarizer disables
// summary generation.
func NewHandler(cfg config.Config, database database.Database, summarizer services.Summarizer, opts ...func(*router)) http.Handler {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(RequestID)
	chiRouter.Use(LogInternalServerErrors)
	if router.requestLogging {
		chiRouter.Use(ColoredHTTPLoggingMiddleware)
	}

	visitors := visitor.NewResolver(cfg.ClientIPHeader)
	handlers := initializeHandlers(database, visitors, summarizer)
	setupRoutes(chiRouter, handlers, cfg.BlogIDStrategy, cfg.AcceptedOrigins)

	return chiRouter
}

// Run serves until the server is shut down. A graceful shutdown is not an error.
func (s Server) Run() error {
	log.Info().Msgf("Server started on: %s", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s Server) ShutdownGracefully(timeout time.Duration) error {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
		return err
	}
	log.Info().Msg("HttpServer gracefully shut down")
	return nil
}
