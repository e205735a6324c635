package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rpupo63/blog-interactions-backend/api"
	"github.com/rpupo63/blog-interactions-backend/config"
	"github.com/rpupo63/blog-interactions-backend/database"
	"github.com/rpupo63/blog-interactions-backend/models"
	"github.com/rpupo63/blog-interactions-backend/services"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Exiting")
	}
}

func run() error {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := config.New()
	if err := config.OverlaySSM(ctx, env); err != nil {
		return err
	}
	cfg := config.Load(env)
	setupLogging(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}

	// If generating column mismatch report, run report and exit
	if cfg.Database.GenerateColumnReport {
		report, err := models.GenerateColumnMismatchReport(db)
		if err != nil {
			return err
		}
		report.Print(os.Stdout)
		return nil
	}

	if cfg.Database.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info().Msg("Database schema migrated")
	}

	var summarizer services.Summarizer
	modelSummarizer, err := services.NewSummarizer(cfg.AI)
	if err != nil {
		return err
	}
	if modelSummarizer != nil {
		summarizer = modelSummarizer
	}

	server := api.NewServer(cfg, database.New(db), summarizer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Run)
	g.Go(func() error {
		<-gctx.Done()
		return server.ShutdownGracefully(shutdownTimeout)
	})
	return g.Wait()
}

// setupLogging configures the global zerolog logger.
func setupLogging(level, format string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
