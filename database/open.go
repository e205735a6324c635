package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/blog-interactions-backend/config"
	"github.com/rpupo63/blog-interactions-backend/errs"
)

// Open connects to the store selected by cfg.Type and verifies the connection.
func Open(cfg config.Database) (*gorm.DB, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    false,
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Type, err)
	}

	if len(cfg.ReplicaDSNs) > 0 {
		if cfg.Type == "sqlite" {
			zlog.Warn().Msg("DATABASE_REPLICA_DSNS is ignored for sqlite")
		} else if err := useReplicas(db, cfg.ReplicaDSNs); err != nil {
			return nil, err
		}
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return db, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Type {
	case "postgres", "supa":
		if cfg.DSN == "" {
			return nil, errs.NewConfigMissingError("DATABASE_DSN")
		}
		zlog.Info().Str("type", cfg.Type).Msg("Connecting to PostgreSQL database...")
		return postgres.New(postgres.Config{
			DSN:                  cfg.DSN,
			PreferSimpleProtocol: true,
		}), nil
	case "sqlite":
		zlog.Info().Str("path", cfg.SQLitePath).Msg("Connecting to SQLite database...")
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, errs.NewConfigInvalidError("DB_TYPE", cfg.Type)
	}
}

// useReplicas routes reads to the given replicas and writes to the primary.
func useReplicas(db *gorm.DB, dsns []string) error {
	replicas := make([]gorm.Dialector, 0, len(dsns))
	for _, dsn := range dsns {
		replicas = append(replicas, postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}))
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("register read replicas: %w", err)
	}
	zlog.Info().Int("replicas", len(replicas)).Msg("Read replicas registered")
	return nil
}
