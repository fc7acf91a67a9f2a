// campuscore - facility inspection and maintenance tracking
//
// This is the main entry point for the campuscore service. It prepares and
// verifies the facilities store: configuration, structured logging, the
// SQLite database with migrations, and the first-boot admin account.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mveldt/campuscore/migrations"

	"github.com/mveldt/campuscore/internal/directory"
	"github.com/mveldt/campuscore/internal/infrastructure/config"
	"github.com/mveldt/campuscore/internal/infrastructure/database"
	"github.com/mveldt/campuscore/internal/infrastructure/logging"
)

// Build metadata, injected with
// go build -ldflags "-X main.version=... -X main.commit=...".
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on Ctrl+C or SIGTERM so the store closes cleanly.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run prepares the facilities store and blocks until shutdown. It lives
// apart from main so errors flow back as values rather than os.Exit calls.
func run(ctx context.Context) error {
	// Config isn't loaded yet, so start with the default logger.
	log := logging.Default()
	log.Info("starting campuscore",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Swap in the configured logger.
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}

	applied, pending, err := db.GetMigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("checking migration status: %w", err)
	}
	log.Info("database migrations complete",
		"applied", len(applied),
		"pending", len(pending),
	)

	// Verify the store is answering queries
	if healthErr := db.HealthCheck(ctx); healthErr != nil {
		return fmt.Errorf("database health check: %w", healthErr)
	}

	// Seed the first admin account on an empty users table
	dirRepo := directory.NewSQLiteRepository(db.DB)
	if _, seedErr := directory.SeedAdmin(ctx, dirRepo, log.Logger); seedErr != nil {
		return fmt.Errorf("seeding admin account: %w", seedErr)
	}

	log.Info("campuscore ready",
		"org", cfg.Org.ID,
		"database", cfg.Database.Path,
	)

	// Block until shutdown is requested
	<-ctx.Done()
	log.Info("shutdown signal received")

	return nil
}

// getConfigPath returns the configuration file path from the CAMPUSCORE_CONFIG
// environment variable, falling back to the default.
func getConfigPath() string {
	if path := os.Getenv("CAMPUSCORE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
