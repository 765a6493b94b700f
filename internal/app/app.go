// Package app wires configuration, storage and the text-generation client
// into a ready service. The HTTP server and the CLI share it.
package app

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/integrations/openai"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/repository"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/service"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// NewLogger returns a JSON logger at the given level, defaulting to info
func NewLogger(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(out)
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}

// App holds the wired components and whatever must be closed on exit
type App struct {
	Config  *config.Config
	Log     *logrus.Logger
	Store   repository.ProfileStore
	Service *service.Service
	gen     service.Generator
	db      *sql.DB
}

// New builds the application for cfg. With the postgres backend it connects
// and applies pending migrations first.
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	var base repository.ProfileStore
	switch cfg.ProfileBackend {
	case config.BackendPostgres:
		db, err := OpenDB(cfg)
		if err != nil {
			return nil, err
		}
		if err := repository.RunMigrations(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		a.db = db
		base = repository.NewPostgresStore(db)
	default:
		base = repository.NewFileStore(cfg.DataDir)
	}

	a.Store = repository.WithFallback(base, cfg.DefaultProfile, log)
	a.gen = openai.NewClient(cfg, log)
	a.UseCredentials(config.NewCredentials(cfg))

	log.WithFields(logrus.Fields{
		"backend":         cfg.ProfileBackend,
		"default_profile": cfg.DefaultProfile,
		"model":           cfg.OpenAIModel,
	}).Info("Application initialized")
	return a, nil
}

// UseCredentials rebuilds the service around a different key source
func (a *App) UseCredentials(creds config.CredentialResolver) {
	a.Service = service.NewService(a.Store, a.gen, creds, a.Log)
}

// OpenDB connects to Postgres and verifies the connection
func OpenDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
