package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/zulandar/hubscout/internal/config"
	"github.com/zulandar/hubscout/internal/db"
	"github.com/zulandar/hubscout/internal/logging"
	"github.com/zulandar/hubscout/internal/store"
	"gorm.io/gorm"
)

// env is what most commands need: config, a logger and an open database.
type env struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *gorm.DB
	closeLog func() error
}

// connectFromConfig loads configPath (falling back to defaults when the file
// does not exist), builds the logger and opens the migrated database. Log
// lines go to logOut unless a log file is configured.
func connectFromConfig(configPath string, logOut io.Writer) (*env, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, closeLog, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &env{cfg: cfg, log: log, db: gormDB, closeLog: closeLog}, nil
}

// store returns the record store for the configured key.
func (e *env) store() *store.Store {
	return store.New(e.db, e.cfg.StoreKey)
}

// Close releases the database and the log file.
func (e *env) Close() error {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
	return e.closeLog()
}
