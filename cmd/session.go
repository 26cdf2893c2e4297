package cmd

import (
	"fmt"
	"log/slog"

	"github.com/matheuskafuri/jobtrack/internal/config"
	"github.com/matheuskafuri/jobtrack/internal/logging"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/store"
	"github.com/matheuskafuri/jobtrack/internal/workspace"
)

// session bundles what every command needs: config, logging, the store and
// the workspace loaded from it.
type session struct {
	cfg      *config.Config
	db       *store.Store
	ws       *workspace.Workspace
	closeLog func() error
}

func openSession(n notify.Notifier) (*session, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	closeLog, err := logging.Setup(cfg.LogFilePath(), cfg.Level())
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	db, err := store.Open(cfg.StorePath())
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("opening store: %w", err)
	}

	ws := workspace.New(db, workspace.Options{
		CatalogSize: cfg.CatalogSize,
		DigestSize:  cfg.DigestSize,
		Scoring:     cfg.ScoringOptions(),
		Notifier:    n,
	})
	slog.Debug("session opened", "db", cfg.StorePath(), "postings", ws.Catalog.Len())
	return &session{cfg: cfg, db: db, ws: ws, closeLog: closeLog}, nil
}

func (s *session) Close() {
	if err := s.db.Close(); err != nil {
		slog.Warn("closing store", "err", err)
	}
	s.closeLog()
}
