package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jask/vibetodo/internal/config"
	"github.com/jask/vibetodo/internal/database"
	"github.com/jask/vibetodo/internal/database/repository"
	"github.com/jask/vibetodo/internal/logging"
	"github.com/jask/vibetodo/internal/prefs"
	"github.com/jask/vibetodo/internal/todo"
)

// env is the per-invocation wiring shared by every command.
type env struct {
	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
}

func setup() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return &env{cfg: cfg, logger: logger, closers: []io.Closer{closer}}, nil
}

func (e *env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}

// storagePath is the file the configured backend reads and writes.
func storagePath(cfg config.StorageConfig) string {
	if backend(cfg) == "file" && filepath.Ext(cfg.Path) == ".db" {
		return strings.TrimSuffix(cfg.Path, ".db") + ".json"
	}
	return cfg.Path
}

func backend(cfg config.StorageConfig) string {
	b := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if b == "" {
		return "sqlite"
	}
	return b
}

func (e *env) openStorage() (todo.Storage, error) {
	path := storagePath(e.cfg.Storage)
	switch backend(e.cfg.Storage) {
	case "sqlite":
		db, err := database.OpenMigrated(path)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, db)
		return repository.NewKVRepo(db), nil
	case "file":
		return prefs.NewFileStore(path, prefs.WithLogger(e.logger)), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want sqlite or file)", e.cfg.Storage.Backend)
	}
}

func (e *env) openList(ctx context.Context) (*todo.List, error) {
	storage, err := e.openStorage()
	if err != nil {
		return nil, err
	}
	list, err := todo.Open(ctx, storage, todo.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	return list, nil
}
