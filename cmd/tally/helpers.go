package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage"
	"github.com/tallyhq/tally/internal/store"
)

// initStore opens the configured storage backend, migrates and seeds it, and
// loads the application store. The returned cleanup closes the backend.
func initStore(ctx context.Context) (*store.Store, func(), error) {
	backend, err := initStorageBackend()
	if err != nil {
		return nil, nil, err
	}

	if err := backend.Migrate(ctx); err != nil {
		_ = backend.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	st := store.New(backend)
	if err := st.Load(ctx); err != nil {
		_ = backend.Close()
		return nil, nil, err
	}

	return st, func() { _ = backend.Close() }, nil
}

func initStorageBackend() (service.Storage, error) {
	switch backend := viper.GetString("storage.backend"); backend {
	case "", "sqlite":
		dbPath := viper.GetString("storage.path")
		if dbPath == "" {
			dbPath = config.DefaultDBPath()
		}
		return storage.NewSQLiteStorage(config.ExpandPath(dbPath))
	case "json":
		dir := viper.GetString("storage.path")
		if dir == "" {
			dir = filepath.Join(config.DefaultDataDir(), "json")
		}
		return storage.NewJSONStorage(config.ExpandPath(dir))
	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", common.ErrInvalidConfig, backend)
	}
}

// parseDate accepts YYYY-MM-DD; an empty value means today.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return model.DateOnly(time.Now()), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return t, nil
}

// categoryName resolves a category id against the current catalog.
func categoryName(categories []model.Category, id string) string {
	for _, cat := range categories {
		if cat.ID == id {
			return cat.Name
		}
	}
	return "(deleted)"
}
