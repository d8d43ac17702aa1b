// Package testutil provides shared helpers for tests that need a working
// storage backend.
package testutil

import (
	"context"
	"testing"

	"github.com/tallyhq/tally/internal/service"
	"github.com/tallyhq/tally/internal/storage"
)

// SetupTestDB creates an in-memory SQLite store with migrations applied and
// the default category catalog seeded. Cleanup is registered automatically.
func SetupTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	if err := store.EnsureDefaultCategories(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("failed to seed categories: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SetupBareTestDB creates an in-memory SQLite store with migrations applied
// but no seeded categories.
func SetupBareTestDB(t *testing.T) service.Storage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
