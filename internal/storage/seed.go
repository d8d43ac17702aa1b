package storage

import (
	"context"
	"log/slog"

	"github.com/tallyhq/tally/internal/model"
)

// EnsureDefaultCategories seeds the fixed default catalog when the category
// store is empty. It never re-seeds once any category exists, even a single
// one, so user edits to the catalog survive restarts. Seeding must run before
// any delete operation is reachable: the cascade in DeleteCategory depends on
// the fallback category existing.
func (s *SQLiteStorage) EnsureDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return storageErr("count categories", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, cat := range model.DefaultCategories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, color, is_default) VALUES (?, ?, ?, ?)`,
			cat.ID, cat.Name, cat.Color, cat.IsDefault); err != nil {
			return storageErr("seed category", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit seed", err)
	}

	slog.Info("seeded default categories", "count", len(model.DefaultCategories()))
	return nil
}
