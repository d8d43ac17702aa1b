package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/model"
)

// ExportAll assembles the full backup document: every expense, category and
// setting plus an export timestamp.
func (s *SQLiteStorage) ExportAll(ctx context.Context) (*model.Backup, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.ListSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Backup{
		Version:    model.BackupVersion,
		Expenses:   expenses,
		Categories: categories,
		Settings:   settings,
		ExportedAt: time.Now().UTC(),
	}, nil
}

// ImportAll replaces the entire store contents with the document's. Existing
// data is cleared first; the bulk insert then runs in its own transaction, so
// a failed import leaves the store cleared rather than half-merged with the
// previous dataset. Callers must treat a failed import as "data now empty,
// re-import needed".
func (s *SQLiteStorage) ImportAll(ctx context.Context, doc *model.Backup) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: doc", ErrNilParameter)
	}

	if err := s.ClearAll(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, cat := range doc.Categories {
		if err := validateCategory(cat); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (id, name, color, is_default) VALUES (?, ?, ?, ?)`,
			cat.ID, cat.Name, cat.Color, cat.IsDefault); err != nil {
			return storageErr("import category", err)
		}
	}

	now := time.Now().UTC()
	for _, exp := range doc.Expenses {
		// Imported records keep their ids; documents from older exports may
		// lack them.
		if exp.ID == "" {
			exp.ID = uuid.NewString()
		}
		if exp.CreatedAt.IsZero() {
			exp.CreatedAt = now
		}
		if exp.UpdatedAt.IsZero() {
			exp.UpdatedAt = now
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, amount, description, category_id, date, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			exp.ID, exp.Amount, exp.Description, exp.CategoryID,
			model.DateOnly(exp.Date), exp.CreatedAt, exp.UpdatedAt); err != nil {
			return storageErr("import expense", err)
		}
	}

	for _, setting := range doc.Settings {
		id := setting.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings (id, key, value) VALUES (?, ?, ?)`,
			id, setting.Key, string(setting.Value)); err != nil {
			return storageErr("import setting", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit import", err)
	}

	slog.Info("imported backup",
		"expenses", len(doc.Expenses),
		"categories", len(doc.Categories),
		"settings", len(doc.Settings))
	return nil
}

// ClearAll wipes every record kind. Reseeding the default categories is the
// caller's responsibility.
func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"expenses", "categories", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return storageErr("clear "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit clear", err)
	}

	slog.Info("cleared all data")
	return nil
}
