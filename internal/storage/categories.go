package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/model"
)

// PutCategory inserts a category or replaces an existing one with the same id.
func (s *SQLiteStorage) PutCategory(ctx context.Context, cat model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO categories (id, name, color, is_default)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, color = excluded.color, is_default = excluded.is_default`

	if _, err := s.db.ExecContext(ctx, query, cat.ID, cat.Name, cat.Color, cat.IsDefault); err != nil {
		return nil, storageErr("put category", err)
	}

	slog.Debug("stored category", "id", cat.ID, "name", cat.Name)
	return &cat, nil
}

// GetCategory returns a category by id.
func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var cat model.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color, is_default FROM categories WHERE id = ?`, id,
	).Scan(&cat.ID, &cat.Name, &cat.Color, &cat.IsDefault)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr("query category", err)
	}
	return &cat, nil
}

// DeleteCategory removes a category after reassigning every referencing
// expense to the fallback category. Both steps run in one transaction.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if id == model.FallbackCategoryID {
		return ErrFallbackCategory
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`UPDATE expenses SET category_id = ? WHERE category_id = ?`,
		model.FallbackCategoryID, id)
	if err != nil {
		return storageErr("reassign expenses", err)
	}
	reassigned, _ := result.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return storageErr("delete category", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit category delete", err)
	}

	slog.Info("deleted category", "id", id, "reassigned_expenses", reassigned)
	return nil
}

// ListCategories returns all categories ordered by name.
func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, is_default FROM categories ORDER BY name`)
	if err != nil {
		return nil, storageErr("query categories", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color, &cat.IsDefault); err != nil {
			return nil, storageErr("scan category", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate categories", err)
	}

	return categories, nil
}

// requireCategory fails when the given category id does not exist. Expenses
// must reference an existing category at write time.
func (s *SQLiteStorage) requireCategory(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: category %s", common.ErrNotFound, id)
	}
	if err != nil {
		return storageErr("check category", err)
	}
	return nil
}
