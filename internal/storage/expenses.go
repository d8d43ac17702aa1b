package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/service"
)

const expenseColumns = "id, amount, description, category_id, date, created_at, updated_at"

// AddExpense stores a new expense, assigning its id and timestamps.
func (s *SQLiteStorage) AddExpense(ctx context.Context, data service.ExpenseData) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateExpenseData(data); err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, data.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	expense := model.Expense{
		ID:          uuid.NewString(),
		Amount:      data.Amount,
		Description: data.Description,
		CategoryID:  data.CategoryID,
		Date:        model.DateOnly(data.Date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO expenses (id, amount, description, category_id, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query,
		expense.ID, expense.Amount, expense.Description, expense.CategoryID,
		expense.Date, expense.CreatedAt, expense.UpdatedAt); err != nil {
		return nil, storageErr("insert expense", err)
	}

	slog.Debug("added expense", "id", expense.ID, "amount", expense.Amount)
	return &expense, nil
}

// UpdateExpense replaces the caller-supplied fields of an existing expense
// and refreshes its updated_at timestamp.
func (s *SQLiteStorage) UpdateExpense(ctx context.Context, id string, data service.ExpenseData) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateExpenseData(data); err != nil {
		return nil, err
	}
	if err := s.requireCategory(ctx, data.CategoryID); err != nil {
		return nil, err
	}

	query := `
		UPDATE expenses
		SET amount = ?, description = ?, category_id = ?, date = ?, updated_at = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		data.Amount, data.Description, data.CategoryID,
		model.DateOnly(data.Date), time.Now().UTC(), id)
	if err != nil {
		return nil, storageErr("update expense", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, storageErr("update expense", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}

	return s.getExpenseByID(ctx, id)
}

// DeleteExpense removes an expense. Deleting an absent id is not an error.
func (s *SQLiteStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return storageErr("delete expense", err)
	}
	return nil
}

// ListExpenses returns all expenses ordered by date descending.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		ORDER BY date DESC, created_at DESC`, expenseColumns)

	return s.queryExpenses(ctx, query)
}

// ListExpensesByCategory returns all expenses referencing the given category.
func (s *SQLiteStorage) ListExpensesByCategory(ctx context.Context, categoryID string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE category_id = ?
		ORDER BY date DESC, created_at DESC`, expenseColumns)

	return s.queryExpenses(ctx, query, categoryID)
}

// ListExpensesByDateRange returns expenses between start and end, inclusive
// on both ends.
func (s *SQLiteStorage) ListExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %v is before start %v", ErrInvalidDateRange, end, start)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC, created_at DESC`, expenseColumns)

	return s.queryExpenses(ctx, query, model.DateOnly(start), model.DateOnly(end))
}

func (s *SQLiteStorage) getExpenseByID(ctx context.Context, id string) (*model.Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM expenses WHERE id = ?`, expenseColumns)

	var exp model.Expense
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&exp.ID, &exp.Amount, &exp.Description, &exp.CategoryID,
		&exp.Date, &exp.CreatedAt, &exp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, storageErr("query expense", err)
	}
	return &exp, nil
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("query expenses", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var exp model.Expense
		if err := rows.Scan(
			&exp.ID, &exp.Amount, &exp.Description, &exp.CategoryID,
			&exp.Date, &exp.CreatedAt, &exp.UpdatedAt,
		); err != nil {
			return nil, storageErr("scan expense", err)
		}
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate expenses", err)
	}

	return expenses, nil
}
