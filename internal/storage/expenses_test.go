package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/service"
)

// createTestStorage returns a migrated, seeded on-disk store in a temp dir.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}
	if err := store.EnsureDefaultCategories(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to seed: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testExpense(description, categoryID string, amount float64, date time.Time) service.ExpenseData {
	return service.ExpenseData{
		Amount:      amount,
		Description: description,
		CategoryID:  categoryID,
		Date:        date,
	}
}

func TestAddExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		store := createTestStorage(t)

		expense, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
		require.NoError(t, err)
		assert.NotEmpty(t, expense.ID)
		assert.False(t, expense.CreatedAt.IsZero())
		assert.False(t, expense.UpdatedAt.IsZero())

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "Coffee", expenses[0].Description)
		assert.InDelta(t, 3.50, expenses[0].Amount, 0.001)
		assert.Equal(t, "food", expenses[0].CategoryID)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("Coffee", "food", 0, time.Now()))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidExpense)

		_, err = store.AddExpense(ctx, testExpense("Coffee", "food", -5, time.Now()))
		assert.ErrorIs(t, err, ErrInvalidExpense)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("  ", "food", 3.50, time.Now()))
		assert.ErrorIs(t, err, ErrInvalidExpense)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("Coffee", "nope", 3.50, time.Now()))
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestUpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces fields and refreshes updated_at", func(t *testing.T) {
		store := createTestStorage(t)

		expense, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
		require.NoError(t, err)

		updated, err := store.UpdateExpense(ctx, expense.ID,
			testExpense("Lunch", "food", 12.00, time.Now()))
		require.NoError(t, err)
		assert.Equal(t, expense.ID, updated.ID)
		assert.Equal(t, "Lunch", updated.Description)
		assert.InDelta(t, 12.00, updated.Amount, 0.001)
		assert.False(t, updated.UpdatedAt.Before(expense.UpdatedAt))
	})

	t.Run("missing id fails with not found and leaves state unchanged", func(t *testing.T) {
		store := createTestStorage(t)

		expense, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
		require.NoError(t, err)

		_, err = store.UpdateExpense(ctx, "does-not-exist", testExpense("Lunch", "food", 12.00, time.Now()))
		assert.ErrorIs(t, err, common.ErrNotFound)

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, expense.ID, expenses[0].ID)
		assert.Equal(t, "Coffee", expenses[0].Description)
	})
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the expense", func(t *testing.T) {
		store := createTestStorage(t)

		expense, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
		require.NoError(t, err)

		require.NoError(t, store.DeleteExpense(ctx, expense.ID))

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})

	t.Run("is idempotent for absent ids", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
		require.NoError(t, err)

		require.NoError(t, store.DeleteExpense(ctx, "never-existed"))

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
	})
}

func TestListExpenses(t *testing.T) {
	ctx := context.Background()

	day := func(offset int) time.Time {
		return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}

	t.Run("ordered by date descending", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("oldest", "food", 1, day(0)))
		require.NoError(t, err)
		_, err = store.AddExpense(ctx, testExpense("newest", "food", 2, day(2)))
		require.NoError(t, err)
		_, err = store.AddExpense(ctx, testExpense("middle", "food", 3, day(1)))
		require.NoError(t, err)

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 3)
		assert.Equal(t, "newest", expenses[0].Description)
		assert.Equal(t, "middle", expenses[1].Description)
		assert.Equal(t, "oldest", expenses[2].Description)
	})

	t.Run("by category", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("groceries", "food", 20, day(0)))
		require.NoError(t, err)
		_, err = store.AddExpense(ctx, testExpense("bus", "transportation", 2.50, day(0)))
		require.NoError(t, err)

		expenses, err := store.ListExpensesByCategory(ctx, "food")
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "groceries", expenses[0].Description)
	})

	t.Run("date range is inclusive on both ends", func(t *testing.T) {
		store := createTestStorage(t)

		for i := 0; i < 5; i++ {
			_, err := store.AddExpense(ctx, testExpense("day", "food", 1, day(i)))
			require.NoError(t, err)
		}

		expenses, err := store.ListExpensesByDateRange(ctx, day(1), day(3))
		require.NoError(t, err)
		assert.Len(t, expenses, 3)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.ListExpensesByDateRange(ctx, day(3), day(1))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}
