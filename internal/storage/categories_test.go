package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/model"
)

func TestPutCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts a new category", func(t *testing.T) {
		store := createTestStorage(t)

		cat, err := store.PutCategory(ctx, model.Category{ID: "pets", Name: "Pets", Color: "#ffffff"})
		require.NoError(t, err)
		assert.Equal(t, "pets", cat.ID)

		stored, err := store.GetCategory(ctx, "pets")
		require.NoError(t, err)
		assert.Equal(t, "Pets", stored.Name)
		assert.False(t, stored.IsDefault)
	})

	t.Run("replaces an existing category with the same id", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.PutCategory(ctx, model.Category{ID: "pets", Name: "Pets", Color: "#ffffff"})
		require.NoError(t, err)
		_, err = store.PutCategory(ctx, model.Category{ID: "pets", Name: "Pet Care", Color: "#000000"})
		require.NoError(t, err)

		stored, err := store.GetCategory(ctx, "pets")
		require.NoError(t, err)
		assert.Equal(t, "Pet Care", stored.Name)
		assert.Equal(t, "#000000", stored.Color)

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 9) // 8 defaults + pets
	})

	t.Run("rejects missing id or name", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.PutCategory(ctx, model.Category{Name: "No ID"})
		assert.ErrorIs(t, err, ErrInvalidCategory)

		_, err = store.PutCategory(ctx, model.Category{ID: "no-name"})
		assert.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("reassigns referencing expenses to the fallback category", func(t *testing.T) {
		store := createTestStorage(t)

		expense, err := store.AddExpense(ctx, testExpense("groceries", "food", 20, time.Now()))
		require.NoError(t, err)

		require.NoError(t, store.DeleteCategory(ctx, "food"))

		_, err = store.GetCategory(ctx, "food")
		assert.ErrorIs(t, err, common.ErrNotFound)

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, expense.ID, expenses[0].ID)
		assert.Equal(t, model.FallbackCategoryID, expenses[0].CategoryID)
	})

	t.Run("fallback category cannot be deleted", func(t *testing.T) {
		store := createTestStorage(t)

		err := store.DeleteCategory(ctx, model.FallbackCategoryID)
		assert.ErrorIs(t, err, ErrFallbackCategory)

		_, err = store.GetCategory(ctx, model.FallbackCategoryID)
		assert.NoError(t, err)
	})

	t.Run("expenses in other categories are untouched", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("bus", "transportation", 2.50, time.Now()))
		require.NoError(t, err)

		require.NoError(t, store.DeleteCategory(ctx, "food"))

		expenses, err := store.ListExpensesByCategory(ctx, "transportation")
		require.NoError(t, err)
		assert.Len(t, expenses, 1)
	})
}

func TestEnsureDefaultCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds the full catalog on an empty store", func(t *testing.T) {
		store := createTestStorage(t)

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 8)

		fallback, err := store.GetCategory(ctx, model.FallbackCategoryID)
		require.NoError(t, err)
		assert.True(t, fallback.IsDefault)
	})

	t.Run("never re-seeds once any category exists", func(t *testing.T) {
		store := createTestStorage(t)

		// Shrink the catalog to a single entry, then ask for a seed again.
		for _, cat := range model.DefaultCategories() {
			if cat.ID != model.FallbackCategoryID {
				require.NoError(t, store.DeleteCategory(ctx, cat.ID))
			}
		}

		require.NoError(t, store.EnsureDefaultCategories(ctx))

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Len(t, categories, 1)
	})
}
