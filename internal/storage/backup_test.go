package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/model"
)

func TestExportAll(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.SetSetting(ctx, "currency", []byte(`"EUR"`)))

	doc, err := store.ExportAll(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.BackupVersion, doc.Version)
	assert.False(t, doc.ExportedAt.IsZero())
	assert.Len(t, doc.Expenses, 1)
	assert.Len(t, doc.Categories, 8)
	require.Len(t, doc.Settings, 1)
	assert.Equal(t, "currency", doc.Settings[0].Key)
}

func TestImportAll(t *testing.T) {
	ctx := context.Background()

	t.Run("export then import round-trips", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
		require.NoError(t, err)
		_, err = store.AddExpense(ctx, testExpense("Bus", "transportation", 2.50, time.Now()))
		require.NoError(t, err)

		doc, err := store.ExportAll(ctx)
		require.NoError(t, err)

		before, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		beforeCats, err := store.ListCategories(ctx)
		require.NoError(t, err)

		require.NoError(t, store.ImportAll(ctx, doc))

		after, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		afterCats, err := store.ListCategories(ctx)
		require.NoError(t, err)

		assert.Equal(t, before, after)
		assert.Equal(t, beforeCats, afterCats)
	})

	t.Run("replaces existing contents entirely", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("old data", "food", 99, time.Now()))
		require.NoError(t, err)

		doc := &model.Backup{
			Version:    model.BackupVersion,
			Categories: []model.Category{{ID: "imported", Name: "Imported"}},
			Expenses: []model.Expense{{
				ID:          "exp-1",
				Amount:      1.25,
				Description: "imported expense",
				CategoryID:  "imported",
				Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			}},
		}
		require.NoError(t, store.ImportAll(ctx, doc))

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, "exp-1", expenses[0].ID)
		assert.Equal(t, "imported expense", expenses[0].Description)
		assert.False(t, expenses[0].CreatedAt.IsZero())

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 1)
		assert.Equal(t, "imported", categories[0].ID)
	})

	t.Run("failed insert leaves the store cleared", func(t *testing.T) {
		store := createTestStorage(t)

		_, err := store.AddExpense(ctx, testExpense("old data", "food", 99, time.Now()))
		require.NoError(t, err)

		doc := &model.Backup{
			Version:    model.BackupVersion,
			Categories: []model.Category{{ID: "ok", Name: "OK"}},
			Expenses: []model.Expense{
				{ID: "dup", Amount: 1, Description: "first", CategoryID: "ok", Date: time.Now()},
				{ID: "dup", Amount: 2, Description: "duplicate id", CategoryID: "ok", Date: time.Now()},
			},
		}
		require.Error(t, store.ImportAll(ctx, doc))

		expenses, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		assert.Empty(t, expenses)

		categories, err := store.ListCategories(ctx)
		require.NoError(t, err)
		assert.Empty(t, categories)
	})
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	_, err := store.AddExpense(ctx, testExpense("Coffee", "food", 3.50, time.Now()))
	require.NoError(t, err)
	require.NoError(t, store.SetSetting(ctx, "currency", []byte(`"EUR"`)))

	require.NoError(t, store.ClearAll(ctx))

	expenses, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Empty(t, expenses)

	categories, err := store.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)

	settings, err := store.ListSettings(ctx)
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	require.NoError(t, store.SetSetting(ctx, "currency", []byte(`"EUR"`)))
	require.NoError(t, store.SetSetting(ctx, "currency", []byte(`"USD"`)))

	setting, err := store.GetSetting(ctx, "currency")
	require.NoError(t, err)
	assert.Equal(t, `"USD"`, string(setting.Value))

	settings, err := store.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, 1)
}
