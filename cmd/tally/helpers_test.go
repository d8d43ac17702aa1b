package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/model"
)

func TestParseDate(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		got, err := parseDate("2025-03-14")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty means today", func(t *testing.T) {
		got, err := parseDate("")
		require.NoError(t, err)
		assert.Equal(t, model.DateOnly(time.Now()), got)
	})

	t.Run("rejects other formats", func(t *testing.T) {
		for _, value := range []string{"14/03/2025", "2025-3-14", "yesterday"} {
			_, err := parseDate(value)
			assert.Error(t, err, "value %q", value)
		}
	})
}

func TestCategoryName(t *testing.T) {
	categories := []model.Category{
		{ID: "food", Name: "Food & Dining"},
		{ID: "bills", Name: "Bills & Utilities"},
	}

	assert.Equal(t, "Food & Dining", categoryName(categories, "food"))
	assert.Equal(t, "(deleted)", categoryName(categories, "gone"))
	assert.Equal(t, "(deleted)", categoryName(nil, "food"))
}
