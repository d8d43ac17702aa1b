// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/tallyhq/tally/internal/model"
)

// ExpenseData carries the caller-supplied fields of an expense. The storage
// adapter assigns the id and timestamps.
type ExpenseData struct {
	Date        time.Time
	Description string
	CategoryID  string
	Amount      float64
}

// Storage defines the contract for the persistence layer. Implementations let
// errors propagate unmodified to the caller; nothing retries automatically.
type Storage interface {
	// Expense operations.
	AddExpense(ctx context.Context, data ExpenseData) (*model.Expense, error)
	UpdateExpense(ctx context.Context, id string, data ExpenseData) (*model.Expense, error)
	// DeleteExpense is idempotent: deleting an absent id is not an error.
	DeleteExpense(ctx context.Context, id string) error
	// ListExpenses returns all expenses ordered by date descending.
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	ListExpensesByCategory(ctx context.Context, categoryID string) ([]model.Expense, error)
	// ListExpensesByDateRange is inclusive on both ends.
	ListExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error)

	// Category operations.
	PutCategory(ctx context.Context, cat model.Category) (*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	// DeleteCategory reassigns every referencing expense to the fallback
	// category before removing the category itself.
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	// EnsureDefaultCategories seeds the fixed catalog when the category store
	// is empty. It never re-seeds once any category exists.
	EnsureDefaultCategories(ctx context.Context) error

	// Settings operations.
	GetSetting(ctx context.Context, key string) (*model.Setting, error)
	SetSetting(ctx context.Context, key string, value []byte) error
	ListSettings(ctx context.Context) ([]model.Setting, error)

	// Bulk operations.
	ClearAll(ctx context.Context) error
	ExportAll(ctx context.Context) (*model.Backup, error)
	// ImportAll clears existing data and bulk-inserts the document's
	// contents. A failed insert leaves the store cleared, never partially
	// merged with the previous dataset.
	ImportAll(ctx context.Context, doc *model.Backup) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
