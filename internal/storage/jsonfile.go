package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/service"
)

// Well-known file names, one independently serialized blob per record kind.
const (
	expensesFile   = "expenses.json"
	categoriesFile = "categories.json"
	settingsFile   = "settings.json"
)

// JSONStorage implements service.Storage with plain JSON files in a data
// directory. It predates the SQLite adapter and remains supported for small
// datasets: the whole state is held in memory and flushed to disk after every
// mutation.
type JSONStorage struct {
	expenses   []model.Expense
	categories []model.Category
	settings   []model.Setting
	dir        string
	mu         sync.Mutex
}

// NewJSONStorage opens (or creates) a JSON file store in dir. A corrupt or
// absent expense blob loads as an empty list; a corrupt or absent category
// blob loads as the built-in default catalog.
func NewJSONStorage(dir string) (*JSONStorage, error) {
	if err := validateString(dir, "dir"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, storageErr("create data directory", err)
	}

	s := &JSONStorage{dir: dir}

	if err := readBlob(filepath.Join(dir, expensesFile), &s.expenses); err != nil {
		slog.Warn("expense data unreadable, starting empty", "error", err)
		s.expenses = nil
	}
	if err := readBlob(filepath.Join(dir, categoriesFile), &s.categories); err != nil || len(s.categories) == 0 {
		if err != nil {
			slog.Warn("category data unreadable, using defaults", "error", err)
		}
		s.categories = model.DefaultCategories()
	}
	if err := readBlob(filepath.Join(dir, settingsFile), &s.settings); err != nil {
		s.settings = nil
	}

	return s, nil
}

func readBlob(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// writeBlob writes atomically: temp file in the same directory, then rename.
func writeBlob(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tally-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *JSONStorage) flushExpenses() error {
	if err := writeBlob(filepath.Join(s.dir, expensesFile), s.expenses); err != nil {
		return storageErr("write expenses", err)
	}
	return nil
}

func (s *JSONStorage) flushCategories() error {
	if err := writeBlob(filepath.Join(s.dir, categoriesFile), s.categories); err != nil {
		return storageErr("write categories", err)
	}
	return nil
}

func (s *JSONStorage) flushSettings() error {
	if err := writeBlob(filepath.Join(s.dir, settingsFile), s.settings); err != nil {
		return storageErr("write settings", err)
	}
	return nil
}

// AddExpense stores a new expense, assigning its id and timestamps.
func (s *JSONStorage) AddExpense(ctx context.Context, data service.ExpenseData) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateExpenseData(data); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCategory(data.CategoryID) < 0 {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, data.CategoryID)
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
	s.expenses = append(s.expenses, expense)

	if err := s.flushExpenses(); err != nil {
		s.expenses = s.expenses[:len(s.expenses)-1]
		return nil, err
	}
	return &expense, nil
}

// UpdateExpense replaces the caller-supplied fields of an existing expense.
func (s *JSONStorage) UpdateExpense(ctx context.Context, id string, data service.ExpenseData) (*model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}
	if err := validateExpenseData(data); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findCategory(data.CategoryID) < 0 {
		return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, data.CategoryID)
	}

	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		prev := s.expenses[i]
		s.expenses[i].Amount = data.Amount
		s.expenses[i].Description = data.Description
		s.expenses[i].CategoryID = data.CategoryID
		s.expenses[i].Date = model.DateOnly(data.Date)
		s.expenses[i].UpdatedAt = time.Now().UTC()

		if err := s.flushExpenses(); err != nil {
			s.expenses[i] = prev
			return nil, err
		}
		exp := s.expenses[i]
		return &exp, nil
	}
	return nil, fmt.Errorf("%w: expense %s", common.ErrNotFound, id)
}

// DeleteExpense removes an expense. Deleting an absent id is not an error.
func (s *JSONStorage) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return s.flushExpenses()
		}
	}
	return nil
}

// ListExpenses returns all expenses ordered by date descending.
func (s *JSONStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByDateDesc(s.expenses), nil
}

// ListExpensesByCategory returns all expenses referencing the given category.
func (s *JSONStorage) ListExpensesByCategory(ctx context.Context, categoryID string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []model.Expense{}
	for _, exp := range sortedByDateDesc(s.expenses) {
		if exp.CategoryID == categoryID {
			matched = append(matched, exp)
		}
	}
	return matched, nil
}

// ListExpensesByDateRange returns expenses between start and end, inclusive
// on both ends.
func (s *JSONStorage) ListExpensesByDateRange(ctx context.Context, start, end time.Time) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %v is before start %v", ErrInvalidDateRange, end, start)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lo, hi := model.DateOnly(start), model.DateOnly(end)
	matched := []model.Expense{}
	for _, exp := range sortedByDateDesc(s.expenses) {
		if !exp.Date.Before(lo) && !exp.Date.After(hi) {
			matched = append(matched, exp)
		}
	}
	return matched, nil
}

// PutCategory inserts a category or replaces an existing one with the same id.
func (s *JSONStorage) PutCategory(ctx context.Context, cat model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(cat); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findCategory(cat.ID); i >= 0 {
		s.categories[i] = cat
	} else {
		s.categories = append(s.categories, cat)
	}

	if err := s.flushCategories(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetCategory returns a category by id.
func (s *JSONStorage) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.findCategory(id); i >= 0 {
		cat := s.categories[i]
		return &cat, nil
	}
	return nil, fmt.Errorf("%w: category %s", common.ErrNotFound, id)
}

// DeleteCategory removes a category after reassigning every referencing
// expense to the fallback category.
func (s *JSONStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if id == model.FallbackCategoryID {
		return ErrFallbackCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findCategory(id)
	if i < 0 {
		return nil
	}

	for j := range s.expenses {
		if s.expenses[j].CategoryID == id {
			s.expenses[j].CategoryID = model.FallbackCategoryID
		}
	}
	s.categories = append(s.categories[:i], s.categories[i+1:]...)

	if err := s.flushExpenses(); err != nil {
		return err
	}
	return s.flushCategories()
}

// ListCategories returns all categories ordered by name.
func (s *JSONStorage) ListCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]model.Category, len(s.categories))
	copy(categories, s.categories)
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// EnsureDefaultCategories seeds the fixed catalog when the category store is
// empty.
func (s *JSONStorage) EnsureDefaultCategories(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.categories) > 0 {
		return nil
	}
	s.categories = model.DefaultCategories()
	return s.flushCategories()
}

// GetSetting returns the setting stored under key.
func (s *JSONStorage) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, setting := range s.settings {
		if setting.Key == key {
			found := setting
			return &found, nil
		}
	}
	return nil, fmt.Errorf("%w: setting %s", common.ErrNotFound, key)
}

// SetSetting stores a value under key, creating the setting if needed.
func (s *JSONStorage) SetSetting(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.settings {
		if s.settings[i].Key == key {
			s.settings[i].Value = value
			return s.flushSettings()
		}
	}
	s.settings = append(s.settings, model.Setting{ID: uuid.NewString(), Key: key, Value: value})
	return s.flushSettings()
}

// ListSettings returns all settings.
func (s *JSONStorage) ListSettings(ctx context.Context) ([]model.Setting, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := make([]model.Setting, len(s.settings))
	copy(settings, s.settings)
	return settings, nil
}

// ClearAll wipes every record kind.
func (s *JSONStorage) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked()
}

func (s *JSONStorage) clearLocked() error {
	s.expenses = nil
	s.categories = nil
	s.settings = nil

	if err := s.flushExpenses(); err != nil {
		return err
	}
	if err := s.flushCategories(); err != nil {
		return err
	}
	return s.flushSettings()
}

// ExportAll assembles the full backup document.
func (s *JSONStorage) ExportAll(ctx context.Context) (*model.Backup, error) {
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

// ImportAll replaces the entire store contents with the document's. A failed
// import leaves the store cleared, matching the SQLite adapter's contract.
func (s *JSONStorage) ImportAll(ctx context.Context, doc *model.Backup) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("%w: doc", ErrNilParameter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearLocked(); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, cat := range doc.Categories {
		if err := validateCategory(cat); err != nil {
			return err
		}
	}

	expenses := make([]model.Expense, 0, len(doc.Expenses))
	for _, exp := range doc.Expenses {
		if exp.ID == "" {
			exp.ID = uuid.NewString()
		}
		if exp.CreatedAt.IsZero() {
			exp.CreatedAt = now
		}
		if exp.UpdatedAt.IsZero() {
			exp.UpdatedAt = now
		}
		exp.Date = model.DateOnly(exp.Date)
		expenses = append(expenses, exp)
	}

	s.expenses = expenses
	s.categories = append([]model.Category{}, doc.Categories...)
	s.settings = append([]model.Setting{}, doc.Settings...)

	if err := s.flushExpenses(); err != nil {
		_ = s.clearLocked()
		return err
	}
	if err := s.flushCategories(); err != nil {
		_ = s.clearLocked()
		return err
	}
	if err := s.flushSettings(); err != nil {
		_ = s.clearLocked()
		return err
	}
	return nil
}

// Migrate is a no-op for the file-backed store.
func (s *JSONStorage) Migrate(ctx context.Context) error {
	return validateContext(ctx)
}

// Close flushes nothing; file writes happen per mutation.
func (s *JSONStorage) Close() error {
	return nil
}

func (s *JSONStorage) findCategory(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func sortedByDateDesc(expenses []model.Expense) []model.Expense {
	out := make([]model.Expense, len(expenses))
	copy(out, expenses)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
