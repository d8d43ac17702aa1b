// Package store holds the in-memory application state and keeps it
// synchronized with the persistence layer. All mutation funnels through a
// closed set of named transitions applied by a single dispatcher; public
// operations follow the pattern "call the storage adapter, on success
// dispatch a transition, on failure record a user-facing error and return it".
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/service"
)

// State is a snapshot of the application state. Loading is true only while
// the initial load, an import, or a clear is in flight; Err holds the
// user-facing message of the last failed operation until cleared.
type State struct {
	Err        string
	Expenses   []model.Expense
	Categories []model.Category
	Loading    bool
}

// Store mediates between callers and the storage adapter, keeping the
// in-memory state consistent with persisted state. Methods may be called from
// any goroutine; transitions apply atomically under a mutex, but concurrent
// operations are not queued or serialized.
type Store struct {
	storage service.Storage
	state   State
	mu      sync.RWMutex
}

// New creates a store backed by the given storage adapter.
func New(storage service.Storage) *Store {
	return &Store{storage: storage}
}

type actionType int

const (
	actionSetLoading actionType = iota
	actionSetError
	actionLoadData
	actionAddExpense
	actionUpdateExpense
	actionDeleteExpense
	actionAddCategory
	actionDeleteCategory
)

type action struct {
	expense    *model.Expense
	category   *model.Category
	message    string
	id         string
	expenses   []model.Expense
	categories []model.Category
	typ        actionType
	loading    bool
}

// apply is the single transition dispatcher. Each case replaces state
// synchronously; nothing suspends between reading the old state and
// committing the new one.
func (s *Store) apply(a action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch a.typ {
	case actionSetLoading:
		s.state.Loading = a.loading

	case actionSetError:
		s.state.Err = a.message
		s.state.Loading = false

	case actionLoadData:
		s.state.Expenses = a.expenses
		s.state.Categories = a.categories
		s.state.Loading = false
		s.state.Err = ""

	case actionAddExpense:
		s.state.Expenses = append(s.state.Expenses, *a.expense)
		s.state.Err = ""

	case actionUpdateExpense:
		for i := range s.state.Expenses {
			if s.state.Expenses[i].ID == a.expense.ID {
				s.state.Expenses[i] = *a.expense
			}
		}
		s.state.Err = ""

	case actionDeleteExpense:
		kept := s.state.Expenses[:0]
		for _, exp := range s.state.Expenses {
			if exp.ID != a.id {
				kept = append(kept, exp)
			}
		}
		s.state.Expenses = kept
		s.state.Err = ""

	case actionAddCategory:
		s.state.Categories = append(s.state.Categories, *a.category)
		s.state.Err = ""

	case actionDeleteCategory:
		// Mirror the adapter's cascade: referencing expenses are reassigned
		// to the fallback category, never dropped.
		kept := s.state.Categories[:0]
		for _, cat := range s.state.Categories {
			if cat.ID != a.id {
				kept = append(kept, cat)
			}
		}
		s.state.Categories = kept
		for i := range s.state.Expenses {
			if s.state.Expenses[i].CategoryID == a.id {
				s.state.Expenses[i].CategoryID = model.FallbackCategoryID
			}
		}
		s.state.Err = ""
	}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := State{
		Loading:    s.state.Loading,
		Err:        s.state.Err,
		Expenses:   make([]model.Expense, len(s.state.Expenses)),
		Categories: make([]model.Category, len(s.state.Categories)),
	}
	copy(snapshot.Expenses, s.state.Expenses)
	copy(snapshot.Categories, s.state.Categories)
	return snapshot
}

func (s *Store) fail(msg string, err error) error {
	s.apply(action{typ: actionSetError, message: msg})
	return common.NewOperationError(msg, err)
}

// Load populates the state from the storage adapter. The default category
// catalog is seeded first, so the fallback category exists before any delete
// operation is reachable.
func (s *Store) Load(ctx context.Context) error {
	s.apply(action{typ: actionSetLoading, loading: true})

	if err := s.storage.EnsureDefaultCategories(ctx); err != nil {
		return s.fail("Failed to load saved data", err)
	}
	return s.reload(ctx)
}

func (s *Store) reload(ctx context.Context) error {
	expenses, err := s.storage.ListExpenses(ctx)
	if err != nil {
		return s.fail("Failed to load saved data", err)
	}
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return s.fail("Failed to load saved data", err)
	}

	s.apply(action{typ: actionLoadData, expenses: expenses, categories: categories})
	return nil
}

// AddExpense persists a new expense and adds it to the in-memory state.
func (s *Store) AddExpense(ctx context.Context, data service.ExpenseData) (*model.Expense, error) {
	expense, err := s.storage.AddExpense(ctx, data)
	if err != nil {
		return nil, s.fail("Failed to add expense", err)
	}

	s.apply(action{typ: actionAddExpense, expense: expense})
	return expense, nil
}

// UpdateExpense persists changed fields of an existing expense.
func (s *Store) UpdateExpense(ctx context.Context, id string, data service.ExpenseData) (*model.Expense, error) {
	expense, err := s.storage.UpdateExpense(ctx, id, data)
	if err != nil {
		return nil, s.fail("Failed to update expense", err)
	}

	s.apply(action{typ: actionUpdateExpense, expense: expense})
	return expense, nil
}

// DeleteExpense removes an expense. Absent ids are not an error.
func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return s.fail("Failed to delete expense", err)
	}

	s.apply(action{typ: actionDeleteExpense, id: id})
	return nil
}

// AddCategory persists a new user-created category with a generated id.
func (s *Store) AddCategory(ctx context.Context, name, color string) (*model.Category, error) {
	cat := model.Category{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}

	stored, err := s.storage.PutCategory(ctx, cat)
	if err != nil {
		return nil, s.fail("Failed to add category", err)
	}

	s.apply(action{typ: actionAddCategory, category: stored})
	return stored, nil
}

// DeleteCategory removes a category, reassigning its expenses to the fallback
// category both in storage and in memory.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		return s.fail("Failed to delete category", err)
	}

	s.apply(action{typ: actionDeleteCategory, id: id})
	return nil
}

// ExportData produces the full backup document.
func (s *Store) ExportData(ctx context.Context) (*model.Backup, error) {
	doc, err := s.storage.ExportAll(ctx)
	if err != nil {
		return nil, s.fail("Failed to export data", err)
	}
	return doc, nil
}

// ImportData atomically replaces store contents from a backup document. On
// failure the underlying store is left cleared; callers must treat a failed
// import as "data now empty, re-import needed".
func (s *Store) ImportData(ctx context.Context, doc *model.Backup) error {
	s.apply(action{typ: actionSetLoading, loading: true})

	if err := s.storage.ImportAll(ctx, doc); err != nil {
		return s.fail("Failed to import data", err)
	}
	return s.reload(ctx)
}

// ClearAllData wipes every record kind, then immediately reseeds the default
// categories so the catalog is never left empty.
func (s *Store) ClearAllData(ctx context.Context) error {
	s.apply(action{typ: actionSetLoading, loading: true})

	if err := s.storage.ClearAll(ctx); err != nil {
		return s.fail("Failed to clear data", err)
	}
	if err := s.storage.EnsureDefaultCategories(ctx); err != nil {
		return s.fail("Failed to clear data", err)
	}
	return s.reload(ctx)
}

// ClearError resets the user-facing error field.
func (s *Store) ClearError() {
	s.apply(action{typ: actionSetError, message: ""})
}
