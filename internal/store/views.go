package store

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// SortField selects the expense list sort key.
type SortField string

// Supported sort fields.
const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
)

// SortOrder selects ascending or descending order.
type SortOrder string

// Supported sort orders.
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListOptions controls FilterSort. Zero values mean: no category filter, no
// search, sort by date descending.
type ListOptions struct {
	CategoryID string
	Search     string
	SortBy     SortField
	Order      SortOrder
}

// FilterSort filters expenses by optional category equality and
// case-insensitive substring search (against the description or the amount's
// string form), then sorts by the requested field. The sort is stable: ties
// keep their original relative order. Sorting by category compares resolved
// display names; an expense whose category was deleted sorts as empty string.
func FilterSort(expenses []model.Expense, categories []model.Category, opts ListOptions) []model.Expense {
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = strings.ToLower(cat.Name)
	}

	filtered := make([]model.Expense, 0, len(expenses))
	term := strings.ToLower(opts.Search)
	for _, exp := range expenses {
		if opts.CategoryID != "" && exp.CategoryID != opts.CategoryID {
			continue
		}
		if term != "" {
			inDescription := strings.Contains(strings.ToLower(exp.Description), term)
			inAmount := strings.Contains(formatAmount(exp.Amount), term)
			if !inDescription && !inAmount {
				continue
			}
		}
		filtered = append(filtered, exp)
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = SortByDate
	}
	order := opts.Order
	if order == "" {
		order = OrderDesc
	}

	less := func(a, b model.Expense) int {
		switch sortBy {
		case SortByAmount:
			switch {
			case a.Amount < b.Amount:
				return -1
			case a.Amount > b.Amount:
				return 1
			}
			return 0
		case SortByDescription:
			return strings.Compare(strings.ToLower(a.Description), strings.ToLower(b.Description))
		case SortByCategory:
			return strings.Compare(names[a.CategoryID], names[b.CategoryID])
		default:
			switch {
			case a.Date.Before(b.Date):
				return -1
			case a.Date.After(b.Date):
				return 1
			}
			return 0
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		cmp := less(filtered[i], filtered[j])
		if order == OrderAsc {
			return cmp < 0
		}
		return cmp > 0
	})

	return filtered
}

// Total sums the amounts of an (already filtered) expense sequence.
func Total(expenses []model.Expense) float64 {
	var total float64
	for _, exp := range expenses {
		total += exp.Amount
	}
	return total
}

// TotalsByCategory maps category id to summed amount across all expenses.
func TotalsByCategory(expenses []model.Expense) map[string]float64 {
	totals := make(map[string]float64)
	for _, exp := range expenses {
		totals[exp.CategoryID] += exp.Amount
	}
	return totals
}

// Recent returns the n most recent expenses by date. n <= 0 means the default
// of 5.
func Recent(expenses []model.Expense, n int) []model.Expense {
	if n <= 0 {
		n = 5
	}

	sorted := make([]model.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Derived read-only accessors over the current state. These are pure
// computations on a snapshot, not transitions.

// Filtered returns the filter-then-sort view of the current expenses.
func (s *Store) Filtered(opts ListOptions) []model.Expense {
	state := s.State()
	return FilterSort(state.Expenses, state.Categories, opts)
}

// Total returns the sum over all expenses in the current state.
func (s *Store) Total() float64 {
	return Total(s.State().Expenses)
}

// TotalsByCategory returns per-category totals over the current state.
func (s *Store) TotalsByCategory() map[string]float64 {
	return TotalsByCategory(s.State().Expenses)
}

// Recent returns the n most recent expenses in the current state.
func (s *Store) Recent(n int) []model.Expense {
	return Recent(s.State().Expenses, n)
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
