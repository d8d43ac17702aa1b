// Package model defines the core data types shared across the application.
package model

// FallbackCategoryID is the category that absorbs expenses whose original
// category was deleted. The seeder guarantees it exists before any delete
// operation is reachable.
const FallbackCategoryID = "other"

// Category is a named, colored classification bucket for expenses.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

// DefaultCategories returns the fixed catalog seeded on first run.
func DefaultCategories() []Category {
	return []Category{
		{ID: "food", Name: "Food & Dining", Color: "#ef4444", IsDefault: true},
		{ID: "transportation", Name: "Transportation", Color: "#3b82f6", IsDefault: true},
		{ID: "shopping", Name: "Shopping", Color: "#8b5cf6", IsDefault: true},
		{ID: "entertainment", Name: "Entertainment", Color: "#f59e0b", IsDefault: true},
		{ID: "bills", Name: "Bills & Utilities", Color: "#10b981", IsDefault: true},
		{ID: "healthcare", Name: "Healthcare", Color: "#ec4899", IsDefault: true},
		{ID: "education", Name: "Education", Color: "#06b6d4", IsDefault: true},
		{ID: FallbackCategoryID, Name: "Other", Color: "#64748b", IsDefault: true},
	}
}
