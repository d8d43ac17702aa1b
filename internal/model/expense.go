package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Expense is a single spending record. Amounts are positive; the date carries
// day precision only, normalized to UTC midnight.
type Expense struct {
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"id"`
	Description string    `json:"description"`
	CategoryID  string    `json:"categoryId"`
	Amount      float64   `json:"amount"`
}

// UnmarshalJSON accepts the date as either a full timestamp or a bare
// YYYY-MM-DD string, as found in backup documents from older exports.
func (e *Expense) UnmarshalJSON(data []byte) error {
	type alias Expense
	aux := struct {
		Date string `json:"date"`
		*alias
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339, aux.Date)
	if err != nil {
		t, err = time.Parse("2006-01-02", aux.Date)
		if err != nil {
			return fmt.Errorf("invalid expense date %q", aux.Date)
		}
	}
	e.Date = DateOnly(t)
	return nil
}

// DateOnly truncates a timestamp to UTC midnight of the same calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
