package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidBackup is returned when a backup document fails validation.
var ErrInvalidBackup = errors.New("invalid backup document")

// BackupVersion is the format version written by export. Import accepts
// documents up to and including this version; version 0 (no version field)
// covers documents produced before the field existed.
const BackupVersion = 1

// Backup is the self-contained document produced by export and consumed by
// import. It is the complete and only supported backup format.
type Backup struct {
	ExportedAt time.Time  `json:"exportDate"`
	Expenses   []Expense  `json:"expenses"`
	Categories []Category `json:"categories"`
	Settings   []Setting  `json:"settings,omitempty"`
	Version    int        `json:"version"`
}

// ParseBackup decodes and validates a backup document.
func ParseBackup(data []byte) (*Backup, error) {
	// Decode into a raw map first so a missing key can be told apart from an
	// empty list.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	var doc Backup
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	if _, ok := raw["expenses"]; !ok {
		return nil, fmt.Errorf("%w: missing expenses", ErrInvalidBackup)
	}
	if _, ok := raw["categories"]; !ok {
		return nil, fmt.Errorf("%w: missing categories", ErrInvalidBackup)
	}
	if doc.Version > BackupVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, doc.Version)
	}

	return &doc, nil
}
