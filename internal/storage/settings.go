package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/tallyhq/tally/internal/common"
	"github.com/tallyhq/tally/internal/model"
)

// GetSetting returns the setting stored under key.
func (s *SQLiteStorage) GetSetting(ctx context.Context, key string) (*model.Setting, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var setting model.Setting
	var value sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, key, value FROM settings WHERE key = ?`, key,
	).Scan(&setting.ID, &setting.Key, &value)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: setting %s", common.ErrNotFound, key)
	}
	if err != nil {
		return nil, storageErr("query setting", err)
	}
	if value.Valid {
		setting.Value = []byte(value.String)
	}
	return &setting, nil
}

// SetSetting stores a value under key, creating the setting if needed.
func (s *SQLiteStorage) SetSetting(ctx context.Context, key string, value []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}

	query := `
		INSERT INTO settings (id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, query, uuid.NewString(), key, string(value)); err != nil {
		return storageErr("set setting", err)
	}
	return nil
}

// ListSettings returns all settings.
func (s *SQLiteStorage) ListSettings(ctx context.Context) ([]model.Setting, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, storageErr("query settings", err)
	}
	defer rows.Close()

	settings := []model.Setting{}
	for rows.Next() {
		var setting model.Setting
		var value sql.NullString
		if err := rows.Scan(&setting.ID, &setting.Key, &value); err != nil {
			return nil, storageErr("scan setting", err)
		}
		if value.Valid {
			setting.Value = []byte(value.String)
		}
		settings = append(settings, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate settings", err)
	}

	return settings, nil
}
