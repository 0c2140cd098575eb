package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

const currentUserKey = "current_user"

// Setting returns a stored value and whether it was present.
func (s *Store) Setting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores a value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes a value. Missing keys are not an error.
func (s *Store) DeleteSetting(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete setting %s: %w", key, err)
	}
	return nil
}

// CurrentUser returns the logged-in username, or "" when nobody is.
func (s *Store) CurrentUser() (string, error) {
	name, _, err := s.Setting(currentUserKey)
	return name, err
}

// SetCurrentUser records who is logged in on this machine.
func (s *Store) SetCurrentUser(username string) error {
	return s.SetSetting(currentUserKey, username)
}

// ClearCurrentUser logs out.
func (s *Store) ClearCurrentUser() error {
	return s.DeleteSetting(currentUserKey)
}
