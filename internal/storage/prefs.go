package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Preference keys.
const (
	PrefTheme    = "theme"
	PrefLanguage = "language"
)

// SetPreference stores value under key, replacing any previous value.
func (s *Store) SetPreference(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save preference %s: %w", key, err)
	}
	return nil
}

// Preference returns the stored value for key, or fallback if it was never set.
func (s *Store) Preference(key, fallback string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("storage: cannot read preference %s: %w", key, err)
	}
	return value, nil
}

// Theme returns the saved theme name.
func (s *Store) Theme(fallback string) (string, error) {
	return s.Preference(PrefTheme, fallback)
}

// SetTheme saves the theme name.
func (s *Store) SetTheme(theme string) error {
	return s.SetPreference(PrefTheme, theme)
}

// Language returns the saved language code.
func (s *Store) Language(fallback string) (string, error) {
	return s.Preference(PrefLanguage, fallback)
}

// SetLanguage saves the language code.
func (s *Store) SetLanguage(lang string) error {
	return s.SetPreference(PrefLanguage, lang)
}
