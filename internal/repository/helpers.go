package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// Instants are stored as RFC3339 strings; SQLite string comparison on
// this layout matches chronological order only within a single UTC
// offset, so all times are normalized to UTC before writing.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}

// nullableStringToPtr converts a scanned NULL-able column to *string.
func nullableStringToPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// ptrToNullable converts a *string to a driver value (nil becomes NULL).
func ptrToNullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
