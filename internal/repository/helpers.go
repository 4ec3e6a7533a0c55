package repository

import (
	"database/sql"
	"strings"
	"time"
)

// tsLayout is the stored timestamp format: RFC3339 UTC at second precision,
// which is also what SQLite's strftime('%Y-%m-%dT%H:%M:%SZ','now') emits.
const tsLayout = "2006-01-02T15:04:05Z"

// dayLayout is the stored calendar-date format.
const dayLayout = "2006-01-02"

// parseTS parses a stored timestamp string.
func parseTS(s string) (time.Time, error) {
	return time.Parse(tsLayout, strings.TrimSpace(s))
}

// formatTS renders a time for storage.
func formatTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}

// formatDay renders a calendar date for the day column.
func formatDay(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// parseNullableTS converts a nullable timestamp column into *time.Time.
// NULL and empty map to nil; a malformed value also maps to nil so a bad
// row degrades instead of failing the whole scan.
func parseNullableTS(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := parseTS(s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableStr converts a *string to a driver value (nil for SQL NULL).
func nullableStr(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// strFromNull converts a nullable text column to *string.
func strFromNull(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// intFromNull converts a nullable integer column to *int.
func intFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// boolToInt converts a Go bool for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(tsLayout)
}
