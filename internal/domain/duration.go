package domain

import "fmt"

// FormatHMS renders seconds as HH:MM:SS.
func FormatHMS(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// StrPtr returns a pointer to s, or nil when s is empty. Used when mapping
// optional form fields onto nullable columns.
func StrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
