package cli

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// parseDay parses a YYYY-MM-DD flag value, defaulting to today when empty.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	d, err := time.Parse(dayLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", value)
	}
	return d, nil
}

// parseRange parses --from/--to flags. An empty --to means today; an empty
// --from means the last seven days.
func parseRange(fromFlag, toFlag string) (time.Time, time.Time, error) {
	to, err := parseDay(toFlag)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if fromFlag == "" {
		return to.AddDate(0, 0, -6), to, nil
	}
	from, err := time.Parse(dayLayout, fromFlag)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date '%s', expected YYYY-MM-DD", fromFlag)
	}
	return from, to, nil
}
