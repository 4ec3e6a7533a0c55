package repository

import "errors"

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInUse is returned when a hard delete is blocked because other
	// rows still reference the target.
	ErrInUse = errors.New("referenced by existing rows")

	// ErrDuplicate is returned when a uniqueness constraint would be
	// violated (username, activity name, campaign name).
	ErrDuplicate = errors.New("already exists")

	// ErrCorruptTimestamp is returned when a stored timestamp cannot be
	// parsed. Callers may degrade instead of failing the whole operation.
	ErrCorruptTimestamp = errors.New("corrupt stored timestamp")
)
