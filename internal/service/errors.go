package service

import "errors"

var (
	// ErrInvalidLogin covers both unknown usernames and wrong passwords,
	// deliberately indistinguishable to the caller.
	ErrInvalidLogin = errors.New("invalid username or password")

	// ErrInactiveUser rejects logins for deactivated accounts.
	ErrInactiveUser = errors.New("user account is inactive")

	// ErrNoActivities means tracking cannot start because the catalog has
	// no active activities.
	ErrNoActivities = errors.New("no active activities configured")

	// ErrActivityInactive rejects starting a deactivated activity.
	ErrActivityInactive = errors.New("activity is not active")

	// ErrSubactivityMismatch rejects a subactivity that is inactive or
	// belongs to a different activity.
	ErrSubactivityMismatch = errors.New("subactivity does not belong to activity or is inactive")

	// ErrNothingOpen means a stop was requested with no running entry.
	ErrNothingOpen = errors.New("no activity is running")

	// ErrInvalidRange rejects reports where the range end precedes the start.
	ErrInvalidRange = errors.New("range end precedes start")
)
