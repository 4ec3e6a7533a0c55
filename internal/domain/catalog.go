package domain

import "time"

// Activity is a named, orderable activity agents can clock into.
// Deactivation is a soft delete: the row stays for historical reporting.
type Activity struct {
	ID           string
	Name         string
	Description  string
	DisplayOrder int
	Active       bool
}

// Subactivity refines an activity ("Seguimiento" → "Reclamo").
type Subactivity struct {
	ID           string
	ActivityID   string
	Name         string
	DisplayOrder int
	Active       bool
}

// Campaign groups users into a team a supervisor reports on.
type Campaign struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Role names a permission level (Administrador, Supervisor, Asesor).
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// User is an operator account. PasswordHash holds a bcrypt hash; the clear
// password never leaves the login path.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	RoleID       *string
	CampaignID   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserDetail is a User joined with role and campaign names for listings.
type UserDetail struct {
	User
	RoleName     *string
	CampaignName *string
}
