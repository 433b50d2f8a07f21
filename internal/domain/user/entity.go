package user

import "time"

// User is the acting principal. CompanyID is nil for platform-level users
// (super admins); everyone else belongs to exactly one company.
type User struct {
	ID           string
	CompanyID    *string
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	RoleID       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Join
	RoleCode *string
}

// Settings holds per-user overrides. EditWindowDays takes precedence over
// the role default when it is a positive value.
type Settings struct {
	UserID         string
	EditWindowDays *int
	UpdatedAt      time.Time
}
