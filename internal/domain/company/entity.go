package company

import "time"

// Company is the tenant boundary. Every business entity except the global
// role and permission catalog belongs to exactly one company.
type Company struct {
	ID        string
	Name      string
	Code      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
