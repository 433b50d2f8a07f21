package job

import (
	"time"

	"github.com/shopspring/decimal"
)

// Job is a billable service type. NormalPrice is the customer rate source
// consulted at work-entry write time; it is never re-joined for historical
// totals afterwards.
type Job struct {
	ID          string
	CompanyID   string
	Code        string
	JobType     string
	NormalPrice decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WageTier is a per-company pay grade bucket (T1/T2/T3 style).
type WageTier struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	SortOrder int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WageRate is the wage paid for one (job, tier) pair, independent from the
// job's customer price. Unique per pair.
type WageRate struct {
	ID        string
	JobID     string
	TierID    string
	Rate      decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
