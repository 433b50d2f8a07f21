package workentry

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentChannel enum
type PaymentChannel string

const (
	ChannelCash PaymentChannel = "cash"
	ChannelBank PaymentChannel = "bank"
)

// WorkEntry is the transactional record of one day of paid work. Rate and
// total fields are snapshots frozen at write time: later changes to a job's
// normal price or a tier's wage rate never move them. RefNo is unique per
// company.
type WorkEntry struct {
	ID        string
	CompanyID string
	WorkerID  string
	JobID     string
	WorkDate  time.Time
	RefNo     string
	RefNo2    *string
	Amount    decimal.Decimal
	Channel   PaymentChannel

	CustomerRate  decimal.Decimal
	CustomerTotal decimal.Decimal
	WageTierID    string
	WageRate      decimal.Decimal
	WageTotal     decimal.Decimal
	FeesCollected decimal.Decimal

	// Mirrors of the job row at write time, kept for exports that predate
	// the snapshot columns.
	JobCode string
	JobType string

	Note      *string
	CreatedAt time.Time
}
