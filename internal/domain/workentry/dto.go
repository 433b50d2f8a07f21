package workentry

import (
	"fmt"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Numeric fields arrive as strings (the clients post form values) and are
// coerced by the service; a field that fails to coerce is an
// ErrInvalidNumber, not a transport error.
type CreateWorkEntryRequest struct {
	WorkerID      string  `json:"worker_id"`
	JobCode       string  `json:"job_code"`
	WorkDate      string  `json:"work_date"`
	RefNo         string  `json:"ref_no"`
	RefNo2        *string `json:"ref_no_2"`
	Amount        string  `json:"amount"`
	Channel       string  `json:"channel"`
	CustomerRate  string  `json:"customer_rate"`
	CustomerTotal string  `json:"customer_total"`
	WageTierID    string  `json:"wage_tier_id"`
	WageRate      string  `json:"wage_rate"`
	WageTotal     string  `json:"wage_total"`
	FeesCollected *string `json:"fees_collected"`
	Note          *string `json:"note"`
}

func (r CreateWorkEntryRequest) Validate() error {
	var errs validator.ValidationErrors
	for field, value := range map[string]string{
		"worker_id":      r.WorkerID,
		"job_code":       r.JobCode,
		"ref_no":         r.RefNo,
		"amount":         r.Amount,
		"customer_rate":  r.CustomerRate,
		"customer_total": r.CustomerTotal,
		"wage_tier_id":   r.WageTierID,
		"wage_rate":      r.WageRate,
		"wage_total":     r.WageTotal,
	} {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " is required"})
		}
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
	}
	if r.Channel != string(ChannelCash) && r.Channel != string(ChannelBank) {
		errs = append(errs, validator.ValidationError{Field: "channel", Message: "channel must be cash or bank"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateWorkEntryRequest struct {
	WorkerID      string  `json:"worker_id"`
	JobCode       string  `json:"job_code"`
	WorkDate      string  `json:"work_date"`
	RefNo         string  `json:"ref_no"`
	RefNo2        *string `json:"ref_no_2"`
	Amount        string  `json:"amount"`
	Channel       string  `json:"channel"`
	CustomerRate  *string `json:"customer_rate"`
	WageTierID    *string `json:"wage_tier_id"`
	WageRate      *string `json:"wage_rate"`
	FeesCollected *string `json:"fees_collected"`
	Note          *string `json:"note"`
}

func (r UpdateWorkEntryRequest) Validate() error {
	var errs validator.ValidationErrors
	for field, value := range map[string]string{
		"worker_id": r.WorkerID,
		"job_code":  r.JobCode,
		"ref_no":    r.RefNo,
		"amount":    r.Amount,
	} {
		if validator.IsEmpty(value) {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " is required"})
		}
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be YYYY-MM-DD"})
	}
	if r.Channel != string(ChannelCash) && r.Channel != string(ChannelBank) {
		errs = append(errs, validator.ValidationError{Field: "channel", Message: "channel must be cash or bank"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParseAmount coerces a required numeric field. Wraps ErrInvalidNumber so
// callers can map it without caring which field failed.
func ParseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", field, ErrInvalidNumber)
	}
	return d, nil
}

type ListFilter struct {
	WorkerID *string
	DateFrom *time.Time
	DateTo   *time.Time
	// MinDate is the edit-window floor for limited principals; nil means
	// the unlimited window.
	MinDate *time.Time
}

type CreateWorkEntryResponse struct {
	ID            string          `json:"id"`
	FeesCollected decimal.Decimal `json:"fees_collected"`
}

type UpdateWorkEntryResponse struct {
	Changes       int64           `json:"changes"`
	CanEditRates  bool            `json:"can_edit_rates"`
	FeesCollected decimal.Decimal `json:"fees_collected"`
}

type DeleteWorkEntryResponse struct {
	Changes int64 `json:"changes"`
}

type WorkEntryResponse struct {
	ID            string          `json:"id"`
	WorkerID      string          `json:"worker_id"`
	JobID         string          `json:"job_id"`
	JobCode       string          `json:"job_code"`
	JobType       string          `json:"job_type"`
	WorkDate      string          `json:"work_date"`
	RefNo         string          `json:"ref_no"`
	RefNo2        *string         `json:"ref_no_2"`
	Amount        decimal.Decimal `json:"amount"`
	Channel       string          `json:"channel"`
	CustomerRate  decimal.Decimal `json:"customer_rate"`
	CustomerTotal decimal.Decimal `json:"customer_total"`
	WageTierID    string          `json:"wage_tier_id"`
	WageRate      decimal.Decimal `json:"wage_rate"`
	WageTotal     decimal.Decimal `json:"wage_total"`
	FeesCollected decimal.Decimal `json:"fees_collected"`
	Note          *string         `json:"note"`
}
