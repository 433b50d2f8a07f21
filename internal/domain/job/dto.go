package job

import (
	"github.com/fieldops/worklog-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateJobRequest struct {
	Code        string `json:"code"`
	JobType     string `json:"job_type"`
	NormalPrice string `json:"normal_price"`
}

func (r CreateJobRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidJobCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be 2-30 uppercase characters"})
	}
	if validator.IsEmpty(r.JobType) {
		errs = append(errs, validator.ValidationError{Field: "job_type", Message: "job_type is required"})
	}
	if price, err := decimal.NewFromString(r.NormalPrice); err != nil || !price.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "normal_price", Message: "normal_price must be a positive number"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateJobRequest struct {
	JobType     *string `json:"job_type"`
	NormalPrice *string `json:"normal_price"`
	IsActive    *bool   `json:"is_active"`
}

type CreateTierRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

func (r CreateTierRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetWageRateRequest struct {
	JobID  string `json:"job_id"`
	TierID string `json:"tier_id"`
	Rate   string `json:"rate"`
}

func (r SetWageRateRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{Field: "job_id", Message: "job_id is required"})
	}
	if validator.IsEmpty(r.TierID) {
		errs = append(errs, validator.ValidationError{Field: "tier_id", Message: "tier_id is required"})
	}
	if rate, err := decimal.NewFromString(r.Rate); err != nil || !rate.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "rate", Message: "rate must be a positive number"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JobResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	JobType     string          `json:"job_type"`
	NormalPrice decimal.Decimal `json:"normal_price"`
	IsActive    bool            `json:"is_active"`
}

type TierResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

type WageRateResponse struct {
	ID     string          `json:"id"`
	JobID  string          `json:"job_id"`
	TierID string          `json:"tier_id"`
	Rate   decimal.Decimal `json:"rate"`
}
