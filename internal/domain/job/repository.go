package job

import "context"

// JobRepository reads and writes the rate source tables. All methods are
// company-scoped to prevent cross-tenant access.
type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id string, companyID string) (Job, error)
	GetByCode(ctx context.Context, companyID string, code string) (Job, error)
	ListByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]Job, error)
	Update(ctx context.Context, companyID string, id string, req UpdateJobRequest) error

	CreateTier(ctx context.Context, t WageTier) (WageTier, error)
	GetTierByID(ctx context.Context, id string, companyID string) (WageTier, error)
	ListTiers(ctx context.Context, companyID string, activeOnly bool) ([]WageTier, error)

	// GetWageRate returns ErrWageRateNotFound when no row exists for the
	// pair; callers decide whether that is a zero rate or a hard failure.
	GetWageRate(ctx context.Context, jobID string, tierID string) (WageRate, error)
	UpsertWageRate(ctx context.Context, wr WageRate) (WageRate, error)
	ListWageRates(ctx context.Context, companyID string, jobID string) ([]WageRate, error)
}

type JobService interface {
	CreateJob(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	ListJobs(ctx context.Context, activeOnly bool) ([]JobResponse, error)
	UpdateJob(ctx context.Context, id string, req UpdateJobRequest) error
	CreateTier(ctx context.Context, req CreateTierRequest) (TierResponse, error)
	ListTiers(ctx context.Context, activeOnly bool) ([]TierResponse, error)
	SetWageRate(ctx context.Context, req SetWageRateRequest) (WageRateResponse, error)
	ListWageRates(ctx context.Context, jobID string) ([]WageRateResponse, error)
}
