package job

import (
	"context"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
)

type JobServiceImpl struct {
	db       *database.DB
	jobRepo  job.JobRepository
	resolver authz.Resolver
}

func NewJobService(db *database.DB, jobRepo job.JobRepository, resolver authz.Resolver) job.JobService {
	return &JobServiceImpl{db: db, jobRepo: jobRepo, resolver: resolver}
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, req job.CreateJobRequest) (job.JobResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return job.JobResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermJobManage); err != nil {
		return job.JobResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return job.JobResponse{}, err
	}

	price, _ := decimal.NewFromString(req.NormalPrice)
	created, err := s.jobRepo.Create(ctx, job.Job{
		CompanyID:   principal.CompanyID,
		Code:        req.Code,
		JobType:     req.JobType,
		NormalPrice: price,
		IsActive:    true,
	})
	if err != nil {
		return job.JobResponse{}, err
	}

	return mapJobToResponse(created), nil
}

func (s *JobServiceImpl) ListJobs(ctx context.Context, activeOnly bool) ([]job.JobResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobRepo.ListByCompanyID(ctx, principal.CompanyID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]job.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		result = append(result, mapJobToResponse(j))
	}
	return result, nil
}

// UpdateJob changes the rate source for future entries only: existing work
// entries keep their frozen snapshots.
func (s *JobServiceImpl) UpdateJob(ctx context.Context, id string, req job.UpdateJobRequest) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermJobManage); err != nil {
		return err
	}

	return s.jobRepo.Update(ctx, principal.CompanyID, id, req)
}

func (s *JobServiceImpl) CreateTier(ctx context.Context, req job.CreateTierRequest) (job.TierResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return job.TierResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermJobManage); err != nil {
		return job.TierResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return job.TierResponse{}, err
	}

	created, err := s.jobRepo.CreateTier(ctx, job.WageTier{
		CompanyID: principal.CompanyID,
		Code:      req.Code,
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  true,
	})
	if err != nil {
		return job.TierResponse{}, err
	}

	return mapTierToResponse(created), nil
}

func (s *JobServiceImpl) ListTiers(ctx context.Context, activeOnly bool) ([]job.TierResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tiers, err := s.jobRepo.ListTiers(ctx, principal.CompanyID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]job.TierResponse, 0, len(tiers))
	for _, t := range tiers {
		result = append(result, mapTierToResponse(t))
	}
	return result, nil
}

// SetWageRate upserts the wage for one (job, tier) pair. Both sides must
// belong to the caller's company.
func (s *JobServiceImpl) SetWageRate(ctx context.Context, req job.SetWageRateRequest) (job.WageRateResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return job.WageRateResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermJobManage); err != nil {
		return job.WageRateResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return job.WageRateResponse{}, err
	}

	if _, err := s.jobRepo.GetByID(ctx, req.JobID, principal.CompanyID); err != nil {
		return job.WageRateResponse{}, err
	}
	if _, err := s.jobRepo.GetTierByID(ctx, req.TierID, principal.CompanyID); err != nil {
		return job.WageRateResponse{}, err
	}

	rate, _ := decimal.NewFromString(req.Rate)
	updated, err := s.jobRepo.UpsertWageRate(ctx, job.WageRate{
		JobID:  req.JobID,
		TierID: req.TierID,
		Rate:   rate,
	})
	if err != nil {
		return job.WageRateResponse{}, err
	}

	return job.WageRateResponse{
		ID:     updated.ID,
		JobID:  updated.JobID,
		TierID: updated.TierID,
		Rate:   updated.Rate,
	}, nil
}

func (s *JobServiceImpl) ListWageRates(ctx context.Context, jobID string) ([]job.WageRateResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	wageRates, err := s.jobRepo.ListWageRates(ctx, principal.CompanyID, jobID)
	if err != nil {
		return nil, err
	}

	result := make([]job.WageRateResponse, 0, len(wageRates))
	for _, wr := range wageRates {
		result = append(result, job.WageRateResponse{
			ID:     wr.ID,
			JobID:  wr.JobID,
			TierID: wr.TierID,
			Rate:   wr.Rate,
		})
	}
	return result, nil
}

func mapJobToResponse(j job.Job) job.JobResponse {
	return job.JobResponse{
		ID:          j.ID,
		Code:        j.Code,
		JobType:     j.JobType,
		NormalPrice: j.NormalPrice,
		IsActive:    j.IsActive,
	}
}

func mapTierToResponse(t job.WageTier) job.TierResponse {
	return job.TierResponse{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		SortOrder: t.SortOrder,
		IsActive:  t.IsActive,
	}
}
