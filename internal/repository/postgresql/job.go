package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepository{db: db}
}

// ========== JOBS ==========

func (r *jobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO jobs (company_id, code, job_type, normal_price, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, code, job_type, normal_price, is_active, created_at, updated_at
	`

	var created job.Job
	err := q.QueryRow(ctx, query, j.CompanyID, j.Code, j.JobType, j.NormalPrice, j.IsActive).Scan(
		&created.ID, &created.CompanyID, &created.Code, &created.JobType, &created.NormalPrice,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_jobs_company_code") {
			return job.Job{}, job.ErrJobCodeExists
		}
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}

	return created, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string, companyID string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, job_type, normal_price, is_active, created_at, updated_at
		FROM jobs
		WHERE id = $1 AND company_id = $2
	`

	var j job.Job
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&j.ID, &j.CompanyID, &j.Code, &j.JobType, &j.NormalPrice, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	return j, nil
}

func (r *jobRepository) GetByCode(ctx context.Context, companyID string, code string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, job_type, normal_price, is_active, created_at, updated_at
		FROM jobs
		WHERE company_id = $1 AND code = $2
	`

	var j job.Job
	err := q.QueryRow(ctx, query, companyID, code).Scan(
		&j.ID, &j.CompanyID, &j.Code, &j.JobType, &j.NormalPrice, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job by code: %w", err)
	}

	return j, nil
}

func (r *jobRepository) ListByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, job_type, normal_price, is_active, created_at, updated_at
		FROM jobs
		WHERE company_id = $1
	`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY code"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.Code, &j.JobType, &j.NormalPrice, &j.IsActive, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, nil
}

func (r *jobRepository) Update(ctx context.Context, companyID string, id string, req job.UpdateJobRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id, companyID}
	argIdx := 3

	if req.JobType != nil {
		setParts = append(setParts, fmt.Sprintf("job_type = $%d", argIdx))
		args = append(args, *req.JobType)
		argIdx++
	}
	if req.NormalPrice != nil {
		price, err := decimal.NewFromString(*req.NormalPrice)
		if err != nil {
			return fmt.Errorf("invalid normal_price: %w", err)
		}
		setParts = append(setParts, fmt.Sprintf("normal_price = $%d", argIdx))
		args = append(args, price)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE jobs
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.ErrJobNotFound
		}
		return fmt.Errorf("failed to update job: %w", err)
	}

	return nil
}

// ========== WAGE TIERS ==========

func (r *jobRepository) CreateTier(ctx context.Context, t job.WageTier) (job.WageTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_tiers (company_id, code, name, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, code, name, sort_order, is_active, created_at, updated_at
	`

	var created job.WageTier
	err := q.QueryRow(ctx, query, t.CompanyID, t.Code, t.Name, t.SortOrder, t.IsActive).Scan(
		&created.ID, &created.CompanyID, &created.Code, &created.Name, &created.SortOrder,
		&created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_wage_tiers_company_code") {
			return job.WageTier{}, job.ErrTierCodeExists
		}
		return job.WageTier{}, fmt.Errorf("failed to create wage tier: %w", err)
	}

	return created, nil
}

func (r *jobRepository) GetTierByID(ctx context.Context, id string, companyID string) (job.WageTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, sort_order, is_active, created_at, updated_at
		FROM wage_tiers
		WHERE id = $1 AND company_id = $2
	`

	var t job.WageTier
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.SortOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.WageTier{}, job.ErrTierNotFound
		}
		return job.WageTier{}, fmt.Errorf("failed to get wage tier: %w", err)
	}

	return t, nil
}

func (r *jobRepository) ListTiers(ctx context.Context, companyID string, activeOnly bool) ([]job.WageTier, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, sort_order, is_active, created_at, updated_at
		FROM wage_tiers
		WHERE company_id = $1
	`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY sort_order, code"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage tiers: %w", err)
	}
	defer rows.Close()

	var tiers []job.WageTier
	for rows.Next() {
		var t job.WageTier
		if err := rows.Scan(
			&t.ID, &t.CompanyID, &t.Code, &t.Name, &t.SortOrder, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan wage tier: %w", err)
		}
		tiers = append(tiers, t)
	}

	return tiers, nil
}

// ========== WAGE RATES ==========

func (r *jobRepository) GetWageRate(ctx context.Context, jobID string, tierID string) (job.WageRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, job_id, tier_id, rate, created_at, updated_at
		FROM job_wage_rates
		WHERE job_id = $1 AND tier_id = $2
	`

	var wr job.WageRate
	err := q.QueryRow(ctx, query, jobID, tierID).Scan(
		&wr.ID, &wr.JobID, &wr.TierID, &wr.Rate, &wr.CreatedAt, &wr.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.WageRate{}, job.ErrWageRateNotFound
		}
		return job.WageRate{}, fmt.Errorf("failed to get wage rate: %w", err)
	}

	return wr, nil
}

func (r *jobRepository) UpsertWageRate(ctx context.Context, wr job.WageRate) (job.WageRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO job_wage_rates (job_id, tier_id, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_id, tier_id) DO UPDATE SET
			rate = EXCLUDED.rate,
			updated_at = NOW()
		RETURNING id, job_id, tier_id, rate, created_at, updated_at
	`

	var updated job.WageRate
	err := q.QueryRow(ctx, query, wr.JobID, wr.TierID, wr.Rate).Scan(
		&updated.ID, &updated.JobID, &updated.TierID, &updated.Rate, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		return job.WageRate{}, fmt.Errorf("failed to upsert wage rate: %w", err)
	}

	return updated, nil
}

func (r *jobRepository) ListWageRates(ctx context.Context, companyID string, jobID string) ([]job.WageRate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT jwr.id, jwr.job_id, jwr.tier_id, jwr.rate, jwr.created_at, jwr.updated_at
		FROM job_wage_rates jwr
		JOIN jobs j ON j.id = jwr.job_id
		WHERE j.company_id = $1 AND jwr.job_id = $2
		ORDER BY jwr.tier_id
	`

	rows, err := q.Query(ctx, query, companyID, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage rates: %w", err)
	}
	defer rows.Close()

	var wageRates []job.WageRate
	for rows.Next() {
		var wr job.WageRate
		if err := rows.Scan(&wr.ID, &wr.JobID, &wr.TierID, &wr.Rate, &wr.CreatedAt, &wr.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wage rate: %w", err)
		}
		wageRates = append(wageRates, wr)
	}

	return wageRates, nil
}
