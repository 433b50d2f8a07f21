package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workEntryRepository struct {
	db *database.DB
}

func NewWorkEntryRepository(db *database.DB) workentry.WorkEntryRepository {
	return &workEntryRepository{db: db}
}

const workEntryColumns = `
	id, company_id, worker_id, job_id, work_date, ref_no, ref_no_2, amount, channel,
	customer_rate, customer_total, wage_tier_id, wage_rate, wage_total, fees_collected,
	job_code, job_type, note, created_at
`

func scanWorkEntry(row pgx.Row) (workentry.WorkEntry, error) {
	var e workentry.WorkEntry
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.WorkerID, &e.JobID, &e.WorkDate, &e.RefNo, &e.RefNo2, &e.Amount, &e.Channel,
		&e.CustomerRate, &e.CustomerTotal, &e.WageTierID, &e.WageRate, &e.WageTotal, &e.FeesCollected,
		&e.JobCode, &e.JobType, &e.Note, &e.CreatedAt,
	)
	return e, err
}

func (r *workEntryRepository) Insert(ctx context.Context, e workentry.WorkEntry) (workentry.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_entries (
			company_id, worker_id, job_id, work_date, ref_no, ref_no_2, amount, channel,
			customer_rate, customer_total, wage_tier_id, wage_rate, wage_total, fees_collected,
			job_code, job_type, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING ` + workEntryColumns

	created, err := scanWorkEntry(q.QueryRow(ctx, query,
		e.CompanyID, e.WorkerID, e.JobID, e.WorkDate, e.RefNo, e.RefNo2, e.Amount, e.Channel,
		e.CustomerRate, e.CustomerTotal, e.WageTierID, e.WageRate, e.WageTotal, e.FeesCollected,
		e.JobCode, e.JobType, e.Note,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_work_entries_company_ref_no") {
			return workentry.WorkEntry{}, workentry.ErrDuplicateJobReference
		}
		return workentry.WorkEntry{}, fmt.Errorf("failed to insert work entry: %w", err)
	}

	return created, nil
}

func (r *workEntryRepository) GetByID(ctx context.Context, id string, companyID string) (workentry.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workEntryColumns + `
		FROM work_entries
		WHERE id = $1 AND company_id = $2
	`

	e, err := scanWorkEntry(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workentry.WorkEntry{}, workentry.ErrNotFound
		}
		return workentry.WorkEntry{}, fmt.Errorf("failed to get work entry: %w", err)
	}

	return e, nil
}

// GetWithinWindow excludes rows older than minDate at the query level, so
// out-of-window rows look absent to the caller.
func (r *workEntryRepository) GetWithinWindow(ctx context.Context, id string, companyID string, minDate *time.Time) (workentry.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workEntryColumns + `
		FROM work_entries
		WHERE id = $1 AND company_id = $2
		  AND ($3::date IS NULL OR work_date >= $3::date)
	`

	e, err := scanWorkEntry(q.QueryRow(ctx, query, id, companyID, minDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workentry.WorkEntry{}, workentry.ErrNotFound
		}
		return workentry.WorkEntry{}, fmt.Errorf("failed to get work entry: %w", err)
	}

	return e, nil
}

func (r *workEntryRepository) Update(ctx context.Context, e workentry.WorkEntry) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_entries SET
			worker_id = $3, job_id = $4, work_date = $5, ref_no = $6, ref_no_2 = $7,
			amount = $8, channel = $9, customer_rate = $10, customer_total = $11,
			wage_tier_id = $12, wage_rate = $13, wage_total = $14, fees_collected = $15,
			job_code = $16, job_type = $17, note = $18
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query,
		e.ID, e.CompanyID, e.WorkerID, e.JobID, e.WorkDate, e.RefNo, e.RefNo2,
		e.Amount, e.Channel, e.CustomerRate, e.CustomerTotal,
		e.WageTierID, e.WageRate, e.WageTotal, e.FeesCollected,
		e.JobCode, e.JobType, e.Note,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_work_entries_company_ref_no") {
			return 0, workentry.ErrDuplicateJobReference
		}
		return 0, fmt.Errorf("failed to update work entry: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *workEntryRepository) Delete(ctx context.Context, id string, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_entries WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete work entry: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *workEntryRepository) List(ctx context.Context, companyID string, filter workentry.ListFilter) ([]workentry.WorkEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workEntryColumns + `
		FROM work_entries
		WHERE company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.WorkerID != nil {
		query += fmt.Sprintf(" AND worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND work_date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND work_date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.MinDate != nil {
		query += fmt.Sprintf(" AND work_date >= $%d", argIdx)
		args = append(args, *filter.MinDate)
		argIdx++
	}
	query += " ORDER BY work_date DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work entries: %w", err)
	}
	defer rows.Close()

	var entries []workentry.WorkEntry
	for rows.Next() {
		e, err := scanWorkEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}
