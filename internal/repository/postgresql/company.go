package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/worklog-backend-go/internal/domain/company"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (name, code)
		VALUES ($1, $2)
		RETURNING id, name, code, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query, c.Name, c.Code).Scan(
		&created.ID, &created.Name, &created.Code, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_companies_code") {
			return company.Company{}, company.ErrCompanyCodeExists
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}

	return created, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

func (r *companyRepository) GetByCode(ctx context.Context, code string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM companies
		WHERE code = $1
	`

	var c company.Company
	err := q.QueryRow(ctx, query, code).Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return c, nil
}

func (r *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, code, created_at, updated_at
		FROM companies
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var c company.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}

	return companies, nil
}
