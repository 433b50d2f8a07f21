package company

import "context"

type CompanyRepository interface {
	Create(ctx context.Context, c Company) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	GetByCode(ctx context.Context, code string) (Company, error)
	List(ctx context.Context) ([]Company, error)
}

type CompanyService interface {
	Create(ctx context.Context, req CreateCompanyRequest) (CompanyResponse, error)
	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	List(ctx context.Context) ([]CompanyResponse, error)
}
