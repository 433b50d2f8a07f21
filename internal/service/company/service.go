package company

import (
	"context"

	"github.com/fieldops/worklog-backend-go/internal/domain/company"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
)

type CompanyServiceImpl struct {
	db          *database.DB
	companyRepo company.CompanyRepository
}

func NewCompanyService(db *database.DB, companyRepo company.CompanyRepository) company.CompanyService {
	return &CompanyServiceImpl{db: db, companyRepo: companyRepo}
}

func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	created, err := s.companyRepo.Create(ctx, company.Company{
		Name: req.Name,
		Code: req.Code,
	})
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *CompanyServiceImpl) GetByID(ctx context.Context, id string) (company.CompanyResponse, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return company.CompanyResponse{}, err
	}
	return mapToResponse(c), nil
}

func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.CompanyResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]company.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, mapToResponse(c))
	}
	return result, nil
}

func mapToResponse(c company.Company) company.CompanyResponse {
	return company.CompanyResponse{ID: c.ID, Name: c.Name, Code: c.Code}
}
