package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/domain/company"
	"github.com/fieldops/worklog-backend-go/internal/handler/http/response"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Create implements CompanyHandler.
func (c *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq company.CreateCompanyRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := createReq.Validate(); err != nil {
		slog.Error("CreateCompany validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	companyResponse, err := c.companyService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Company created successfully", "company_id", companyResponse.ID)
	response.Created(w, "Company created successfully", companyResponse)
}

// List implements CompanyHandler.
func (c *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := c.companyService.List(r.Context())
	if err != nil {
		slog.Error("ListCompanies service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companies)
}

// GetMine implements CompanyHandler.
func (c *CompanyHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, err := jwt.PrincipalFromContext(r.Context())
	if err != nil {
		slog.Error("GetMyCompany principal error", "error", err)
		response.Unauthorized(w, "Invalid token claims")
		return
	}

	companyResponse, err := c.companyService.GetByID(r.Context(), principal.CompanyID)
	if err != nil {
		slog.Error("GetMyCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, companyResponse)
}
