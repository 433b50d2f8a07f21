package company

import "github.com/fieldops/worklog-backend-go/internal/pkg/validator"

type CreateCompanyRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

func (r CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidCompanyCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code must be 2-20 characters (letters, digits, '-', '_')"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompanyResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
