package authz

import "github.com/fieldops/worklog-backend-go/internal/pkg/validator"

type CreateRoleRequest struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	EditWindowDays *int   `json:"edit_window_days"`
}

func (r CreateRoleRequest) Validate() error {
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

type ReplaceGrantsRequest struct {
	Codes []string `json:"codes"`
}

type PutOverrideRequest struct {
	Code   string `json:"code"`
	Effect string `json:"effect"`
}

func (r PutOverrideRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "code is required"})
	}
	if r.Effect != string(EffectAllow) && r.Effect != string(EffectDeny) {
		errs = append(errs, validator.ValidationError{Field: "effect", Message: "effect must be ALLOW or DENY"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RoleResponse struct {
	ID             string  `json:"id"`
	CompanyID      *string `json:"company_id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	EditWindowDays *int    `json:"edit_window_days"`
}

type PermissionResponse struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
