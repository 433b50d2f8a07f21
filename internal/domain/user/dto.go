package user

import "github.com/fieldops/worklog-backend-go/internal/pkg/validator"

type CreateUserRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	RoleID   *string `json:"role_id"`
	IsAdmin  bool    `json:"is_admin"`
}

func (r CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "username must be 3-50 characters"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "invalid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateUserRequest struct {
	RoleID   *string `json:"role_id"`
	IsActive *bool   `json:"is_active"`
}

type UpdateSettingsRequest struct {
	EditWindowDays *int `json:"edit_window_days"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	CompanyID *string `json:"company_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"is_active"`
	IsAdmin   bool    `json:"is_admin"`
	RoleID    *string `json:"role_id"`
	RoleCode  *string `json:"role_code"`
}
