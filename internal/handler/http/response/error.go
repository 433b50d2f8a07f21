package response

import (
	"errors"
	"net/http"

	"github.com/fieldops/worklog-backend-go/internal/domain/auth"
	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/domain/company"
	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/domain/user"
	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/fieldops/worklog-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Storage faults outside
// the taxonomy fall through to an opaque 500 so implementation detail never
// leaks to clients.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var forbidden *authz.ForbiddenError
	if errors.As(err, &forbidden) {
		Forbidden(w, "Missing permission: "+forbidden.Code)
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Work entry domain errors
	case errors.Is(err, workentry.ErrOutOfEditWindow):
		// The row exists but is untouchable: a 403, never a 404.
		Forbidden(w, "Entry is outside your editable date range")
	case errors.Is(err, workentry.ErrRateEditForbidden):
		Forbidden(w, "Changing rates requires the rate editing permission")
	case errors.Is(err, workentry.ErrNotFound):
		NotFound(w, "Work entry not found")
	case errors.Is(err, workentry.ErrDuplicateJobReference):
		Conflict(w, "Job reference number already used")
	case errors.Is(err, workentry.ErrInvalidJobReference):
		BadRequest(w, "Unknown job code", nil)
	case errors.Is(err, workentry.ErrInvalidRate):
		BadRequest(w, "Rate must be a positive number", nil)
	case errors.Is(err, workentry.ErrRateResolutionFailed):
		BadRequest(w, "Job and tier data did not resolve to a positive rate", nil)
	case errors.Is(err, workentry.ErrInvalidFees):
		BadRequest(w, "Fees must not be negative", nil)
	case errors.Is(err, workentry.ErrInvalidNumber):
		BadRequest(w, "Invalid numeric value", nil)

	// Catalog domain errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, job.ErrJobCodeExists):
		Conflict(w, "Job code already exists")
	case errors.Is(err, job.ErrTierNotFound):
		NotFound(w, "Wage tier not found")
	case errors.Is(err, job.ErrTierCodeExists):
		Conflict(w, "Wage tier code already exists")
	case errors.Is(err, job.ErrWageRateNotFound):
		NotFound(w, "Wage rate not found")

	// Authz domain errors
	case errors.Is(err, authz.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, authz.ErrRoleCodeExists):
		Conflict(w, "Role code already exists")
	case errors.Is(err, authz.ErrPermissionNotFound):
		NotFound(w, "Permission not found")
	case errors.Is(err, authz.ErrInvalidEffect):
		BadRequest(w, "Effect must be ALLOW or DENY", nil)

	// User / company domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already taken")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyCodeExists):
		Conflict(w, "Company code already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
