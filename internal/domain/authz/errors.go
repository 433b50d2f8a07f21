package authz

import (
	"errors"
	"fmt"
)

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleCodeExists     = errors.New("role code already exists")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrForbidden          = errors.New("permission denied")
	ErrInvalidEffect      = errors.New("override effect must be ALLOW or DENY")
)

// ForbiddenError carries the missing permission code so the route layer can
// render a precise message.
type ForbiddenError struct {
	Code string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Code)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}
