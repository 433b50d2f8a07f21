package authz

import "context"

type AuthzRepository interface {
	GetRoleByID(ctx context.Context, id string) (Role, error)
	ListRoles(ctx context.Context, companyID *string) ([]Role, error)
	CreateRole(ctx context.Context, r Role) (Role, error)

	ListPermissions(ctx context.Context) ([]Permission, error)
	GetGrant(ctx context.Context, roleID string, code string) (*Grant, error)
	ListGrantCodes(ctx context.Context, roleID string) ([]string, error)
	ReplaceGrants(ctx context.Context, roleID string, codes []string) error

	GetOverride(ctx context.Context, userID string, code string) (*Override, error)
	PutOverride(ctx context.Context, ov Override) error
	DeleteOverride(ctx context.Context, userID string, code string) error
}

// RoleService manages the role and permission catalog.
type RoleService interface {
	CreateRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	ListRoles(ctx context.Context) ([]RoleResponse, error)
	ListPermissions(ctx context.Context) ([]PermissionResponse, error)
	ListGrants(ctx context.Context, roleID string) ([]string, error)
	ReplaceGrants(ctx context.Context, roleID string, req ReplaceGrantsRequest) error
	PutOverride(ctx context.Context, userID string, req PutOverrideRequest) error
	DeleteOverride(ctx context.Context, userID string, code string) error
}

// Resolver is the single entry point for permission and edit-window
// decisions. The admin bypass lives here and nowhere else.
type Resolver interface {
	// Authorize never fails open: an unknown principal resolves to false.
	Authorize(ctx context.Context, userID string, code string) (bool, error)
	// Require is Authorize that returns a ForbiddenError on denial.
	Require(ctx context.Context, userID string, code string) error
	// EditWindowDays returns nil for an unlimited window.
	EditWindowDays(ctx context.Context, userID string) (*int, error)
}
