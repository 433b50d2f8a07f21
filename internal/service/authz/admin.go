package authz

import (
	"context"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/fieldops/worklog-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type RoleServiceImpl struct {
	db        *database.DB
	authzRepo authz.AuthzRepository
}

func NewRoleService(db *database.DB, authzRepo authz.AuthzRepository) authz.RoleService {
	return &RoleServiceImpl{db: db, authzRepo: authzRepo}
}

// CreateRole adds a company-scoped role. Global roles ship with the schema
// and are not created through the API.
func (s *RoleServiceImpl) CreateRole(ctx context.Context, req authz.CreateRoleRequest) (authz.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return authz.RoleResponse{}, err
	}

	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return authz.RoleResponse{}, err
	}

	companyID := principal.CompanyID
	created, err := s.authzRepo.CreateRole(ctx, authz.Role{
		CompanyID:      &companyID,
		Code:           req.Code,
		Name:           req.Name,
		EditWindowDays: req.EditWindowDays,
	})
	if err != nil {
		return authz.RoleResponse{}, err
	}

	return mapRoleToResponse(created), nil
}

// ListRoles returns the global roles plus the caller's company roles.
func (s *RoleServiceImpl) ListRoles(ctx context.Context) ([]authz.RoleResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := s.authzRepo.ListRoles(ctx, &principal.CompanyID)
	if err != nil {
		return nil, err
	}

	result := make([]authz.RoleResponse, 0, len(roles))
	for _, r := range roles {
		result = append(result, mapRoleToResponse(r))
	}
	return result, nil
}

func (s *RoleServiceImpl) ListPermissions(ctx context.Context) ([]authz.PermissionResponse, error) {
	permissions, err := s.authzRepo.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]authz.PermissionResponse, 0, len(permissions))
	for _, p := range permissions {
		result = append(result, authz.PermissionResponse{
			ID:       p.ID,
			Code:     p.Code,
			Name:     p.Name,
			IsActive: p.IsActive,
		})
	}
	return result, nil
}

func (s *RoleServiceImpl) ListGrants(ctx context.Context, roleID string) ([]string, error) {
	return s.authzRepo.ListGrantCodes(ctx, roleID)
}

// ReplaceGrants swaps a role's whole permission set in one transaction so a
// failure mid-batch cannot leave the role with zero permissions.
func (s *RoleServiceImpl) ReplaceGrants(ctx context.Context, roleID string, req authz.ReplaceGrantsRequest) error {
	if _, err := s.authzRepo.GetRoleByID(ctx, roleID); err != nil {
		return err
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		return s.authzRepo.ReplaceGrants(postgresql.ContextWithTx(ctx, tx), roleID, req.Codes)
	})
}

func (s *RoleServiceImpl) PutOverride(ctx context.Context, userID string, req authz.PutOverrideRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.authzRepo.PutOverride(ctx, authz.Override{
		UserID: userID,
		Code:   req.Code,
		Effect: authz.OverrideEffect(req.Effect),
	})
}

func (s *RoleServiceImpl) DeleteOverride(ctx context.Context, userID string, code string) error {
	return s.authzRepo.DeleteOverride(ctx, userID, code)
}

func mapRoleToResponse(r authz.Role) authz.RoleResponse {
	return authz.RoleResponse{
		ID:             r.ID,
		CompanyID:      r.CompanyID,
		Code:           r.Code,
		Name:           r.Name,
		EditWindowDays: r.EditWindowDays,
	}
}
