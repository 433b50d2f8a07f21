package user

import (
	"context"
	"fmt"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/domain/user"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	db       *database.DB
	userRepo user.UserRepository
	resolver authz.Resolver
}

func NewUserService(db *database.DB, userRepo user.UserRepository, resolver authz.Resolver) user.UserService {
	return &UserServiceImpl{db: db, userRepo: userRepo, resolver: resolver}
}

// Create provisions a user inside the caller's company. Gated by
// USER_MANAGE; the handler additionally restricts the admin-flag field.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermUserManage); err != nil {
		return user.UserResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	// Only an admin may mint another admin.
	if req.IsAdmin && !principal.IsAdmin {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	companyID := principal.CompanyID
	created, err := s.userRepo.Create(ctx, user.User{
		CompanyID:    &companyID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsAdmin:      req.IsAdmin,
		RoleID:       req.RoleID,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *UserServiceImpl) List(ctx context.Context) ([]user.UserResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermUserManage); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListByCompanyID(ctx, principal.CompanyID)
	if err != nil {
		return nil, err
	}

	result := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, mapToResponse(u))
	}
	return result, nil
}

// Update toggles the active flag or reassigns the role. Users are
// deactivated, never hard-deleted.
func (s *UserServiceImpl) Update(ctx context.Context, id string, req user.UpdateUserRequest) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermUserManage); err != nil {
		return err
	}

	return s.userRepo.Update(ctx, principal.CompanyID, id, req)
}

// UpdateSettings sets the per-user edit-window override.
func (s *UserServiceImpl) UpdateSettings(ctx context.Context, id string, req user.UpdateSettingsRequest) error {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermUserManage); err != nil {
		return err
	}

	// The target must be in the caller's company.
	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if target.CompanyID == nil || *target.CompanyID != principal.CompanyID {
		return user.ErrUserNotFound
	}

	_, err = s.userRepo.UpsertSettings(ctx, user.Settings{
		UserID:         id,
		EditWindowDays: req.EditWindowDays,
	})
	return err
}

func mapToResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		RoleID:    u.RoleID,
		RoleCode:  u.RoleCode,
	}
}
