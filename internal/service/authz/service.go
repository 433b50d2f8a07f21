package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/domain/user"
)

type ResolverImpl struct {
	authzRepo authz.AuthzRepository
	userRepo  user.UserRepository
}

func NewResolver(authzRepo authz.AuthzRepository, userRepo user.UserRepository) authz.Resolver {
	return &ResolverImpl{authzRepo: authzRepo, userRepo: userRepo}
}

// Authorize fetches the principal, the per-user override and the role grant
// for the code, then defers to the pure evaluation. A principal that does
// not exist resolves to false rather than an error so boundary checks never
// fail open.
func (s *ResolverImpl) Authorize(ctx context.Context, userID string, code string) (bool, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load principal: %w", err)
	}
	if u.IsAdmin {
		return true, nil
	}

	ov, err := s.authzRepo.GetOverride(ctx, userID, code)
	if err != nil {
		return false, fmt.Errorf("failed to load permission override: %w", err)
	}

	var grant *authz.Grant
	if u.RoleID != nil {
		grant, err = s.authzRepo.GetGrant(ctx, *u.RoleID, code)
		if err != nil {
			return false, fmt.Errorf("failed to load role grant: %w", err)
		}
	}

	return authz.Evaluate(u, ov, grant), nil
}

func (s *ResolverImpl) Require(ctx context.Context, userID string, code string) error {
	ok, err := s.Authorize(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		return &authz.ForbiddenError{Code: code}
	}
	return nil
}

// EditWindowDays resolves the principal's editable range: admins are
// unlimited, a positive personal setting beats the role default, and
// zero or negative configured values fall through.
func (s *ResolverImpl) EditWindowDays(ctx context.Context, userID string) (*int, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load principal: %w", err)
	}
	if u.IsAdmin {
		return nil, nil
	}

	var personal *int
	settings, err := s.userRepo.GetSettings(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to load user settings: %w", err)
	}
	if err == nil {
		personal = settings.EditWindowDays
	}

	var roleDefault *int
	if u.RoleID != nil {
		role, err := s.authzRepo.GetRoleByID(ctx, *u.RoleID)
		if err != nil && !errors.Is(err, authz.ErrRoleNotFound) {
			return nil, fmt.Errorf("failed to load role: %w", err)
		}
		if err == nil {
			roleDefault = role.EditWindowDays
		}
	}

	return authz.WindowDays(u.IsAdmin, personal, roleDefault), nil
}
