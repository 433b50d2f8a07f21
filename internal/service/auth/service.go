package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/auth"
	"github.com/fieldops/worklog-backend-go/internal/domain/user"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db         *database.DB
	userRepo   user.UserRepository
	jwtService jwt.Service
	tokenRepo  auth.TokenRepository
}

func NewAuthService(db *database.DB, userRepo user.UserRepository, jwtService jwt.Service, tokenRepo auth.TokenRepository) auth.AuthService {
	return &AuthServiceImpl{
		db:         db,
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenRepo:  tokenRepo,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.LoginResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if stored.RevokedAt != nil {
		return auth.LoginResponse{}, auth.ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.LoginResponse{}, auth.ErrTokenExpired
	}

	u, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidToken
	}
	if !u.IsActive {
		return auth.LoginResponse{}, user.ErrUserInactive
	}

	// Rotate: the used token is revoked and a fresh pair is issued.
	if err := s.tokenRepo.Revoke(ctx, req.RefreshToken); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueTokens(ctx, u)
}

func (s *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.tokenRepo.Revoke(ctx, refreshToken)
}

func (s *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.LoginResponse, error) {
	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(u.ID, u.Username, u.CompanyID, u.IsAdmin)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokenRepo.Store(ctx, auth.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		Token:     refreshToken,
		ExpiresAt: time.Unix(refreshExp, 0),
	}); err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	now := time.Now().Unix()
	return auth.LoginResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp - now,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp - now,
	}, nil
}
