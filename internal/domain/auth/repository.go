package auth

import (
	"context"
	"time"
)

type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

type TokenRepository interface {
	Store(ctx context.Context, t RefreshToken) error
	GetByToken(ctx context.Context, token string) (RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (LoginResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
