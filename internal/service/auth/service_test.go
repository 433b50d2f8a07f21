package auth

import (
	"context"
	"testing"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/auth"
	"github.com/fieldops/worklog-backend-go/internal/domain/user"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User // by username
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) { return u, nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.users[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}
func (f *fakeUserRepo) ListByCompanyID(ctx context.Context, companyID string) ([]user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, companyID, id string, req user.UpdateUserRequest) error {
	return nil
}
func (f *fakeUserRepo) GetSettings(ctx context.Context, userID string) (user.Settings, error) {
	return user.Settings{}, user.ErrSettingsNotFound
}
func (f *fakeUserRepo) UpsertSettings(ctx context.Context, s user.Settings) (user.Settings, error) {
	return s, nil
}

type fakeTokenRepo struct {
	tokens map[string]auth.RefreshToken
}

func (f *fakeTokenRepo) Store(ctx context.Context, t auth.RefreshToken) error {
	f.tokens[t.Token] = t
	return nil
}
func (f *fakeTokenRepo) GetByToken(ctx context.Context, token string) (auth.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return auth.RefreshToken{}, auth.ErrInvalidToken
	}
	return t, nil
}
func (f *fakeTokenRepo) Revoke(ctx context.Context, token string) error {
	if t, ok := f.tokens[token]; ok {
		now := time.Now()
		t.RevokedAt = &now
		f.tokens[token] = t
	}
	return nil
}
func (f *fakeTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	for k, t := range f.tokens {
		if t.UserID == userID {
			now := time.Now()
			t.RevokedAt = &now
			f.tokens[k] = t
		}
	}
	return nil
}

func newTestService(t *testing.T) (auth.AuthService, *fakeTokenRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	companyID := "company-1"

	userRepo := &fakeUserRepo{users: map[string]user.User{
		"alice": {ID: "u1", CompanyID: &companyID, Username: "alice", PasswordHash: string(hash), IsActive: true},
		"bob":   {ID: "u2", CompanyID: &companyID, Username: "bob", PasswordHash: string(hash), IsActive: false},
	}}
	tokenRepo := &fakeTokenRepo{tokens: map[string]auth.RefreshToken{}}
	jwtService := jwt.NewJWTService("test-secret-key", "1h", "168h")

	return NewAuthService(nil, userRepo, jwtService, tokenRepo), tokenRepo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		svc, tokenRepo := newTestService(t)
		res, err := svc.Login(ctx, auth.LoginRequest{Username: "alice", Password: "password123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.NotEmpty(t, res.RefreshToken)
		assert.Len(t, tokenRepo.tokens, 1)
	})

	t.Run("wrong password is invalid credentials", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown username is invalid credentials, not a lookup error", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "nobody", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("deactivated user cannot log in", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Login(ctx, auth.LoginRequest{Username: "bob", Password: "password123"})
		assert.ErrorIs(t, err, user.ErrUserInactive)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the used token", func(t *testing.T) {
		svc, tokenRepo := newTestService(t)
		login, err := svc.Login(ctx, auth.LoginRequest{Username: "alice", Password: "password123"})
		require.NoError(t, err)

		refreshed, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		used := tokenRepo.tokens[login.RefreshToken]
		assert.NotNil(t, used.RevokedAt)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		login, err := svc.Login(ctx, auth.LoginRequest{Username: "alice", Password: "password123"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, login.RefreshToken))
		_, err = svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: login.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		svc, tokenRepo := newTestService(t)
		tokenRepo.tokens["stale"] = auth.RefreshToken{
			ID: "t1", UserID: "u1", Token: "stale",
			ExpiresAt: time.Now().Add(-time.Hour),
		}
		_, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: "stale"})
		assert.ErrorIs(t, err, auth.ErrTokenExpired)
	})

	t.Run("unknown token is invalid", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Refresh(ctx, auth.RefreshRequest{RefreshToken: "garbage"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
