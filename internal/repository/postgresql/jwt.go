package postgresql

import (
	"context"
	"fmt"

	"github.com/fieldops/worklog-backend-go/internal/domain/auth"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type tokenRepository struct {
	db *database.DB
}

func NewTokenRepository(db *database.DB) auth.TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Store(ctx context.Context, t auth.RefreshToken) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, t.ID, t.UserID, t.Token, t.ExpiresAt); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

func (r *tokenRepository) GetByToken(ctx context.Context, token string) (auth.RefreshToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token, expires_at, revoked_at, created_at
		FROM refresh_tokens
		WHERE token = $1
	`

	var t auth.RefreshToken
	err := q.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.RefreshToken{}, auth.ErrInvalidToken
		}
		return auth.RefreshToken{}, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return t, nil
}

func (r *tokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = NOW() WHERE token = $1 AND revoked_at IS NULL
	`, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

func (r *tokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL
	`, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}

	return nil
}
