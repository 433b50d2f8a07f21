package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/worklog-backend-go/internal/domain/user"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (company_id, username, email, password_hash, is_active, is_admin, role_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, username, email, password_hash, is_active, is_admin, role_id, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		u.CompanyID, u.Username, u.Email, u.PasswordHash, u.IsActive, u.IsAdmin, u.RoleID,
	).Scan(
		&created.ID, &created.CompanyID, &created.Username, &created.Email, &created.PasswordHash,
		&created.IsActive, &created.IsAdmin, &created.RoleID, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_users_username") {
			return user.User{}, user.ErrUsernameExists
		}
		if strings.Contains(err.Error(), "uk_users_company_email") {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.company_id, u.username, u.email, u.password_hash, u.is_active, u.is_admin,
			   u.role_id, u.created_at, u.updated_at, r.code
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.CompanyID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.company_id, u.username, u.email, u.password_hash, u.is_active, u.is_admin,
			   u.role_id, u.created_at, u.updated_at, r.code
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.username = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.CompanyID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin,
		&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) ListByCompanyID(ctx context.Context, companyID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT u.id, u.company_id, u.username, u.email, u.password_hash, u.is_active, u.is_admin,
			   u.role_id, u.created_at, u.updated_at, r.code
		FROM users u
		LEFT JOIN roles r ON r.id = u.role_id
		WHERE u.company_id = $1
		ORDER BY u.username
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(
			&u.ID, &u.CompanyID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin,
			&u.RoleID, &u.CreatedAt, &u.UpdatedAt, &u.RoleCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, companyID string, id string, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id, companyID}
	argIdx := 3

	if req.RoleID != nil {
		setParts = append(setParts, fmt.Sprintf("role_id = $%d", argIdx))
		args = append(args, *req.RoleID)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *userRepository) GetSettings(ctx context.Context, userID string) (user.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, edit_window_days, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s user.Settings
	err := q.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.EditWindowDays, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.Settings{}, user.ErrSettingsNotFound
		}
		return user.Settings{}, fmt.Errorf("failed to get user settings: %w", err)
	}

	return s, nil
}

func (r *userRepository) UpsertSettings(ctx context.Context, s user.Settings) (user.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_settings (user_id, edit_window_days)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			edit_window_days = EXCLUDED.edit_window_days,
			updated_at = NOW()
		RETURNING user_id, edit_window_days, updated_at
	`

	var updated user.Settings
	err := q.QueryRow(ctx, query, s.UserID, s.EditWindowDays).Scan(
		&updated.UserID, &updated.EditWindowDays, &updated.UpdatedAt,
	)
	if err != nil {
		return user.Settings{}, fmt.Errorf("failed to upsert user settings: %w", err)
	}

	return updated, nil
}
