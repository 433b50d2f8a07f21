package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type authzRepository struct {
	db *database.DB
}

func NewAuthzRepository(db *database.DB) authz.AuthzRepository {
	return &authzRepository{db: db}
}

func (r *authzRepository) GetRoleByID(ctx context.Context, id string) (authz.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, edit_window_days, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var role authz.Role
	err := q.QueryRow(ctx, query, id).Scan(
		&role.ID, &role.CompanyID, &role.Code, &role.Name, &role.EditWindowDays,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return authz.Role{}, authz.ErrRoleNotFound
		}
		return authz.Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	return role, nil
}

// ListRoles returns global roles plus roles scoped to companyID when given.
func (r *authzRepository) ListRoles(ctx context.Context, companyID *string) ([]authz.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, code, name, edit_window_days, created_at, updated_at
		FROM roles
		WHERE company_id IS NULL OR company_id = $1
		ORDER BY company_id NULLS FIRST, code
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []authz.Role
	for rows.Next() {
		var role authz.Role
		if err := rows.Scan(
			&role.ID, &role.CompanyID, &role.Code, &role.Name, &role.EditWindowDays,
			&role.CreatedAt, &role.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, nil
}

func (r *authzRepository) CreateRole(ctx context.Context, role authz.Role) (authz.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (company_id, code, name, edit_window_days)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, code, name, edit_window_days, created_at, updated_at
	`

	var created authz.Role
	err := q.QueryRow(ctx, query, role.CompanyID, role.Code, role.Name, role.EditWindowDays).Scan(
		&created.ID, &created.CompanyID, &created.Code, &created.Name, &created.EditWindowDays,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_roles_company_code") {
			return authz.Role{}, authz.ErrRoleCodeExists
		}
		return authz.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return created, nil
}

func (r *authzRepository) ListPermissions(ctx context.Context) ([]authz.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, code, name, is_active, created_at
		FROM permissions
		ORDER BY code
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	var permissions []authz.Permission
	for rows.Next() {
		var p authz.Permission
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		permissions = append(permissions, p)
	}

	return permissions, nil
}

// GetGrant returns nil when the role has no grant for the code. The
// permission's active flag rides along so the resolver never needs a second
// read.
func (r *authzRepository) GetGrant(ctx context.Context, roleID string, code string) (*authz.Grant, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT rp.role_id, p.code, p.is_active
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1 AND p.code = $2
	`

	var g authz.Grant
	err := q.QueryRow(ctx, query, roleID, code).Scan(&g.RoleID, &g.Code, &g.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get grant: %w", err)
	}

	return &g, nil
}

func (r *authzRepository) ListGrantCodes(ctx context.Context, roleID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.code
		FROM role_permissions rp
		JOIN permissions p ON p.id = rp.permission_id
		WHERE rp.role_id = $1
		ORDER BY p.code
	`

	rows, err := q.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list grant codes: %w", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan grant code: %w", err)
		}
		codes = append(codes, code)
	}

	return codes, nil
}

// ReplaceGrants deletes every grant and re-inserts the given codes. Callers
// must run it inside a transaction (WithTransaction) or a failure mid-batch
// strips the role bare.
func (r *authzRepository) ReplaceGrants(ctx context.Context, roleID string, codes []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}

	for _, code := range codes {
		tag, err := q.Exec(ctx, `
			INSERT INTO role_permissions (role_id, permission_id)
			SELECT $1, id FROM permissions WHERE code = $2
		`, roleID, code)
		if err != nil {
			return fmt.Errorf("failed to grant %s: %w", code, err)
		}
		if tag.RowsAffected() == 0 {
			return authz.ErrPermissionNotFound
		}
	}

	return nil
}

func (r *authzRepository) GetOverride(ctx context.Context, userID string, code string) (*authz.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, code, effect, created_at
		FROM user_permission_overrides
		WHERE user_id = $1 AND code = $2
	`

	var ov authz.Override
	err := q.QueryRow(ctx, query, userID, code).Scan(&ov.UserID, &ov.Code, &ov.Effect, &ov.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get override: %w", err)
	}

	return &ov, nil
}

func (r *authzRepository) PutOverride(ctx context.Context, ov authz.Override) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_permission_overrides (user_id, code, effect)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, code) DO UPDATE SET effect = EXCLUDED.effect
	`

	if _, err := q.Exec(ctx, query, ov.UserID, ov.Code, ov.Effect); err != nil {
		return fmt.Errorf("failed to put override: %w", err)
	}

	return nil
}

func (r *authzRepository) DeleteOverride(ctx context.Context, userID string, code string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `
		DELETE FROM user_permission_overrides WHERE user_id = $1 AND code = $2
	`, userID, code); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}

	return nil
}
