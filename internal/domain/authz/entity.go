package authz

import "time"

// Permission codes gating work-entry mutations.
const (
	PermWorkEntryCreate    = "WORK_ENTRY_CREATE"
	PermWorkEntryEdit      = "WORK_ENTRY_EDIT"
	PermWorkEntryDelete    = "WORK_ENTRY_DELETE"
	PermWorkEntryEditRates = "WORK_ENTRY_EDIT_RATES"
	PermJobManage          = "JOB_MANAGE"
	PermUserManage         = "USER_MANAGE"
)

// Role is a named bundle of permissions. CompanyID is nil for global roles
// (super_admin, manager, staff); company roles shadow nothing, they are just
// additional bundles scoped to one tenant.
type Role struct {
	ID             string
	CompanyID      *string
	Code           string
	Name           string
	EditWindowDays *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Permission is a globally defined capability. Inactive permissions never
// authorize, even when granted.
type Permission struct {
	ID        string
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// OverrideEffect is the per-user exception kind.
type OverrideEffect string

const (
	EffectAllow OverrideEffect = "ALLOW"
	EffectDeny  OverrideEffect = "DENY"
)

// Override supersedes role-derived grants for one permission code.
type Override struct {
	UserID    string
	Code      string
	Effect    OverrideEffect
	CreatedAt time.Time
}

// Grant is a role-to-permission edge joined with the permission's active
// flag, which is all the resolver needs to know about it.
type Grant struct {
	RoleID   string
	Code     string
	IsActive bool
}
