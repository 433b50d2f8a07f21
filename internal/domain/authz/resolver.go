package authz

import (
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/user"
)

// Evaluate decides whether a principal holds a capability, given the
// pre-fetched override and grant for that code. Precedence:
//
//  1. admin flag bypasses everything
//  2. a per-user override wins in both directions
//  3. otherwise the role grant applies, but only while the permission is active
//
// A principal with no role and no admin flag is authorized for nothing.
func Evaluate(u user.User, ov *Override, grant *Grant) bool {
	if u.IsAdmin {
		return true
	}
	if ov != nil {
		return ov.Effect == EffectAllow
	}
	if u.RoleID == nil || grant == nil {
		return false
	}
	return grant.IsActive
}

// WindowDays computes the maximum age in days of a record the principal may
// still mutate. nil means unlimited. Admins are never limited. A zero or
// negative configured value means "no limit configured" and falls through,
// it is never read as "zero days allowed".
func WindowDays(isAdmin bool, personal, roleDefault *int) *int {
	if isAdmin {
		return nil
	}
	if personal != nil && *personal > 0 {
		return personal
	}
	if roleDefault != nil && *roleDefault > 0 {
		return roleDefault
	}
	return nil
}

// WithinWindow reports whether workDate is no older than days before ref,
// inclusive at the boundary. Comparison is date-granular.
func WithinWindow(workDate time.Time, days *int, ref time.Time) bool {
	if days == nil {
		return true
	}
	earliest := truncateToDate(ref).AddDate(0, 0, -*days)
	return !truncateToDate(workDate).Before(earliest)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
