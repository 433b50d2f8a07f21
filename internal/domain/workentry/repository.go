package workentry

import (
	"context"
	"time"
)

// WorkEntryRepository persists work entries. Every method is company-scoped.
type WorkEntryRepository interface {
	Insert(ctx context.Context, e WorkEntry) (WorkEntry, error)
	// GetByID ignores the edit window; it exists so callers can tell a
	// missing row from an out-of-window one.
	GetByID(ctx context.Context, id string, companyID string) (WorkEntry, error)
	// GetWithinWindow loads the entry only when its work date is on or
	// after minDate. nil minDate means no floor.
	GetWithinWindow(ctx context.Context, id string, companyID string, minDate *time.Time) (WorkEntry, error)
	Update(ctx context.Context, e WorkEntry) (int64, error)
	Delete(ctx context.Context, id string, companyID string) (int64, error)
	List(ctx context.Context, companyID string, filter ListFilter) ([]WorkEntry, error)
}

type WorkEntryService interface {
	Create(ctx context.Context, req CreateWorkEntryRequest) (CreateWorkEntryResponse, error)
	Update(ctx context.Context, id string, req UpdateWorkEntryRequest) (UpdateWorkEntryResponse, error)
	Delete(ctx context.Context, id string) (DeleteWorkEntryResponse, error)
	List(ctx context.Context, filter ListFilter) ([]WorkEntryResponse, error)
}
