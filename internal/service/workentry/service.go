package workentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/fieldops/worklog-backend-go/internal/pkg/jwt"
	"github.com/fieldops/worklog-backend-go/internal/service/rates"
	"github.com/shopspring/decimal"
)

type WorkEntryServiceImpl struct {
	entryRepo workentry.WorkEntryRepository
	jobRepo   job.JobRepository
	resolver  authz.Resolver
	engine    *rates.Engine
	now       func() time.Time
}

func NewWorkEntryService(
	entryRepo workentry.WorkEntryRepository,
	jobRepo job.JobRepository,
	resolver authz.Resolver,
	engine *rates.Engine,
) workentry.WorkEntryService {
	return &WorkEntryServiceImpl{
		entryRepo: entryRepo,
		jobRepo:   jobRepo,
		resolver:  resolver,
		engine:    engine,
		now:       time.Now,
	}
}

// Create inserts a new entry with all rate fields frozen at write time.
// Creation always runs in privileged rate mode: it is gated by
// WORK_ENTRY_CREATE, not by the rate-editing capability.
func (s *WorkEntryServiceImpl) Create(ctx context.Context, req workentry.CreateWorkEntryRequest) (workentry.CreateWorkEntryResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermWorkEntryCreate); err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	amount, err := workentry.ParseAmount("amount", req.Amount)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}
	if !amount.IsPositive() {
		return workentry.CreateWorkEntryResponse{}, fmt.Errorf("amount: %w", workentry.ErrInvalidNumber)
	}
	customerRate, err := workentry.ParseAmount("customer_rate", req.CustomerRate)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}
	if _, err := workentry.ParseAmount("customer_total", req.CustomerTotal); err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}
	wageRate, err := workentry.ParseAmount("wage_rate", req.WageRate)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}
	if _, err := workentry.ParseAmount("wage_total", req.WageTotal); err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	j, err := s.jobRepo.GetByCode(ctx, principal.CompanyID, req.JobCode)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return workentry.CreateWorkEntryResponse{}, workentry.ErrInvalidJobReference
		}
		return workentry.CreateWorkEntryResponse{}, fmt.Errorf("failed to resolve job: %w", err)
	}

	tier, err := s.jobRepo.GetTierByID(ctx, req.WageTierID, principal.CompanyID)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	// Totals are recomputed from rate and amount so the snapshot invariant
	// holds regardless of what the caller sent in the total fields.
	resolution, err := s.engine.Resolve(ctx, j, tier.ID, &customerRate, &wageRate, true, amount)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	fees, err := resolveFees(req.FeesCollected, resolution.CustomerTotal, false)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	entry := workentry.WorkEntry{
		CompanyID:     principal.CompanyID,
		WorkerID:      req.WorkerID,
		JobID:         j.ID,
		WorkDate:      workDate,
		RefNo:         req.RefNo,
		RefNo2:        req.RefNo2,
		Amount:        amount,
		Channel:       workentry.PaymentChannel(req.Channel),
		CustomerRate:  resolution.CustomerRate,
		CustomerTotal: resolution.CustomerTotal,
		WageTierID:    tier.ID,
		WageRate:      resolution.WageRate,
		WageTotal:     resolution.WageTotal,
		FeesCollected: fees,
		JobCode:       j.Code,
		JobType:       j.JobType,
		Note:          req.Note,
	}

	created, err := s.entryRepo.Insert(ctx, entry)
	if err != nil {
		return workentry.CreateWorkEntryResponse{}, err
	}

	return workentry.CreateWorkEntryResponse{
		ID:            created.ID,
		FeesCollected: created.FeesCollected,
	}, nil
}

// Update rewrites an entry inside the principal's edit window. Rate-change
// intent is checked against the stored rates before anything is mutated.
func (s *WorkEntryServiceImpl) Update(ctx context.Context, id string, req workentry.UpdateWorkEntryRequest) (workentry.UpdateWorkEntryResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermWorkEntryEdit); err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	amount, err := workentry.ParseAmount("amount", req.Amount)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}
	if !amount.IsPositive() {
		return workentry.UpdateWorkEntryResponse{}, fmt.Errorf("amount: %w", workentry.ErrInvalidNumber)
	}
	requestedCustomerRate, err := parseOptionalRate("customer_rate", req.CustomerRate)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}
	requestedWageRate, err := parseOptionalRate("wage_rate", req.WageRate)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	existing, err := s.loadWithinWindow(ctx, principal, id)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	j, err := s.jobRepo.GetByCode(ctx, principal.CompanyID, req.JobCode)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			return workentry.UpdateWorkEntryResponse{}, workentry.ErrInvalidJobReference
		}
		return workentry.UpdateWorkEntryResponse{}, fmt.Errorf("failed to resolve job: %w", err)
	}

	canEditRates, err := s.resolver.Authorize(ctx, principal.UserID, authz.PermWorkEntryEditRates)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	if rates.ChangeRequested(existing, requestedCustomerRate, requestedWageRate) && !canEditRates {
		return workentry.UpdateWorkEntryResponse{}, workentry.ErrRateEditForbidden
	}

	tierID := existing.WageTierID
	if req.WageTierID != nil && *req.WageTierID != "" {
		tier, err := s.jobRepo.GetTierByID(ctx, *req.WageTierID, principal.CompanyID)
		if err != nil {
			return workentry.UpdateWorkEntryResponse{}, err
		}
		tierID = tier.ID
	}

	// Restricted mode ignores supplied rates entirely; privileged mode
	// requires them. Fall back to the stored rates for privileged callers
	// that left the fields blank.
	if canEditRates {
		if requestedCustomerRate == nil {
			rate := existing.CustomerRate
			requestedCustomerRate = &rate
		}
		if requestedWageRate == nil {
			rate := existing.WageRate
			requestedWageRate = &rate
		}
	}
	resolution, err := s.engine.Resolve(ctx, j, tierID, requestedCustomerRate, requestedWageRate, canEditRates, amount)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	fees, err := resolveFees(req.FeesCollected, resolution.CustomerTotal, true)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)

	updated := existing
	updated.WorkerID = req.WorkerID
	updated.JobID = j.ID
	updated.WorkDate = workDate
	updated.RefNo = req.RefNo
	updated.RefNo2 = req.RefNo2
	updated.Amount = amount
	updated.Channel = workentry.PaymentChannel(req.Channel)
	updated.CustomerRate = resolution.CustomerRate
	updated.CustomerTotal = resolution.CustomerTotal
	updated.WageTierID = tierID
	updated.WageRate = resolution.WageRate
	updated.WageTotal = resolution.WageTotal
	updated.FeesCollected = fees
	updated.JobCode = j.Code
	updated.JobType = j.JobType
	updated.Note = req.Note

	changes, err := s.entryRepo.Update(ctx, updated)
	if err != nil {
		return workentry.UpdateWorkEntryResponse{}, err
	}
	if changes == 0 {
		return workentry.UpdateWorkEntryResponse{}, workentry.ErrNotFound
	}

	return workentry.UpdateWorkEntryResponse{
		Changes:       changes,
		CanEditRates:  canEditRates,
		FeesCollected: fees,
	}, nil
}

// Delete removes an entry permanently. Same window gate as Update; deletion
// has no soft state and is final.
func (s *WorkEntryServiceImpl) Delete(ctx context.Context, id string) (workentry.DeleteWorkEntryResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return workentry.DeleteWorkEntryResponse{}, err
	}
	if err := s.resolver.Require(ctx, principal.UserID, authz.PermWorkEntryDelete); err != nil {
		return workentry.DeleteWorkEntryResponse{}, err
	}

	if _, err := s.loadWithinWindow(ctx, principal, id); err != nil {
		return workentry.DeleteWorkEntryResponse{}, err
	}

	changes, err := s.entryRepo.Delete(ctx, id, principal.CompanyID)
	if err != nil {
		return workentry.DeleteWorkEntryResponse{}, err
	}
	if changes == 0 {
		return workentry.DeleteWorkEntryResponse{}, workentry.ErrNotFound
	}

	return workentry.DeleteWorkEntryResponse{Changes: changes}, nil
}

// List returns company-scoped entries. Non-admin principals see only rows
// inside their edit window; out-of-window history quietly disappears from
// the listing instead of erroring.
func (s *WorkEntryServiceImpl) List(ctx context.Context, filter workentry.ListFilter) ([]workentry.WorkEntryResponse, error) {
	principal, err := jwt.PrincipalFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin {
		days, err := s.resolver.EditWindowDays(ctx, principal.UserID)
		if err != nil {
			return nil, err
		}
		filter.MinDate = s.windowFloor(days)
	}

	entries, err := s.entryRepo.List(ctx, principal.CompanyID, filter)
	if err != nil {
		return nil, err
	}

	result := make([]workentry.WorkEntryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, mapToResponse(e))
	}
	return result, nil
}

// loadWithinWindow loads the entry through a window-filtered query, then
// distinguishes a row that never existed from one that is merely out of
// range.
func (s *WorkEntryServiceImpl) loadWithinWindow(ctx context.Context, principal jwt.Principal, id string) (workentry.WorkEntry, error) {
	days, err := s.resolver.EditWindowDays(ctx, principal.UserID)
	if err != nil {
		return workentry.WorkEntry{}, err
	}
	minDate := s.windowFloor(days)

	entry, err := s.entryRepo.GetWithinWindow(ctx, id, principal.CompanyID, minDate)
	if err == nil {
		return entry, nil
	}
	if !errors.Is(err, workentry.ErrNotFound) {
		return workentry.WorkEntry{}, err
	}

	if _, probeErr := s.entryRepo.GetByID(ctx, id, principal.CompanyID); probeErr == nil {
		return workentry.WorkEntry{}, workentry.ErrOutOfEditWindow
	}
	return workentry.WorkEntry{}, workentry.ErrNotFound
}

func (s *WorkEntryServiceImpl) windowFloor(days *int) *time.Time {
	if days == nil {
		return nil
	}
	ref := s.now()
	floor := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).AddDate(0, 0, -*days)
	return &floor
}

// resolveFees applies the fees rules: absent defaults to the computed
// customer total. On update a negative value is rejected; on create it is
// treated as absent.
func resolveFees(supplied *string, customerTotal decimal.Decimal, rejectNegative bool) (decimal.Decimal, error) {
	if supplied == nil || *supplied == "" {
		return customerTotal, nil
	}
	fees, err := workentry.ParseAmount("fees_collected", *supplied)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if fees.IsNegative() {
		if rejectNegative {
			return decimal.Decimal{}, workentry.ErrInvalidFees
		}
		return customerTotal, nil
	}
	return fees, nil
}

func parseOptionalRate(field string, value *string) (*decimal.Decimal, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	d, err := workentry.ParseAmount(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func mapToResponse(e workentry.WorkEntry) workentry.WorkEntryResponse {
	return workentry.WorkEntryResponse{
		ID:            e.ID,
		WorkerID:      e.WorkerID,
		JobID:         e.JobID,
		JobCode:       e.JobCode,
		JobType:       e.JobType,
		WorkDate:      e.WorkDate.Format("2006-01-02"),
		RefNo:         e.RefNo,
		RefNo2:        e.RefNo2,
		Amount:        e.Amount,
		Channel:       string(e.Channel),
		CustomerRate:  e.CustomerRate,
		CustomerTotal: e.CustomerTotal,
		WageTierID:    e.WageTierID,
		WageRate:      e.WageRate,
		WageTotal:     e.WageTotal,
		FeesCollected: e.FeesCollected,
		Note:          e.Note,
	}
}
