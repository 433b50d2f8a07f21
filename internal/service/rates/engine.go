package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/shopspring/decimal"
)

// Resolution is the frozen outcome of a rate decision. The totals are
// computed here once and written as snapshots; nothing downstream ever
// re-derives them from live job or tier data.
type Resolution struct {
	CustomerRate  decimal.Decimal
	CustomerTotal decimal.Decimal
	WageRate      decimal.Decimal
	WageTotal     decimal.Decimal
}

// Engine resolves the customer and wage rate for a work entry, either from
// caller-supplied values (privileged mode) or from stored job and tier data
// (restricted mode).
type Engine struct {
	jobRepo job.JobRepository
}

func NewEngine(jobRepo job.JobRepository) *Engine {
	return &Engine{jobRepo: jobRepo}
}

// Resolve picks the mode from canEditRates. In privileged mode both supplied
// rates must be positive numbers; in restricted mode supplied values are
// ignored and the job's normal price plus the (job, tier) wage rate are used,
// a missing wage-rate row reading as zero. Restricted-mode failures signal
// misconfigured job/tier data, not user error, and get their own kind.
func (e *Engine) Resolve(ctx context.Context, j job.Job, tierID string, requestedCustomerRate, requestedWageRate *decimal.Decimal, canEditRates bool, amount decimal.Decimal) (Resolution, error) {
	if canEditRates {
		if requestedCustomerRate == nil || requestedWageRate == nil ||
			!requestedCustomerRate.IsPositive() || !requestedWageRate.IsPositive() {
			return Resolution{}, workentry.ErrInvalidRate
		}
		return compute(*requestedCustomerRate, *requestedWageRate, amount), nil
	}

	customerRate := j.NormalPrice

	wageRate := decimal.Zero
	wr, err := e.jobRepo.GetWageRate(ctx, j.ID, tierID)
	if err != nil && !errors.Is(err, job.ErrWageRateNotFound) {
		return Resolution{}, fmt.Errorf("failed to load wage rate: %w", err)
	}
	if err == nil {
		wageRate = wr.Rate
	}

	if !customerRate.IsPositive() || !wageRate.IsPositive() {
		return Resolution{}, workentry.ErrRateResolutionFailed
	}
	return compute(customerRate, wageRate, amount), nil
}

func compute(customerRate, wageRate, amount decimal.Decimal) Resolution {
	return Resolution{
		CustomerRate:  customerRate,
		CustomerTotal: customerRate.Mul(amount),
		WageRate:      wageRate,
		WageTotal:     wageRate.Mul(amount),
	}
}

// ChangeRequested reports whether a caller is attempting a rate change:
// either supplied rate differing numerically from the entry's stored value.
// The comparison is always against the stored rate, never against what the
// engine would recompute, and it runs before any mutation.
func ChangeRequested(stored workentry.WorkEntry, requestedCustomerRate, requestedWageRate *decimal.Decimal) bool {
	if requestedCustomerRate != nil && !requestedCustomerRate.Equal(stored.CustomerRate) {
		return true
	}
	if requestedWageRate != nil && !requestedWageRate.Equal(stored.WageRate) {
		return true
	}
	return false
}
