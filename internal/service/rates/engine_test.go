package rates

import (
	"context"
	"testing"

	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeJobRepo serves wage rates from a map keyed by jobID/tierID. The
// catalog methods are unused by the engine.
type fakeJobRepo struct {
	wageRates map[string]job.WageRate
}

func (f *fakeJobRepo) Create(ctx context.Context, j job.Job) (job.Job, error) { return j, nil }
func (f *fakeJobRepo) GetByID(ctx context.Context, id, companyID string) (job.Job, error) {
	return job.Job{}, job.ErrJobNotFound
}
func (f *fakeJobRepo) GetByCode(ctx context.Context, companyID, code string) (job.Job, error) {
	return job.Job{}, job.ErrJobNotFound
}
func (f *fakeJobRepo) ListByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]job.Job, error) {
	return nil, nil
}
func (f *fakeJobRepo) Update(ctx context.Context, companyID, id string, req job.UpdateJobRequest) error {
	return nil
}
func (f *fakeJobRepo) CreateTier(ctx context.Context, t job.WageTier) (job.WageTier, error) {
	return t, nil
}
func (f *fakeJobRepo) GetTierByID(ctx context.Context, id, companyID string) (job.WageTier, error) {
	return job.WageTier{ID: id, CompanyID: companyID}, nil
}
func (f *fakeJobRepo) ListTiers(ctx context.Context, companyID string, activeOnly bool) ([]job.WageTier, error) {
	return nil, nil
}
func (f *fakeJobRepo) GetWageRate(ctx context.Context, jobID, tierID string) (job.WageRate, error) {
	wr, ok := f.wageRates[jobID+"/"+tierID]
	if !ok {
		return job.WageRate{}, job.ErrWageRateNotFound
	}
	return wr, nil
}
func (f *fakeJobRepo) UpsertWageRate(ctx context.Context, wr job.WageRate) (job.WageRate, error) {
	return wr, nil
}
func (f *fakeJobRepo) ListWageRates(ctx context.Context, companyID, jobID string) ([]job.WageRate, error) {
	return nil, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestResolvePrivileged(t *testing.T) {
	engine := NewEngine(&fakeJobRepo{})
	j := job.Job{ID: "job-1", NormalPrice: dec("99")}

	t.Run("uses supplied rates and multiplies by amount", func(t *testing.T) {
		res, err := engine.Resolve(context.Background(), j, "tier-1", decPtr("30"), decPtr("12"), true, dec("4"))
		require.NoError(t, err)
		assert.True(t, res.CustomerRate.Equal(dec("30")))
		assert.True(t, res.CustomerTotal.Equal(dec("120")))
		assert.True(t, res.WageRate.Equal(dec("12")))
		assert.True(t, res.WageTotal.Equal(dec("48")))
	})

	t.Run("missing customer rate is rejected", func(t *testing.T) {
		_, err := engine.Resolve(context.Background(), j, "tier-1", nil, decPtr("12"), true, dec("4"))
		assert.ErrorIs(t, err, workentry.ErrInvalidRate)
	})

	t.Run("zero wage rate is rejected", func(t *testing.T) {
		_, err := engine.Resolve(context.Background(), j, "tier-1", decPtr("30"), decPtr("0"), true, dec("4"))
		assert.ErrorIs(t, err, workentry.ErrInvalidRate)
	})

	t.Run("negative customer rate is rejected", func(t *testing.T) {
		_, err := engine.Resolve(context.Background(), j, "tier-1", decPtr("-5"), decPtr("12"), true, dec("4"))
		assert.ErrorIs(t, err, workentry.ErrInvalidRate)
	})
}

func TestResolveRestricted(t *testing.T) {
	repo := &fakeJobRepo{wageRates: map[string]job.WageRate{
		"job-1/tier-1": {JobID: "job-1", TierID: "tier-1", Rate: dec("20")},
	}}
	engine := NewEngine(repo)
	j := job.Job{ID: "job-1", NormalPrice: dec("50")}

	t.Run("derives rates from job price and tier wage rate", func(t *testing.T) {
		res, err := engine.Resolve(context.Background(), j, "tier-1", nil, nil, false, dec("3"))
		require.NoError(t, err)
		assert.True(t, res.CustomerRate.Equal(dec("50")))
		assert.True(t, res.CustomerTotal.Equal(dec("150")))
		assert.True(t, res.WageRate.Equal(dec("20")))
		assert.True(t, res.WageTotal.Equal(dec("60")))
	})

	t.Run("supplied rates are ignored entirely", func(t *testing.T) {
		res, err := engine.Resolve(context.Background(), j, "tier-1", decPtr("999"), decPtr("999"), false, dec("3"))
		require.NoError(t, err)
		assert.True(t, res.CustomerRate.Equal(dec("50")))
		assert.True(t, res.WageRate.Equal(dec("20")))
	})

	t.Run("missing wage rate row reads as zero and fails resolution", func(t *testing.T) {
		_, err := engine.Resolve(context.Background(), j, "tier-unmapped", nil, nil, false, dec("3"))
		assert.ErrorIs(t, err, workentry.ErrRateResolutionFailed)
	})

	t.Run("non positive job price fails resolution", func(t *testing.T) {
		freeJob := job.Job{ID: "job-1", NormalPrice: dec("0")}
		_, err := engine.Resolve(context.Background(), freeJob, "tier-1", nil, nil, false, dec("3"))
		assert.ErrorIs(t, err, workentry.ErrRateResolutionFailed)
	})
}

func TestChangeRequested(t *testing.T) {
	stored := workentry.WorkEntry{
		CustomerRate: dec("30"),
		WageRate:     dec("12"),
	}

	t.Run("no supplied rates is not a change", func(t *testing.T) {
		assert.False(t, ChangeRequested(stored, nil, nil))
	})

	t.Run("resending the stored values is not a change", func(t *testing.T) {
		assert.False(t, ChangeRequested(stored, decPtr("30"), decPtr("12")))
	})

	t.Run("numerically equal representations are not a change", func(t *testing.T) {
		assert.False(t, ChangeRequested(stored, decPtr("30.00"), decPtr("12.0")))
	})

	t.Run("different customer rate is a change", func(t *testing.T) {
		assert.True(t, ChangeRequested(stored, decPtr("31"), nil))
	})

	t.Run("different wage rate is a change", func(t *testing.T) {
		assert.True(t, ChangeRequested(stored, nil, decPtr("13")))
	})
}
