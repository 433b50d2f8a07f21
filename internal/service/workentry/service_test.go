package workentry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldops/worklog-backend-go/internal/domain/authz"
	"github.com/fieldops/worklog-backend-go/internal/domain/job"
	"github.com/fieldops/worklog-backend-go/internal/domain/workentry"
	"github.com/fieldops/worklog-backend-go/internal/service/rates"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testNow       = "2026-08-25"
)

type fakeResolver struct {
	perms      map[string]bool // userID/code
	windowDays map[string]*int
}

func (f *fakeResolver) Authorize(ctx context.Context, userID, code string) (bool, error) {
	return f.perms[userID+"/"+code], nil
}

func (f *fakeResolver) Require(ctx context.Context, userID, code string) error {
	if !f.perms[userID+"/"+code] {
		return &authz.ForbiddenError{Code: code}
	}
	return nil
}

func (f *fakeResolver) EditWindowDays(ctx context.Context, userID string) (*int, error) {
	return f.windowDays[userID], nil
}

type fakeJobRepo struct {
	jobs      map[string]job.Job      // companyID/code
	tiers     map[string]job.WageTier // id
	wageRates map[string]job.WageRate // jobID/tierID
}

func (f *fakeJobRepo) Create(ctx context.Context, j job.Job) (job.Job, error) { return j, nil }
func (f *fakeJobRepo) GetByID(ctx context.Context, id, companyID string) (job.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id && j.CompanyID == companyID {
			return j, nil
		}
	}
	return job.Job{}, job.ErrJobNotFound
}
func (f *fakeJobRepo) GetByCode(ctx context.Context, companyID, code string) (job.Job, error) {
	j, ok := f.jobs[companyID+"/"+code]
	if !ok {
		return job.Job{}, job.ErrJobNotFound
	}
	return j, nil
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
	t, ok := f.tiers[id]
	if !ok || t.CompanyID != companyID {
		return job.WageTier{}, job.ErrTierNotFound
	}
	return t, nil
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

type fakeEntryRepo struct {
	entries map[string]workentry.WorkEntry
	nextID  int
}

func (f *fakeEntryRepo) Insert(ctx context.Context, e workentry.WorkEntry) (workentry.WorkEntry, error) {
	for _, existing := range f.entries {
		if existing.CompanyID == e.CompanyID && existing.RefNo == e.RefNo {
			return workentry.WorkEntry{}, workentry.ErrDuplicateJobReference
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("entry-%d", f.nextID)
	f.entries[e.ID] = e
	return e, nil
}

func (f *fakeEntryRepo) GetByID(ctx context.Context, id, companyID string) (workentry.WorkEntry, error) {
	e, ok := f.entries[id]
	if !ok || e.CompanyID != companyID {
		return workentry.WorkEntry{}, workentry.ErrNotFound
	}
	return e, nil
}

func (f *fakeEntryRepo) GetWithinWindow(ctx context.Context, id, companyID string, minDate *time.Time) (workentry.WorkEntry, error) {
	e, err := f.GetByID(ctx, id, companyID)
	if err != nil {
		return workentry.WorkEntry{}, err
	}
	if minDate != nil && e.WorkDate.Before(*minDate) {
		return workentry.WorkEntry{}, workentry.ErrNotFound
	}
	return e, nil
}

func (f *fakeEntryRepo) Update(ctx context.Context, e workentry.WorkEntry) (int64, error) {
	existing, ok := f.entries[e.ID]
	if !ok || existing.CompanyID != e.CompanyID {
		return 0, nil
	}
	for _, other := range f.entries {
		if other.ID != e.ID && other.CompanyID == e.CompanyID && other.RefNo == e.RefNo {
			return 0, workentry.ErrDuplicateJobReference
		}
	}
	f.entries[e.ID] = e
	return 1, nil
}

func (f *fakeEntryRepo) Delete(ctx context.Context, id, companyID string) (int64, error) {
	e, ok := f.entries[id]
	if !ok || e.CompanyID != companyID {
		return 0, nil
	}
	delete(f.entries, id)
	return 1, nil
}

func (f *fakeEntryRepo) List(ctx context.Context, companyID string, filter workentry.ListFilter) ([]workentry.WorkEntry, error) {
	var out []workentry.WorkEntry
	for _, e := range f.entries {
		if e.CompanyID != companyID {
			continue
		}
		if filter.WorkerID != nil && e.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.MinDate != nil && e.WorkDate.Before(*filter.MinDate) {
			continue
		}
		if filter.DateFrom != nil && e.WorkDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && e.WorkDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func principalCtx(t *testing.T, userID string, isAdmin bool) context.Context {
	t.Helper()
	ta := jwtauth.New("HS256", []byte("test-secret-key"), nil)
	token, _, err := ta.Encode(map[string]interface{}{
		"user_id":    userID,
		"username":   userID,
		"company_id": testCompanyID,
		"is_admin":   isAdmin,
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	svc       *WorkEntryServiceImpl
	entryRepo *fakeEntryRepo
	jobRepo   *fakeJobRepo
	resolver  *fakeResolver
}

// newFixture wires the service against in-memory stores. One job CLEAN at
// base price 50, one tier T1 with a 20 wage rate for it, clock pinned to
// 2026-08-25.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	jobRepo := &fakeJobRepo{
		jobs: map[string]job.Job{
			testCompanyID + "/CLEAN": {ID: "job-clean", CompanyID: testCompanyID, Code: "CLEAN", JobType: "standard", NormalPrice: dec("50"), IsActive: true},
		},
		tiers: map[string]job.WageTier{
			"tier-1": {ID: "tier-1", CompanyID: testCompanyID, Code: "T1", Name: "Tier 1", IsActive: true},
		},
		wageRates: map[string]job.WageRate{
			"job-clean/tier-1": {JobID: "job-clean", TierID: "tier-1", Rate: dec("20")},
		},
	}
	entryRepo := &fakeEntryRepo{entries: map[string]workentry.WorkEntry{}}
	resolver := &fakeResolver{
		perms: map[string]bool{
			"worker/" + authz.PermWorkEntryCreate:    true,
			"worker/" + authz.PermWorkEntryEdit:      true,
			"worker/" + authz.PermWorkEntryDelete:    true,
			"senior/" + authz.PermWorkEntryCreate:    true,
			"senior/" + authz.PermWorkEntryEdit:      true,
			"senior/" + authz.PermWorkEntryDelete:    true,
			"senior/" + authz.PermWorkEntryEditRates: true,
		},
		windowDays: map[string]*int{},
	}

	svc := NewWorkEntryService(entryRepo, jobRepo, resolver, rates.NewEngine(jobRepo)).(*WorkEntryServiceImpl)
	svc.now = func() time.Time {
		now, _ := time.Parse("2006-01-02", testNow)
		return now
	}

	return &fixture{svc: svc, entryRepo: entryRepo, jobRepo: jobRepo, resolver: resolver}
}

func (fx *fixture) createReq() workentry.CreateWorkEntryRequest {
	return workentry.CreateWorkEntryRequest{
		WorkerID:      "worker",
		JobCode:       "CLEAN",
		WorkDate:      testNow,
		RefNo:         "REF-001",
		Amount:        "4",
		Channel:       "cash",
		CustomerRate:  "30",
		CustomerTotal: "999", // deliberately wrong, must be recomputed
		WageTierID:    "tier-1",
		WageRate:      "12",
		WageTotal:     "999",
	}
}

func (fx *fixture) seedEntry(t *testing.T, refNo string, workDate string) workentry.WorkEntry {
	t.Helper()
	date, err := time.Parse("2006-01-02", workDate)
	require.NoError(t, err)
	e, err := fx.entryRepo.Insert(context.Background(), workentry.WorkEntry{
		CompanyID:     testCompanyID,
		WorkerID:      "worker",
		JobID:         "job-clean",
		JobCode:       "CLEAN",
		JobType:       "standard",
		WorkDate:      date,
		RefNo:         refNo,
		Amount:        dec("4"),
		Channel:       workentry.ChannelCash,
		CustomerRate:  dec("30"),
		CustomerTotal: dec("120"),
		WageTierID:    "tier-1",
		WageRate:      dec("12"),
		WageTotal:     dec("48"),
		FeesCollected: dec("120"),
	})
	require.NoError(t, err)
	return e
}

func (fx *fixture) updateReq() workentry.UpdateWorkEntryRequest {
	return workentry.UpdateWorkEntryRequest{
		WorkerID: "worker",
		JobCode:  "CLEAN",
		WorkDate: testNow,
		RefNo:    "REF-001",
		Amount:   "4",
		Channel:  "cash",
	}
}

func TestWorkEntryCreate(t *testing.T) {
	t.Run("totals come from rate times amount, not the posted totals", func(t *testing.T) {
		fx := newFixture(t)
		ctx := principalCtx(t, "worker", false)

		res, err := fx.svc.Create(ctx, fx.createReq())
		require.NoError(t, err)
		require.NotEmpty(t, res.ID)

		stored := fx.entryRepo.entries[res.ID]
		assert.True(t, stored.CustomerRate.Equal(dec("30")))
		assert.True(t, stored.CustomerTotal.Equal(dec("120")))
		assert.True(t, stored.WageRate.Equal(dec("12")))
		assert.True(t, stored.WageTotal.Equal(dec("48")))
		assert.Equal(t, "CLEAN", stored.JobCode)
	})

	t.Run("fees default to the computed customer total", func(t *testing.T) {
		fx := newFixture(t)
		res, err := fx.svc.Create(principalCtx(t, "worker", false), fx.createReq())
		require.NoError(t, err)
		assert.True(t, res.FeesCollected.Equal(dec("120")))
	})

	t.Run("explicit fees are stored as sent", func(t *testing.T) {
		fx := newFixture(t)
		req := fx.createReq()
		fees := "100.50"
		req.FeesCollected = &fees
		res, err := fx.svc.Create(principalCtx(t, "worker", false), req)
		require.NoError(t, err)
		assert.True(t, res.FeesCollected.Equal(dec("100.50")))
	})

	t.Run("negative fees are treated as absent", func(t *testing.T) {
		fx := newFixture(t)
		req := fx.createReq()
		fees := "-5"
		req.FeesCollected = &fees
		res, err := fx.svc.Create(principalCtx(t, "worker", false), req)
		require.NoError(t, err)
		assert.True(t, res.FeesCollected.Equal(dec("120")))
	})

	t.Run("unknown job code is an invalid job reference", func(t *testing.T) {
		fx := newFixture(t)
		req := fx.createReq()
		req.JobCode = "NOPE"
		_, err := fx.svc.Create(principalCtx(t, "worker", false), req)
		assert.ErrorIs(t, err, workentry.ErrInvalidJobReference)
	})

	t.Run("duplicate ref no within the company conflicts", func(t *testing.T) {
		fx := newFixture(t)
		fx.seedEntry(t, "REF-001", testNow)
		_, err := fx.svc.Create(principalCtx(t, "worker", false), fx.createReq())
		assert.ErrorIs(t, err, workentry.ErrDuplicateJobReference)
	})

	t.Run("missing create permission is forbidden", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.svc.Create(principalCtx(t, "stranger", false), fx.createReq())
		var forbidden *authz.ForbiddenError
		require.ErrorAs(t, err, &forbidden)
		assert.Equal(t, authz.PermWorkEntryCreate, forbidden.Code)
	})

	t.Run("malformed amount is an invalid number", func(t *testing.T) {
		fx := newFixture(t)
		req := fx.createReq()
		req.Amount = "four"
		_, err := fx.svc.Create(principalCtx(t, "worker", false), req)
		assert.ErrorIs(t, err, workentry.ErrInvalidNumber)
	})

	t.Run("zero amount is rejected", func(t *testing.T) {
		fx := newFixture(t)
		req := fx.createReq()
		req.Amount = "0"
		_, err := fx.svc.Create(principalCtx(t, "worker", false), req)
		assert.ErrorIs(t, err, workentry.ErrInvalidNumber)
	})

	t.Run("negative amount is rejected", func(t *testing.T) {
		fx := newFixture(t)
		req := fx.createReq()
		req.Amount = "-4"
		_, err := fx.svc.Create(principalCtx(t, "worker", false), req)
		require.ErrorIs(t, err, workentry.ErrInvalidNumber)
		assert.Empty(t, fx.entryRepo.entries, "nothing must be stored")
	})
}

func TestWorkEntryUpdate(t *testing.T) {
	t.Run("restricted caller gets rates from job and tier data", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		res, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, fx.updateReq())
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Changes)
		assert.False(t, res.CanEditRates)

		stored := fx.entryRepo.entries[entry.ID]
		assert.True(t, stored.CustomerRate.Equal(dec("50")))
		assert.True(t, stored.CustomerTotal.Equal(dec("200")))
		assert.True(t, stored.WageRate.Equal(dec("20")))
		assert.True(t, stored.WageTotal.Equal(dec("80")))
	})

	t.Run("rate change without the rates permission is rejected untouched", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		req := fx.updateReq()
		newRate := "35"
		req.CustomerRate = &newRate

		_, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, req)
		assert.ErrorIs(t, err, workentry.ErrRateEditForbidden)

		stored := fx.entryRepo.entries[entry.ID]
		assert.True(t, stored.CustomerRate.Equal(dec("30")), "entry must not be mutated")
	})

	t.Run("resending the stored rates is not a rate change", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		req := fx.updateReq()
		sameCustomer, sameWage := "30.00", "12"
		req.CustomerRate = &sameCustomer
		req.WageRate = &sameWage

		_, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, req)
		require.NoError(t, err)
	})

	t.Run("privileged caller applies new rates", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		req := fx.updateReq()
		newCustomer, newWage := "35", "15"
		req.CustomerRate = &newCustomer
		req.WageRate = &newWage

		res, err := fx.svc.Update(principalCtx(t, "senior", false), entry.ID, req)
		require.NoError(t, err)
		assert.True(t, res.CanEditRates)

		stored := fx.entryRepo.entries[entry.ID]
		assert.True(t, stored.CustomerRate.Equal(dec("35")))
		assert.True(t, stored.CustomerTotal.Equal(dec("140")))
		assert.True(t, stored.WageTotal.Equal(dec("60")))
	})

	t.Run("privileged caller omitting rates keeps the stored ones", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		_, err := fx.svc.Update(principalCtx(t, "senior", false), entry.ID, fx.updateReq())
		require.NoError(t, err)

		stored := fx.entryRepo.entries[entry.ID]
		assert.True(t, stored.CustomerRate.Equal(dec("30")))
		assert.True(t, stored.WageRate.Equal(dec("12")))
	})

	t.Run("entry older than the window is out of range, not missing", func(t *testing.T) {
		fx := newFixture(t)
		days := 30
		fx.resolver.windowDays["worker"] = &days
		entry := fx.seedEntry(t, "REF-OLD", "2026-07-16") // 40 days back

		_, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, fx.updateReq())
		assert.ErrorIs(t, err, workentry.ErrOutOfEditWindow)
	})

	t.Run("entry inside the window is editable", func(t *testing.T) {
		fx := newFixture(t)
		days := 20
		fx.resolver.windowDays["worker"] = &days
		entry := fx.seedEntry(t, "REF-RECENT", "2026-08-13") // 12 days back

		req := fx.updateReq()
		req.RefNo = "REF-RECENT"
		req.WorkDate = "2026-08-13"
		_, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, req)
		require.NoError(t, err)
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.svc.Update(principalCtx(t, "worker", false), "entry-999", fx.updateReq())
		assert.ErrorIs(t, err, workentry.ErrNotFound)
	})

	t.Run("negative fees are rejected on update", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		req := fx.updateReq()
		fees := "-1"
		req.FeesCollected = &fees
		_, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, req)
		assert.ErrorIs(t, err, workentry.ErrInvalidFees)
	})

	t.Run("non-positive amount is rejected untouched", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		req := fx.updateReq()
		req.Amount = "-2"
		_, err := fx.svc.Update(principalCtx(t, "worker", false), entry.ID, req)
		require.ErrorIs(t, err, workentry.ErrInvalidNumber)

		stored := fx.entryRepo.entries[entry.ID]
		assert.True(t, stored.Amount.Equal(dec("4")), "entry must not be mutated")
	})
}

func TestWorkEntryDelete(t *testing.T) {
	t.Run("deletes inside the window", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)

		res, err := fx.svc.Delete(principalCtx(t, "worker", false), entry.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Changes)
		assert.Empty(t, fx.entryRepo.entries)
	})

	t.Run("refuses outside the window", func(t *testing.T) {
		fx := newFixture(t)
		days := 30
		fx.resolver.windowDays["worker"] = &days
		entry := fx.seedEntry(t, "REF-OLD", "2026-07-16")

		_, err := fx.svc.Delete(principalCtx(t, "worker", false), entry.ID)
		assert.ErrorIs(t, err, workentry.ErrOutOfEditWindow)
		assert.Len(t, fx.entryRepo.entries, 1)
	})

	t.Run("missing entry is not found", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.svc.Delete(principalCtx(t, "worker", false), "entry-999")
		assert.ErrorIs(t, err, workentry.ErrNotFound)
	})

	t.Run("missing delete permission is forbidden", func(t *testing.T) {
		fx := newFixture(t)
		entry := fx.seedEntry(t, "REF-001", testNow)
		_, err := fx.svc.Delete(principalCtx(t, "stranger", false), entry.ID)
		var forbidden *authz.ForbiddenError
		assert.ErrorAs(t, err, &forbidden)
	})
}

func TestWorkEntryList(t *testing.T) {
	t.Run("limited principal only sees entries inside the window", func(t *testing.T) {
		fx := newFixture(t)
		days := 30
		fx.resolver.windowDays["worker"] = &days
		fx.seedEntry(t, "REF-OLD", "2026-07-16")    // 40 days back
		fx.seedEntry(t, "REF-RECENT", "2026-08-13") // 12 days back

		entries, err := fx.svc.List(principalCtx(t, "worker", false), workentry.ListFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "REF-RECENT", entries[0].RefNo)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		fx := newFixture(t)
		fx.seedEntry(t, "REF-OLD", "2026-07-16")
		fx.seedEntry(t, "REF-RECENT", "2026-08-13")

		entries, err := fx.svc.List(principalCtx(t, "boss", true), workentry.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("unlimited principal sees everything", func(t *testing.T) {
		fx := newFixture(t)
		fx.seedEntry(t, "REF-OLD", "2026-07-16")

		entries, err := fx.svc.List(principalCtx(t, "worker", false), workentry.ListFilter{})
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("stored totals survive later job price changes", func(t *testing.T) {
		fx := newFixture(t)
		fx.seedEntry(t, "REF-001", testNow) // frozen at 30x4=120

		j := fx.jobRepo.jobs[testCompanyID+"/CLEAN"]
		j.NormalPrice = dec("75")
		fx.jobRepo.jobs[testCompanyID+"/CLEAN"] = j

		entries, err := fx.svc.List(principalCtx(t, "worker", false), workentry.ListFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].CustomerRate.Equal(dec("30")))
		assert.True(t, entries[0].CustomerTotal.Equal(dec("120")))
	})
}
