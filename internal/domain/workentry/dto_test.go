package workentry

import (
	"testing"

	"github.com/fieldops/worklog-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateWorkEntryRequest {
	return CreateWorkEntryRequest{
		WorkerID:      "worker-1",
		JobCode:       "CLEAN",
		WorkDate:      "2026-08-25",
		RefNo:         "REF-001",
		Amount:        "4",
		Channel:       "cash",
		CustomerRate:  "30",
		CustomerTotal: "120",
		WageTierID:    "tier-1",
		WageRate:      "12",
		WageTotal:     "48",
	}
}

func TestCreateWorkEntryRequestValidate(t *testing.T) {
	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, validCreateRequest().Validate())
	})

	t.Run("missing required fields are collected per field", func(t *testing.T) {
		req := validCreateRequest()
		req.RefNo = ""
		req.Amount = "  "

		err := req.Validate()
		require.Error(t, err)
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		m := errs.ToMap()
		assert.Contains(t, m, "ref_no")
		assert.Contains(t, m, "amount")
	})

	t.Run("bad work date is rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.WorkDate = "25/08/2026"
		assert.Error(t, req.Validate())
	})

	t.Run("channel outside the enum is rejected", func(t *testing.T) {
		req := validCreateRequest()
		req.Channel = "crypto"
		assert.Error(t, req.Validate())
	})
}

func TestUpdateWorkEntryRequestValidate(t *testing.T) {
	req := UpdateWorkEntryRequest{
		WorkerID: "worker-1",
		JobCode:  "CLEAN",
		WorkDate: "2026-08-25",
		RefNo:    "REF-001",
		Amount:   "4",
		Channel:  "bank",
	}
	assert.NoError(t, req.Validate())

	req.WorkDate = ""
	assert.Error(t, req.Validate())
}

func TestParseAmount(t *testing.T) {
	d, err := ParseAmount("amount", "12.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	_, err = ParseAmount("amount", "twelve")
	assert.ErrorIs(t, err, ErrInvalidNumber)
	assert.Contains(t, err.Error(), "amount")
}
