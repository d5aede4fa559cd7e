package statement

import (
	"bytes"
	"testing"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() settlement.Record {
	doj, _ := time.Parse(time.DateOnly, "2018-01-10")
	lwd, _ := time.Parse(time.DateOnly, "2025-09-30")
	return settlement.Record{
		EmployeeID:      "1042",
		EmployeeName:    "Asha Verma",
		Department:      "Engineering",
		BaseLocation:    "Chennai",
		DOJ:             doj,
		LWD:             lwd,
		Regime:          "Old",
		FYStart:         2025,
		TenureYears:     8,
		Months: []settlement.MonthRecord{
			{
				Year: 2025, Month: time.September,
				WorkingDays: 22, PresentDays: 22,
				Gross:           decimal.RequireFromString("60000"),
				ProratedBasic:   decimal.RequireFromString("20000"),
				ProratedHRA:     decimal.RequireFromString("10000"),
				ProratedSpecial: decimal.RequireFromString("30000"),
				ProratedGross:   decimal.RequireFromString("60000"),
				EPF:             decimal.RequireFromString("2400"),
			},
		},
		Gratuity:        decimal.RequireFromString("92307.69"),
		EPFTotal:        decimal.RequireFromString("2400"),
		TotalEarnings:   decimal.RequireFromString("152307.69"),
		TotalDeductions: decimal.RequireFromString("2400"),
		NetPayable:      decimal.RequireFromString("149907.69"),
		Status:          settlement.StatusPendingTaxReview,
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	t.Parallel()

	data, err := NewGenerator().Generate(sampleRecord())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should start with the PDF magic header")
	assert.Greater(t, len(data), 1000)
}

func TestGenerate_ApprovedRecordCarriesStamp(t *testing.T) {
	t.Parallel()

	rec := sampleRecord()
	rec.Status = settlement.StatusTaxApproved
	reviewer := "tina"
	reviewedAt := time.Date(2025, 10, 3, 11, 0, 0, 0, time.UTC)
	rec.TaxReviewedBy = &reviewer
	rec.TaxReviewedAt = &reviewedAt

	plain, err := NewGenerator().Generate(sampleRecord())
	require.NoError(t, err)
	stamped, err := NewGenerator().Generate(rec)
	require.NoError(t, err)

	// the stamp line adds content the pending statement does not have
	assert.NotEqual(t, len(plain), len(stamped))
}
