package tax

import (
	"testing"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFYStartYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		lwd  string
		want int
	}{
		{"2025-04-01", 2025},
		{"2025-03-31", 2024},
		{"2025-12-15", 2025},
		{"2026-01-10", 2025},
		{"2024-06-30", 2024},
	}
	for _, tc := range cases {
		lwd, err := time.Parse(time.DateOnly, tc.lwd)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, FYStartYear(lwd), "lwd %s", tc.lwd)
	}
}

func TestOldRegimeTDS(t *testing.T) {
	t.Parallel()

	cases := []struct {
		income string
		want   string
	}{
		{"-5000", "0"},
		{"0", "0"},
		{"250000", "0"},
		{"500000", "0"}, // 87A rebate boundary
		// 250k at 5% plus 100k at 20%, cess on top
		{"600000", "33800"},
		// 250k at 5% plus 500k at 20%, cess on top
		{"1000000", "117000"},
		// adds 200k at 30%
		{"1200000", "179400"},
	}
	for _, tc := range cases {
		got := OldRegimeTDS(dec(tc.income))
		assert.True(t, got.Equal(dec(tc.want)), "income %s: got %s want %s", tc.income, got, tc.want)
	}
}

func TestNewRegimeTDS_FY2025(t *testing.T) {
	t.Parallel()

	cases := []struct {
		income string
		want   string
	}{
		{"0", "0"},
		{"1200000", "0"}, // rebate boundary
		// 400k@5% + 400k@10% + 400k@15% = 120000, cess on top
		{"1600000", "124800"},
		// + 400k@20% = 200000, cess on top
		{"2000000", "208000"},
		// + 400k@25% + 100k@30% = 330000, cess on top
		{"2500000", "343200"},
	}
	for _, tc := range cases {
		got := NewRegimeTDS(dec(tc.income), 2025)
		assert.True(t, got.Equal(dec(tc.want)), "income %s: got %s want %s", tc.income, got, tc.want)
	}
}

func TestNewRegimeTDS_FY2024(t *testing.T) {
	t.Parallel()

	cases := []struct {
		income string
		want   string
	}{
		{"700000", "0"}, // rebate boundary
		// 300k@5% + 200k@10% = 35000, cess on top
		{"800000", "36400"},
		// 300k@5% + 300k@10% + 300k@15% + 300k@20% + 100k@30% = 180000
		{"1600000", "187200"},
	}
	for _, tc := range cases {
		got := NewRegimeTDS(dec(tc.income), 2024)
		assert.True(t, got.Equal(dec(tc.want)), "income %s: got %s want %s", tc.income, got, tc.want)
	}
}

func TestTDS_Dispatch(t *testing.T) {
	t.Parallel()

	income := dec("1600000")
	assert.True(t, TDS(settlement.RegimeNew, income, 2025).Equal(dec("124800")))
	assert.True(t, TDS(settlement.RegimeOld, income, 2025).Equal(OldRegimeTDS(income)))
}

func TestStandardDeduction(t *testing.T) {
	t.Parallel()

	assert.True(t, StandardDeduction(settlement.RegimeOld, 2025).Equal(dec("50000")))
	assert.True(t, StandardDeduction(settlement.RegimeOld, 2024).Equal(dec("50000")))
	assert.True(t, StandardDeduction(settlement.RegimeNew, 2025).Equal(dec("75000")))
	assert.True(t, StandardDeduction(settlement.RegimeNew, 2024).Equal(dec("50000")))
}

func TestProfessionalTaxApplies(t *testing.T) {
	t.Parallel()

	assert.True(t, ProfessionalTaxApplies("Chennai"))
	assert.True(t, ProfessionalTaxApplies(" BANGALORE "))
	assert.False(t, ProfessionalTaxApplies("Delhi"))
	assert.False(t, ProfessionalTaxApplies(""))
}
