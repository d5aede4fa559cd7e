package tax

import (
	"strings"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

var (
	cess = decimal.NewFromFloat(1.04)

	oldRebateLimit = decimal.NewFromInt(500_000)

	oldBrackets = []bracket{
		{min: d(250_000), max: d(500_000), rate: rate("0.05")},
		{min: d(500_000), max: d(1_000_000), rate: rate("0.20")},
		{min: d(1_000_000), max: decimal.Decimal{}, rate: rate("0.30")},
	}

	// FY 2025-26 onward
	newBrackets2025 = []bracket{
		{min: d(400_000), max: d(800_000), rate: rate("0.05")},
		{min: d(800_000), max: d(1_200_000), rate: rate("0.10")},
		{min: d(1_200_000), max: d(1_600_000), rate: rate("0.15")},
		{min: d(1_600_000), max: d(2_000_000), rate: rate("0.20")},
		{min: d(2_000_000), max: d(2_400_000), rate: rate("0.25")},
		{min: d(2_400_000), max: decimal.Decimal{}, rate: rate("0.30")},
	}
	newRebateLimit2025 = d(1_200_000)

	// FY 2024-25
	newBrackets2024 = []bracket{
		{min: d(300_000), max: d(600_000), rate: rate("0.05")},
		{min: d(600_000), max: d(900_000), rate: rate("0.10")},
		{min: d(900_000), max: d(1_200_000), rate: rate("0.15")},
		{min: d(1_200_000), max: d(1_500_000), rate: rate("0.20")},
		{min: d(1_500_000), max: decimal.Decimal{}, rate: rate("0.30")},
	}
	newRebateLimit2024 = d(700_000)
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// bracket taxes the income portion between min and max. A zero max means
// the bracket is open ended.
type bracket struct {
	min  decimal.Decimal
	max  decimal.Decimal
	rate decimal.Decimal
}

func taxFromBrackets(income decimal.Decimal, brackets []bracket) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.min) {
			break
		}
		upper := income
		if !b.max.IsZero() && upper.GreaterThan(b.max) {
			upper = b.max
		}
		tax = tax.Add(upper.Sub(b.min).Mul(b.rate))
	}
	return tax
}

// FYStartYear maps a last working day to the start year of its Indian
// financial year: April onward belongs to the FY starting that year.
func FYStartYear(lwd time.Time) int {
	if lwd.Month() >= time.April {
		return lwd.Year()
	}
	return lwd.Year() - 1
}

// OldRegimeTDS computes cess-inclusive tax on a total income already net
// of the standard deduction and all declared deductions. Section 87A
// zeroes the liability at or below five lakh.
func OldRegimeTDS(totalIncome decimal.Decimal) decimal.Decimal {
	ti := clampZero(totalIncome)
	if ti.LessThanOrEqual(oldRebateLimit) {
		return decimal.Zero
	}
	return taxFromBrackets(ti, oldBrackets).Mul(cess).Round(2)
}

// NewRegimeTDS computes cess-inclusive tax under the new regime slabs of
// the given financial year.
func NewRegimeTDS(totalIncome decimal.Decimal, fyStart int) decimal.Decimal {
	ti := clampZero(totalIncome)

	brackets, rebateLimit := newBrackets2024, newRebateLimit2024
	if fyStart >= 2025 {
		brackets, rebateLimit = newBrackets2025, newRebateLimit2025
	}
	if ti.LessThanOrEqual(rebateLimit) {
		return decimal.Zero
	}
	return taxFromBrackets(ti, brackets).Mul(cess).Round(2)
}

// TDS dispatches to the regime's calculator.
func TDS(regime settlement.Regime, totalIncome decimal.Decimal, fyStart int) decimal.Decimal {
	if regime == settlement.RegimeNew {
		return NewRegimeTDS(totalIncome, fyStart)
	}
	return OldRegimeTDS(totalIncome)
}

// StandardDeduction returns the regime's standard deduction for the
// financial year. The new regime moved to 75k from FY 2025-26.
func StandardDeduction(regime settlement.Regime, fyStart int) decimal.Decimal {
	if regime == settlement.RegimeNew && fyStart >= 2025 {
		return d(75_000)
	}
	return d(50_000)
}

// ptLocations are the base locations where professional tax is levied.
var ptLocations = map[string]struct{}{
	"chennai":   {},
	"bangalore": {},
}

// ProfessionalTaxApplies reports whether the base location levies PT.
func ProfessionalTaxApplies(baseLocation string) bool {
	_, ok := ptLocations[normalize(baseLocation)]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
