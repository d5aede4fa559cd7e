package payroll

import (
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/service/calendar"
	"github.com/koenig-hr/fnf-backend-go/internal/service/epf"
	"github.com/shopspring/decimal"
)

var (
	half         = decimal.NewFromFloat(0.5)
	three        = decimal.NewFromInt(3)
	overrideTol  = decimal.NewFromFloat(0.01)
	gratuityCap  = decimal.NewFromInt(2_000_000)
	gratuityRate = decimal.NewFromInt(15).Div(decimal.NewFromInt(26))
)

// Split is a month's basic/HRA/special composition.
type Split struct {
	Basic   decimal.Decimal
	HRA     decimal.Decimal
	Special decimal.Decimal
}

// Breakdown splits a month's gross by the standard formula: basic is a
// third of gross, HRA half of basic, special allowance the remainder.
// The three parts always sum back to gross exactly.
func Breakdown(gross decimal.Decimal) Split {
	basic := gross.Div(three).Round(2)
	hra := basic.Mul(half).Round(2)
	return Split{
		Basic:   basic,
		HRA:     hra,
		Special: gross.Sub(basic).Sub(hra),
	}
}

// ValidateSplit checks an explicit override: all parts non-negative and
// summing to gross within 0.01.
func ValidateSplit(gross decimal.Decimal, s Split) error {
	if s.Basic.IsNegative() || s.HRA.IsNegative() || s.Special.IsNegative() {
		return settlement.ErrInvalidBreakdownOverride
	}
	diff := s.Basic.Add(s.HRA).Add(s.Special).Sub(gross).Abs()
	if diff.GreaterThan(overrideTol) {
		return settlement.ErrInvalidBreakdownOverride
	}
	return nil
}

// MonthInput is one month of the notice period to prorate.
type MonthInput struct {
	Year        int
	Month       time.Month
	Gross       decimal.Decimal
	PresentDays int
	WorkingDays int
	Override    *Split
}

// MonthComputation is the prorated result for one month.
type MonthComputation struct {
	Split
	Ratio           decimal.Decimal
	ProratedBasic   decimal.Decimal
	ProratedHRA     decimal.Decimal
	ProratedSpecial decimal.Decimal
	ProratedGross   decimal.Decimal
	EPF             decimal.Decimal
	Overridden      bool
}

// ProrateMonth splits the month's gross, applies the attendance ratio to
// each component and computes the month's EPF deduction. Salary proration
// and EPF proration use the same ratio but are independent multiplications.
func ProrateMonth(in MonthInput, policy epf.Policy) (MonthComputation, error) {
	var split Split
	overridden := false
	if in.Override != nil {
		if err := ValidateSplit(in.Gross, *in.Override); err != nil {
			return MonthComputation{}, err
		}
		split = *in.Override
		overridden = true
	} else {
		split = Breakdown(in.Gross)
	}

	ratio := calendar.MonthRatio(in.PresentDays, in.WorkingDays)

	return MonthComputation{
		Split:           split,
		Ratio:           ratio,
		ProratedBasic:   split.Basic.Mul(ratio).Round(2),
		ProratedHRA:     split.HRA.Mul(ratio).Round(2),
		ProratedSpecial: split.Special.Mul(ratio).Round(2),
		ProratedGross:   in.Gross.Mul(ratio).Round(2),
		EPF:             epf.MonthlyAmount(policy, split.Basic, ratio),
		Overridden:      overridden,
	}, nil
}

// TenureYears returns whole years of service, counting the final partial
// year as a full year when it exceeds six months (or is exactly six months
// with extra days). Never negative.
func TenureYears(doj, lwd time.Time) int {
	years := lwd.Year() - doj.Year()
	if doj.AddDate(years, 0, 0).After(lwd) {
		years--
	}
	if years < 0 {
		return 0
	}
	// past the half-year mark of the current service year
	if lwd.After(doj.AddDate(years, 6, 0)) {
		years++
	}
	return years
}

// Gratuity computes the statutory gratuity. Under five years of service
// pays nothing; beyond that, 15/26 of the last drawn basic per year of
// service, capped at 20 lakh.
func Gratuity(years int, lastBasic decimal.Decimal) decimal.Decimal {
	if years < 5 {
		return decimal.Zero
	}
	amount := decimal.NewFromInt(int64(years)).Mul(lastBasic).Mul(gratuityRate)
	if amount.GreaterThan(gratuityCap) {
		amount = gratuityCap
	}
	return amount.Round(2)
}

// LastBasic derives the last drawn monthly basic from the master monthly
// gross, using the standard third split.
func LastBasic(monthlyGross decimal.Decimal) decimal.Decimal {
	return monthlyGross.Div(three).Round(2)
}
