package tax

import (
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

var sec80CCap = decimal.NewFromInt(150_000)

// DeductionTotals is the regime-gated aggregation of an investment
// declaration. Total covers the chapter VI-A heads; Exempt allowances are
// reported separately because they reduce taxable earnings directly.
type DeductionTotals struct {
	Sec80C decimal.Decimal
	Sec80D decimal.Decimal
	Other  decimal.Decimal
	Exempt decimal.Decimal
	Total  decimal.Decimal
}

// Aggregate sums the declaration per the chosen regime. The new regime
// disallows every head except the employer's NPS contribution under
// 80CCD(2).
func Aggregate(d settlement.InvestmentDeclaration, regime settlement.Regime) DeductionTotals {
	if regime == settlement.RegimeNew {
		other := d.NPS80CCD2
		return DeductionTotals{
			Other: other,
			Total: other,
		}
	}

	sec80C := d.PPF.
		Add(d.EPFEmployee).
		Add(d.ELSS).
		Add(d.LifeInsurance).
		Add(d.FD5Year).
		Add(d.NSC).
		Add(d.Sukanya).
		Add(d.Tuition)
	if sec80C.GreaterThan(sec80CCap) {
		sec80C = sec80CCap
	}

	sec80D := d.MedicalInsuranceSelf.Add(d.MedicalInsuranceParents)

	other := d.Sec80DD.
		Add(d.Sec80DDB).
		Add(d.HomeLoanInterest).
		Add(d.EducationLoanInterest).
		Add(d.NPS80CCD1B).
		Add(d.NPS80CCD2)

	exempt := d.Conveyance.
		Add(d.HelperAllowance).
		Add(d.LTA).
		Add(d.Telephone).
		Add(d.LearningDevelopment).
		Add(d.HRAExemption)

	return DeductionTotals{
		Sec80C: sec80C,
		Sec80D: sec80D,
		Other:  other,
		Exempt: exempt,
		Total:  sec80C.Add(sec80D).Add(other),
	}
}
