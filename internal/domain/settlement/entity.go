package settlement

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum for the review workflow. The string values are the display
// statuses shown to both teams.
type Status string

const (
	StatusDraft            Status = "Draft"
	StatusPendingTaxReview Status = "Pending Tax Review"
	StatusUnderTaxReview   Status = "Under Tax Review"
	StatusTaxApproved      Status = "Tax Approved"
	StatusTaxRejected      Status = "Tax Rejected"
	StatusPaymentProcessed Status = "Payment Processed"
)

// CanTransitionTo reports whether the workflow allows moving to target.
// Payment Processed is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusPendingTaxReview || target == StatusDraft
	case StatusPendingTaxReview:
		return target == StatusUnderTaxReview || target == StatusTaxApproved || target == StatusTaxRejected
	case StatusUnderTaxReview:
		return target == StatusTaxApproved || target == StatusTaxRejected
	case StatusTaxApproved:
		return target == StatusPaymentProcessed
	case StatusTaxRejected:
		// A rejected settlement re-enters via a fresh payroll submission.
		return target == StatusDraft || target == StatusPendingTaxReview
	case StatusPaymentProcessed:
		return false
	}
	return false
}

// Regime enum for the income tax computation.
type Regime string

const (
	RegimeOld Regime = "Old"
	RegimeNew Regime = "New"
)

func (r Regime) Valid() bool {
	return r == RegimeOld || r == RegimeNew
}

// MonthRecord is one active month of the notice period with its prorated
// salary components.
type MonthRecord struct {
	Year        int
	Month       time.Month
	WorkingDays int
	PresentDays int

	Gross   decimal.Decimal
	Basic   decimal.Decimal
	HRA     decimal.Decimal
	Special decimal.Decimal

	ProratedBasic   decimal.Decimal
	ProratedHRA     decimal.Decimal
	ProratedSpecial decimal.Decimal
	ProratedGross   decimal.Decimal

	// EPF is the attendance-prorated deduction for the month;
	// EPFFullMonth is what a full month would have deducted.
	EPF          decimal.Decimal
	EPFFullMonth decimal.Decimal

	// ESI is collected per month alongside EPF.
	ESI decimal.Decimal

	// BreakdownOverridden marks months where payroll supplied the
	// basic/HRA/special split instead of the 1:0.5:rest formula.
	BreakdownOverridden bool
}

// Recoveries are amounts the company claws back from the final payout.
// ESI is not a recovery; it is collected per month on MonthRecord.
type Recoveries struct {
	SalaryAdvance decimal.Decimal
	TADA          decimal.Decimal
	WFH           decimal.Decimal
	NoticePay     decimal.Decimal
	Other         decimal.Decimal
}

func (r Recoveries) Total() decimal.Decimal {
	return r.SalaryAdvance.Add(r.TADA).Add(r.WFH).Add(r.NoticePay).Add(r.Other)
}

// InvestmentDeclaration holds the employee's declared deductions and
// exempt allowances. Section grouping follows the Indian IT act heads.
type InvestmentDeclaration struct {
	// Section 80C (capped at 1.5L in aggregate)
	PPF           decimal.Decimal
	EPFEmployee   decimal.Decimal
	ELSS          decimal.Decimal
	LifeInsurance decimal.Decimal
	FD5Year       decimal.Decimal
	NSC           decimal.Decimal
	Sukanya       decimal.Decimal
	Tuition       decimal.Decimal

	// Section 80D
	MedicalInsuranceSelf    decimal.Decimal
	MedicalInsuranceParents decimal.Decimal

	// Other chapter VI-A deductions
	Sec80DD               decimal.Decimal
	Sec80DDB              decimal.Decimal
	HomeLoanInterest      decimal.Decimal
	EducationLoanInterest decimal.Decimal
	NPS80CCD1B            decimal.Decimal
	NPS80CCD2             decimal.Decimal

	// Exempt allowances (old regime only)
	Conveyance          decimal.Decimal
	HelperAllowance     decimal.Decimal
	LTA                 decimal.Decimal
	Telephone           decimal.Decimal
	LearningDevelopment decimal.Decimal
	HRAExemption        decimal.Decimal
}

// Record is the full settlement for one exiting employee. Keyed by
// EmployeeID; a re-submission overwrites the previous record. Version
// increments on every persisted write and guards concurrent reviews.
type Record struct {
	EmployeeID   string
	EmployeeName string
	Department   string
	BaseLocation string
	DOJ          time.Time
	LWD          time.Time

	Regime      Regime
	FYStart     int
	TenureYears int

	Months      []MonthRecord
	Gratuity    decimal.Decimal
	Bonus       decimal.Decimal
	LeaveEnc    decimal.Decimal
	Recoveries  Recoveries
	Declaration InvestmentDeclaration

	ProfessionalTax decimal.Decimal
	EPFTotal        decimal.Decimal
	ESITotal        decimal.Decimal

	TotalEarnings     decimal.Decimal
	TaxableEarnings   decimal.Decimal
	TaxableIncome     decimal.Decimal
	TDS               decimal.Decimal
	PayrollDeductions decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPayable        decimal.Decimal

	ManualTDSOverride    *decimal.Decimal
	AdditionalDeductions decimal.Decimal

	Status  Status
	Version int64

	PreparedBy         string
	SubmittedAt        *time.Time
	TaxReviewedBy      *string
	TaxReviewedAt      *time.Time
	TaxComments        *string
	PaymentProcessedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
