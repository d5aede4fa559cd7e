package settlement

import (
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// BreakdownInput overrides the formula split for one month. It must be
// non-negative and sum to the month gross within 0.01.
type BreakdownInput struct {
	Basic   decimal.Decimal `json:"basic"`
	HRA     decimal.Decimal `json:"hra"`
	Special decimal.Decimal `json:"special"`
}

// MonthInput is one active month of the notice period as entered by payroll.
// Gross defaults to the employee master's monthly gross when omitted.
type MonthInput struct {
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	PresentDays int              `json:"present_days"`
	Gross       *decimal.Decimal `json:"gross,omitempty"`
	ESI         decimal.Decimal  `json:"esi"`
	Breakdown   *BreakdownInput  `json:"breakdown,omitempty"`
}

type RecoveriesInput struct {
	SalaryAdvance decimal.Decimal `json:"salary_advance"`
	TADA          decimal.Decimal `json:"tada"`
	WFH           decimal.Decimal `json:"wfh"`
	NoticePay     decimal.Decimal `json:"notice_pay"`
	Other         decimal.Decimal `json:"other"`
}

func (r RecoveriesInput) ToRecoveries() Recoveries {
	return Recoveries{
		SalaryAdvance: r.SalaryAdvance,
		TADA:          r.TADA,
		WFH:           r.WFH,
		NoticePay:     r.NoticePay,
		Other:         r.Other,
	}
}

type DeclarationInput struct {
	PPF           decimal.Decimal `json:"ppf"`
	EPFEmployee   decimal.Decimal `json:"epf_employee"`
	ELSS          decimal.Decimal `json:"elss"`
	LifeInsurance decimal.Decimal `json:"life_insurance"`
	FD5Year       decimal.Decimal `json:"fd_5year"`
	NSC           decimal.Decimal `json:"nsc"`
	Sukanya       decimal.Decimal `json:"sukanya"`
	Tuition       decimal.Decimal `json:"tuition"`

	MedicalInsuranceSelf    decimal.Decimal `json:"medical_insurance_self"`
	MedicalInsuranceParents decimal.Decimal `json:"medical_insurance_parents"`

	Sec80DD               decimal.Decimal `json:"sec_80dd"`
	Sec80DDB              decimal.Decimal `json:"sec_80ddb"`
	HomeLoanInterest      decimal.Decimal `json:"home_loan_interest"`
	EducationLoanInterest decimal.Decimal `json:"education_loan_interest"`
	NPS80CCD1B            decimal.Decimal `json:"nps_80ccd_1b"`
	NPS80CCD2             decimal.Decimal `json:"nps_80ccd_2"`

	Conveyance          decimal.Decimal `json:"conveyance"`
	HelperAllowance     decimal.Decimal `json:"helper_allowance"`
	LTA                 decimal.Decimal `json:"lta"`
	Telephone           decimal.Decimal `json:"telephone"`
	LearningDevelopment decimal.Decimal `json:"learning_development"`
	HRAExemption        decimal.Decimal `json:"hra_exemption"`
}

func (d DeclarationInput) ToDeclaration() InvestmentDeclaration {
	return InvestmentDeclaration{
		PPF:                     d.PPF,
		EPFEmployee:             d.EPFEmployee,
		ELSS:                    d.ELSS,
		LifeInsurance:           d.LifeInsurance,
		FD5Year:                 d.FD5Year,
		NSC:                     d.NSC,
		Sukanya:                 d.Sukanya,
		Tuition:                 d.Tuition,
		MedicalInsuranceSelf:    d.MedicalInsuranceSelf,
		MedicalInsuranceParents: d.MedicalInsuranceParents,
		Sec80DD:                 d.Sec80DD,
		Sec80DDB:                d.Sec80DDB,
		HomeLoanInterest:        d.HomeLoanInterest,
		EducationLoanInterest:   d.EducationLoanInterest,
		NPS80CCD1B:              d.NPS80CCD1B,
		NPS80CCD2:               d.NPS80CCD2,
		Conveyance:              d.Conveyance,
		HelperAllowance:         d.HelperAllowance,
		LTA:                     d.LTA,
		Telephone:               d.Telephone,
		LearningDevelopment:     d.LearningDevelopment,
		HRAExemption:            d.HRAExemption,
	}
}

// ComputeSettlementRequest is the payroll team's input for computing or
// submitting a settlement.
type ComputeSettlementRequest struct {
	EmployeeID         string           `json:"employee_id"`
	LWD                string           `json:"lwd"`
	Regime             string           `json:"regime"`
	Months             []MonthInput     `json:"months"`
	Bonus              decimal.Decimal  `json:"bonus"`
	LeaveEncashment    decimal.Decimal  `json:"leave_encashment"`
	Recoveries         RecoveriesInput  `json:"recoveries"`
	Declaration        DeclarationInput `json:"declaration"`
	ProfessionalTax    decimal.Decimal  `json:"professional_tax"`
	PreferredEPFColumn string           `json:"preferred_epf_column,omitempty"`
}

func (r ComputeSettlementRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, err := time.Parse(time.DateOnly, r.LWD); err != nil {
		errs = append(errs, validator.ValidationError{Field: "lwd", Message: "lwd must be a valid YYYY-MM-DD date"})
	}
	if !Regime(r.Regime).Valid() {
		errs = append(errs, validator.ValidationError{Field: "regime", Message: "regime must be Old or New"})
	}
	if len(r.Months) == 0 {
		errs = append(errs, validator.ValidationError{Field: "months", Message: "at least one settlement month is required"})
	}
	for _, m := range r.Months {
		if m.Month < 1 || m.Month > 12 {
			errs = append(errs, validator.ValidationError{Field: "months", Message: "month must be between 1 and 12"})
			break
		}
		if m.Year < 2000 || m.Year > 2100 {
			errs = append(errs, validator.ValidationError{Field: "months", Message: "year is out of range"})
			break
		}
		if m.PresentDays < 0 {
			errs = append(errs, validator.ValidationError{Field: "months", Message: "present_days cannot be negative"})
			break
		}
		if m.Gross != nil && m.Gross.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "months", Message: "gross cannot be negative"})
			break
		}
		if m.ESI.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "months", Message: "esi cannot be negative"})
			break
		}
	}
	if r.ProfessionalTax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professional_tax", Message: "professional_tax cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReviewRequest is the tax team's decision on a pending settlement.
// Revisions apply only on approval; a rejection keeps the stored figures.
type ReviewRequest struct {
	Approve              bool             `json:"approve"`
	Regime               *string          `json:"regime,omitempty"`
	ProfessionalTax      *decimal.Decimal `json:"professional_tax,omitempty"`
	ManualTDS            *decimal.Decimal `json:"manual_tds,omitempty"`
	AdditionalDeductions decimal.Decimal  `json:"additional_deductions"`
	Comments             string           `json:"comments"`
	Version              int64            `json:"version"`
}

func (r ReviewRequest) Validate() error {
	var errs validator.ValidationErrors
	if !r.Approve && r.Comments == "" {
		errs = append(errs, validator.ValidationError{Field: "comments", Message: "comments are required when rejecting"})
	}
	if r.Regime != nil && !Regime(*r.Regime).Valid() {
		errs = append(errs, validator.ValidationError{Field: "regime", Message: "regime must be Old or New"})
	}
	if r.ProfessionalTax != nil && r.ProfessionalTax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professional_tax", Message: "professional_tax cannot be negative"})
	}
	if r.ManualTDS != nil && r.ManualTDS.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "manual_tds", Message: "manual_tds cannot be negative"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthResponse struct {
	Year            int             `json:"year"`
	Month           int             `json:"month"`
	WorkingDays     int             `json:"working_days"`
	PresentDays     int             `json:"present_days"`
	Gross           decimal.Decimal `json:"gross"`
	Basic           decimal.Decimal `json:"basic"`
	HRA             decimal.Decimal `json:"hra"`
	Special         decimal.Decimal `json:"special"`
	ProratedBasic   decimal.Decimal `json:"prorated_basic"`
	ProratedHRA     decimal.Decimal `json:"prorated_hra"`
	ProratedSpecial decimal.Decimal `json:"prorated_special"`
	ProratedGross   decimal.Decimal `json:"prorated_gross"`
	EPF             decimal.Decimal `json:"epf"`
	EPFFullMonth    decimal.Decimal `json:"epf_full_month"`
	ESI             decimal.Decimal `json:"esi"`
	Overridden      bool            `json:"breakdown_overridden,omitempty"`
}

type SettlementResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	BaseLocation string `json:"base_location"`
	DOJ          string `json:"doj"`
	LWD          string `json:"lwd"`

	Regime      Regime `json:"regime"`
	FYStart     int    `json:"fy_start"`
	TenureYears int    `json:"tenure_years"`

	Months          []MonthResponse `json:"months"`
	Gratuity        decimal.Decimal `json:"gratuity"`
	Bonus           decimal.Decimal `json:"bonus"`
	LeaveEncashment decimal.Decimal `json:"leave_encashment"`

	ProfessionalTax decimal.Decimal `json:"professional_tax"`
	EPFTotal        decimal.Decimal `json:"epf_total"`
	ESITotal        decimal.Decimal `json:"esi_total"`

	TotalEarnings     decimal.Decimal `json:"total_earnings"`
	TaxableEarnings   decimal.Decimal `json:"taxable_earnings"`
	TaxableIncome     decimal.Decimal `json:"taxable_income"`
	TDS               decimal.Decimal `json:"tds"`
	PayrollDeductions decimal.Decimal `json:"payroll_deductions"`
	TotalDeductions   decimal.Decimal `json:"total_deductions"`
	NetPayable        decimal.Decimal `json:"net_payable"`

	AdditionalDeductions decimal.Decimal `json:"additional_deductions"`

	Status  Status `json:"status"`
	Version int64  `json:"version"`

	PreparedBy         string  `json:"prepared_by,omitempty"`
	SubmittedAt        *string `json:"submitted_at,omitempty"`
	TaxReviewedBy      *string `json:"tax_reviewed_by,omitempty"`
	TaxReviewedAt      *string `json:"tax_reviewed_at,omitempty"`
	TaxComments        *string `json:"tax_comments,omitempty"`
	PaymentProcessedAt *string `json:"payment_processed_at,omitempty"`
}

func ToSettlementResponse(rec Record) SettlementResponse {
	months := make([]MonthResponse, 0, len(rec.Months))
	for _, m := range rec.Months {
		months = append(months, MonthResponse{
			Year:            m.Year,
			Month:           int(m.Month),
			WorkingDays:     m.WorkingDays,
			PresentDays:     m.PresentDays,
			Gross:           m.Gross,
			Basic:           m.Basic,
			HRA:             m.HRA,
			Special:         m.Special,
			ProratedBasic:   m.ProratedBasic,
			ProratedHRA:     m.ProratedHRA,
			ProratedSpecial: m.ProratedSpecial,
			ProratedGross:   m.ProratedGross,
			EPF:             m.EPF,
			EPFFullMonth:    m.EPFFullMonth,
			ESI:             m.ESI,
			Overridden:      m.BreakdownOverridden,
		})
	}

	resp := SettlementResponse{
		EmployeeID:           rec.EmployeeID,
		EmployeeName:         rec.EmployeeName,
		Department:           rec.Department,
		BaseLocation:         rec.BaseLocation,
		DOJ:                  rec.DOJ.Format(time.DateOnly),
		LWD:                  rec.LWD.Format(time.DateOnly),
		Regime:               rec.Regime,
		FYStart:              rec.FYStart,
		TenureYears:          rec.TenureYears,
		Months:               months,
		Gratuity:             rec.Gratuity,
		Bonus:                rec.Bonus,
		LeaveEncashment:      rec.LeaveEnc,
		ProfessionalTax:      rec.ProfessionalTax,
		EPFTotal:             rec.EPFTotal,
		ESITotal:             rec.ESITotal,
		TotalEarnings:        rec.TotalEarnings,
		TaxableEarnings:      rec.TaxableEarnings,
		TaxableIncome:        rec.TaxableIncome,
		TDS:                  rec.TDS,
		PayrollDeductions:    rec.PayrollDeductions,
		TotalDeductions:      rec.TotalDeductions,
		NetPayable:           rec.NetPayable,
		AdditionalDeductions: rec.AdditionalDeductions,
		Status:               rec.Status,
		Version:              rec.Version,
		PreparedBy:           rec.PreparedBy,
		TaxReviewedBy:        rec.TaxReviewedBy,
		TaxComments:          rec.TaxComments,
	}
	if rec.SubmittedAt != nil {
		s := rec.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &s
	}
	if rec.TaxReviewedAt != nil {
		s := rec.TaxReviewedAt.Format(time.RFC3339)
		resp.TaxReviewedAt = &s
	}
	if rec.PaymentProcessedAt != nil {
		s := rec.PaymentProcessedAt.Format(time.RFC3339)
		resp.PaymentProcessedAt = &s
	}
	return resp
}
