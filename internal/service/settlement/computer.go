package settlement

import (
	"fmt"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/service/calendar"
	"github.com/koenig-hr/fnf-backend-go/internal/service/epf"
	"github.com/koenig-hr/fnf-backend-go/internal/service/payroll"
	"github.com/koenig-hr/fnf-backend-go/internal/service/tax"
	"github.com/shopspring/decimal"
)

// Computer turns an employee master row plus the payroll team's inputs
// into a settlement record. Computation is deterministic: the same inputs
// always produce the same record.
type Computer struct {
	resolver *epf.Resolver
	holidays []time.Time
}

func NewComputer(resolver *epf.Resolver, holidays []time.Time) *Computer {
	return &Computer{resolver: resolver, holidays: holidays}
}

// Compute builds the full settlement record in Draft status. The audit
// and workflow fields are left for the caller.
func (c *Computer) Compute(emp employee.Employee, req settlement.ComputeSettlementRequest) (settlement.Record, error) {
	lwd, err := time.Parse(time.DateOnly, req.LWD)
	if err != nil {
		return settlement.Record{}, fmt.Errorf("failed to parse last working day: %w", err)
	}

	policy := c.resolver.Resolve(emp, req.PreferredEPFColumn)

	rec := settlement.Record{
		EmployeeID:      emp.EmployeeID,
		EmployeeName:    emp.Name,
		Department:      emp.Department,
		BaseLocation:    emp.BaseLocation,
		DOJ:             emp.DOJ,
		LWD:             lwd,
		Regime:          settlement.Regime(req.Regime),
		FYStart:         tax.FYStartYear(lwd),
		Bonus:           req.Bonus,
		LeaveEnc:        req.LeaveEncashment,
		Recoveries:      req.Recoveries.ToRecoveries(),
		Declaration:     req.Declaration.ToDeclaration(),
		ProfessionalTax: req.ProfessionalTax,
		Status:          settlement.StatusDraft,
	}

	proratedTotal := decimal.Zero
	epfTotal := decimal.Zero
	esiTotal := decimal.Zero
	for _, in := range req.Months {
		month := time.Month(in.Month)
		working := calendar.WorkingDays(in.Year, month, c.holidays)

		gross := emp.MonthlyGross
		if in.Gross != nil {
			gross = *in.Gross
		}

		var override *payroll.Split
		if in.Breakdown != nil {
			override = &payroll.Split{
				Basic:   in.Breakdown.Basic,
				HRA:     in.Breakdown.HRA,
				Special: in.Breakdown.Special,
			}
		}

		mc, err := payroll.ProrateMonth(payroll.MonthInput{
			Year:        in.Year,
			Month:       month,
			Gross:       gross,
			PresentDays: in.PresentDays,
			WorkingDays: working,
			Override:    override,
		}, policy)
		if err != nil {
			return settlement.Record{}, err
		}

		present := in.PresentDays
		if present > working {
			present = working
		}

		rec.Months = append(rec.Months, settlement.MonthRecord{
			Year:                in.Year,
			Month:               month,
			WorkingDays:         working,
			PresentDays:         present,
			Gross:               gross,
			Basic:               mc.Basic,
			HRA:                 mc.HRA,
			Special:             mc.Special,
			ProratedBasic:       mc.ProratedBasic,
			ProratedHRA:         mc.ProratedHRA,
			ProratedSpecial:     mc.ProratedSpecial,
			ProratedGross:       mc.ProratedGross,
			EPF:                 mc.EPF,
			EPFFullMonth:        epf.FullMonthAmount(policy, mc.Basic),
			ESI:                 in.ESI,
			BreakdownOverridden: mc.Overridden,
		})
		proratedTotal = proratedTotal.Add(mc.ProratedGross)
		epfTotal = epfTotal.Add(mc.EPF)
		esiTotal = esiTotal.Add(in.ESI)
	}
	rec.EPFTotal = epfTotal
	rec.ESITotal = esiTotal

	rec.TenureYears = payroll.TenureYears(emp.DOJ, lwd)
	rec.Gratuity = payroll.Gratuity(rec.TenureYears, payroll.LastBasic(emp.MonthlyGross))

	rec.TotalEarnings = proratedTotal.Add(rec.Gratuity).Add(rec.Bonus).Add(rec.LeaveEnc)
	// Gratuity is tax exempt: in the payout, out of the taxable base
	rec.TaxableEarnings = rec.TotalEarnings.Sub(rec.Gratuity)

	applyTax(&rec)
	return rec, nil
}

// applyTax runs the deduction aggregation, taxable income, TDS and net
// payable steps. Approval-time revisions re-run exactly this portion;
// earnings and month records are never touched here.
func applyTax(rec *settlement.Record) {
	// EPF employee contribution defaults to the settlement's own prorated
	// EPF total when the declaration leaves it blank
	if rec.Declaration.EPFEmployee.IsZero() {
		rec.Declaration.EPFEmployee = rec.EPFTotal
	}

	// PT is levied only in the locations that have it
	if !tax.ProfessionalTaxApplies(rec.BaseLocation) {
		rec.ProfessionalTax = decimal.Zero
	}

	// the aggregator is regime gated: under New it keeps only 80CCD(2)
	// and zeroes the exempt allowances
	totals := tax.Aggregate(rec.Declaration, rec.Regime)

	taxable := rec.TaxableEarnings.
		Sub(tax.StandardDeduction(rec.Regime, rec.FYStart)).
		Sub(rec.ProfessionalTax).
		Sub(totals.Total).
		Sub(totals.Exempt)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	rec.TaxableIncome = taxable

	if rec.ManualTDSOverride != nil {
		rec.TDS = *rec.ManualTDSOverride
	} else {
		rec.TDS = tax.TDS(rec.Regime, rec.TaxableIncome, rec.FYStart)
	}

	rec.PayrollDeductions = rec.EPFTotal.Add(rec.ESITotal).Add(rec.Recoveries.Total())
	rec.TotalDeductions = rec.PayrollDeductions.
		Add(rec.ProfessionalTax).
		Add(rec.TDS).
		Add(rec.AdditionalDeductions)
	rec.NetPayable = rec.TotalEarnings.Sub(rec.TotalDeductions)
}
