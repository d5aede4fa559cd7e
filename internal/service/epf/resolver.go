package epf

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Policy is the resolved EPF computation policy for one employee.
// FixedAmount, when set, overrides the rate computation entirely.
// Capped left nil means uncapped.
type Policy struct {
	Applicable  bool
	FixedAmount *decimal.Decimal
	Rate        decimal.Decimal
	WageBase    *decimal.Decimal
	CapWage     decimal.Decimal
	Capped      *bool
	// Source names the master column a fixed amount came from, for audit.
	Source string
}

var (
	defaultRate    = decimal.NewFromFloat(0.12)
	defaultCapWage = decimal.NewFromInt(15000)
)

// exactFixedColumns are master headers recognized as fixed full-month EPF
// amounts. Matching is case-insensitive on trimmed headers.
var exactFixedColumns = []string{
	"EPF Full Month",
	"EPF Fixed",
	"EPF Fixed Deduction",
	"EPF",
	"PF",
	"PF Deduction",
	"EPF Deduction",
	"Employee EPF",
	"EPF Employee",
	"PF Employee",
	"Total EPF",
	"EPF Amount",
	"EPF Per Month",
	"Employee PF Contribution",
	"PF Amount",
	"PF Per Month",
}

// fuzzyFixedPattern catches column names like "PF Monthly Deduction" that
// are not on the exact list. Headers containing "employer" are excluded
// separately; the employer share is never deducted from the employee.
var fuzzyFixedPattern = regexp.MustCompile(`(?:^|\s)(epf|pf).*(amount|deduction|contribution|per\s*month|monthly)`)

// FixedAmountColumns returns the headers that plausibly carry a fixed
// full-month EPF amount, preserving row order and dropping duplicates.
func FixedAmountColumns(headers []string) []string {
	exact := make(map[string]struct{}, len(exactFixedColumns))
	for _, c := range exactFixedColumns {
		exact[strings.ToLower(c)] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if _, dup := seen[norm]; dup {
			continue
		}
		if strings.Contains(norm, "employer") {
			continue
		}
		_, isExact := exact[norm]
		if !isExact && !fuzzyFixedPattern.MatchString(norm) {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, h)
	}
	return out
}

type Resolver struct {
	logger *slog.Logger
}

func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve derives the EPF policy from the employee's raw master fields.
// Precedence for the fixed amount: the preferred column, then the detected
// candidate columns in row order. Flag columns (applicable, capped, rate,
// cap wage, wages) apply when no fixed amount wins.
func (r *Resolver) Resolve(emp employee.Employee, preferred string) Policy {
	p := Policy{
		Applicable: true,
		Rate:       defaultRate,
		CapWage:    defaultCapWage,
	}

	for _, c := range []string{"EPF Applicable", "PF Applicable"} {
		if raw, ok := emp.FieldValue(c); ok {
			if v, parsed := validator.ParseFlexibleBool(raw); parsed {
				p.Applicable = v
			}
		}
	}

	for _, c := range []string{"EPF Capped", "PF Capped"} {
		if raw, ok := emp.FieldValue(c); ok {
			if v, parsed := validator.ParseFlexibleBool(raw); parsed {
				capped := v
				p.Capped = &capped
			}
		}
	}

	for _, c := range []string{"EPF Rate", "PF Rate"} {
		if raw, ok := emp.FieldValue(c); ok {
			if rate, parsed := validator.ParseAmount(raw); parsed {
				// sheets carry either 12 or 0.12
				if rate.GreaterThan(decimal.NewFromInt(1)) {
					rate = rate.Div(decimal.NewFromInt(100))
				}
				p.Rate = rate
			}
		}
	}

	if raw, ok := emp.FieldValue("PF Wage Cap"); ok {
		if cap, parsed := validator.ParseAmount(raw); parsed && cap.IsPositive() {
			p.CapWage = cap
		}
	}

	for _, c := range []string{"EPF Wages", "PF Wages"} {
		if raw, ok := emp.FieldValue(c); ok {
			if w, parsed := validator.ParseAmount(raw); parsed && !w.IsNegative() {
				wages := w
				p.WageBase = &wages
			}
		}
	}

	if preferred != "" {
		if raw, ok := emp.FieldValue(preferred); ok {
			if v, parsed := validator.ParseAmount(raw); parsed && !v.IsNegative() {
				p.FixedAmount = &v
				p.Source = preferred
				r.logger.Debug("epf fixed amount resolved",
					slog.String("employee_id", emp.EmployeeID),
					slog.String("column", preferred),
					slog.String("via", "preferred"))
				return p
			}
		}
	}

	headers := make([]string, 0, len(emp.Fields))
	for _, f := range emp.Fields {
		headers = append(headers, f.Name)
	}
	for _, c := range FixedAmountColumns(headers) {
		raw, ok := emp.FieldValue(c)
		if !ok {
			continue
		}
		v, parsed := validator.ParseAmount(raw)
		if !parsed || v.IsNegative() {
			continue
		}
		p.FixedAmount = &v
		p.Source = c
		r.logger.Debug("epf fixed amount resolved",
			slog.String("employee_id", emp.EmployeeID),
			slog.String("column", c),
			slog.String("via", "scan"))
		return p
	}

	return p
}

// MonthlyAmount computes the prorated EPF deduction for one month.
func MonthlyAmount(p Policy, fullMonthBasic, ratio decimal.Decimal) decimal.Decimal {
	full := FullMonthAmount(p, fullMonthBasic)
	return full.Mul(ratio).Round(2)
}

// FullMonthAmount computes the EPF deduction for a full month of
// attendance under the given policy.
func FullMonthAmount(p Policy, fullMonthBasic decimal.Decimal) decimal.Decimal {
	if !p.Applicable {
		return decimal.Zero
	}
	if p.FixedAmount != nil {
		return p.FixedAmount.Round(2)
	}

	base := fullMonthBasic
	if p.WageBase != nil && p.WageBase.IsPositive() {
		base = *p.WageBase
	}
	if p.Capped != nil && *p.Capped && base.GreaterThan(p.CapWage) {
		base = p.CapWage
	}
	return p.Rate.Mul(base)
}
