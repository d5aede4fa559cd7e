package statement

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// Generator renders a full and final settlement statement as a PDF.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func amount(d decimal.Decimal) string {
	return "INR " + d.StringFixed(2)
}

func (g *Generator) Generate(rec settlement.Record) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Full & Final Settlement Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Employee: %s (%s)", rec.EmployeeName, rec.EmployeeID))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Department: %s    Location: %s", rec.Department, rec.BaseLocation))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Joined: %s    Last Working Day: %s    Tenure: %d years",
		rec.DOJ.Format(time.DateOnly), rec.LWD.Format(time.DateOnly), rec.TenureYears))
	pdf.Ln(6)
	pdf.Cell(0, 7, fmt.Sprintf("Tax Regime: %s    FY: %d-%d    Status: %s",
		rec.Regime, rec.FYStart, rec.FYStart+1, rec.Status))
	pdf.Ln(10)

	g.monthTable(pdf, rec)
	g.summary(pdf, rec)

	if rec.Status == settlement.StatusTaxApproved || rec.Status == settlement.StatusPaymentProcessed {
		g.reviewerStamp(pdf, rec)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render settlement statement: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) monthTable(pdf *gofpdf.Fpdf, rec settlement.Record) {
	pdf.SetFont("Helvetica", "B", 10)
	headers := []struct {
		label string
		width float64
	}{
		{"Month", 28},
		{"Days", 22},
		{"Basic", 28},
		{"HRA", 28},
		{"Special", 28},
		{"Gross Paid", 28},
		{"EPF", 28},
	}
	for _, h := range headers {
		pdf.CellFormat(h.width, 7, h.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range rec.Months {
		monthLabel := fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year)
		days := fmt.Sprintf("%d/%d", m.PresentDays, m.WorkingDays)
		pdf.CellFormat(28, 7, monthLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 7, days, "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 7, m.ProratedBasic.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, m.ProratedHRA.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, m.ProratedSpecial.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, m.ProratedGross.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 7, m.EPF.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (g *Generator) summary(pdf *gofpdf.Fpdf, rec settlement.Record) {
	line := func(label string, value decimal.Decimal) {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(110, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, amount(value), "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Earnings")
	pdf.Ln(8)
	line("Gratuity (tax exempt)", rec.Gratuity)
	line("Bonus / Ex-gratia", rec.Bonus)
	line("Leave Encashment", rec.LeaveEnc)
	line("Total Earnings", rec.TotalEarnings)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Deductions")
	pdf.Ln(8)
	line("EPF (Employee)", rec.EPFTotal)
	line("ESI", rec.ESITotal)
	line("Recoveries", rec.Recoveries.Total())
	line("Professional Tax", rec.ProfessionalTax)
	line(fmt.Sprintf("TDS (%s regime)", rec.Regime), rec.TDS)
	if !rec.AdditionalDeductions.IsZero() {
		line("Additional Deductions", rec.AdditionalDeductions)
	}
	line("Total Deductions", rec.TotalDeductions)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(110, 9, "Net Payable", "T", 0, "L", false, 0, "")
	pdf.CellFormat(60, 9, amount(rec.NetPayable), "T", 0, "R", false, 0, "")
	pdf.Ln(12)
}

func (g *Generator) reviewerStamp(pdf *gofpdf.Fpdf, rec settlement.Record) {
	pdf.SetFont("Helvetica", "I", 10)
	reviewer := "tax team"
	if rec.TaxReviewedBy != nil {
		reviewer = *rec.TaxReviewedBy
	}
	stamp := fmt.Sprintf("Reviewed and approved by %s", reviewer)
	if rec.TaxReviewedAt != nil {
		stamp += " on " + rec.TaxReviewedAt.Format("2006-01-02 15:04 MST")
	}
	pdf.Cell(0, 6, stamp)
	pdf.Ln(5)
	if rec.PaymentProcessedAt != nil {
		pdf.Cell(0, 6, "Payment processed on "+rec.PaymentProcessedAt.Format("2006-01-02 15:04 MST"))
		pdf.Ln(5)
	}
}
