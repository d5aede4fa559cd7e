package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Employee is one row of the employee master. The canonical profile fields
// are extracted from the raw sheet row; Fields keeps every raw column in
// its original order so EPF policy resolution can scan headers the same
// way the sheet reader did.
type Employee struct {
	EmployeeID   string
	Name         string
	Department   string
	BaseLocation string
	DOJ          time.Time
	LWD          *time.Time
	MonthlyGross decimal.Decimal
	Fields       []Field
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Field is a raw master column as imported, name and value both verbatim.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldValue returns the raw value of the named column, matching
// case-insensitively on the trimmed header.
func (e Employee) FieldValue(name string) (string, bool) {
	for _, f := range e.Fields {
		if strings.EqualFold(strings.TrimSpace(f.Name), strings.TrimSpace(name)) {
			return f.Value, true
		}
	}
	return "", false
}
