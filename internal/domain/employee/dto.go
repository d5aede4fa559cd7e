package employee

import (
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpsertEmployeeRequest is one imported master row. Fields carries the raw
// columns in sheet order; the canonical profile values are parsed from it
// server side so the import payload stays a plain mirror of the sheet.
type UpsertEmployeeRequest struct {
	EmployeeID string  `json:"employee_id"`
	Fields     []Field `json:"fields"`
}

// BulkUpsertRequest replaces the master rows for the listed employees.
type BulkUpsertRequest struct {
	Employees []UpsertEmployeeRequest `json:"employees"`
}

func (r BulkUpsertRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Employees) == 0 {
		errs = append(errs, validator.ValidationError{Field: "employees", Message: "at least one employee row is required"})
	}
	for _, e := range r.Employees {
		if e.EmployeeID == "" {
			errs = append(errs, validator.ValidationError{Field: "employees", Message: "employee_id is required on every row"})
			break
		}
		if len(e.Fields) == 0 {
			errs = append(errs, validator.ValidationError{Field: "employees", Message: "fields are required on every row"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	EmployeeID   string          `json:"employee_id"`
	Name         string          `json:"name"`
	Department   string          `json:"department"`
	BaseLocation string          `json:"base_location"`
	DOJ          string          `json:"doj"`
	LWD          *string         `json:"lwd,omitempty"`
	MonthlyGross decimal.Decimal `json:"monthly_gross"`
	Fields       []Field         `json:"fields"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID:   e.EmployeeID,
		Name:         e.Name,
		Department:   e.Department,
		BaseLocation: e.BaseLocation,
		DOJ:          e.DOJ.Format(time.DateOnly),
		MonthlyGross: e.MonthlyGross,
		Fields:       e.Fields,
	}
	if e.LWD != nil {
		lwd := e.LWD.Format(time.DateOnly)
		resp.LWD = &lwd
	}
	return resp
}

// FieldNamesResponse lists the master headers in sheet order.
type FieldNamesResponse struct {
	Fields []string `json:"fields"`
}
