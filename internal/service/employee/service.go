package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/validator"
)

// Canonical profile columns recognised in imported master rows. Sheets
// exported from different HR tools label the same column differently, so
// each profile value has a candidate list tried in order.
var (
	nameColumns       = []string{"Employee Name", "Name"}
	departmentColumns = []string{"Department", "Designation"}
	locationColumns   = []string{"BaseLocation", "Base Location", "Location", "Work Location"}
	dojColumns        = []string{"Date of Joining", "DOJ", "Joining Date"}
	lwdColumns        = []string{"Last Working Day", "LWD", "Last Working Date"}
	grossColumns      = []string{"Salary", "Gross Salary", "Monthly Gross", "Gross"}
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	logger       *slog.Logger
	now          func() time.Time
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, logger *slog.Logger) employee.EmployeeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// ========== IMPORT ==========

func (s *EmployeeServiceImpl) BulkUpsert(ctx context.Context, req employee.BulkUpsertRequest) ([]employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	out := make([]employee.EmployeeResponse, 0, len(req.Employees))
	for _, row := range req.Employees {
		emp, err := parseMasterRow(row)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", row.EmployeeID, err)
		}

		saved, err := s.employeeRepo.Upsert(ctx, emp)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert employee %s: %w", row.EmployeeID, err)
		}
		out = append(out, employee.ToEmployeeResponse(saved))
	}

	s.logger.Info("employee master imported", "rows", len(out))
	return out, nil
}

// parseMasterRow extracts the canonical profile from the raw columns. The
// raw field list is stored verbatim alongside it; EPF policy resolution
// reads the raw columns, not the parsed profile.
func parseMasterRow(row employee.UpsertEmployeeRequest) (employee.Employee, error) {
	emp := employee.Employee{
		EmployeeID: strings.TrimSpace(row.EmployeeID),
		Fields:     row.Fields,
	}

	emp.Name = firstFieldValue(row.Fields, nameColumns)
	emp.Department = firstFieldValue(row.Fields, departmentColumns)
	emp.BaseLocation = firstFieldValue(row.Fields, locationColumns)

	dojRaw := firstFieldValue(row.Fields, dojColumns)
	doj, ok := validator.ParseFlexibleDate(dojRaw)
	if !ok {
		return employee.Employee{}, employee.ErrMissingJoiningDate
	}
	emp.DOJ = doj

	if lwdRaw := firstFieldValue(row.Fields, lwdColumns); lwdRaw != "" {
		if lwd, ok := validator.ParseFlexibleDate(lwdRaw); ok {
			emp.LWD = &lwd
		}
	}

	grossRaw := firstFieldValue(row.Fields, grossColumns)
	gross, ok := validator.ParseAmount(grossRaw)
	if !ok || !gross.IsPositive() {
		return employee.Employee{}, employee.ErrMissingGrossSalary
	}
	emp.MonthlyGross = gross

	return emp, nil
}

func firstFieldValue(fields []employee.Field, candidates []string) string {
	for _, candidate := range candidates {
		for _, f := range fields {
			if strings.EqualFold(strings.TrimSpace(f.Name), candidate) {
				if v := strings.TrimSpace(f.Value); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// ========== QUERIES ==========

func (s *EmployeeServiceImpl) Get(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(emp), nil
}

func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	emps, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]employee.EmployeeResponse, 0, len(emps))
	for _, emp := range emps {
		out = append(out, employee.ToEmployeeResponse(emp))
	}
	return out, nil
}

func (s *EmployeeServiceImpl) ListFieldNames(ctx context.Context) (employee.FieldNamesResponse, error) {
	names, err := s.employeeRepo.ListFieldNames(ctx)
	if err != nil {
		return employee.FieldNamesResponse{}, err
	}
	return employee.FieldNamesResponse{Fields: names}, nil
}
