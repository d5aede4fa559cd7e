package employee

import (
	"context"
	"testing"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	headers   []string
}

func newFakeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Upsert(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.EmployeeID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := f.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0, len(f.employees))
	for _, emp := range f.employees {
		out = append(out, emp)
	}
	return out, nil
}

func (f *fakeEmployeeRepo) ListFieldNames(_ context.Context) ([]string, error) {
	return f.headers, nil
}

func masterRow(id string, fields ...employee.Field) employee.UpsertEmployeeRequest {
	return employee.UpsertEmployeeRequest{EmployeeID: id, Fields: fields}
}

func TestBulkUpsert_ParsesProfileFromRawColumns(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := NewEmployeeService(repo, nil)

	resp, err := svc.BulkUpsert(context.Background(), employee.BulkUpsertRequest{
		Employees: []employee.UpsertEmployeeRequest{
			masterRow("1042",
				employee.Field{Name: "Employee ID", Value: "1042"},
				employee.Field{Name: "Employee Name", Value: "Asha Verma"},
				employee.Field{Name: "Designation", Value: "Senior Engineer"},
				employee.Field{Name: "BaseLocation", Value: "Chennai"},
				employee.Field{Name: "Date of Joining", Value: "10-01-2018"},
				employee.Field{Name: "Salary", Value: "₹60,000"},
				employee.Field{Name: "EPF Full Month", Value: "1800"},
			),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)

	got := resp[0]
	assert.Equal(t, "Asha Verma", got.Name)
	assert.Equal(t, "Senior Engineer", got.Department)
	assert.Equal(t, "Chennai", got.BaseLocation)
	assert.Equal(t, "2018-01-10", got.DOJ)
	assert.True(t, got.MonthlyGross.Equal(decimal.RequireFromString("60000")))

	// raw columns survive verbatim for EPF policy resolution
	stored := repo.employees["1042"]
	raw, ok := stored.FieldValue("EPF Full Month")
	require.True(t, ok)
	assert.Equal(t, "1800", raw)
}

func TestBulkUpsert_AlternateHeaderSpellings(t *testing.T) {
	t.Parallel()

	svc := NewEmployeeService(newFakeRepo(), nil)

	resp, err := svc.BulkUpsert(context.Background(), employee.BulkUpsertRequest{
		Employees: []employee.UpsertEmployeeRequest{
			masterRow("7",
				employee.Field{Name: "Name", Value: "Rahul Nair"},
				employee.Field{Name: "Department", Value: "Finance"},
				employee.Field{Name: "Base Location", Value: "Bangalore"},
				employee.Field{Name: "DOJ", Value: "2021-06-15"},
				employee.Field{Name: "Last Working Day", Value: "2025-09-30"},
				employee.Field{Name: "Gross Salary", Value: "85000"},
			),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp, 1)

	got := resp[0]
	assert.Equal(t, "Rahul Nair", got.Name)
	assert.Equal(t, "Finance", got.Department)
	assert.Equal(t, "2021-06-15", got.DOJ)
	require.NotNil(t, got.LWD)
	assert.Equal(t, "2025-09-30", *got.LWD)
}

func TestBulkUpsert_MissingJoiningDate(t *testing.T) {
	t.Parallel()

	svc := NewEmployeeService(newFakeRepo(), nil)

	for _, doj := range []string{"", "not a date", "31-31-2020"} {
		_, err := svc.BulkUpsert(context.Background(), employee.BulkUpsertRequest{
			Employees: []employee.UpsertEmployeeRequest{
				masterRow("8",
					employee.Field{Name: "Employee Name", Value: "No Dates"},
					employee.Field{Name: "Date of Joining", Value: doj},
					employee.Field{Name: "Salary", Value: "50000"},
				),
			},
		})
		assert.ErrorIs(t, err, employee.ErrMissingJoiningDate, "doj %q", doj)
	}
}

func TestBulkUpsert_MissingGrossSalary(t *testing.T) {
	t.Parallel()

	svc := NewEmployeeService(newFakeRepo(), nil)

	for _, salary := range []string{"", "0", "n/a"} {
		_, err := svc.BulkUpsert(context.Background(), employee.BulkUpsertRequest{
			Employees: []employee.UpsertEmployeeRequest{
				masterRow("9",
					employee.Field{Name: "Employee Name", Value: "No Pay"},
					employee.Field{Name: "Date of Joining", Value: "2020-01-01"},
					employee.Field{Name: "Salary", Value: salary},
				),
			},
		})
		assert.ErrorIs(t, err, employee.ErrMissingGrossSalary, "salary %q", salary)
	}
}

func TestBulkUpsert_EmptyRequest(t *testing.T) {
	t.Parallel()

	svc := NewEmployeeService(newFakeRepo(), nil)
	_, err := svc.BulkUpsert(context.Background(), employee.BulkUpsertRequest{})
	assert.Error(t, err)
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewEmployeeService(newFakeRepo(), nil)
	_, err := svc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListFieldNames(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.headers = []string{"Employee ID", "Employee Name", "Salary", "EPF Full Month"}
	svc := NewEmployeeService(repo, nil)

	resp, err := svc.ListFieldNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, repo.headers, resp.Fields)
}
