package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// requireTestDB connects once per process. Repository tests need a real
// postgres with the migrations applied; they skip when TEST_DATABASE_URL
// is not set.
func requireTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	if testDB == nil {
		db, err := database.NewPostgreSQLDB(dsn)
		require.NoError(t, err, "failed to connect to test database")
		testDB = db
	}
	return testDB
}

func truncateTables(t *testing.T, db *database.DB) {
	t.Helper()

	ctx := context.Background()
	for _, table := range []string{"settlements", "employees", "users"} {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err)
	}
}

func testEmployeeRow(id string) employee.Employee {
	doj, _ := time.Parse(time.DateOnly, "2018-01-10")
	return employee.Employee{
		EmployeeID:   id,
		Name:         "Asha Verma",
		Department:   "Engineering",
		BaseLocation: "Chennai",
		DOJ:          doj,
		MonthlyGross: decimal.RequireFromString("60000"),
		Fields: []employee.Field{
			{Name: "Employee ID", Value: id},
			{Name: "Employee Name", Value: "Asha Verma"},
			{Name: "Salary", Value: "60000"},
			{Name: "EPF Full Month", Value: "1800"},
		},
	}
}
