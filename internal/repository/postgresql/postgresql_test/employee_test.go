package postgresql_test

import (
	"context"
	"testing"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository_UpsertAndGet(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	saved, err := repo.Upsert(ctx, testEmployeeRow("1042"))
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", saved.Name)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "1042")
	require.NoError(t, err)
	assert.True(t, got.MonthlyGross.Equal(decimal.RequireFromString("60000")))
	epfValue, _ := got.FieldValue("EPF Full Month")
	assert.Equal(t, "1800", epfValue)
}

func TestEmployeeRepository_UpsertReplacesRow(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	_, err := repo.Upsert(ctx, testEmployeeRow("1042"))
	require.NoError(t, err)

	updated := testEmployeeRow("1042")
	updated.MonthlyGross = decimal.RequireFromString("72000")
	updated.Fields = []employee.Field{
		{Name: "Employee Name", Value: "Asha Verma"},
		{Name: "Salary", Value: "72000"},
	}
	_, err = repo.Upsert(ctx, updated)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, "1042")
	require.NoError(t, err)
	assert.True(t, got.MonthlyGross.Equal(decimal.RequireFromString("72000")))
	epfValue, _ := got.FieldValue("EPF Full Month")
	assert.Empty(t, epfValue, "old raw columns replaced wholesale")
}

func TestEmployeeRepository_GetMissing(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	repo := postgresql.NewEmployeeRepository(db)
	_, err := repo.GetByID(context.Background(), "absent")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ListFieldNames(t *testing.T) {
	db := requireTestDB(t)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	_, err := repo.Upsert(ctx, testEmployeeRow("1042"))
	require.NoError(t, err)

	other := testEmployeeRow("1043")
	other.Fields = append(other.Fields, employee.Field{Name: "PF Wage Cap", Value: "15000"})
	_, err = repo.Upsert(ctx, other)
	require.NoError(t, err)

	names, err := repo.ListFieldNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Employee ID", "Employee Name", "Salary", "EPF Full Month", "PF Wage Cap"}, names)
}
