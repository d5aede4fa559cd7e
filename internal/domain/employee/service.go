package employee

import "context"

// EmployeeService defines business logic for the employee master.
type EmployeeService interface {
	// BulkUpsert imports master rows, parsing the canonical profile fields
	// out of each raw row.
	BulkUpsert(ctx context.Context, req BulkUpsertRequest) ([]EmployeeResponse, error)

	Get(ctx context.Context, employeeID string) (EmployeeResponse, error)
	List(ctx context.Context) ([]EmployeeResponse, error)

	// ListFieldNames exposes the imported master headers for diagnostics.
	ListFieldNames(ctx context.Context) (FieldNamesResponse, error)
}
