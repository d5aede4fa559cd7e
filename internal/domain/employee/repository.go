package employee

import "context"

type EmployeeRepository interface {
	Upsert(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)

	// ListFieldNames returns the union of raw master headers in sheet order,
	// taken from the most recently imported row set.
	ListFieldNames(ctx context.Context) ([]string, error)
}
