package settlement

import "context"

// SettlementRepository persists settlement records keyed by employee ID.
type SettlementRepository interface {
	// Save upserts the record. The record's Version must match the stored
	// version (0 for a new record); on success the returned record carries
	// the incremented version. A mismatch returns ErrVersionConflict.
	Save(ctx context.Context, rec Record) (Record, error)

	GetByEmployeeID(ctx context.Context, employeeID string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByStatus(ctx context.Context, status Status) ([]Record, error)
}
