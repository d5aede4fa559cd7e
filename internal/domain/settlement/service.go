package settlement

import "context"

// SettlementService defines business logic for preparing and reviewing
// full and final settlements.
type SettlementService interface {
	// Compute runs the calculation without persisting anything.
	Compute(ctx context.Context, req ComputeSettlementRequest) (SettlementResponse, error)

	// SaveDraft computes and stores the settlement as a draft, invisible
	// to the tax review queue.
	SaveDraft(ctx context.Context, req ComputeSettlementRequest) (SettlementResponse, error)

	// Submit computes and stores the settlement as Pending Tax Review,
	// overwriting any earlier record for the employee.
	Submit(ctx context.Context, req ComputeSettlementRequest) (SettlementResponse, error)

	Get(ctx context.Context, employeeID string) (SettlementResponse, error)
	List(ctx context.Context, status *Status) ([]SettlementResponse, error)

	// StartReview claims a pending settlement for the tax team.
	StartReview(ctx context.Context, employeeID string) (SettlementResponse, error)

	// Review approves or rejects. Approval applies the reviewer's revisions
	// and recomputes the tax portion; rejection stores comments only.
	Review(ctx context.Context, employeeID string, req ReviewRequest) (SettlementResponse, error)

	// ProcessPayment finalizes an approved settlement.
	ProcessPayment(ctx context.Context, employeeID string) (SettlementResponse, error)

	// Statement renders the stored settlement as a PDF statement.
	Statement(ctx context.Context, employeeID string) ([]byte, error)
}
