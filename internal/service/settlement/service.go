package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/database"
	"github.com/koenig-hr/fnf-backend-go/internal/service/statement"
)

type SettlementServiceImpl struct {
	db             *database.DB
	settlementRepo settlement.SettlementRepository
	employeeRepo   employee.EmployeeRepository
	computer       *Computer
	statements     *statement.Generator
	now            func() time.Time
}

func NewSettlementService(
	db *database.DB,
	settlementRepo settlement.SettlementRepository,
	employeeRepo employee.EmployeeRepository,
	computer *Computer,
	statements *statement.Generator,
) settlement.SettlementService {
	return &SettlementServiceImpl{
		db:             db,
		settlementRepo: settlementRepo,
		employeeRepo:   employeeRepo,
		computer:       computer,
		statements:     statements,
		now:            time.Now,
	}
}

// Helper to get the acting user's identity from JWT context
func getClaimsFromContext(ctx context.Context) (username string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("username claim is missing or invalid")
	}

	return username, nil
}

// ========== COMPUTATION ==========

func (s *SettlementServiceImpl) Compute(ctx context.Context, req settlement.ComputeSettlementRequest) (settlement.SettlementResponse, error) {
	rec, err := s.compute(ctx, req)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}
	return settlement.ToSettlementResponse(rec), nil
}

func (s *SettlementServiceImpl) compute(ctx context.Context, req settlement.ComputeSettlementRequest) (settlement.Record, error) {
	if err := req.Validate(); err != nil {
		return settlement.Record{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return settlement.Record{}, err
	}

	return s.computer.Compute(emp, req)
}

// ========== SUBMISSION ==========

func (s *SettlementServiceImpl) SaveDraft(ctx context.Context, req settlement.ComputeSettlementRequest) (settlement.SettlementResponse, error) {
	return s.store(ctx, req, settlement.StatusDraft)
}

func (s *SettlementServiceImpl) Submit(ctx context.Context, req settlement.ComputeSettlementRequest) (settlement.SettlementResponse, error) {
	return s.store(ctx, req, settlement.StatusPendingTaxReview)
}

func (s *SettlementServiceImpl) store(ctx context.Context, req settlement.ComputeSettlementRequest, status settlement.Status) (settlement.SettlementResponse, error) {
	username, err := getClaimsFromContext(ctx)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	rec, err := s.compute(ctx, req)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	// A re-submission overwrites the employee's existing record unless the
	// payout already went through.
	existing, err := s.settlementRepo.GetByEmployeeID(ctx, req.EmployeeID)
	switch {
	case err == nil:
		if existing.Status == settlement.StatusPaymentProcessed {
			return settlement.SettlementResponse{}, settlement.ErrAlreadyProcessed
		}
		rec.Version = existing.Version
	case errors.Is(err, settlement.ErrSettlementNotFound):
		// first submission
	default:
		return settlement.SettlementResponse{}, err
	}

	rec.Status = status
	rec.PreparedBy = username
	now := s.now()
	rec.SubmittedAt = &now

	saved, err := s.settlementRepo.Save(ctx, rec)
	if err != nil {
		return settlement.SettlementResponse{}, fmt.Errorf("failed to save settlement: %w", err)
	}
	return settlement.ToSettlementResponse(saved), nil
}

// ========== QUERIES ==========

func (s *SettlementServiceImpl) Get(ctx context.Context, employeeID string) (settlement.SettlementResponse, error) {
	rec, err := s.settlementRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}
	return settlement.ToSettlementResponse(rec), nil
}

func (s *SettlementServiceImpl) List(ctx context.Context, status *settlement.Status) ([]settlement.SettlementResponse, error) {
	var (
		recs []settlement.Record
		err  error
	)
	if status != nil {
		recs, err = s.settlementRepo.ListByStatus(ctx, *status)
	} else {
		recs, err = s.settlementRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]settlement.SettlementResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, settlement.ToSettlementResponse(rec))
	}
	return out, nil
}

// ========== REVIEW WORKFLOW ==========

func (s *SettlementServiceImpl) StartReview(ctx context.Context, employeeID string) (settlement.SettlementResponse, error) {
	rec, err := s.settlementRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	if rec.Status == settlement.StatusUnderTaxReview {
		// reviewer reopening the same settlement
		return settlement.ToSettlementResponse(rec), nil
	}
	if !rec.Status.CanTransitionTo(settlement.StatusUnderTaxReview) {
		return settlement.SettlementResponse{}, settlement.ErrInvalidStatusTransition
	}

	rec.Status = settlement.StatusUnderTaxReview
	saved, err := s.settlementRepo.Save(ctx, rec)
	if err != nil {
		return settlement.SettlementResponse{}, fmt.Errorf("failed to save settlement: %w", err)
	}
	return settlement.ToSettlementResponse(saved), nil
}

func (s *SettlementServiceImpl) Review(ctx context.Context, employeeID string, req settlement.ReviewRequest) (settlement.SettlementResponse, error) {
	if err := req.Validate(); err != nil {
		return settlement.SettlementResponse{}, err
	}

	username, err := getClaimsFromContext(ctx)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	rec, err := s.settlementRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	target := settlement.StatusTaxRejected
	if req.Approve {
		target = settlement.StatusTaxApproved
	}

	// Re-applying the decision the record already carries is a no-op.
	if rec.Status == target {
		return settlement.ToSettlementResponse(rec), nil
	}
	if rec.Status == settlement.StatusPaymentProcessed {
		return settlement.SettlementResponse{}, settlement.ErrAlreadyProcessed
	}
	if !rec.Status.CanTransitionTo(target) {
		return settlement.SettlementResponse{}, settlement.ErrInvalidStatusTransition
	}
	if req.Version != rec.Version {
		return settlement.SettlementResponse{}, settlement.ErrVersionConflict
	}

	if req.Approve {
		// apply the reviewer's revisions and recompute the tax portion;
		// earnings and month records stay as payroll submitted them
		if req.Regime != nil {
			rec.Regime = settlement.Regime(*req.Regime)
		}
		if req.ProfessionalTax != nil {
			rec.ProfessionalTax = *req.ProfessionalTax
		}
		rec.ManualTDSOverride = req.ManualTDS
		rec.AdditionalDeductions = req.AdditionalDeductions
		applyTax(&rec)
	}

	rec.Status = target
	now := s.now()
	rec.TaxReviewedBy = &username
	rec.TaxReviewedAt = &now
	if req.Comments != "" {
		comments := req.Comments
		rec.TaxComments = &comments
	}

	saved, err := s.settlementRepo.Save(ctx, rec)
	if err != nil {
		return settlement.SettlementResponse{}, fmt.Errorf("failed to save settlement: %w", err)
	}
	return settlement.ToSettlementResponse(saved), nil
}

func (s *SettlementServiceImpl) Statement(ctx context.Context, employeeID string) ([]byte, error) {
	rec, err := s.settlementRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return s.statements.Generate(rec)
}

func (s *SettlementServiceImpl) ProcessPayment(ctx context.Context, employeeID string) (settlement.SettlementResponse, error) {
	rec, err := s.settlementRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return settlement.SettlementResponse{}, err
	}

	if rec.Status == settlement.StatusPaymentProcessed {
		return settlement.ToSettlementResponse(rec), nil
	}
	if !rec.Status.CanTransitionTo(settlement.StatusPaymentProcessed) {
		return settlement.SettlementResponse{}, settlement.ErrInvalidStatusTransition
	}

	// net payable is final at approval; processing only stamps the payout
	rec.Status = settlement.StatusPaymentProcessed
	now := s.now()
	rec.PaymentProcessedAt = &now

	saved, err := s.settlementRepo.Save(ctx, rec)
	if err != nil {
		return settlement.SettlementResponse{}, fmt.Errorf("failed to save settlement: %w", err)
	}
	return settlement.ToSettlementResponse(saved), nil
}
