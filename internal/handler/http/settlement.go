package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/handler/http/response"
)

type SettlementHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	SaveDraft(w http.ResponseWriter, r *http.Request)
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	StartReview(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	ProcessPayment(w http.ResponseWriter, r *http.Request)
	Statement(w http.ResponseWriter, r *http.Request)
}

type SettlementHandlerImpl struct {
	settlementService settlement.SettlementService
}

func NewSettlementHandler(settlementService settlement.SettlementService) SettlementHandler {
	return &SettlementHandlerImpl{settlementService: settlementService}
}

func decodeComputeRequest(w http.ResponseWriter, r *http.Request) (settlement.ComputeSettlementRequest, bool) {
	var req settlement.ComputeSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Settlement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return settlement.ComputeSettlementRequest{}, false
	}
	return req, true
}

// Compute implements SettlementHandler. Dry run, nothing is stored.
func (h *SettlementHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeComputeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.settlementService.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SaveDraft implements SettlementHandler.
func (h *SettlementHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeComputeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.settlementService.SaveDraft(r.Context(), req)
	if err != nil {
		slog.Error("SaveDraft service error", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settlement draft saved", resp)
}

// Submit implements SettlementHandler.
func (h *SettlementHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeComputeRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.settlementService.Submit(r.Context(), req)
	if err != nil {
		slog.Error("Submit service error", "error", err, "employee_id", req.EmployeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Settlement submitted for tax review", "employee_id", req.EmployeeID)
	response.SuccessWithMessage(w, "Settlement submitted for tax review", resp)
}

// Get implements SettlementHandler.
func (h *SettlementHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.settlementService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// List implements SettlementHandler. Accepts an optional ?status= filter.
func (h *SettlementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *settlement.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := settlement.Status(raw)
		status = &s
	}

	resp, err := h.settlementService.List(r.Context(), status)
	if err != nil {
		slog.Error("List settlements service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// StartReview implements SettlementHandler.
func (h *SettlementHandlerImpl) StartReview(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.settlementService.StartReview(r.Context(), employeeID)
	if err != nil {
		slog.Error("StartReview service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settlement is under tax review", resp)
}

// Review implements SettlementHandler.
func (h *SettlementHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	var req settlement.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.settlementService.Review(r.Context(), employeeID, req)
	if err != nil {
		slog.Error("Review service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	message := "Settlement rejected"
	if req.Approve {
		message = "Settlement approved"
	}
	slog.Info("Settlement reviewed", "employee_id", employeeID, "approved", req.Approve)
	response.SuccessWithMessage(w, message, resp)
}

// ProcessPayment implements SettlementHandler.
func (h *SettlementHandlerImpl) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	resp, err := h.settlementService.ProcessPayment(r.Context(), employeeID)
	if err != nil {
		slog.Error("ProcessPayment service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Settlement payment processed", "employee_id", employeeID)
	response.SuccessWithMessage(w, "Settlement payment processed", resp)
}

// Statement implements SettlementHandler. Streams the PDF statement.
func (h *SettlementHandlerImpl) Statement(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	pdf, err := h.settlementService.Statement(r.Context(), employeeID)
	if err != nil {
		slog.Error("Statement service error", "error", err, "employee_id", employeeID)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="fnf-statement-%s.pdf"`, employeeID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
