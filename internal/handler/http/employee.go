package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	BulkUpsert(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListFieldNames(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{employeeService: employeeService}
}

// BulkUpsert implements EmployeeHandler.
func (h *EmployeeHandlerImpl) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	var req employee.BulkUpsertRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkUpsert decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	imported, err := h.employeeService.BulkUpsert(r.Context(), req)
	if err != nil {
		slog.Error("BulkUpsert service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee master imported", imported)
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	emp, err := h.employeeService.Get(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	emps, err := h.employeeService.List(r.Context())
	if err != nil {
		slog.Error("List employees service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, emps)
}

// ListFieldNames implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListFieldNames(w http.ResponseWriter, r *http.Request) {
	fields, err := h.employeeService.ListFieldNames(r.Context())
	if err != nil {
		slog.Error("ListFieldNames service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, fields)
}
