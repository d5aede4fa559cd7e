package response

import (
	"errors"
	"net/http"

	"github.com/koenig-hr/fnf-backend-go/internal/domain/auth"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/employee"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/settlement"
	"github.com/koenig-hr/fnf-backend-go/internal/domain/user"
	"github.com/koenig-hr/fnf-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, user.ErrInsufficientRole):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrMissingJoiningDate):
		BadRequest(w, "Employee row has no parseable joining date", nil)
	case errors.Is(err, employee.ErrMissingGrossSalary):
		BadRequest(w, "Employee row has no parseable gross salary", nil)

	// Settlement domain errors
	case errors.Is(err, settlement.ErrSettlementNotFound):
		NotFound(w, "Settlement not found")
	case errors.Is(err, settlement.ErrInvalidStatusTransition):
		Conflict(w, "Settlement is not in a state that allows this action")
	case errors.Is(err, settlement.ErrVersionConflict):
		Conflict(w, "Settlement was modified by someone else, reload and retry")
	case errors.Is(err, settlement.ErrAlreadyProcessed):
		Conflict(w, "Settlement payment has already been processed")
	case errors.Is(err, settlement.ErrInvalidBreakdownOverride):
		BadRequest(w, "Salary breakdown override must be non-negative and sum to the month gross", nil)
	case errors.Is(err, settlement.ErrCommentsRequired):
		BadRequest(w, "Comments are required when rejecting a settlement", nil)
	case errors.Is(err, settlement.ErrInvalidRegime):
		BadRequest(w, "Tax regime must be Old or New", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
