package settlement

import "errors"

var (
	ErrSettlementNotFound       = errors.New("settlement not found")
	ErrInvalidStatusTransition  = errors.New("settlement status does not allow this action")
	ErrVersionConflict          = errors.New("settlement was modified by someone else, reload and retry")
	ErrAlreadyProcessed         = errors.New("settlement payment already processed, record is final")
	ErrInvalidBreakdownOverride = errors.New("breakdown override must be non-negative and sum to the month gross")
	ErrCommentsRequired         = errors.New("rejection requires reviewer comments")
	ErrInvalidRegime            = errors.New("tax regime must be Old or New")
)
