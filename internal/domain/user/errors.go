package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameExists        = errors.New("username already registered")
	ErrInvalidPasswordLength = errors.New("password must be at least 8 characters")
	ErrPasswordChangeNeeded  = errors.New("password change required before this action")
	ErrInsufficientRole      = errors.New("insufficient permissions")
)
