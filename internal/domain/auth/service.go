package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	// SetPassword handles first-login setup and forced password changes for
	// the authenticated user.
	SetPassword(ctx context.Context, req SetPasswordRequest) error
	Logout(ctx context.Context) error
}
