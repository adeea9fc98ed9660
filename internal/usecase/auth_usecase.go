// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"genrelens/internal/domain/entity"
)

// LoginResult is what a completed sign-in hands back to the browser.
type LoginResult struct {
	Token string
	User  *entity.User
}

// AuthUsecase defines the Google sign-in flow.
type AuthUsecase interface {
	// BeginGoogleLogin issues a CSRF state and returns the consent URL carrying it.
	BeginGoogleLogin(ctx context.Context) (string, error)

	// CompleteGoogleLogin redeems the state, exchanges the code and issues a session token
	// for the (possibly new) user.
	CompleteGoogleLogin(ctx context.Context, code, state string) (*LoginResult, error)
}
