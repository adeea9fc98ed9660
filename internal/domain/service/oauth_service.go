package service

import (
	"context"

	"genrelens/internal/domain/entity"
)

// OAuthUser represents user information from OAuth providers
type OAuthUser struct {
	ID            string              // Provider-specific user ID (Google's 'sub' claim)
	Email         string              // User's email address
	Name          string              // User's display name
	Provider      entity.ProviderType // The OAuth provider
	AvatarURL     string              // URL to user's profile picture
	EmailVerified bool                // Whether the email is verified by the provider
}

// OAuthService drives the authorization-code flow against an identity provider.
type OAuthService interface {
	// BuildAuthorizationURL returns the consent page URL carrying the given CSRF state.
	BuildAuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for the signed-in user's profile.
	ExchangeCode(ctx context.Context, code string) (*OAuthUser, error)

	// GetProvider returns the OAuth provider type
	GetProvider() entity.ProviderType
}

// StateStore remembers CSRF state values between the redirect and the callback.
type StateStore interface {
	// Save records a freshly generated state.
	Save(ctx context.Context, state string) error

	// Consume reports whether the state was issued and not yet used or expired,
	// and invalidates it.
	Consume(ctx context.Context, state string) (bool, error)
}
