package google

import (
	"context"

	"genrelens/internal/domain/entity"
	"genrelens/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

type idTokenValidator func(ctx context.Context, rawIDToken, audience string) (*service.OAuthUser, error)

// validateGoogleIDToken checks the token signature against Google's published keys,
// its audience and expiry, and maps the claims onto an OAuthUser.
func validateGoogleIDToken(ctx context.Context, rawIDToken, audience string) (*service.OAuthUser, error) {
	payload, err := idtoken.Validate(ctx, rawIDToken, audience)
	if err != nil {
		return nil, errors.Wrap(err, "invalid ID token")
	}

	return userFromPayload(payload)
}

func userFromPayload(payload *idtoken.Payload) (*service.OAuthUser, error) {
	if payload.Subject == "" {
		return nil, errors.New("ID token has no subject")
	}

	email := stringClaim(payload.Claims, "email")
	verified, _ := payload.Claims["email_verified"].(bool)

	return &service.OAuthUser{
		ID:            payload.Subject,
		Email:         email,
		Name:          displayName(stringClaim(payload.Claims, "name"), email),
		Provider:      entity.ProviderTypeGoogle,
		AvatarURL:     stringClaim(payload.Claims, "picture"),
		EmailVerified: verified,
	}, nil
}

func stringClaim(claims map[string]any, key string) string {
	v, _ := claims[key].(string)

	return v
}
