package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the claims carried by a session token.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies session tokens.
// Tokens are stateless: there is no revocation list.
type TokenService interface {
	// Issue signs a token for the user that expires after TTL().
	Issue(userID uuid.UUID) (string, error)

	// Verify checks signature, expiry and subject, returning the embedded claims.
	// Any failure is reported as domainerrors.ErrTokenInvalid.
	Verify(tokenString string) (*Claims, error)

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
