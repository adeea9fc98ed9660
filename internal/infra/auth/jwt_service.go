// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"genrelens/config"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte        // Process-wide signing secret, read-only after construction.
	ttl    time.Duration // Lifetime of issued tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session signing secret must be provided")
	}

	ttl := cfg.Session.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue creates a signed token whose subject is the user ID.
func (s *jwtService) Issue(userID uuid.UUID) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Verify parses the token, checking signature, algorithm, expiry and subject.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	var registered jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &registered, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "subject is not a user id")
	}

	return &service.Claims{
		UserID:           userID,
		RegisteredClaims: registered,
	}, nil
}

// TTL returns the configured lifetime of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
