package middleware

import (
	"strings"

	"genrelens/internal/delivery/api/response"
	deliverycontext "genrelens/internal/delivery/context"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware validates session tokens on routes that require a signed-in user.
type AuthMiddleware struct {
	tokens service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return response.Unauthorized(c, domainerrors.ErrUnauthorized.Message())
		}

		tokenString, ok := BearerToken(authHeader)
		if !ok {
			return response.Unauthorized(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokens.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, domainerrors.ErrTokenInvalid.Message())
		}

		deliverycontext.SetUserID(c, claims.UserID)

		return next(c)
	}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(authHeader string) (string, bool) {
	if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(authHeader[len(bearerPrefix):])

	return token, token != ""
}

// GetUserID returns the user ID stored by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}
