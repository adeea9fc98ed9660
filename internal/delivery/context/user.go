package context

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SetUserID records the authenticated caller on the echo context.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(echoKeyUserID, userID)
}

// GetUserID returns the authenticated caller; ok is false for guests.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(echoKeyUserID).(uuid.UUID)

	return userID, ok && userID != uuid.Nil
}
