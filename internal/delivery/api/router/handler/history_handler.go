package handler

import (
	"net/http"
	"time"

	"genrelens/internal/delivery/api/middleware"
	"genrelens/internal/delivery/api/response"
	"genrelens/internal/domain/entity"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HistoryHandler serves the signed-in user's profile and past classifications.
type HistoryHandler struct {
	historyUC usecase.HistoryUsecase
}

// NewHistoryHandler is the constructor for HistoryHandler
func NewHistoryHandler(historyUC usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{historyUC: historyUC}
}

// ProfileResponse is the body of GET /api/me.
type ProfileResponse struct {
	ID           string `json:"id"`
	GoogleID     string `json:"googleId"`
	Username     string `json:"username"`
	HistoryCount int    `json:"historyCount"`
}

// HistoryEntryResponse is one element of GET /api/history.
type HistoryEntryResponse struct {
	Filename  string         `json:"filename"`
	Result    entity.Verdict `json:"result"`
	Timestamp time.Time      `json:"timestamp"`
}

// GetProfile handles GET /api/me
func (h *HistoryHandler) GetProfile(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, domainerrors.ErrTokenInvalid.Message())
	}

	profile, err := h.historyUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, ProfileResponse{
		ID:           profile.ID.String(),
		GoogleID:     profile.GoogleID,
		Username:     profile.Username,
		HistoryCount: profile.HistoryCount,
	})
}

// ListHistory handles GET /api/history, oldest entry first.
func (h *HistoryHandler) ListHistory(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, domainerrors.ErrTokenInvalid.Message())
	}

	entries, err := h.historyUC.ListHistory(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	body := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		body = append(body, HistoryEntryResponse{
			Filename:  entry.Filename,
			Result:    entry.Result,
			Timestamp: entry.Timestamp,
		})
	}

	return response.Success(c, http.StatusOK, body)
}
