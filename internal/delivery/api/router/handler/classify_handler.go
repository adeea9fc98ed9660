package handler

import (
	"log/slog"
	"net/http"

	"genrelens/internal/delivery/api/middleware"
	"genrelens/internal/delivery/api/response"
	"genrelens/internal/domain/constants"
	"genrelens/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ClassifyHandlerParams holds dependencies for ClassifyHandler, injected by Fx.
type ClassifyHandlerParams struct {
	fx.In

	ClassifyUC usecase.ClassifyUsecase
	Logger     *slog.Logger
}

// ClassifyHandler relays uploaded audio to the classification pipeline.
type ClassifyHandler struct {
	classifyUC usecase.ClassifyUsecase
	logger     *slog.Logger
}

// NewClassifyHandler is the constructor for ClassifyHandler
func NewClassifyHandler(params ClassifyHandlerParams) *ClassifyHandler {
	return &ClassifyHandler{
		classifyUC: params.ClassifyUC,
		logger:     params.Logger,
	}
}

// Classify streams the multipart body to the pipeline and returns the verdict unchanged.
// Authentication is optional here: a missing or bad token only means the verdict is not recorded.
func (h *ClassifyHandler) Classify(c echo.Context) error {
	req := c.Request()

	bearerToken, _ := middleware.BearerToken(req.Header.Get(echo.HeaderAuthorization))

	result, err := h.classifyUC.Classify(req.Context(), &usecase.ClassifyRequest{
		ContentType: req.Header.Get(echo.HeaderContentType),
		Body:        req.Body,
		BearerToken: bearerToken,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set(constants.HeaderHistoryStatus, result.HistoryStatus)

	return response.Raw(c, http.StatusOK, result.Verdict)
}
