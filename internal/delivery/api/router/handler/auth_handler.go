package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"genrelens/config"
	"genrelens/internal/delivery/api/validator"
	deliverycontext "genrelens/internal/delivery/context"
	domainerrors "genrelens/internal/domain/errors"
	"genrelens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultFailureURL = "/"
	errorCodeServer   = "server_error"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Config *config.Config
	Logger *slog.Logger
}

// AuthHandler drives the browser through Google sign-in.
type AuthHandler struct {
	authUC      usecase.AuthUsecase
	redirectURL string
	failureURL  string
	logger      *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	failureURL := params.Config.Frontend.FailureURL
	if failureURL == "" {
		failureURL = defaultFailureURL
	}

	return &AuthHandler{
		authUC:      params.AuthUC,
		redirectURL: params.Config.Frontend.RedirectURL,
		failureURL:  failureURL,
		logger:      params.Logger,
	}
}

// GoogleCallbackQuery is what Google appends to the redirect URI.
type GoogleCallbackQuery struct {
	Code  string `query:"code" validate:"required"`
	State string `query:"state" validate:"required"`
	Error string `query:"error"`
}

// GoogleLogin handles GET /api/auth/google
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	consentURL, err := h.authUC.BeginGoogleLogin(c.Request().Context())
	if err != nil {
		return errors.Wrap(err, "failed to begin Google sign-in")
	}

	return c.Redirect(http.StatusTemporaryRedirect, consentURL)
}

// GoogleCallback handles GET /api/auth/google/callback
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger)

	var query GoogleCallbackQuery
	if err := c.Bind(&query); err != nil {
		return h.fail(c, domainerrors.ErrOAuthFailed)
	}

	if query.Error != "" {
		logger.Info("Google sign-in was declined", slog.String("reason", query.Error))

		return h.fail(c, domainerrors.ErrOAuthFailed)
	}

	if err := c.Validate(&query); err != nil {
		if slices.Contains(validator.FieldErrors(err), "State") {
			return h.fail(c, domainerrors.ErrOAuthStateInvalid)
		}

		return h.fail(c, domainerrors.ErrOAuthCodeMissing)
	}

	result, err := h.authUC.CompleteGoogleLogin(c.Request().Context(), query.Code, query.State)
	if err != nil {
		logger.Warn("Google sign-in failed", slog.Any("error", err))

		return h.fail(c, err)
	}

	return c.Redirect(http.StatusFound, withQuery(h.redirectURL, "token", result.Token))
}

// fail sends the browser to the failure page with a machine-readable error code.
func (h *AuthHandler) fail(c echo.Context, err error) error {
	code := errorCodeServer
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		code = strings.ToLower(appErr.ErrorCode())
	}

	return c.Redirect(http.StatusFound, withQuery(h.failureURL, "error", code))
}

// withQuery adds key=value to rawURL, keeping any query it already has.
func withQuery(rawURL, key, value string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL + "?" + url.Values{key: {value}}.Encode()
	}

	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()

	return u.String()
}
