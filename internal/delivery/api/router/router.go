// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"genrelens/internal/delivery/api/middleware"
	"genrelens/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ClassifyPath is the upload route. The receiver caps its file, so it is exempt from the request body limit.
const ClassifyPath = "/api/classify"

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ClassifyHandler *handler.ClassifyHandler
	HistoryHandler  *handler.HistoryHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	classifyHandler *handler.ClassifyHandler
	historyHandler  *handler.HistoryHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		classifyHandler: params.ClassifyHandler,
		historyHandler:  params.HistoryHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// OAuth routes
	oauthGroup := api.Group("/auth/google")
	{
		oauthGroup.GET("", r.authHandler.GoogleLogin)
		oauthGroup.GET("/callback", r.authHandler.GoogleCallback)
	}

	// Token is optional: guests get a verdict, signed-in users also get a history entry
	e.POST(ClassifyPath, r.classifyHandler.Classify)

	// Routes that require authentication. Attached per route so unknown paths stay 404.
	api.GET("/me", r.historyHandler.GetProfile, r.authMiddleware.Authenticate)
	api.GET("/history", r.historyHandler.ListHistory, r.authMiddleware.Authenticate)
}
