// Package router builds the echo instance: middleware chain, system routes
// and the versioned API.
package router

import (
	"github.com/deppfellow/tutorial-api/internal/handler"
	"github.com/deppfellow/tutorial-api/internal/middleware"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if s.Config.RateLimit.Enabled {
		router.Use(middlewares.RateLimit.Limiter())
	}

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerTutorialRoutes(v1, h)

	return router
}
