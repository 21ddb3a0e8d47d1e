package router

import (
	"github.com/deppfellow/tutorial-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes wires the endpoints that sit outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/static/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
}
