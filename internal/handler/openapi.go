package handler

import (
	_ "embed"
	"net/http"

	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/labstack/echo/v4"
)

//go:embed static/openapi.html
var openAPIPage []byte

//go:embed static/openapi.json
var openAPIDocument []byte

// OpenAPIHandler serves the interactive API docs and the document they load.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, openAPIPage)
}

func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, openAPIDocument)
}
