// Package handler is the HTTP layer. It binds and validates requests
// through the validation package, calls the service layer and writes the
// response.
package handler

import (
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/deppfellow/tutorial-api/internal/service"
)

type Handlers struct {
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
	Tutorial *TutorialHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Tutorial: NewTutorialHandler(s, services.Tutorial),
	}
}
