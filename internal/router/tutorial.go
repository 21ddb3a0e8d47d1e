package router

import (
	"net/http"

	"github.com/deppfellow/tutorial-api/internal/handler"
	"github.com/deppfellow/tutorial-api/internal/model"
	"github.com/labstack/echo/v4"
)

func registerTutorialRoutes(g *echo.Group, h *handler.Handlers) {
	t := h.Tutorial

	tutorials := g.Group("/tutorials")

	tutorials.GET("", handler.HandleList(t.Handler, t.GetTutorials, http.StatusOK, &model.ListTutorialsQuery{}))
	tutorials.POST("", handler.Handle(t.Handler, t.CreateTutorial, http.StatusCreated, &model.CreateTutorialPayload{}))
	tutorials.DELETE("", handler.HandleNoContent(t.Handler, t.DeleteAllTutorials, http.StatusNoContent, &model.DeleteAllTutorialsPayload{}))

	// Static segment; echo matches it ahead of :id.
	tutorials.GET("/isPublished", handler.HandleList(t.Handler, t.GetPublishedTutorials, http.StatusOK, &model.ListPublishedTutorialsQuery{}))

	tutorials.GET("/:id", handler.Handle(t.Handler, t.GetTutorialByID, http.StatusOK, &model.TutorialIDParam{}))
	tutorials.PUT("/:id", handler.Handle(t.Handler, t.UpdateTutorial, http.StatusOK, &model.UpdateTutorialPayload{}))
	tutorials.DELETE("/:id", handler.HandleNoContent(t.Handler, t.DeleteTutorial, http.StatusNoContent, &model.TutorialIDParam{}))
}
