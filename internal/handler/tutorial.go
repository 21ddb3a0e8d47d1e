package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/tutorial-api/internal/errs"
	"github.com/deppfellow/tutorial-api/internal/model"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/deppfellow/tutorial-api/internal/service"
	"github.com/deppfellow/tutorial-api/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

type TutorialHandler struct {
	Handler
	tutorialService *service.TutorialService
}

func NewTutorialHandler(s *server.Server, tutorialService *service.TutorialService) *TutorialHandler {
	return &TutorialHandler{
		Handler:         NewHandler(s),
		tutorialService: tutorialService,
	}
}

func (h *TutorialHandler) GetTutorials(c echo.Context, query *model.ListTutorialsQuery) ([]model.Tutorial, error) {
	tutorials, err := h.tutorialService.GetTutorials(c.Request().Context(), query.Title)
	if err != nil {
		return nil, h.tutorialError(c, err)
	}
	return tutorials, nil
}

func (h *TutorialHandler) GetTutorialByID(c echo.Context, param *model.TutorialIDParam) (*model.Tutorial, error) {
	tutorial, err := h.tutorialService.GetTutorialByID(c.Request().Context(), param.ID)
	if err != nil {
		return nil, h.tutorialError(c, err)
	}
	return tutorial, nil
}

func (h *TutorialHandler) GetPublishedTutorials(c echo.Context, _ *model.ListPublishedTutorialsQuery) ([]model.Tutorial, error) {
	tutorials, err := h.tutorialService.GetPublishedTutorials(c.Request().Context())
	if err != nil {
		return nil, h.tutorialError(c, err)
	}
	return tutorials, nil
}

func (h *TutorialHandler) CreateTutorial(c echo.Context, payload *model.CreateTutorialPayload) (*model.Tutorial, error) {
	tutorial, err := h.tutorialService.CreateTutorial(c.Request().Context(), payload)
	if err != nil {
		return nil, h.tutorialError(c, err)
	}
	return tutorial, nil
}

func (h *TutorialHandler) UpdateTutorial(c echo.Context, payload *model.UpdateTutorialPayload) (*model.Tutorial, error) {
	tutorial, err := h.tutorialService.UpdateTutorial(c.Request().Context(), payload)
	if err != nil {
		return nil, h.tutorialError(c, err)
	}
	return tutorial, nil
}

func (h *TutorialHandler) DeleteTutorial(c echo.Context, param *model.TutorialIDParam) error {
	if err := h.tutorialService.DeleteTutorial(c.Request().Context(), param.ID); err != nil {
		return h.tutorialError(c, err)
	}
	return nil
}

func (h *TutorialHandler) DeleteAllTutorials(c echo.Context, _ *model.DeleteAllTutorialsPayload) error {
	if err := h.tutorialService.DeleteAllTutorials(c.Request().Context()); err != nil {
		return h.tutorialError(c, err)
	}
	return nil
}

// tutorialError translates a storage error for the tutorial routes. Missing
// rows and server faults are answered with the status code only.
func (h *TutorialHandler) tutorialError(c echo.Context, err error) error {
	mapped := sqlerr.HandleError(err)

	var httpErr *errs.HTTPError
	if !errors.As(mapped, &httpErr) {
		return mapped
	}

	if httpErr.Status >= http.StatusInternalServerError || httpErr.Status == http.StatusNotFound {
		return httpErr.WithoutBody()
	}

	return httpErr
}
