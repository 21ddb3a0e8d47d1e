package service

import (
	"context"

	"github.com/deppfellow/tutorial-api/internal/model"
	"github.com/deppfellow/tutorial-api/internal/repository"
	"github.com/deppfellow/tutorial-api/internal/server"
	"github.com/rs/zerolog"
)

type TutorialService struct {
	server       *server.Server
	tutorialRepo repository.TutorialRepository
}

func NewTutorialService(s *server.Server, tutorialRepo repository.TutorialRepository) *TutorialService {
	return &TutorialService{
		server:       s,
		tutorialRepo: tutorialRepo,
	}
}

// GetTutorials lists every tutorial, or only those whose title contains
// title when it is not empty.
func (s *TutorialService) GetTutorials(ctx context.Context, title string) ([]model.Tutorial, error) {
	if title == "" {
		return s.tutorialRepo.FindAll(ctx)
	}
	return s.tutorialRepo.FindByTitleContaining(ctx, title)
}

func (s *TutorialService) GetTutorialByID(ctx context.Context, id int64) (*model.Tutorial, error) {
	return s.tutorialRepo.FindByID(ctx, id)
}

func (s *TutorialService) GetPublishedTutorials(ctx context.Context) ([]model.Tutorial, error) {
	return s.tutorialRepo.FindByIsPublished(ctx, true)
}

// CreateTutorial stores a new, unpublished tutorial. The client's
// isPublished value is discarded.
func (s *TutorialService) CreateTutorial(ctx context.Context, payload *model.CreateTutorialPayload) (*model.Tutorial, error) {
	logger := zerolog.Ctx(ctx)

	created, err := s.tutorialRepo.Save(ctx, &model.Tutorial{
		Title:       payload.Title,
		Description: payload.Description,
		IsPublished: false,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create tutorial")
		return nil, err
	}

	logger.Info().Int64("tutorial_id", created.ID).Msg("tutorial created")
	return created, nil
}

// UpdateTutorial overwrites title, description and isPublished of an
// existing tutorial. A missing id fails with the repository's no-rows error
// and nothing is created.
func (s *TutorialService) UpdateTutorial(ctx context.Context, payload *model.UpdateTutorialPayload) (*model.Tutorial, error) {
	logger := zerolog.Ctx(ctx)

	existing, err := s.tutorialRepo.FindByID(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	existing.Title = payload.Title
	existing.Description = payload.Description
	existing.IsPublished = payload.IsPublished

	updated, err := s.tutorialRepo.Save(ctx, existing)
	if err != nil {
		logger.Error().Err(err).Int64("tutorial_id", payload.ID).Msg("failed to update tutorial")
		return nil, err
	}

	logger.Info().Int64("tutorial_id", updated.ID).Msg("tutorial updated")
	return updated, nil
}

// DeleteTutorial removes a tutorial; deleting a missing id succeeds.
func (s *TutorialService) DeleteTutorial(ctx context.Context, id int64) error {
	return s.tutorialRepo.DeleteByID(ctx, id)
}

func (s *TutorialService) DeleteAllTutorials(ctx context.Context) error {
	if err := s.tutorialRepo.DeleteAll(ctx); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Warn().Msg("all tutorials deleted")
	return nil
}
