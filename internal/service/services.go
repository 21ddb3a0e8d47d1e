package service

import (
	"github.com/deppfellow/tutorial-api/internal/repository"
	"github.com/deppfellow/tutorial-api/internal/server"
)

type Services struct {
	Tutorial *TutorialService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Tutorial: NewTutorialService(s, repos.Tutorials),
	}, nil
}
