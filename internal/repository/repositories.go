package repository

import (
	"github.com/deppfellow/tutorial-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Tutorials TutorialRepository
}

// NewRepositories picks the tutorial implementation matching the connected
// database: pgx for PostgreSQL, gorm for SQLite.
func NewRepositories(s *server.Server) *Repositories {
	var tutorials TutorialRepository
	if s.DB.Pool != nil {
		tutorials = NewTutorialRepository(s.DB.Pool)
	} else {
		tutorials = NewGormTutorialRepository(s.DB.Gorm)
	}

	return &Repositories{
		Tutorials: tutorials,
	}
}
