// Package repository handles all interactions with the database.
//
// It contains the SQL queries and methods to fetch, persist, or delete
// tutorials, abstracting storage details away from the service layer.
package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/tutorial-api/internal/model"
)

// TutorialRepository is the persistence contract for tutorials.
//
// FindByID and Save report a missing row with an error wrapping
// pgx.ErrNoRows or sql.ErrNoRows; DeleteByID does not check existence.
type TutorialRepository interface {
	FindAll(ctx context.Context) ([]model.Tutorial, error)
	FindByID(ctx context.Context, id int64) (*model.Tutorial, error)
	FindByTitleContaining(ctx context.Context, title string) ([]model.Tutorial, error)
	FindByIsPublished(ctx context.Context, published bool) ([]model.Tutorial, error)
	Save(ctx context.Context, tutorial *model.Tutorial) (*model.Tutorial, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching title anywhere, with the
// input's own wildcards escaped so they match literally.
func containsPattern(title string) string {
	return "%" + likeEscaper.Replace(title) + "%"
}
