package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/tutorial-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool (and pgx.Tx) the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	sqlSelectTutorials = `
		SELECT id, title, description, is_published
		FROM   tutorials
		ORDER  BY id`

	sqlSelectTutorialByID = `
		SELECT id, title, description, is_published
		FROM   tutorials
		WHERE  id = $1`

	sqlSelectTutorialsByTitle = `
		SELECT id, title, description, is_published
		FROM   tutorials
		WHERE  title ILIKE $1
		ORDER  BY id`

	sqlSelectTutorialsByPublished = `
		SELECT id, title, description, is_published
		FROM   tutorials
		WHERE  is_published = $1
		ORDER  BY id`

	sqlInsertTutorial = `
		INSERT INTO tutorials (title, description, is_published)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, is_published`

	sqlUpdateTutorial = `
		UPDATE tutorials
		SET    title = $2, description = $3, is_published = $4
		WHERE  id = $1
		RETURNING id, title, description, is_published`

	sqlDeleteTutorial = `DELETE FROM tutorials WHERE id = $1`

	sqlDeleteTutorials = `DELETE FROM tutorials`
)

// tutorialRepository is the PostgreSQL implementation on pgx.
type tutorialRepository struct {
	db DBTX
}

// NewTutorialRepository returns a TutorialRepository backed by db.
func NewTutorialRepository(db DBTX) TutorialRepository {
	return &tutorialRepository{db: db}
}

func (r *tutorialRepository) FindAll(ctx context.Context) ([]model.Tutorial, error) {
	return r.list(ctx, sqlSelectTutorials)
}

func (r *tutorialRepository) FindByID(ctx context.Context, id int64) (*model.Tutorial, error) {
	rows, err := r.db.Query(ctx, sqlSelectTutorialByID, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get tutorial by id query id=%d: %w", id, err)
	}

	tutorial, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Tutorial])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:tutorials: id=%d: %w", id, err)
	}

	return &tutorial, nil
}

func (r *tutorialRepository) FindByTitleContaining(ctx context.Context, title string) ([]model.Tutorial, error) {
	return r.list(ctx, sqlSelectTutorialsByTitle, containsPattern(title))
}

func (r *tutorialRepository) FindByIsPublished(ctx context.Context, published bool) ([]model.Tutorial, error) {
	return r.list(ctx, sqlSelectTutorialsByPublished, published)
}

// Save inserts when the tutorial has no id yet, otherwise overwrites the
// three mutable columns of the existing row.
func (r *tutorialRepository) Save(ctx context.Context, tutorial *model.Tutorial) (*model.Tutorial, error) {
	stmt := sqlInsertTutorial
	args := []any{tutorial.Title, tutorial.Description, tutorial.IsPublished}
	if tutorial.ID != 0 {
		stmt = sqlUpdateTutorial
		args = append([]any{tutorial.ID}, args...)
	}

	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute save tutorial query id=%d: %w", tutorial.ID, err)
	}

	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Tutorial])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:tutorials: id=%d: %w", tutorial.ID, err)
	}

	return &saved, nil
}

func (r *tutorialRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, sqlDeleteTutorial, id); err != nil {
		return fmt.Errorf("failed to delete tutorial id=%d: %w", id, err)
	}
	return nil
}

func (r *tutorialRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, sqlDeleteTutorials); err != nil {
		return fmt.Errorf("failed to delete tutorials: %w", err)
	}
	return nil
}

func (r *tutorialRepository) list(ctx context.Context, stmt string, args ...any) ([]model.Tutorial, error) {
	rows, err := r.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list tutorials query: %w", err)
	}

	tutorials, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Tutorial])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:tutorials: %w", err)
	}

	return tutorials, nil
}
