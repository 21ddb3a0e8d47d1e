package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/tutorial-api/internal/model"
	"gorm.io/gorm"
)

// gormTutorialRepository is the embedded SQLite implementation.
//
// Missing rows are reported as sql.ErrNoRows so callers handle both
// implementations the same way.
type gormTutorialRepository struct {
	db *gorm.DB
}

// NewGormTutorialRepository returns a TutorialRepository backed by gorm.
func NewGormTutorialRepository(db *gorm.DB) TutorialRepository {
	return &gormTutorialRepository{db: db}
}

func (r *gormTutorialRepository) FindAll(ctx context.Context) ([]model.Tutorial, error) {
	tutorials := []model.Tutorial{}
	if err := r.db.WithContext(ctx).Order("id").Find(&tutorials).Error; err != nil {
		return nil, fmt.Errorf("failed to list tutorials: %w", err)
	}
	return tutorials, nil
}

func (r *gormTutorialRepository) FindByID(ctx context.Context, id int64) (*model.Tutorial, error) {
	var tutorial model.Tutorial
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&tutorial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find row in table:tutorials: id=%d: %w", id, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tutorial id=%d: %w", id, err)
	}
	return &tutorial, nil
}

// FindByTitleContaining lowercases both sides so matching does not depend on
// SQLite's ASCII-only LIKE folding.
func (r *gormTutorialRepository) FindByTitleContaining(ctx context.Context, title string) ([]model.Tutorial, error) {
	tutorials := []model.Tutorial{}
	err := r.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\'`, containsPattern(strings.ToLower(title))).
		Order("id").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tutorials by title: %w", err)
	}
	return tutorials, nil
}

func (r *gormTutorialRepository) FindByIsPublished(ctx context.Context, published bool) ([]model.Tutorial, error) {
	tutorials := []model.Tutorial{}
	err := r.db.WithContext(ctx).
		Where("is_published = ?", published).
		Order("id").
		Find(&tutorials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tutorials by published flag: %w", err)
	}
	return tutorials, nil
}

func (r *gormTutorialRepository) Save(ctx context.Context, tutorial *model.Tutorial) (*model.Tutorial, error) {
	saved := *tutorial

	if saved.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&saved).Error; err != nil {
			return nil, fmt.Errorf("failed to insert tutorial: %w", err)
		}
		return &saved, nil
	}

	// Map form so false and "" are written instead of skipped as zero values.
	result := r.db.WithContext(ctx).
		Model(&model.Tutorial{}).
		Where("id = ?", saved.ID).
		Updates(map[string]any{
			"title":        saved.Title,
			"description":  saved.Description,
			"is_published": saved.IsPublished,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update tutorial id=%d: %w", saved.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("failed to update row in table:tutorials: id=%d: %w", saved.ID, sql.ErrNoRows)
	}

	return &saved, nil
}

func (r *gormTutorialRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Tutorial{}).Error; err != nil {
		return fmt.Errorf("failed to delete tutorial id=%d: %w", id, err)
	}
	return nil
}

func (r *gormTutorialRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Tutorial{}).Error; err != nil {
		return fmt.Errorf("failed to delete tutorials: %w", err)
	}
	return nil
}
