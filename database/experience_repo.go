package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

type ExperienceRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Experience, error)
	GetCurrent(ctx context.Context) (*models.Experience, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]*models.Experience, error)
	ListActive(ctx context.Context) ([]*models.Experience, error)
	Insert(ctx context.Context, experience *models.Experience) error
	Update(ctx context.Context, experience *models.Experience) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
}

type ExperienceRepo struct {
	baseRepo[models.Experience, *models.Experience]
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return newExperienceRepo(db, nil)
}

func newExperienceRepo(db *gorm.DB, rows *int64) *ExperienceRepo {
	return &ExperienceRepo{newBaseRepo[models.Experience, *models.Experience](db, rows)}
}

// ListAll returns every experience, most recent first.
func (r *ExperienceRepo) ListAll(ctx context.Context, includeDeleted bool) ([]*models.Experience, error) {
	return r.list(ctx, includeDeleted, []string{"start_date DESC", "id ASC"})
}

func (r *ExperienceRepo) ListActive(ctx context.Context) ([]*models.Experience, error) {
	return r.list(ctx, false, []string{"start_date DESC", "display_order ASC", "id ASC"}, activeOnly)
}

// GetCurrent returns the active experience flagged as current. More than one
// such row is a data error; the lowest id wins.
func (r *ExperienceRepo) GetCurrent(ctx context.Context) (*models.Experience, error) {
	var e models.Experience
	err := r.live(ctx).
		Scopes(activeOnly).
		Where("is_current = ?", true).
		Order("id ASC").
		Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}
