package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Get(ctx context.Context) (*models.Profile, error)
	Insert(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
}

type ProfileRepo struct {
	baseRepo[models.Profile, *models.Profile]
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return newProfileRepo(db, nil)
}

func newProfileRepo(db *gorm.DB, rows *int64) *ProfileRepo {
	return &ProfileRepo{newBaseRepo[models.Profile, *models.Profile](db, rows)}
}

// Get returns the first live profile, or errs.ErrNotFound.
func (r *ProfileRepo) Get(ctx context.Context) (*models.Profile, error) {
	var p models.Profile
	err := r.live(ctx).Order("id ASC").Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
