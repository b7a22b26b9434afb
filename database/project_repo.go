package database

import (
	"context"

	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]*models.Project, error)
	ListActive(ctx context.Context) ([]*models.Project, error)
	Insert(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
}

type ProjectRepo struct {
	baseRepo[models.Project, *models.Project]
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return newProjectRepo(db, nil)
}

func newProjectRepo(db *gorm.DB, rows *int64) *ProjectRepo {
	return &ProjectRepo{newBaseRepo[models.Project, *models.Project](db, rows)}
}

// ListAll returns every project regardless of IsActive, ordered by DisplayOrder.
func (r *ProjectRepo) ListAll(ctx context.Context, includeDeleted bool) ([]*models.Project, error) {
	return r.list(ctx, includeDeleted, []string{"display_order ASC", "id ASC"})
}

// ListActive returns the projects shown publicly, ordered by DisplayOrder.
func (r *ProjectRepo) ListActive(ctx context.Context) ([]*models.Project, error) {
	return r.list(ctx, false, []string{"display_order ASC", "id ASC"}, activeOnly)
}
