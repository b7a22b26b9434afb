package database

import (
	"context"

	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

type SkillRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Skill, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]*models.Skill, error)
	ListActive(ctx context.Context) ([]*models.Skill, error)
	ListByCategory(ctx context.Context, category models.SkillCategory) ([]*models.Skill, error)
	Insert(ctx context.Context, skill *models.Skill) error
	Update(ctx context.Context, skill *models.Skill) error
	SoftDelete(ctx context.Context, id uint) (bool, error)
}

type SkillRepo struct {
	baseRepo[models.Skill, *models.Skill]
}

func NewSkillRepo(db *gorm.DB) *SkillRepo {
	return newSkillRepo(db, nil)
}

func newSkillRepo(db *gorm.DB, rows *int64) *SkillRepo {
	return &SkillRepo{newBaseRepo[models.Skill, *models.Skill](db, rows)}
}

func (r *SkillRepo) ListAll(ctx context.Context, includeDeleted bool) ([]*models.Skill, error) {
	return r.list(ctx, includeDeleted, []string{"category ASC", "display_order ASC", "id ASC"})
}

func (r *SkillRepo) ListActive(ctx context.Context) ([]*models.Skill, error) {
	return r.list(ctx, false, []string{"category ASC", "display_order ASC", "id ASC"}, activeOnly)
}

// ListByCategory returns active skills of one category, ordered by DisplayOrder.
func (r *SkillRepo) ListByCategory(ctx context.Context, category models.SkillCategory) ([]*models.Skill, error) {
	inCategory := func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", int(category))
	}
	return r.list(ctx, false, []string{"display_order ASC", "id ASC"}, activeOnly, inCategory)
}
