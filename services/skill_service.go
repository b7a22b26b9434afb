package services

import (
	"context"

	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
)

type CreateSkillRequest struct {
	Name         string               `json:"name"`
	Category     models.SkillCategory `json:"category"`
	Proficiency  int                  `json:"proficiency"`
	DisplayOrder int                  `json:"displayOrder"`
	IsActive     *bool                `json:"isActive"` // defaults to true
}

// UpdateSkillRequest is a partial update: nil fields are left untouched.
type UpdateSkillRequest struct {
	Name         *string               `json:"name"`
	Category     *models.SkillCategory `json:"category"`
	Proficiency  *int                  `json:"proficiency"`
	DisplayOrder *int                  `json:"displayOrder"`
	IsActive     *bool                 `json:"isActive"`
}

type SkillResponse struct {
	ID           uint                 `json:"id"`
	Name         string               `json:"name"`
	Category     models.SkillCategory `json:"category"`
	Proficiency  int                  `json:"proficiency"`
	DisplayOrder int                  `json:"displayOrder"`
	IsActive     bool                 `json:"isActive"`
}

// AdminSkillResponse is the admin listing row; it carries the soft-delete flag.
type AdminSkillResponse struct {
	SkillResponse
	IsDeleted bool `json:"isDeleted"`
}

type SkillService interface {
	ListActive(ctx context.Context) ([]SkillResponse, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]AdminSkillResponse, error)
	ListByCategory(ctx context.Context, category models.SkillCategory) ([]SkillResponse, error)
	GetByID(ctx context.Context, id uint) (*SkillResponse, error)
	Create(ctx context.Context, req CreateSkillRequest) (*SkillResponse, error)
	Update(ctx context.Context, id uint, req UpdateSkillRequest) (*SkillResponse, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type skillService struct {
	store database.Store
}

func NewSkillService(store database.Store) SkillService {
	return &skillService{store: store}
}

func validateProficiency(p int) error {
	if p < 0 || p > 100 {
		return errs.NewInvalidFieldError("proficiency", "Proficiency must be between 0 and 100")
	}
	return nil
}

func validateCategory(c models.SkillCategory) error {
	if !c.Valid() {
		return errs.NewInvalidFieldError("category", "Invalid skill category")
	}
	return nil
}

func (s *skillService) ListActive(ctx context.Context) ([]SkillResponse, error) {
	skills, err := s.store.SkillRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "skills", err)
	}
	return mapSkills(skills), nil
}

func (s *skillService) ListAll(ctx context.Context, includeDeleted bool) ([]AdminSkillResponse, error) {
	skills, err := s.store.SkillRepo().ListAll(ctx, includeDeleted)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "skills", err)
	}
	return mapAdminSkills(skills), nil
}

func (s *skillService) ListByCategory(ctx context.Context, category models.SkillCategory) ([]SkillResponse, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}
	skills, err := s.store.SkillRepo().ListByCategory(ctx, category)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "skills", err)
	}
	return mapSkills(skills), nil
}

func (s *skillService) GetByID(ctx context.Context, id uint) (*SkillResponse, error) {
	skill, err := s.store.SkillRepo().GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("Skill", id, err)
	}
	resp := toSkillResponse(skill)
	return &resp, nil
}

func (s *skillService) Create(ctx context.Context, req CreateSkillRequest) (*SkillResponse, error) {
	if isBlank(req.Name) {
		return nil, errs.NewMissingRequiredFieldError("name", "Name is required")
	}
	if req.Category == 0 {
		return nil, errs.NewMissingRequiredFieldError("category", "Category is required")
	}
	if err := validateCategory(req.Category); err != nil {
		return nil, err
	}
	if err := validateProficiency(req.Proficiency); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		Name:         req.Name,
		Category:     req.Category,
		Proficiency:  req.Proficiency,
		DisplayOrder: req.DisplayOrder,
		IsActive:     boolOr(req.IsActive, true),
	}

	uow, err := begin(ctx, s.store, "create", "skill")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SkillRepo().Insert(ctx, skill); err != nil {
		return nil, errs.NewDatabaseError("create", "skill", err)
	}
	if err := commit(uow, "create", "skill"); err != nil {
		return nil, err
	}

	resp := toSkillResponse(skill)
	return &resp, nil
}

func (s *skillService) Update(ctx context.Context, id uint, req UpdateSkillRequest) (*SkillResponse, error) {
	uow, err := begin(ctx, s.store, "update", "skill")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	skill, err := uow.SkillRepo().GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("Skill", id, err)
	}

	if req.Name != nil && isBlank(*req.Name) {
		return nil, errs.NewInvalidFieldError("name", "Name cannot be empty")
	}
	if req.Category != nil {
		if err := validateCategory(*req.Category); err != nil {
			return nil, err
		}
	}
	if req.Proficiency != nil {
		if err := validateProficiency(*req.Proficiency); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		skill.Name = *req.Name
	}
	if req.Category != nil {
		skill.Category = *req.Category
	}
	if req.Proficiency != nil {
		skill.Proficiency = *req.Proficiency
	}
	if req.DisplayOrder != nil {
		skill.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		skill.IsActive = *req.IsActive
	}

	if err := uow.SkillRepo().Update(ctx, skill); err != nil {
		return nil, errs.NewDatabaseError("update", "skill", err)
	}
	if err := commit(uow, "update", "skill"); err != nil {
		return nil, err
	}

	resp := toSkillResponse(skill)
	return &resp, nil
}

func (s *skillService) Delete(ctx context.Context, id uint) (bool, error) {
	uow, err := begin(ctx, s.store, "delete", "skill")
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	deleted, err := uow.SkillRepo().SoftDelete(ctx, id)
	if err != nil {
		return false, errs.NewDatabaseError("delete", "skill", err)
	}
	if !deleted {
		return false, nil
	}
	if err := commit(uow, "delete", "skill"); err != nil {
		return false, err
	}
	return true, nil
}

func toSkillResponse(s *models.Skill) SkillResponse {
	return SkillResponse{
		ID:           s.ID,
		Name:         s.Name,
		Category:     s.Category,
		Proficiency:  s.Proficiency,
		DisplayOrder: s.DisplayOrder,
		IsActive:     s.IsActive,
	}
}

func mapSkills(skills []*models.Skill) []SkillResponse {
	out := make([]SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, toSkillResponse(s))
	}
	return out
}

func mapAdminSkills(rows []*models.Skill) []AdminSkillResponse {
	out := make([]AdminSkillResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminSkillResponse{SkillResponse: toSkillResponse(r), IsDeleted: r.IsDeleted})
	}
	return out
}
