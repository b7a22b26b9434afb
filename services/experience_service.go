package services

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
)

type CreateExperienceRequest struct {
	Title        string     `json:"title"`
	Company      *string    `json:"company"`
	Description  string     `json:"description"`
	StartDate    *Timestamp `json:"startDate"`
	EndDate      *Timestamp `json:"endDate"`
	IsCurrent    bool       `json:"isCurrent"`
	DisplayOrder int        `json:"displayOrder"`
	IsActive     *bool      `json:"isActive"` // defaults to true
}

// UpdateExperienceRequest is a partial update: nil fields are left untouched.
// A stored EndDate cannot be cleared through it.
type UpdateExperienceRequest struct {
	Title        *string    `json:"title"`
	Company      *string    `json:"company"`
	Description  *string    `json:"description"`
	StartDate    *Timestamp `json:"startDate"`
	EndDate      *Timestamp `json:"endDate"`
	IsCurrent    *bool      `json:"isCurrent"`
	DisplayOrder *int       `json:"displayOrder"`
	IsActive     *bool      `json:"isActive"`
}

type ExperienceResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Company      *string    `json:"company"`
	Description  string     `json:"description"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	IsCurrent    bool       `json:"isCurrent"`
	DisplayOrder int        `json:"displayOrder"`
	IsActive     bool       `json:"isActive"`
}

// AdminExperienceResponse is the admin listing row; it carries the soft-delete flag.
type AdminExperienceResponse struct {
	ExperienceResponse
	IsDeleted bool `json:"isDeleted"`
}

type ExperienceService interface {
	ListActive(ctx context.Context) ([]ExperienceResponse, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]AdminExperienceResponse, error)
	GetByID(ctx context.Context, id uint) (*ExperienceResponse, error)
	GetCurrent(ctx context.Context) (*ExperienceResponse, error)
	Create(ctx context.Context, req CreateExperienceRequest) (*ExperienceResponse, error)
	Update(ctx context.Context, id uint, req UpdateExperienceRequest) (*ExperienceResponse, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type experienceService struct {
	store database.Store
}

func NewExperienceService(store database.Store) ExperienceService {
	return &experienceService{store: store}
}

// validateExperienceDates checks the effective dates and current flag.
func validateExperienceDates(start time.Time, end *time.Time, isCurrent bool) error {
	if end != nil && end.Before(start) {
		return errs.NewInvalidFieldError("endDate", "EndDate must be greater than or equal to StartDate")
	}
	if isCurrent && end != nil {
		return errs.NewInvalidFieldError("endDate", "Current experience cannot have EndDate")
	}
	return nil
}

func (s *experienceService) ListActive(ctx context.Context) ([]ExperienceResponse, error) {
	experiences, err := s.store.ExperienceRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "experiences", err)
	}
	return mapExperiences(experiences), nil
}

func (s *experienceService) ListAll(ctx context.Context, includeDeleted bool) ([]AdminExperienceResponse, error) {
	experiences, err := s.store.ExperienceRepo().ListAll(ctx, includeDeleted)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "experiences", err)
	}
	return mapAdminExperiences(experiences), nil
}

func (s *experienceService) GetByID(ctx context.Context, id uint) (*ExperienceResponse, error) {
	experience, err := s.store.ExperienceRepo().GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("Experience", id, err)
	}
	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *experienceService) GetCurrent(ctx context.Context) (*ExperienceResponse, error) {
	experience, err := s.store.ExperienceRepo().GetCurrent(ctx)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NewNotFoundError("No current experience found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "current experience", err)
	}
	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *experienceService) Create(ctx context.Context, req CreateExperienceRequest) (*ExperienceResponse, error) {
	if isBlank(req.Title) {
		return nil, errs.NewMissingRequiredFieldError("title", "Title is required")
	}
	if req.StartDate == nil || req.StartDate.IsZero() {
		return nil, errs.NewMissingRequiredFieldError("startDate", "StartDate is required")
	}

	start := *req.StartDate.ptr()
	end := req.EndDate.ptr()
	if err := validateExperienceDates(start, end, req.IsCurrent); err != nil {
		return nil, err
	}

	experience := &models.Experience{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		StartDate:    start,
		EndDate:      end,
		IsCurrent:    req.IsCurrent,
		DisplayOrder: req.DisplayOrder,
		IsActive:     boolOr(req.IsActive, true),
	}

	uow, err := begin(ctx, s.store, "create", "experience")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ExperienceRepo().Insert(ctx, experience); err != nil {
		return nil, errs.NewDatabaseError("create", "experience", err)
	}
	if err := commit(uow, "create", "experience"); err != nil {
		return nil, err
	}

	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *experienceService) Update(ctx context.Context, id uint, req UpdateExperienceRequest) (*ExperienceResponse, error) {
	uow, err := begin(ctx, s.store, "update", "experience")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	experience, err := uow.ExperienceRepo().GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("Experience", id, err)
	}

	if req.Title != nil && isBlank(*req.Title) {
		return nil, errs.NewInvalidFieldError("title", "Title cannot be empty")
	}

	start := experience.StartDate
	if req.StartDate != nil {
		start = *req.StartDate.ptr()
	}
	end := experience.EndDate
	if req.EndDate != nil {
		end = req.EndDate.ptr()
	}
	isCurrent := boolOr(req.IsCurrent, experience.IsCurrent)
	if err := validateExperienceDates(start, end, isCurrent); err != nil {
		return nil, err
	}

	if req.Title != nil {
		experience.Title = *req.Title
	}
	if req.Company != nil {
		experience.Company = req.Company
	}
	if req.Description != nil {
		experience.Description = *req.Description
	}
	experience.StartDate = start.UTC()
	if end != nil {
		e := end.UTC()
		end = &e
	}
	experience.EndDate = end
	experience.IsCurrent = isCurrent
	if req.DisplayOrder != nil {
		experience.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		experience.IsActive = *req.IsActive
	}

	if err := uow.ExperienceRepo().Update(ctx, experience); err != nil {
		return nil, errs.NewDatabaseError("update", "experience", err)
	}
	if err := commit(uow, "update", "experience"); err != nil {
		return nil, err
	}

	resp := toExperienceResponse(experience)
	return &resp, nil
}

func (s *experienceService) Delete(ctx context.Context, id uint) (bool, error) {
	uow, err := begin(ctx, s.store, "delete", "experience")
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	deleted, err := uow.ExperienceRepo().SoftDelete(ctx, id)
	if err != nil {
		return false, errs.NewDatabaseError("delete", "experience", err)
	}
	if !deleted {
		return false, nil
	}
	if err := commit(uow, "delete", "experience"); err != nil {
		return false, err
	}
	return true, nil
}

func toExperienceResponse(e *models.Experience) ExperienceResponse {
	resp := ExperienceResponse{
		ID:           e.ID,
		Title:        e.Title,
		Company:      e.Company,
		Description:  e.Description,
		StartDate:    e.StartDate.UTC(),
		IsCurrent:    e.IsCurrent,
		DisplayOrder: e.DisplayOrder,
		IsActive:     e.IsActive,
	}
	if e.EndDate != nil {
		end := e.EndDate.UTC()
		resp.EndDate = &end
	}
	return resp
}

func mapExperiences(experiences []*models.Experience) []ExperienceResponse {
	out := make([]ExperienceResponse, 0, len(experiences))
	for _, e := range experiences {
		out = append(out, toExperienceResponse(e))
	}
	return out
}

func mapAdminExperiences(rows []*models.Experience) []AdminExperienceResponse {
	out := make([]AdminExperienceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminExperienceResponse{ExperienceResponse: toExperienceResponse(r), IsDeleted: r.IsDeleted})
	}
	return out
}
