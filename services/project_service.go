package services

import (
	"context"
	"strings"

	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
)

type CreateProjectRequest struct {
	Title              string  `json:"title"`
	Category           string  `json:"category"`
	Description        string  `json:"description"`
	Tags               string  `json:"tags"`
	ImageURL           *string `json:"imageUrl"`
	GitHubURL          *string `json:"gitHubUrl"`
	DemoURL            *string `json:"demoUrl"`
	Metric1Name        *string `json:"metric1Name"`
	Metric1Value       *string `json:"metric1Value"`
	Metric2Name        *string `json:"metric2Name"`
	Metric2Value       *string `json:"metric2Value"`
	Icon               *string `json:"icon"`
	DisplayOrder       int     `json:"displayOrder"`
	IsActive           *bool   `json:"isActive"` // defaults to true
	BusinessProblem    *string `json:"businessProblem"`
	TechnicalSolution  *string `json:"technicalSolution"`
	TechnicalDecisions *string `json:"technicalDecisions"`
	TradeOffs          *string `json:"tradeOffs"`
	ArchitectureNotes  *string `json:"architectureNotes"`
}

// UpdateProjectRequest is a partial update: nil fields are left untouched.
type UpdateProjectRequest struct {
	Title              *string `json:"title"`
	Category           *string `json:"category"`
	Description        *string `json:"description"`
	Tags               *string `json:"tags"`
	ImageURL           *string `json:"imageUrl"`
	GitHubURL          *string `json:"gitHubUrl"`
	DemoURL            *string `json:"demoUrl"`
	Metric1Name        *string `json:"metric1Name"`
	Metric1Value       *string `json:"metric1Value"`
	Metric2Name        *string `json:"metric2Name"`
	Metric2Value       *string `json:"metric2Value"`
	Icon               *string `json:"icon"`
	DisplayOrder       *int    `json:"displayOrder"`
	IsActive           *bool   `json:"isActive"`
	BusinessProblem    *string `json:"businessProblem"`
	TechnicalSolution  *string `json:"technicalSolution"`
	TechnicalDecisions *string `json:"technicalDecisions"`
	TradeOffs          *string `json:"tradeOffs"`
	ArchitectureNotes  *string `json:"architectureNotes"`
}

type ProjectResponse struct {
	ID                 uint    `json:"id"`
	Title              string  `json:"title"`
	Category           string  `json:"category"`
	Description        string  `json:"description"`
	Tags               string  `json:"tags"`
	ImageURL           *string `json:"imageUrl"`
	GitHubURL          *string `json:"gitHubUrl"`
	DemoURL            *string `json:"demoUrl"`
	Metric1Name        *string `json:"metric1Name"`
	Metric1Value       *string `json:"metric1Value"`
	Metric2Name        *string `json:"metric2Name"`
	Metric2Value       *string `json:"metric2Value"`
	Icon               *string `json:"icon"`
	DisplayOrder       int     `json:"displayOrder"`
	IsActive           bool    `json:"isActive"`
	BusinessProblem    *string `json:"businessProblem"`
	TechnicalSolution  *string `json:"technicalSolution"`
	TechnicalDecisions *string `json:"technicalDecisions"`
	TradeOffs          *string `json:"tradeOffs"`
	ArchitectureNotes  *string `json:"architectureNotes"`
}

// AdminProjectResponse is the admin listing row; it carries the soft-delete flag.
type AdminProjectResponse struct {
	ProjectResponse
	IsDeleted bool `json:"isDeleted"`
}

type ProjectService interface {
	ListActive(ctx context.Context) ([]ProjectResponse, error)
	ListAll(ctx context.Context, includeDeleted bool) ([]AdminProjectResponse, error)
	GetByID(ctx context.Context, id uint) (*ProjectResponse, error)
	Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error)
	Update(ctx context.Context, id uint, req UpdateProjectRequest) (*ProjectResponse, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type projectService struct {
	store database.Store
}

func NewProjectService(store database.Store) ProjectService {
	return &projectService{store: store}
}

const minTitleLength = 3

func validateProjectTitle(title string) error {
	if len([]rune(strings.TrimSpace(title))) < minTitleLength {
		return errs.NewBadRequestErrorWithField("Title must be at least 3 characters", "title")
	}
	return nil
}

func (s *projectService) ListActive(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.store.ProjectRepo().ListActive(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return mapProjects(projects), nil
}

func (s *projectService) ListAll(ctx context.Context, includeDeleted bool) ([]AdminProjectResponse, error) {
	projects, err := s.store.ProjectRepo().ListAll(ctx, includeDeleted)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "projects", err)
	}
	return mapAdminProjects(projects), nil
}

func (s *projectService) GetByID(ctx context.Context, id uint) (*ProjectResponse, error) {
	project, err := s.store.ProjectRepo().GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("Project", id, err)
	}
	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *projectService) Create(ctx context.Context, req CreateProjectRequest) (*ProjectResponse, error) {
	if isBlank(req.Title) {
		return nil, errs.NewMissingRequiredFieldError("title", "Title is required")
	}
	if err := validateProjectTitle(req.Title); err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:              req.Title,
		Category:           req.Category,
		Description:        req.Description,
		Tags:               req.Tags,
		ImageURL:           req.ImageURL,
		GitHubURL:          req.GitHubURL,
		DemoURL:            req.DemoURL,
		Metric1Name:        req.Metric1Name,
		Metric1Value:       req.Metric1Value,
		Metric2Name:        req.Metric2Name,
		Metric2Value:       req.Metric2Value,
		Icon:               req.Icon,
		DisplayOrder:       req.DisplayOrder,
		IsActive:           boolOr(req.IsActive, true),
		BusinessProblem:    req.BusinessProblem,
		TechnicalSolution:  req.TechnicalSolution,
		TechnicalDecisions: req.TechnicalDecisions,
		TradeOffs:          req.TradeOffs,
		ArchitectureNotes:  req.ArchitectureNotes,
	}

	uow, err := begin(ctx, s.store, "create", "project")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ProjectRepo().Insert(ctx, project); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}
	if err := commit(uow, "create", "project"); err != nil {
		return nil, err
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *projectService) Update(ctx context.Context, id uint, req UpdateProjectRequest) (*ProjectResponse, error) {
	uow, err := begin(ctx, s.store, "update", "project")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	project, err := uow.ProjectRepo().GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr("Project", id, err)
	}

	if req.Title != nil {
		if err := validateProjectTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	applyProjectUpdate(project, req)

	if err := uow.ProjectRepo().Update(ctx, project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}
	if err := commit(uow, "update", "project"); err != nil {
		return nil, err
	}

	resp := toProjectResponse(project)
	return &resp, nil
}

func (s *projectService) Delete(ctx context.Context, id uint) (bool, error) {
	uow, err := begin(ctx, s.store, "delete", "project")
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	deleted, err := uow.ProjectRepo().SoftDelete(ctx, id)
	if err != nil {
		return false, errs.NewDatabaseError("delete", "project", err)
	}
	if !deleted {
		return false, nil
	}
	if err := commit(uow, "delete", "project"); err != nil {
		return false, err
	}
	return true, nil
}

func applyProjectUpdate(p *models.Project, req UpdateProjectRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Tags != nil {
		p.Tags = *req.Tags
	}
	if req.ImageURL != nil {
		p.ImageURL = req.ImageURL
	}
	if req.GitHubURL != nil {
		p.GitHubURL = req.GitHubURL
	}
	if req.DemoURL != nil {
		p.DemoURL = req.DemoURL
	}
	if req.Metric1Name != nil {
		p.Metric1Name = req.Metric1Name
	}
	if req.Metric1Value != nil {
		p.Metric1Value = req.Metric1Value
	}
	if req.Metric2Name != nil {
		p.Metric2Name = req.Metric2Name
	}
	if req.Metric2Value != nil {
		p.Metric2Value = req.Metric2Value
	}
	if req.Icon != nil {
		p.Icon = req.Icon
	}
	if req.DisplayOrder != nil {
		p.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if req.BusinessProblem != nil {
		p.BusinessProblem = req.BusinessProblem
	}
	if req.TechnicalSolution != nil {
		p.TechnicalSolution = req.TechnicalSolution
	}
	if req.TechnicalDecisions != nil {
		p.TechnicalDecisions = req.TechnicalDecisions
	}
	if req.TradeOffs != nil {
		p.TradeOffs = req.TradeOffs
	}
	if req.ArchitectureNotes != nil {
		p.ArchitectureNotes = req.ArchitectureNotes
	}
}

func toProjectResponse(p *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:                 p.ID,
		Title:              p.Title,
		Category:           p.Category,
		Description:        p.Description,
		Tags:               p.Tags,
		ImageURL:           p.ImageURL,
		GitHubURL:          p.GitHubURL,
		DemoURL:            p.DemoURL,
		Metric1Name:        p.Metric1Name,
		Metric1Value:       p.Metric1Value,
		Metric2Name:        p.Metric2Name,
		Metric2Value:       p.Metric2Value,
		Icon:               p.Icon,
		DisplayOrder:       p.DisplayOrder,
		IsActive:           p.IsActive,
		BusinessProblem:    p.BusinessProblem,
		TechnicalSolution:  p.TechnicalSolution,
		TechnicalDecisions: p.TechnicalDecisions,
		TradeOffs:          p.TradeOffs,
		ArchitectureNotes:  p.ArchitectureNotes,
	}
}

func mapProjects(projects []*models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func mapAdminProjects(rows []*models.Project) []AdminProjectResponse {
	out := make([]AdminProjectResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, AdminProjectResponse{ProjectResponse: toProjectResponse(r), IsDeleted: r.IsDeleted})
	}
	return out
}
