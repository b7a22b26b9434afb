package services

import (
	"context"

	"github.com/rpupo63/portfolio-api/errs"
	"golang.org/x/sync/errgroup"
)

// Portfolio is everything the public site renders, in one payload.
type Portfolio struct {
	Profile     *ProfileResponse     `json:"profile"`
	Projects    []ProjectResponse    `json:"projects"`
	Skills      []SkillResponse      `json:"skills"`
	Experiences []ExperienceResponse `json:"experiences"`
}

type PortfolioService interface {
	Get(ctx context.Context) (*Portfolio, error)
}

type portfolioService struct {
	profiles    ProfileService
	projects    ProjectService
	skills      SkillService
	experiences ExperienceService
}

func NewPortfolioService(profiles ProfileService, projects ProjectService, skills SkillService, experiences ExperienceService) PortfolioService {
	return &portfolioService{
		profiles:    profiles,
		projects:    projects,
		skills:      skills,
		experiences: experiences,
	}
}

// Get loads the public listings concurrently. A missing profile is not an error.
func (s *portfolioService) Get(ctx context.Context) (*Portfolio, error) {
	var out Portfolio
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		profile, err := s.profiles.Get(gctx)
		if errs.IsNotFound(err) {
			return nil
		}
		out.Profile = profile
		return err
	})
	g.Go(func() error {
		var err error
		out.Projects, err = s.projects.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Skills, err = s.skills.ListActive(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		out.Experiences, err = s.experiences.ListActive(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
