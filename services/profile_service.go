package services

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/rs/zerolog"
)

// UpsertProfileRequest merges the non-nil fields into the single profile.
type UpsertProfileRequest struct {
	Name            *string `json:"name"`
	Role            *string `json:"role"`
	Location        *string `json:"location"`
	Languages       *string `json:"languages"`
	Description     *string `json:"description"`
	AvatarURL       *string `json:"avatarUrl"`
	ExperienceYears *string `json:"experienceYears"`
	CoreEngine      *string `json:"coreEngine"`
	Database        *string `json:"database"`
	Email           *string `json:"email"`
	GitHubURL       *string `json:"gitHubUrl"`
	LinkedInURL     *string `json:"linkedInUrl"`
	Specialized     *string `json:"specialized"`
	Certifications  *string `json:"certifications"`
	AboutText       *string `json:"aboutText"`
}

type ProfileResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Role            string  `json:"role"`
	Location        *string `json:"location"`
	Languages       *string `json:"languages"`
	Description     *string `json:"description"`
	AvatarURL       *string `json:"avatarUrl"`
	ExperienceYears *string `json:"experienceYears"`
	CoreEngine      *string `json:"coreEngine"`
	Database        *string `json:"database"`
	Email           *string `json:"email"`
	GitHubURL       *string `json:"gitHubUrl"`
	LinkedInURL     *string `json:"linkedInUrl"`
	Specialized     *string `json:"specialized"`
	Certifications  *string `json:"certifications"`
	AboutText       *string `json:"aboutText"`
}

type ProfileService interface {
	Get(ctx context.Context) (*ProfileResponse, error)
	Upsert(ctx context.Context, req UpsertProfileRequest) (*ProfileResponse, error)
}

type profileService struct {
	store database.Store
}

func NewProfileService(store database.Store) ProfileService {
	return &profileService{store: store}
}

func (s *profileService) Get(ctx context.Context) (*ProfileResponse, error) {
	profile, err := s.store.ProfileRepo().Get(ctx)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, errs.NewNotFoundError("Profile not found")
	}
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	resp := toProfileResponse(profile)
	return &resp, nil
}

// Upsert updates the live profile or creates it when none exists. The lookup
// and the write share one transaction.
func (s *profileService) Upsert(ctx context.Context, req UpsertProfileRequest) (*ProfileResponse, error) {
	uow, err := begin(ctx, s.store, "upsert", "profile")
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.ProfileRepo()
	profile, err := repo.Get(ctx)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		profile = &models.Profile{}
		mergeProfile(profile, req)
		if err := repo.Insert(ctx, profile); err != nil {
			dbErr := errs.NewDatabaseError("create", "profile", err)
			if errs.IsUniqueConstraintViolationError(dbErr) {
				// a concurrent upsert created the profile first
				zerolog.Ctx(ctx).Warn().Err(err).Msg("profile insert lost the singleton race")
				return nil, errs.NewConflictError("Profile was created concurrently, retry the request")
			}
			return nil, dbErr
		}
	case err != nil:
		return nil, errs.NewDatabaseError("find", "profile", err)
	default:
		mergeProfile(profile, req)
		if err := repo.Update(ctx, profile); err != nil {
			return nil, errs.NewDatabaseError("update", "profile", err)
		}
	}

	if err := commit(uow, "upsert", "profile"); err != nil {
		return nil, err
	}

	resp := toProfileResponse(profile)
	return &resp, nil
}

func mergeProfile(p *models.Profile, req UpsertProfileRequest) {
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Role != nil {
		p.Role = *req.Role
	}
	setIfPresent(&p.Location, req.Location)
	setIfPresent(&p.Languages, req.Languages)
	setIfPresent(&p.Description, req.Description)
	setIfPresent(&p.AvatarURL, req.AvatarURL)
	setIfPresent(&p.ExperienceYears, req.ExperienceYears)
	setIfPresent(&p.CoreEngine, req.CoreEngine)
	setIfPresent(&p.Database, req.Database)
	setIfPresent(&p.Email, req.Email)
	setIfPresent(&p.GitHubURL, req.GitHubURL)
	setIfPresent(&p.LinkedInURL, req.LinkedInURL)
	setIfPresent(&p.Specialized, req.Specialized)
	setIfPresent(&p.Certifications, req.Certifications)
	setIfPresent(&p.AboutText, req.AboutText)
}

func setIfPresent(dst **string, v *string) {
	if v != nil {
		*dst = v
	}
}

func toProfileResponse(p *models.Profile) ProfileResponse {
	return ProfileResponse{
		ID:              p.ID,
		Name:            p.Name,
		Role:            p.Role,
		Location:        p.Location,
		Languages:       p.Languages,
		Description:     p.Description,
		AvatarURL:       p.AvatarURL,
		ExperienceYears: p.ExperienceYears,
		CoreEngine:      p.CoreEngine,
		Database:        p.Database,
		Email:           p.Email,
		GitHubURL:       p.GitHubURL,
		LinkedInURL:     p.LinkedInURL,
		Specialized:     p.Specialized,
		Certifications:  p.Certifications,
		AboutText:       p.AboutText,
	}
}
