package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   services.SkillService
}

func newSkillHandler(service services.SkillService, exposeErrors bool) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		service:   service,
	}
}

// listSkills returns the active skills ordered by category then display order
// GET /api/skills
func (h skillHandler) listSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.service.ListActive(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

// listAllSkills returns every skill including inactive ones; ?includeDeleted=true adds soft-deleted rows
// GET /api/skills/all
func (h skillHandler) listAllSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withDeleted, err := includeDeleted(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skills, err := h.service.ListAll(r.Context(), withDeleted)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

// GET /api/skills/{id}
func (h skillHandler) getSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

// POST /api/skills
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.CreateSkillRequest
		if err := decodeJSON(w, r, "skill", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.service.Create(r.Context(), req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", skill.ID).Str("subject", subjectFromContext(r.Context())).Msg("skill created")
		h.responder.WriteCreated(w, fmt.Sprintf("/api/skills/%d", skill.ID), skill)
	}
}

// PUT /api/skills/{id}
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req services.UpdateSkillRequest
		if err := decodeJSON(w, r, "skill", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode skill request body")
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.service.Update(r.Context(), id, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", id).Str("subject", subjectFromContext(r.Context())).Msg("skill updated")
		h.responder.WriteJSON(w, skill)
	}
}

// DELETE /api/skills/{id}
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		deleted, err := h.service.Delete(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if !deleted {
			h.responder.WriteError(w, notFound("Skill", id))
			return
		}

		h.logger.Info().Uint("id", id).Str("subject", subjectFromContext(r.Context())).Msg("skill deleted")
		h.responder.WriteNoContent(w)
	}
}

// listSkillsByCategory returns active skills of one category; the category is a number or a name
// GET /api/skills/category/{category}
func (h skillHandler) listSkillsByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := models.ParseSkillCategory(chi.URLParam(r, "category"))
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidFieldError("category", "Invalid skill category"))
			return
		}

		skills, err := h.service.ListByCategory(r.Context(), category)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}
