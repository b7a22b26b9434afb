package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   services.ExperienceService
}

func newExperienceHandler(service services.ExperienceService, exposeErrors bool) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		service:   service,
	}
}

// listExperiences returns the active experiences, most recent first
// GET /api/experiences
func (h experienceHandler) listExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.service.ListActive(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experiences)
	}
}

// listAllExperiences returns every experience including inactive ones; ?includeDeleted=true adds soft-deleted rows
// GET /api/experiences/all
func (h experienceHandler) listAllExperiences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withDeleted, err := includeDeleted(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experiences, err := h.service.ListAll(r.Context(), withDeleted)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experiences)
	}
}

// GET /api/experiences/{id}
func (h experienceHandler) getExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experience)
	}
}

// POST /api/experiences
func (h experienceHandler) createExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.CreateExperienceRequest
		if err := decodeJSON(w, r, "experience", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode experience request body")
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.service.Create(r.Context(), req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", experience.ID).Str("subject", subjectFromContext(r.Context())).Msg("experience created")
		h.responder.WriteCreated(w, fmt.Sprintf("/api/experiences/%d", experience.ID), experience)
	}
}

// PUT /api/experiences/{id}
func (h experienceHandler) updateExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req services.UpdateExperienceRequest
		if err := decodeJSON(w, r, "experience", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode experience request body")
			h.responder.WriteError(w, err)
			return
		}

		experience, err := h.service.Update(r.Context(), id, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", id).Str("subject", subjectFromContext(r.Context())).Msg("experience updated")
		h.responder.WriteJSON(w, experience)
	}
}

// DELETE /api/experiences/{id}
func (h experienceHandler) deleteExperience() http.HandlerFunc {
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
			h.responder.WriteError(w, notFound("Experience", id))
			return
		}

		h.logger.Info().Uint("id", id).Str("subject", subjectFromContext(r.Context())).Msg("experience deleted")
		h.responder.WriteNoContent(w)
	}
}

// GET /api/experiences/current
func (h experienceHandler) getCurrentExperience() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experience, err := h.service.GetCurrent(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experience)
	}
}
