package api

import (
	"fmt"
	"net/http"

	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   services.ProjectService
}

func newProjectHandler(service services.ProjectService, exposeErrors bool) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		service:   service,
	}
}

// listProjects returns the active projects ordered by display order
// GET /api/projects
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.service.ListActive(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// listAllProjects returns every project including inactive ones; ?includeDeleted=true adds soft-deleted rows
// GET /api/projects/all
func (h projectHandler) listAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withDeleted, err := includeDeleted(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.service.ListAll(r.Context(), withDeleted)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// GET /api/projects/{id}
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// POST /api/projects
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.CreateProjectRequest
		if err := decodeJSON(w, r, "project", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.Create(r.Context(), req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", project.ID).Str("subject", subjectFromContext(r.Context())).Msg("project created")
		h.responder.WriteCreated(w, fmt.Sprintf("/api/projects/%d", project.ID), project)
	}
}

// PUT /api/projects/{id}
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req services.UpdateProjectRequest
		if err := decodeJSON(w, r, "project", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.service.Update(r.Context(), id, req)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", id).Str("subject", subjectFromContext(r.Context())).Msg("project updated")
		h.responder.WriteJSON(w, project)
	}
}

// DELETE /api/projects/{id}
func (h projectHandler) deleteProject() http.HandlerFunc {
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
			h.responder.WriteError(w, notFound("Project", id))
			return
		}

		h.logger.Info().Uint("id", id).Str("subject", subjectFromContext(r.Context())).Msg("project deleted")
		h.responder.WriteNoContent(w)
	}
}
