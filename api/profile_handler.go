package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   services.ProfileService
}

func newProfileHandler(service services.ProfileService, exposeErrors bool) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		service:   service,
	}
}

// GET /api/profile
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.service.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// upsertProfile creates the profile on first use and merges the supplied fields afterwards
// PUT /api/profile
func (h profileHandler) upsertProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req services.UpsertProfileRequest
		if err := decodeJSON(w, r, "profile", &req); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.service.Upsert(r.Context(), req)
		if err != nil {
			if errs.IsConflict(err) {
				h.logger.Warn().Msg("concurrent profile creation")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("id", profile.ID).Str("subject", subjectFromContext(r.Context())).Msg("profile saved")
		h.responder.WriteJSON(w, profile)
	}
}
