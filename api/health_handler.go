package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	responder   Responder
	logger      zerolog.Logger
	pinger      Pinger
	startupTime time.Time
}

func newHealthHandler(pinger Pinger, startupTime time.Time, exposeErrors bool) healthHandler {
	logger := log.With().Str("handlerName", "healthHandler").Logger()

	return healthHandler{
		responder:   NewResponder(logger, exposeErrors),
		logger:      logger,
		pinger:      pinger,
		startupTime: startupTime,
	}
}

// GET /healthz
func (h healthHandler) liveness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}

// GET /readyz
func (h healthHandler) readiness() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if h.pinger != nil {
			if err := h.pinger.Ping(ctx); err != nil {
				h.logger.Error().Err(err).Msg("readiness check failed")
				h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "database unavailable"))
				return
			}
		}
		h.responder.WriteJSON(w, HealthResponse{Status: "ready"})
	}
}
