package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog/log"
)

type portfolioHandler struct {
	responder Responder
	service   services.PortfolioService
}

func newPortfolioHandler(service services.PortfolioService, exposeErrors bool) portfolioHandler {
	logger := log.With().Str("handlerName", "portfolioHandler").Logger()

	return portfolioHandler{
		responder: NewResponder(logger, exposeErrors),
		service:   service,
	}
}

// getPortfolio returns the profile and every public listing in one payload
// GET /api/portfolio
func (h portfolioHandler) getPortfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portfolio, err := h.service.Get(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, portfolio)
	}
}
