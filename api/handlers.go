package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/errs"
)

const maxBodyBytes = 1 << 20 // 1MB

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(svcs Services, pinger Pinger, startupTime time.Time, exposeErrors bool) *routeHandlers {
	return &routeHandlers{
		projectHandler:    newProjectHandler(svcs.Projects, exposeErrors),
		skillHandler:      newSkillHandler(svcs.Skills, exposeErrors),
		experienceHandler: newExperienceHandler(svcs.Experiences, exposeErrors),
		profileHandler:    newProfileHandler(svcs.Profile, exposeErrors),
		portfolioHandler:  newPortfolioHandler(svcs.Portfolio, exposeErrors),
		resumeHandler:     newResumeHandler(svcs.Resume, exposeErrors),
		healthHandler:     newHealthHandler(pinger, startupTime, exposeErrors),
	}
}

// parseID reads a positive integer path parameter.
func parseID(r *http.Request, param string) (uint, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError(param, fmt.Sprintf("missing %s", param))
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, errs.NewInvalidFieldError(param, fmt.Sprintf("invalid %s: must be an integer", param))
	}
	return uint(id), nil
}

// decodeJSON decodes a size-limited JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, payloadName string, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.NewMaxBodySizeExceededError(maxErr.Limit)
		case errors.Is(err, io.EOF):
			return errs.NewMalformedPayloadError(payloadName, errors.New("empty body"))
		default:
			return errs.NewMalformedPayloadError(payloadName, err)
		}
	}
	return nil
}

// includeDeleted reads the optional includeDeleted query flag.
func includeDeleted(r *http.Request) (bool, error) {
	raw := r.URL.Query().Get("includeDeleted")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.NewInvalidFieldError("includeDeleted", "includeDeleted must be true or false")
	}
	return v, nil
}

func notFound(resource string, id uint) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s with id %d not found", resource, id))
}
