package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rs/zerolog"
)

type Responder struct {
	logger zerolog.Logger
	// exposeErrors adds the underlying error to 500 bodies and validator details to 4xx bodies. Never set in production.
	exposeErrors bool
}

func NewResponder(logger zerolog.Logger, exposeErrors bool) Responder {
	return Responder{logger: logger, exposeErrors: exposeErrors}
}

const maxResponseSize = 10 * 1024 * 1024 // 10MB

func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONWithStatus(w, http.StatusOK, data)
}

func (r Responder) WriteJSONWithStatus(w http.ResponseWriter, status int, data any) {
	// Marshal the data first to check size and handle errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if len(jsonData) > maxResponseSize {
		r.logger.Error().
			Int("responseSize", len(jsonData)).
			Int("maxSize", maxResponseSize).
			Msg("response too large")
		status = http.StatusInternalServerError
		jsonData, _ = json.Marshal(ErrorResponse{Message: "Response too large"})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteCreated answers 201 with a Location header pointing at the new resource.
func (r Responder) WriteCreated(w http.ResponseWriter, location string, data any) {
	w.Header().Set("Location", location)
	r.WriteJSONWithStatus(w, http.StatusCreated, data)
}

func (r Responder) WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.WriteJSON(w, MessageResponse{Message: message})
}

func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr

	// For unexpected errors, log and return generic internal error
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		response := ErrorResponse{Message: "Internal server error"}
		if r.exposeErrors {
			response.Error = err.Error()
		}
		r.WriteJSONWithStatus(w, http.StatusInternalServerError, response)
		return
	}

	response := ErrorResponse{Message: apiErr.Message()}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().
			Str("error", apiErr.GetFullError()).
			Bool("database", errs.IsDatabaseError(apiErr)).
			Msg("internal error")
		if r.exposeErrors {
			response.Error = apiErr.GetFullError()
		}
		r.WriteJSONWithStatus(w, apiErr.StatusCode, response)
		return
	}

	// Add field information if present (for validation errors)
	if apiErr.Field != "" {
		response.Field = apiErr.Field
	}
	if apiErr.Details != "" && r.exposeErrors {
		response.Details = apiErr.Details
	}

	r.WriteJSONWithStatus(w, apiErr.StatusCode, response)
}
