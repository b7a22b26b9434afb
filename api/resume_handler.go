package api

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxResumeBytes = 20 << 20 // 20MB

type resumeHandler struct {
	responder Responder
	logger    zerolog.Logger
	service   services.ResumeService
}

func newResumeHandler(service services.ResumeService, exposeErrors bool) resumeHandler {
	logger := log.With().Str("handlerName", "resumeHandler").Logger()

	return resumeHandler{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		service:   service,
	}
}

// downloadResume streams the stored PDF as an attachment
// GET /api/resume/{lang}
func (h resumeHandler) downloadResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := chi.URLParam(r, "lang")

		body, resume, err := h.service.Open(r.Context(), lang)
		if err != nil {
			if errs.IsNotFound(err) {
				h.logger.Warn().Str("lang", lang).Msg("Resume file not found")
			}
			h.responder.WriteError(w, err)
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resume.DownloadName))
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, body); err != nil {
			h.logger.Error().Err(err).Str("lang", lang).Msg("error streaming resume")
		}
	}
}

// uploadResume replaces the stored PDF from the multipart field "file"
// POST /api/resume/{lang}
func (h resumeHandler) uploadResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := chi.URLParam(r, "lang")
		r.Body = http.MaxBytesReader(w, r.Body, maxResumeBytes)

		var (
			file        multipart.File
			size        int64
			contentType string
		)
		f, header, err := r.FormFile("file")
		switch {
		case err == nil:
			defer f.Close()
			file, size, contentType = f, header.Size, header.Header.Get("Content-Type")
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			// no file: the service reports it
		default:
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}

		var reader io.Reader
		if file != nil {
			reader = file
		}
		if err := h.service.Upload(r.Context(), lang, contentType, size, reader); err != nil {
			if errs.IsValidation(err) {
				h.logger.Warn().Err(err).Str("lang", lang).Str("contentType", contentType).Msg("Resume upload rejected")
			}
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("lang", lang).Int64("size", size).Str("subject", subjectFromContext(r.Context())).Msg("Resume file uploaded")
		h.responder.WriteMessage(w, "Resume uploaded successfully")
	}
}
