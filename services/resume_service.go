package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/storage"
	"github.com/rs/zerolog"
)

const pdfContentType = "application/pdf"

// Resume describes one downloadable resume file.
type Resume struct {
	Lang         string
	StoredName   string // name inside the store
	DownloadName string // name offered to the browser
}

var resumes = map[string]Resume{
	"en": {Lang: "en", StoredName: "resume-en.pdf", DownloadName: "Resume.pdf"},
	"pt": {Lang: "pt", StoredName: "resume-pt.pdf", DownloadName: "CV.pdf"},
}

type ResumeService interface {
	Open(ctx context.Context, lang string) (io.ReadCloser, Resume, error)
	Upload(ctx context.Context, lang string, contentType string, size int64, r io.Reader) error
}

type resumeService struct {
	store storage.ResumeStore
}

func NewResumeService(store storage.ResumeStore) ResumeService {
	return &resumeService{store: store}
}

func lookupResume(lang string) (Resume, error) {
	r, ok := resumes[strings.ToLower(lang)]
	if !ok {
		return Resume{}, errs.NewInvalidFieldError("lang", fmt.Sprintf("Unsupported resume language %q", lang))
	}
	return r, nil
}

func (s *resumeService) Open(ctx context.Context, lang string) (io.ReadCloser, Resume, error) {
	resume, err := lookupResume(lang)
	if err != nil {
		return nil, Resume{}, err
	}

	rc, err := s.store.Open(ctx, resume.StoredName)
	if errors.Is(err, errs.ErrNotFound) {
		return nil, Resume{}, errs.NewNotFoundError(fmt.Sprintf("Resume file '%s' not found", resume.StoredName))
	}
	if err != nil {
		return nil, Resume{}, errs.NewStorageError("open resume", err)
	}
	return rc, resume, nil
}

// Upload replaces the stored resume for lang. Only non-empty PDF uploads are accepted.
func (s *resumeService) Upload(ctx context.Context, lang string, contentType string, size int64, r io.Reader) error {
	resume, err := lookupResume(lang)
	if err != nil {
		return err
	}
	if r == nil || size == 0 {
		return errs.NewMissingRequiredFieldError("file", "No file uploaded")
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err != nil || !strings.EqualFold(mediaType, pdfContentType) {
		return errs.NewInvalidFieldError("file", "Only PDF files are allowed")
	}

	if err := s.store.Save(ctx, resume.StoredName, pdfContentType, r); err != nil {
		return errs.NewStorageError("save resume", err)
	}
	zerolog.Ctx(ctx).Debug().Str("file", resume.StoredName).Int64("size", size).Msg("resume stored")
	return nil
}
