package storage

import (
	"context"
	"io"
)

// ResumeStore keeps resume PDFs by file name. Open returns errs.ErrNotFound
// when the object does not exist.
type ResumeStore interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, contentType string, r io.Reader) error
}
