package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-api/database"
	"github.com/rpupo63/portfolio-api/errs"
)

// Timestamp decodes ISO-8601 dates. Values without zone information are read
// as UTC; zoned values are converted to UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected ISO-8601", s)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC())
}

func (t *Timestamp) ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func notFound(resource string, id uint) error {
	return errs.NewNotFoundError(fmt.Sprintf("%s with id %d not found", resource, id))
}

// lookupErr maps a repository read failure for one id onto an API error.
func lookupErr(resource string, id uint, err error) error {
	if errors.Is(err, errs.ErrNotFound) {
		return notFound(resource, id)
	}
	return errs.NewDatabaseError("find", strings.ToLower(resource), err)
}

func begin(ctx context.Context, store database.Store, operation, entity string) (database.UnitOfWork, error) {
	uow, err := store.Begin(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError(operation, entity, err)
	}
	return uow, nil
}

func commit(uow database.UnitOfWork, operation, entity string) error {
	if _, err := uow.Commit(); err != nil {
		return errs.NewTransactionFailedError(operation+" "+entity, err)
	}
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
