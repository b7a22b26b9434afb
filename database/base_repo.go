package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/portfolio-api/errs"
	"github.com/rpupo63/portfolio-api/models"
	"gorm.io/gorm"
)

// entity constrains P to be a pointer to a model embedding models.BaseEntity.
type entity[T any] interface {
	*T
	models.Entity
}

// baseRepo implements the operations every repository shares. Soft-deleted
// rows are invisible to every read except an explicit includeDeleted listing.
type baseRepo[T any, P entity[T]] struct {
	db   *gorm.DB
	rows *int64 // affected-row counter of the enclosing unit of work, nil outside one
	now  func() time.Time
}

func newBaseRepo[T any, P entity[T]](db *gorm.DB, rows *int64) baseRepo[T, P] {
	return baseRepo[T, P]{db: db, rows: rows, now: time.Now}
}

func (r baseRepo[T, P]) track(tx *gorm.DB) error {
	if tx.Error == nil && r.rows != nil {
		*r.rows += tx.RowsAffected
	}
	return tx.Error
}

func liveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func (r baseRepo[T, P]) live(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Scopes(liveOnly)
}

// GetByID returns errs.ErrNotFound for missing or soft-deleted rows.
func (r baseRepo[T, P]) GetByID(ctx context.Context, id uint) (P, error) {
	var e T
	err := r.live(ctx).Where("id = ?", id).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Insert assigns the id and creation time.
func (r baseRepo[T, P]) Insert(ctx context.Context, e P) error {
	base := e.Base()
	base.ID = 0
	base.CreatedAt = r.now().UTC()
	base.UpdatedAt = nil
	base.IsDeleted = false
	return r.track(r.db.WithContext(ctx).Create(e))
}

// Update replaces every column of a previously fetched entity and stamps UpdatedAt.
func (r baseRepo[T, P]) Update(ctx context.Context, e P) error {
	e.Base().Touch(r.now())
	return r.track(r.db.WithContext(ctx).Save(e))
}

// SoftDelete flags the row as deleted. It reports false when no live row has that id.
func (r baseRepo[T, P]) SoftDelete(ctx context.Context, id uint) (bool, error) {
	tx := r.live(ctx).
		Model(P(new(T))).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_deleted": true,
			"updated_at": r.now().UTC(),
		})
	if err := r.track(tx); err != nil {
		return false, err
	}
	return tx.RowsAffected > 0, nil
}

// list returns rows matching the scopes in the given order.
func (r baseRepo[T, P]) list(ctx context.Context, includeDeleted bool, order []string, scopes ...func(*gorm.DB) *gorm.DB) ([]P, error) {
	q := r.db.WithContext(ctx)
	if !includeDeleted {
		q = q.Scopes(liveOnly)
	}
	q = q.Scopes(scopes...)
	for _, o := range order {
		q = q.Order(o)
	}

	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]P, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func activeOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
