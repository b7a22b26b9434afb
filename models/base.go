package models

import "time"

// BaseEntity carries the identity, audit timestamps and soft-delete flag shared by every record
type BaseEntity struct {
	ID        uint       `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time  `json:"-" db:"created_at" gorm:"type:timestamp;not null;autoCreateTime:false"`
	UpdatedAt *time.Time `json:"-" db:"updated_at" gorm:"type:timestamp;autoUpdateTime:false"`
	IsDeleted bool       `json:"-" db:"is_deleted" gorm:"not null;default:false;index"`
}

// Entity is implemented by every model embedding BaseEntity.
type Entity interface {
	Base() *BaseEntity
}

func (b *BaseEntity) Base() *BaseEntity {
	return b
}

// Touch stamps the last-updated time.
func (b *BaseEntity) Touch(now time.Time) {
	t := now.UTC()
	b.UpdatedAt = &t
}
