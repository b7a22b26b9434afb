package models

import "time"

// Experience represents a professional position; a nil EndDate means the position is ongoing
type Experience struct {
	BaseEntity
	Title        string     `json:"title" db:"title" gorm:"type:varchar(200);not null"`
	Company      *string    `json:"company,omitempty" db:"company" gorm:"type:varchar(200)"`
	Description  string     `json:"description" db:"description" gorm:"type:varchar(2000);not null;default:''"`
	StartDate    time.Time  `json:"startDate" db:"start_date" gorm:"type:timestamp;not null;index:idx_experiences_start_order,priority:1"`
	EndDate      *time.Time `json:"endDate,omitempty" db:"end_date" gorm:"type:timestamp"`
	IsCurrent    bool       `json:"isCurrent" db:"is_current" gorm:"not null;default:false;index"`
	DisplayOrder int        `json:"displayOrder" db:"display_order" gorm:"not null;default:0;index:idx_experiences_start_order,priority:2"`
	IsActive     bool       `json:"isActive" db:"is_active" gorm:"not null"`
}
