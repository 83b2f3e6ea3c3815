package models

import (
	"time"

	"github.com/google/uuid"
)

// Book is the printable unit customers select. PageCount drives pricing.
type Book struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SubjectID   uuid.UUID `gorm:"column:subject_id;type:uuid;not null;index"`
	Name        string    `gorm:"column:name;not null"`
	PageCount   int       `gorm:"column:page_count;not null"`
	Description *string   `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
