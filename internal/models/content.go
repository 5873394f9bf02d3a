package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentModel stores the visible text extracted from an uploaded HTML
// snippet under an opaque token. Rows are immutable after insertion and are
// purged once they outlive the retention window.
type ContentModel struct {
	Token     string    `json:"token"      gorm:"type:char(36);primaryKey"`
	Text      string    `json:"text"       gorm:"type:longtext;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (ContentModel) TableName() string { return "contents" }

func (m *ContentModel) BeforeCreate(tx *gorm.DB) error {
	if m.Token == "" {
		m.Token = uuid.New().String()
	}
	return nil
}
