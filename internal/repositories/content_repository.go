package repositories

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/ortholink/exercise-service/internal/models"
)

// ===== CONTENT STORAGE =====

// SectionRecord is the persisted form of a content section. The exercise
// payload is stored as a single JSON document so the section schema can
// evolve without migrations.
type SectionRecord struct {
	ID        string         `gorm:"primaryKey;size:64" json:"id"`
	Position  int            `gorm:"not null" json:"position"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (SectionRecord) TableName() string {
	return "content_sections"
}

// ContentRepository persists the content tree. Sections are returned in
// display order (ascending position).
type ContentRepository interface {
	Seed(ctx context.Context, sections []models.Section) error
	LoadSections(ctx context.Context) ([]models.Section, error)
	Count(ctx context.Context) (int64, error)
}
