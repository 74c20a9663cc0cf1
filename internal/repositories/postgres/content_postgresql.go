package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ortholink/exercise-service/internal/models"
	"github.com/ortholink/exercise-service/internal/repositories"
)

type ContentPostgreSQL struct {
	db *gorm.DB
}

func NewContentPostgreSQL(db *gorm.DB) (repositories.ContentRepository, error) {
	if err := db.AutoMigrate(&repositories.SectionRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate content schema: %w", err)
	}
	return &ContentPostgreSQL{db: db}, nil
}

// Seed upserts the given sections, replacing any stored payloads with the
// same section id. Positions follow the order of the slice.
func (c *ContentPostgreSQL) Seed(ctx context.Context, sections []models.Section) error {
	if len(sections) == 0 {
		return nil
	}

	records := make([]repositories.SectionRecord, 0, len(sections))
	for i, section := range sections {
		payload, err := json.Marshal(section)
		if err != nil {
			return fmt.Errorf("failed to encode section %s: %w", section.ID, err)
		}
		records = append(records, repositories.SectionRecord{
			ID:       section.ID,
			Position: i,
			Payload:  payload,
		})
	}

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "payload", "updated_at"}),
		}).Create(&records).Error
		if err != nil {
			return fmt.Errorf("failed to seed content sections: %w", err)
		}
		return nil
	})
}

// LoadSections returns all stored sections in display order.
func (c *ContentPostgreSQL) LoadSections(ctx context.Context) ([]models.Section, error) {
	var records []repositories.SectionRecord
	err := c.db.WithContext(ctx).
		Order("position ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load content sections: %w", err)
	}

	sections := make([]models.Section, 0, len(records))
	for _, record := range records {
		var section models.Section
		if err := json.Unmarshal(record.Payload, &section); err != nil {
			return nil, fmt.Errorf("failed to decode section %s: %w", record.ID, err)
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func (c *ContentPostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&repositories.SectionRecord{}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count content sections: %w", err)
	}
	return count, nil
}
