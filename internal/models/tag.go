package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is reference data, bulk-loaded from CSV and read-only via the API
type Tag struct {
	ID    uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	Name  string    `gorm:"size:200;not null" json:"name"`
	Color string    `gorm:"size:10;not null" json:"color"`
	Slug  string    `gorm:"size:50;uniqueIndex;not null" json:"slug"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
