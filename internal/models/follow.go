package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge from follower to author. The composite unique
// index makes duplicate subscriptions impossible at the storage layer;
// author != follower is enforced in the service.
type Follow struct {
	ID         uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	AuthorID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_author_follower" json:"author_id"`
	FollowerID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_author_follower;index" json:"follower_id"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (Follow) TableName() string {
	return "follows"
}
