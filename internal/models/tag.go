package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a user-owned label applied to people through the person_tags join
// table. Names are unique per user; the composite index backs the
// application-level check so concurrent creates cannot both slip through.
type Tag struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID    string    `gorm:"type:char(36);not null;index:idx_tags_user_name,unique" json:"userId"`
	Name      string    `gorm:"size:255;not null;index:idx_tags_user_name,unique" json:"name"`
	Color     *string   `gorm:"size:32" json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
