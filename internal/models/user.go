package models

import (
	"time"
)

// User is the root of ownership. Rows are created and updated by the auth
// sync path; nothing in this service ever deletes one. The ID is the
// identity-provider subject, not a locally generated UUID.
type User struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      *string   `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
