package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IntegrationTypes is the closed set of external services the integrations
// stub knows about.
var IntegrationTypes = []string{
	"google_calendar",
	"gmail",
	"outlook",
	"whatsapp",
	"linkedin",
	"messages",
}

// IsIntegrationType reports whether t names a known integration.
func IsIntegrationType(t string) bool {
	for _, known := range IntegrationTypes {
		if known == t {
			return true
		}
	}
	return false
}

// Integration records a user's connection state for one external service.
// At most one row per (user, type). Settings holds provider-specific
// configuration as raw JSON.
type Integration struct {
	ID          string         `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID      string         `gorm:"type:char(36);not null;index:idx_integrations_user_type,unique" json:"userId"`
	Type        string         `gorm:"size:32;not null;index:idx_integrations_user_type,unique" json:"type"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       *string        `gorm:"size:255" json:"email,omitempty"`
	Connected   bool           `gorm:"not null;default:false" json:"connected"`
	ConnectedAt *time.Time     `json:"connectedAt,omitempty"`
	Settings    datatypes.JSON `gorm:"type:json" json:"settings,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName overrides the table name for Integration
func (Integration) TableName() string {
	return "integrations"
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (i *Integration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
