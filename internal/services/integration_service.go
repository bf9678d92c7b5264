package services

import (
	"errors"
	"time"

	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// integrationLabels maps each known integration type to its display name.
var integrationLabels = map[string]string{
	"google_calendar": "Google Calendar",
	"gmail":           "Gmail",
	"outlook":         "Outlook",
	"whatsapp":        "WhatsApp",
	"linkedin":        "LinkedIn",
	"messages":        "Messages",
}

// ConnectIntegrationInput carries optional connection details.
type ConnectIntegrationInput struct {
	Email    *string        `json:"email"`
	Settings datatypes.JSON `json:"settings"`
}

// ListIntegrations returns the full integration catalog merged with the
// user's stored connection state. Types the user never touched come back as
// disconnected placeholders.
func ListIntegrations(db *gorm.DB, userID string) ([]models.Integration, error) {
	var stored []models.Integration
	err := db.Where("user_id = ?", userID).Find(&stored).Error
	if err != nil {
		return nil, err
	}

	byType := make(map[string]models.Integration, len(stored))
	for _, integration := range stored {
		byType[integration.Type] = integration
	}

	result := make([]models.Integration, 0, len(models.IntegrationTypes))
	for _, integrationType := range models.IntegrationTypes {
		if integration, ok := byType[integrationType]; ok {
			result = append(result, integration)
			continue
		}
		result = append(result, models.Integration{
			UserID: userID,
			Type:   integrationType,
			Name:   integrationLabels[integrationType],
		})
	}
	return result, nil
}

// ConnectIntegration marks the integration connected for the user, creating
// the row on first connect. Unknown types yield NotFound.
func ConnectIntegration(db *gorm.DB, userID, integrationType string, input ConnectIntegrationInput) (*models.Integration, error) {
	if !models.IsIntegrationType(integrationType) {
		return nil, types.NewNotFoundError("Integration not found.")
	}

	now := time.Now().UTC()
	var integration models.Integration

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND type = ?", userID, integrationType).
			First(&integration).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			integration = models.Integration{
				UserID:      userID,
				Type:        integrationType,
				Name:        integrationLabels[integrationType],
				Email:       input.Email,
				Connected:   true,
				ConnectedAt: &now,
				Settings:    input.Settings,
			}
			return tx.Create(&integration).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"connected":    true,
			"connected_at": now,
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}
		if input.Settings != nil {
			updates["settings"] = input.Settings
		}
		return tx.Model(&integration).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &integration, nil
}

// DisconnectIntegration clears the connected state. Disconnecting a type
// that was never connected yields NotFound.
func DisconnectIntegration(db *gorm.DB, userID, integrationType string) (*models.Integration, error) {
	if !models.IsIntegrationType(integrationType) {
		return nil, types.NewNotFoundError("Integration not found.")
	}

	var integration models.Integration
	err := db.Where("user_id = ? AND type = ?", userID, integrationType).
		First(&integration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Integration not found.")
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"connected":    false,
		"connected_at": nil,
	}
	if err := db.Model(&integration).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &integration, nil
}
