package services

import (
	"errors"

	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"
	"gorm.io/gorm"
)

// SyncUserInput mirrors what the identity provider hands the gateway after
// sign-in. The id is the provider subject and must match the request
// identity.
type SyncUserInput struct {
	ID    string  `json:"id" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Name  *string `json:"name"`
}

// SyncUser upserts the user record from the identity provider's view:
// create on first sign-in, refresh email and name after that. An absent or
// empty name never clears one that was stored earlier.
func SyncUser(db *gorm.DB, input SyncUserInput) (*models.User, error) {
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", input.ID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				ID:    input.ID,
				Email: input.Email,
				Name:  input.Name,
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"email": input.Email}
		if input.Name != nil && *input.Name != "" {
			updates["name"] = *input.Name
		}
		return tx.Model(&user).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns the synced user record.
func GetUser(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("User not found.")
		}
		return nil, err
	}
	return &user, nil
}
