package services

import (
	"errors"

	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"
	"gorm.io/gorm"
)

// CreateTagInput carries the fields accepted by CreateTag.
type CreateTagInput struct {
	Name  string  `json:"name" validate:"required"`
	Color *string `json:"color"`
}

// UpdateTagInput carries partial updates for UpdateTag.
type UpdateTagInput struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

// tagNameTaken reports whether the user already owns a tag with this name.
func tagNameTaken(tx *gorm.DB, userID, name string) (bool, error) {
	var count int64
	err := tx.Model(&models.Tag{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

// ListTags returns all of the user's tags, name ascending.
func ListTags(db *gorm.DB, userID string) ([]models.Tag, error) {
	var tags []models.Tag
	err := db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag, rejecting a duplicate name for the same user with
// Conflict. The pre-check runs inside the transaction, and the composite
// unique index catches whatever two concurrent creates slip past it.
func CreateTag(db *gorm.DB, userID string, input CreateTagInput) (*models.Tag, error) {
	tag := models.Tag{
		UserID: userID,
		Name:   input.Name,
		Color:  input.Color,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		taken, err := tagNameTaken(tx, userID, input.Name)
		if err != nil {
			return err
		}
		if taken {
			return types.NewConflictError("Tag name already exists.")
		}
		return tx.Create(&tag).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewConflictError("Tag name already exists.")
		}
		return nil, err
	}
	return &tag, nil
}

// UpdateTag renames or recolors an owned tag. The uniqueness check only runs
// when the name actually changes, so color-only edits and no-op renames pass.
func UpdateTag(db *gorm.DB, userID, id string, input UpdateTagInput) (*models.Tag, error) {
	var tag *models.Tag

	err := db.Transaction(func(tx *gorm.DB) error {
		existing, err := findOwnedTag(tx, userID, id)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if input.Name != nil && *input.Name != existing.Name {
			taken, err := tagNameTaken(tx, userID, *input.Name)
			if err != nil {
				return err
			}
			if taken {
				return types.NewConflictError("Tag name already exists.")
			}
			updates["name"] = *input.Name
		}
		if input.Color != nil {
			updates["color"] = *input.Color
		}

		if len(updates) > 0 {
			if err := tx.Model(existing).Updates(updates).Error; err != nil {
				return err
			}
		}

		tag = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewConflictError("Tag name already exists.")
		}
		return nil, err
	}
	return tag, nil
}

// DeleteTag hard-deletes an owned tag. Join rows go with it via the schema's
// cascade, not application logic.
func DeleteTag(db *gorm.DB, userID, id string) (*models.Tag, error) {
	tag, err := findOwnedTag(db, userID, id)
	if err != nil {
		return nil, err
	}

	if err := db.Delete(tag).Error; err != nil {
		return nil, err
	}
	return tag, nil
}
