package services

import (
	"errors"

	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"
	"gorm.io/gorm"
)

// Every lookup here collapses "does not exist" and "belongs to someone else"
// into the same NotFound error. Callers must not be able to tell the two
// apart, so the existence of another user's data never leaks through an
// error code.

// EnsurePersonOwned confirms the person exists, is not soft-deleted, and
// belongs to userID. The deleted_at filter comes from the model's soft
// delete scope.
func EnsurePersonOwned(db *gorm.DB, userID, personID string) error {
	var person models.Person
	err := db.Select("id").
		Where("id = ? AND user_id = ?", personID, userID).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NewNotFoundError("Person not found.")
		}
		return err
	}
	return nil
}

// findOwnedTag returns the tag scoped to userID, or NotFound.
func findOwnedTag(db *gorm.DB, userID, id string) (*models.Tag, error) {
	var tag models.Tag
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Tag not found.")
		}
		return nil, err
	}
	return &tag, nil
}

// findOwnedTask resolves an ask or favour through its person's owner.
// Ownership is transitive: the row is the user's iff the person row it hangs
// off carries the user's id. Tasks of soft-deleted people remain reachable.
func findOwnedTask(db *gorm.DB, kind models.TaskKind, userID, id string) (*models.Task, error) {
	table := kind.Table()

	var task models.Task
	err := db.Table(table).
		Select(table+".*").
		Joins("JOIN people ON people.id = "+table+".person_id").
		Where(table+".id = ? AND people.user_id = ?", id, userID).
		Take(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError(kind.Label() + " not found.")
		}
		return nil, err
	}
	return &task, nil
}
