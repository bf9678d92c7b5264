package services

import (
	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"
	"gorm.io/gorm"
)

// TaskFilters narrows ListTasks results. Completed nil means "either".
type TaskFilters struct {
	PersonID  string
	Completed *bool
}

// CreateTaskInput carries the fields accepted by CreateTask. ParentID is
// stored as given: no cycle check, no same-person check.
type CreateTaskInput struct {
	PersonID    string  `json:"personId" validate:"required"`
	Description string  `json:"description" validate:"required"`
	ParentID    *string `json:"parentId"`
}

// UpdateTaskInput carries partial updates for UpdateTask. ParentID
// distinguishes null (clear the parent) from absent (leave it).
type UpdateTaskInput struct {
	Description *string              `json:"description"`
	Completed   *bool                `json:"completed"`
	ParentID    types.NullableString `json:"parentId"`
}

// taskModel returns the concrete model value for the kind, used where GORM
// needs a schema (timestamp tracking, delete).
func taskModel(kind models.TaskKind) interface{} {
	if kind == models.TaskKindFavour {
		return &models.Favour{}
	}
	return &models.Ask{}
}

// insertTask creates the row in the kind's table and copies back the
// server-assigned fields.
func insertTask(tx *gorm.DB, kind models.TaskKind, task *models.Task) error {
	if kind == models.TaskKindFavour {
		row := models.Favour{Task: *task}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		*task = row.Task
		return nil
	}

	row := models.Ask{Task: *task}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}
	*task = row.Task
	return nil
}

// ListTasks returns every ask/favour that resolves to the user through its
// person, newest first. Tasks of soft-deleted people stay listed.
func ListTasks(db *gorm.DB, kind models.TaskKind, userID string, filters TaskFilters) ([]models.Task, error) {
	table := kind.Table()

	query := db.Table(table).
		Select(table+".*").
		Joins("JOIN people ON people.id = "+table+".person_id").
		Where("people.user_id = ?", userID)

	if filters.PersonID != "" {
		query = query.Where(table+".person_id = ?", filters.PersonID)
	}
	if filters.Completed != nil {
		query = query.Where(table+".completed = ?", *filters.Completed)
	}

	var tasks []models.Task
	err := query.Order(table + ".created_at DESC").Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}

// CreateTask creates an ask/favour after confirming the target person is
// owned by the user and not deleted. A foreign person yields NotFound and
// no row.
func CreateTask(db *gorm.DB, kind models.TaskKind, userID string, input CreateTaskInput) (*models.Task, error) {
	task := models.Task{
		PersonID:    input.PersonID,
		Description: input.Description,
		ParentID:    input.ParentID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := EnsurePersonOwned(tx, userID, input.PersonID); err != nil {
			return err
		}
		return insertTask(tx, kind, &task)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies only the provided fields to an owned ask/favour.
// parentId null clears the parent; parentId absent leaves it unchanged.
func UpdateTask(db *gorm.DB, kind models.TaskKind, userID, id string, input UpdateTaskInput) (*models.Task, error) {
	if _, err := findOwnedTask(db, kind, userID, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Completed != nil {
		updates["completed"] = *input.Completed
	}
	if input.ParentID.Present {
		updates["parent_id"] = input.ParentID.Ptr()
	}

	if len(updates) > 0 {
		err := db.Model(taskModel(kind)).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}

	return findOwnedTask(db, kind, userID, id)
}

// DeleteTask hard-deletes an owned ask/favour. Children are neither
// cascaded nor re-parented; they keep the dangling parentId.
func DeleteTask(db *gorm.DB, kind models.TaskKind, userID, id string) (*models.Task, error) {
	task, err := findOwnedTask(db, kind, userID, id)
	if err != nil {
		return nil, err
	}

	if err := db.Where("id = ?", id).Delete(taskModel(kind)).Error; err != nil {
		return nil, err
	}
	return task, nil
}
