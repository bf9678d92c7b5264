package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskKind selects which of the two completable-task tables an operation
// targets. Asks and favours share one row shape and one service; only the
// table differs.
type TaskKind string

const (
	TaskKindAsk    TaskKind = "ask"
	TaskKindFavour TaskKind = "favour"
)

// Table returns the table name backing the kind.
func (k TaskKind) Table() string {
	if k == TaskKindFavour {
		return "favours"
	}
	return "asks"
}

// Label returns the user-facing entity name for error messages.
func (k TaskKind) Label() string {
	if k == TaskKindFavour {
		return "Favour"
	}
	return "Ask"
}

// Task is the shared row shape of asks and favours: a completable item
// attached to a person, optionally parented to another task of the same kind
// to form a sub-task tree. ParentID carries no foreign key; deleting a parent
// leaves children with a dangling reference rather than cascading.
type Task struct {
	ID          string    `gorm:"primaryKey;type:char(36)" json:"id"`
	PersonID    string    `gorm:"type:char(36);not null;index" json:"personId"`
	ParentID    *string   `gorm:"type:char(36);index" json:"parentId"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Ask is a tracked request the user made of a contact.
type Ask struct {
	Task
}

// TableName overrides the table name for Ask
func (Ask) TableName() string {
	return "asks"
}

// Favour is a tracked favor the user did for a contact.
type Favour struct {
	Task
}

// TableName overrides the table name for Favour
func (Favour) TableName() string {
	return "favours"
}
