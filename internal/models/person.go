package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person represents a contact in the rolodex, owned exclusively by one user.
// People are soft-deleted: DeletedAt is set and GORM's deleted_at scope keeps
// the row out of every subsequent read.
type Person struct {
	ID          string         `gorm:"primaryKey;type:char(36)" json:"id"`
	UserID      string         `gorm:"type:char(36);not null;index" json:"userId"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	Email       *string        `gorm:"size:255" json:"email"`
	Phone       *string        `gorm:"size:64" json:"phone"`
	IsFavorite  bool           `gorm:"not null;default:false" json:"isFavorite"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deletedAt"`

	Roles   []Role       `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"roles"`
	Tags    []Tag        `gorm:"many2many:person_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Notes   []PersonNote `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"notes"`
	Asks    []Ask        `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"asks"`
	Favours []Favour     `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"favours"`
}

// TableName overrides the table name for Person
func (Person) TableName() string {
	return "people"
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Role is a position a person holds, subordinate to the person record.
// Only the creation path is exposed over HTTP.
type Role struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	PersonID  string    `gorm:"type:char(36);not null;index" json:"personId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Company   *string   `gorm:"size:255" json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Role
func (Role) TableName() string {
	return "roles"
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// PersonNote is an append-only note attached to a person. There is no
// update or delete surface.
type PersonNote struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"`
	PersonID  string    `gorm:"type:char(36);not null;index" json:"personId"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name for PersonNote
func (PersonNote) TableName() string {
	return "person_notes"
}

// BeforeCreate assigns a UUID primary key when none is provided.
func (n *PersonNote) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
