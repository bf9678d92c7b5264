package services

import (
	"errors"
	"strings"

	"github.com/iankorovinsky/lifeos/internal/models"
	"github.com/iankorovinsky/lifeos/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// PeopleFilters narrows ListPeople results.
type PeopleFilters struct {
	Search string
	TagIDs []string
	Limit  *int
	Offset *int
}

// CreatePersonInput carries the fields accepted by CreatePerson.
type CreatePersonInput struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	IsFavorite  *bool    `json:"isFavorite"`
	TagIDs      []string `json:"tagIds"`
}

// UpdatePersonInput carries partial updates for UpdatePerson. Nil fields are
// left unchanged. TagIDs nil means "don't touch the tag set"; a non-nil
// slice, even empty, replaces it wholesale.
type UpdatePersonInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	IsFavorite  *bool     `json:"isFavorite"`
	TagIDs      *[]string `json:"tagIds"`
}

// personPreloads loads every collection the wire format carries. Tags come
// back as flat Tag rows; the join table never surfaces.
func personPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Roles").
		Preload("Tags").
		Preload("Notes").
		Preload("Asks").
		Preload("Favours")
}

// normalizePerson replaces nil collections with empty slices so the JSON
// encoding is stable regardless of preload results.
func normalizePerson(p *models.Person) {
	if p.Roles == nil {
		p.Roles = []models.Role{}
	}
	if p.Tags == nil {
		p.Tags = []models.Tag{}
	}
	if p.Notes == nil {
		p.Notes = []models.PersonNote{}
	}
	if p.Asks == nil {
		p.Asks = []models.Ask{}
	}
	if p.Favours == nil {
		p.Favours = []models.Favour{}
	}
}

// validateTagIDs confirms every id resolves to a tag owned by userID.
// All-or-nothing: one foreign or unknown id rejects the whole batch.
func validateTagIDs(db *gorm.DB, userID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}

	var count int64
	err := db.Model(&models.Tag{}).
		Where("user_id = ? AND id IN ?", userID, tagIDs).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count != int64(len(tagIDs)) {
		return types.NewValidationError("One or more tags do not belong to the user.")
	}
	return nil
}

// replaceTagAssociations swaps the person's tag set for exactly tagIDs.
// Delete-all then re-create, matching the replace-not-merge contract.
func replaceTagAssociations(tx *gorm.DB, personID string, tagIDs []string) error {
	if err := tx.Exec("DELETE FROM person_tags WHERE person_id = ?", personID).Error; err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if err := tx.Exec("INSERT INTO person_tags (person_id, tag_id) VALUES (?, ?)",
			personID, tagID).Error; err != nil {
			return err
		}
	}
	return nil
}

// ListPeople returns the user's non-deleted people. Search matches name,
// description, and any role's title or company, case-insensitively.
// TagIDs keeps people carrying at least one of the given tags. Favorites
// sort first, then name ascending.
func ListPeople(db *gorm.DB, userID string, filters PeopleFilters) ([]models.Person, error) {
	query := personPreloads(db).
		Model(&models.Person{}).
		Clauses(hints.Comment("select", "people_list")).
		Where("people.user_id = ?", userID)

	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where(
			db.Where("LOWER(people.name) LIKE ?", pattern).
				Or("LOWER(people.description) LIKE ?", pattern).
				Or("people.id IN (?)",
					db.Table("roles").
						Select("person_id").
						Where("LOWER(title) LIKE ? OR LOWER(company) LIKE ?", pattern, pattern)),
		)
	}

	if len(filters.TagIDs) > 0 {
		query = query.Where("people.id IN (?)",
			db.Table("person_tags").
				Select("person_id").
				Where("tag_id IN ?", filters.TagIDs))
	}

	query = query.Order("people.is_favorite DESC, people.name ASC")

	if filters.Limit != nil {
		query = query.Limit(*filters.Limit)
	}
	if filters.Offset != nil {
		query = query.Offset(*filters.Offset)
	}

	var people []models.Person
	if err := query.Find(&people).Error; err != nil {
		return nil, err
	}

	for i := range people {
		normalizePerson(&people[i])
	}
	return people, nil
}

// GetPerson returns a single non-deleted person scoped to the user.
func GetPerson(db *gorm.DB, userID, id string) (*models.Person, error) {
	var person models.Person
	err := personPreloads(db).
		Where("id = ? AND user_id = ?", id, userID).
		First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Person not found.")
		}
		return nil, err
	}

	normalizePerson(&person)
	return &person, nil
}

// CreatePerson creates a person and its tag associations in one transaction.
// A failed tag validation leaves no person row behind.
func CreatePerson(db *gorm.DB, userID string, input CreatePersonInput) (*models.Person, error) {
	isFavorite := false
	if input.IsFavorite != nil {
		isFavorite = *input.IsFavorite
	}

	person := models.Person{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Email:       input.Email,
		Phone:       input.Phone,
		IsFavorite:  isFavorite,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := validateTagIDs(tx, userID, input.TagIDs); err != nil {
			return err
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}
		if len(input.TagIDs) > 0 {
			return replaceTagAssociations(tx, person.ID, input.TagIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetPerson(db, userID, person.ID)
}

// UpdatePerson applies only the provided fields. A provided TagIDs slice
// replaces the entire tag set; an omitted one leaves it alone.
func UpdatePerson(db *gorm.DB, userID, id string, input UpdatePersonInput) (*models.Person, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		var existing models.Person
		err := tx.Select("id").
			Where("id = ? AND user_id = ?", id, userID).
			First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.NewNotFoundError("Person not found.")
			}
			return err
		}

		if input.TagIDs != nil {
			if err := validateTagIDs(tx, userID, *input.TagIDs); err != nil {
				return err
			}
			if err := replaceTagAssociations(tx, id, *input.TagIDs); err != nil {
				return err
			}
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Email != nil {
			updates["email"] = *input.Email
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.IsFavorite != nil {
			updates["is_favorite"] = *input.IsFavorite
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Person{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetPerson(db, userID, id)
}

// SoftDeletePerson marks the person deleted and returns the record. There is
// no restore path; subsequent reads will never see the row again.
func SoftDeletePerson(db *gorm.DB, userID, id string) (*models.Person, error) {
	var person models.Person
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&person).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NewNotFoundError("Person not found.")
		}
		return nil, err
	}

	if err := db.Delete(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// CreateRole appends a role to an owned person.
func CreateRole(db *gorm.DB, userID, personID, title string, company *string) (*models.Role, error) {
	if err := EnsurePersonOwned(db, userID, personID); err != nil {
		return nil, err
	}

	role := models.Role{
		PersonID: personID,
		Title:    title,
		Company:  company,
	}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateNote appends a note to an owned person. Notes are append-only.
func CreateNote(db *gorm.DB, userID, personID, content string) (*models.PersonNote, error) {
	if err := EnsurePersonOwned(db, userID, personID); err != nil {
		return nil, err
	}

	note := models.PersonNote{
		PersonID: personID,
		Content:  content,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}
