package services_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/iankorovinsky/lifeos/internal/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Person{},
		&models.Role{},
		&models.PersonNote{},
		&models.Tag{},
		&models.Ask{},
		&models.Favour{},
		&models.Integration{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedPerson(t *testing.T, db *gorm.DB, userID, name string) *models.Person {
	t.Helper()

	person := models.Person{UserID: userID, Name: name}
	if err := db.Create(&person).Error; err != nil {
		t.Fatalf("Failed to seed person %q: %v", name, err)
	}
	return &person
}

func seedTag(t *testing.T, db *gorm.DB, userID, name string) *models.Tag {
	t.Helper()

	tag := models.Tag{UserID: userID, Name: name}
	if err := db.Create(&tag).Error; err != nil {
		t.Fatalf("Failed to seed tag %q: %v", name, err)
	}
	return &tag
}

// seedAsk inserts an ask row directly with a fixed creation time so
// ordering tests do not race the clock.
func seedAsk(t *testing.T, db *gorm.DB, personID, description string, completed bool, createdAt time.Time) *models.Ask {
	t.Helper()

	ask := models.Ask{Task: models.Task{
		PersonID:    personID,
		Description: description,
		Completed:   completed,
		CreatedAt:   createdAt,
	}}
	if err := db.Create(&ask).Error; err != nil {
		t.Fatalf("Failed to seed ask %q: %v", description, err)
	}
	return &ask
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }
