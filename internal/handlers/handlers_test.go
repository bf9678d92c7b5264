package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/iankorovinsky/lifeos/internal/handlers"
	"github.com/iankorovinsky/lifeos/internal/middleware"
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

// newTestApp wires the full API surface the way the server does, minus the
// observability middleware.
func newTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	api := app.Group("/api", middleware.RequireUser())

	users := &handlers.UsersHandler{DB: db}
	api.Post("/users/sync", users.Sync)
	api.Get("/users/me", users.Me)

	rolodex := api.Group("/rolodex")

	people := &handlers.PeopleHandler{DB: db}
	rolodex.Get("/people", people.List)
	rolodex.Post("/people", people.Create)
	rolodex.Get("/people/:id", people.Get)
	rolodex.Put("/people/:id", people.Update)
	rolodex.Delete("/people/:id", people.Delete)
	rolodex.Post("/people/:id/roles", people.CreateRole)
	rolodex.Post("/people/:id/notes", people.CreateNote)

	tags := &handlers.TagsHandler{DB: db}
	rolodex.Get("/tags", tags.List)
	rolodex.Post("/tags", tags.Create)
	rolodex.Put("/tags/:id", tags.Update)
	rolodex.Delete("/tags/:id", tags.Delete)

	asks := &handlers.TasksHandler{DB: db, Kind: models.TaskKindAsk}
	rolodex.Get("/asks", asks.List)
	rolodex.Post("/asks", asks.Create)
	rolodex.Put("/asks/:id", asks.Update)
	rolodex.Delete("/asks/:id", asks.Delete)

	favours := &handlers.TasksHandler{DB: db, Kind: models.TaskKindFavour}
	rolodex.Get("/favours", favours.List)
	rolodex.Post("/favours", favours.Create)
	rolodex.Put("/favours/:id", favours.Update)
	rolodex.Delete("/favours/:id", favours.Delete)

	integrations := &handlers.IntegrationsHandler{DB: db}
	api.Get("/integrations", integrations.List)
	api.Post("/integrations/:type/connect", integrations.Connect)
	api.Post("/integrations/:type/disconnect", integrations.Disconnect)

	return app
}

// doJSON performs a request as userID, returning the status code and the
// decoded body.
func doJSON(t *testing.T, app *fiber.App, method, path, userID string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return resp.StatusCode, result
}

func errorMessage(t *testing.T, result map[string]interface{}) string {
	t.Helper()

	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error object in response, got %v", result)
	}
	message, _ := errObj["message"].(string)
	return message
}

func TestMissingIdentityHeader(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	status, result := doJSON(t, app, "GET", "/api/rolodex/people", "", nil)
	if status != 401 {
		t.Errorf("Expected status 401, got %d", status)
	}
	if result["success"] != false {
		t.Error("Expected success=false in response")
	}
	if errorMessage(t, result) != "Missing user id" {
		t.Errorf("Unexpected error message: %q", errorMessage(t, result))
	}
}

func TestCreateAndGetPerson(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	status, result := doJSON(t, app, "POST", "/api/rolodex/people", "user-1", map[string]interface{}{
		"name":        "Ada",
		"description": "mathematician",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}
	if result["success"] != true {
		t.Error("Expected success=true in response")
	}

	data := result["data"].(map[string]interface{})
	personID := data["id"].(string)
	if personID == "" {
		t.Fatal("Expected a person id in response")
	}
	if data["isFavorite"] != false {
		t.Error("Expected isFavorite to default to false")
	}

	status, result = doJSON(t, app, "GET", "/api/rolodex/people/"+personID, "user-1", nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	data = result["data"].(map[string]interface{})
	if data["name"] != "Ada" {
		t.Errorf("Expected name Ada, got %v", data["name"])
	}
	// Relation arrays are always present, empty rather than null.
	for _, field := range []string{"roles", "tags", "notes", "asks", "favours"} {
		if _, ok := data[field].([]interface{}); !ok {
			t.Errorf("Expected %s to be an array, got %T", field, data[field])
		}
	}
}

func TestCreatePersonValidation(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	status, result := doJSON(t, app, "POST", "/api/rolodex/people", "user-1", map[string]interface{}{
		"description": "no name",
	})
	if status != 400 {
		t.Errorf("Expected status 400, got %d", status)
	}
	if errorMessage(t, result) != "name is required." {
		t.Errorf("Unexpected validation message: %q", errorMessage(t, result))
	}
}

func TestPersonOwnershipHidesAcrossUsers(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	_, result := doJSON(t, app, "POST", "/api/rolodex/people", "user-1", map[string]interface{}{
		"name": "Ada",
	})
	personID := result["data"].(map[string]interface{})["id"].(string)

	status, result := doJSON(t, app, "GET", "/api/rolodex/people/"+personID, "user-2", nil)
	if status != 404 {
		t.Errorf("Expected status 404 for foreign person, got %d", status)
	}
	if errorMessage(t, result) != "Person not found." {
		t.Errorf("Unexpected error message: %q", errorMessage(t, result))
	}
}

func TestDeletePersonReturnsNullData(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	_, result := doJSON(t, app, "POST", "/api/rolodex/people", "user-1", map[string]interface{}{
		"name": "Ada",
	})
	personID := result["data"].(map[string]interface{})["id"].(string)

	status, result := doJSON(t, app, "DELETE", "/api/rolodex/people/"+personID, "user-1", nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}
	if result["success"] != true {
		t.Error("Expected success=true in response")
	}
	if result["data"] != nil {
		t.Errorf("Expected null data on delete, got %v", result["data"])
	}

	status, _ = doJSON(t, app, "GET", "/api/rolodex/people/"+personID, "user-1", nil)
	if status != 404 {
		t.Errorf("Expected status 404 after delete, got %d", status)
	}
}

func TestTagConflict(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	status, _ := doJSON(t, app, "POST", "/api/rolodex/tags", "user-1", map[string]interface{}{
		"name": "mentor",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d", status)
	}

	status, result := doJSON(t, app, "POST", "/api/rolodex/tags", "user-1", map[string]interface{}{
		"name": "mentor",
	})
	if status != 409 {
		t.Errorf("Expected status 409, got %d", status)
	}
	if errorMessage(t, result) != "Tag name already exists." {
		t.Errorf("Unexpected error message: %q", errorMessage(t, result))
	}

	// Same name under a different user is fine.
	status, _ = doJSON(t, app, "POST", "/api/rolodex/tags", "user-2", map[string]interface{}{
		"name": "mentor",
	})
	if status != 201 {
		t.Errorf("Expected status 201 for other user, got %d", status)
	}
}

func TestAskLifecycle(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	_, result := doJSON(t, app, "POST", "/api/rolodex/people", "user-1", map[string]interface{}{
		"name": "Ada",
	})
	personID := result["data"].(map[string]interface{})["id"].(string)

	status, result := doJSON(t, app, "POST", "/api/rolodex/asks", "user-1", map[string]interface{}{
		"personId":    personID,
		"description": "intro to her publisher",
	})
	if status != 201 {
		t.Fatalf("Expected status 201, got %d: %v", status, result)
	}
	askID := result["data"].(map[string]interface{})["id"].(string)

	status, result = doJSON(t, app, "PUT", "/api/rolodex/asks/"+askID, "user-1", map[string]interface{}{
		"completed": true,
	})
	if status != 200 {
		t.Fatalf("Expected status 200, got %d: %v", status, result)
	}
	if result["data"].(map[string]interface{})["completed"] != true {
		t.Error("Expected ask to be completed")
	}

	status, _ = doJSON(t, app, "DELETE", "/api/rolodex/asks/"+askID, "user-1", nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d", status)
	}

	_, result = doJSON(t, app, "GET", "/api/rolodex/asks", "user-1", nil)
	if tasks := result["data"].([]interface{}); len(tasks) != 0 {
		t.Errorf("Expected no asks after delete, got %d", len(tasks))
	}
}

func TestAskParentNullClears(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	_, result := doJSON(t, app, "POST", "/api/rolodex/people", "user-1", map[string]interface{}{
		"name": "Ada",
	})
	personID := result["data"].(map[string]interface{})["id"].(string)

	_, result = doJSON(t, app, "POST", "/api/rolodex/asks", "user-1", map[string]interface{}{
		"personId":    personID,
		"description": "parent",
	})
	parentID := result["data"].(map[string]interface{})["id"].(string)

	_, result = doJSON(t, app, "POST", "/api/rolodex/asks", "user-1", map[string]interface{}{
		"personId":    personID,
		"description": "child",
		"parentId":    parentID,
	})
	childID := result["data"].(map[string]interface{})["id"].(string)
	if result["data"].(map[string]interface{})["parentId"] != parentID {
		t.Fatal("Expected child to carry parentId")
	}

	// A body without parentId leaves the link alone.
	_, result = doJSON(t, app, "PUT", "/api/rolodex/asks/"+childID, "user-1", map[string]interface{}{
		"description": "renamed child",
	})
	if result["data"].(map[string]interface{})["parentId"] != parentID {
		t.Error("Expected parentId to survive an unrelated update")
	}

	// An explicit null detaches.
	_, result = doJSON(t, app, "PUT", "/api/rolodex/asks/"+childID, "user-1", map[string]interface{}{
		"parentId": nil,
	})
	if result["data"].(map[string]interface{})["parentId"] != nil {
		t.Errorf("Expected parentId cleared, got %v", result["data"].(map[string]interface{})["parentId"])
	}
}

func TestUserSyncRejectsMismatchedID(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	status, result := doJSON(t, app, "POST", "/api/users/sync", "user-1", map[string]interface{}{
		"id":    "user-2",
		"email": "ada@example.com",
	})
	if status != 400 {
		t.Errorf("Expected status 400, got %d", status)
	}
	if errorMessage(t, result) != "id does not match the authenticated user." {
		t.Errorf("Unexpected error message: %q", errorMessage(t, result))
	}

	status, _ = doJSON(t, app, "POST", "/api/users/sync", "user-1", map[string]interface{}{
		"id":    "user-1",
		"email": "ada@example.com",
	})
	if status != 200 {
		t.Errorf("Expected status 200, got %d", status)
	}
}

func TestIntegrationConnectWithoutBody(t *testing.T) {
	app := newTestApp(setupTestDB(t))

	status, result := doJSON(t, app, "POST", "/api/integrations/gmail/connect", "user-1", nil)
	if status != 200 {
		t.Fatalf("Expected status 200, got %d: %v", status, result)
	}
	if result["data"].(map[string]interface{})["connected"] != true {
		t.Error("Expected integration to be connected")
	}

	status, _ = doJSON(t, app, "POST", "/api/integrations/carrier_pigeon/connect", "user-1", nil)
	if status != 404 {
		t.Errorf("Expected status 404 for unknown type, got %d", status)
	}
}
