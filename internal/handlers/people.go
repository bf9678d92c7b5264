package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/middleware"
	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/utils"
	"gorm.io/gorm"
)

// PeopleHandler handles rolodex people routes
type PeopleHandler struct {
	DB *gorm.DB
}

// List handles GET /api/rolodex/people
// @Summary List people
// @Description List the user's contacts, filtered and ordered for the rolodex view
// @Tags People
// @Accept json
// @Produce json
// @Param search query string false "Case-insensitive match over name, description, and role title/company"
// @Param tagIds query string false "Comma-separated tag ids; people with any of them match"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people [get]
func (h *PeopleHandler) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	filters := services.PeopleFilters{
		Search: c.Query("search"),
		TagIDs: parseIDList(c.Query("tagIds")),
		Limit:  parseQueryInt(c.Query("limit")),
		Offset: parseQueryInt(c.Query("offset")),
	}

	people, err := services.ListPeople(h.DB, userID, filters)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, people, fiber.StatusOK)
}

// Get handles GET /api/rolodex/people/:id
// @Summary Get a person
// @Description Get a single contact with roles, tags, notes, asks, and favours
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people/{id} [get]
func (h *PeopleHandler) Get(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	person, err := services.GetPerson(h.DB, userID, c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, person, fiber.StatusOK)
}

// Create handles POST /api/rolodex/people
// @Summary Create a person
// @Description Create a contact, optionally associating existing tags atomically
// @Tags People
// @Accept json
// @Produce json
// @Param body body services.CreatePersonInput true "Person to create"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people [post]
func (h *PeopleHandler) Create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.CreatePersonInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	person, err := services.CreatePerson(h.DB, userID, input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, person, fiber.StatusCreated)
}

// Update handles PUT /api/rolodex/people/:id
// @Summary Update a person
// @Description Apply partial updates; a provided tagIds list replaces the tag set
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param body body services.UpdatePersonInput true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people/{id} [put]
func (h *PeopleHandler) Update(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.UpdatePersonInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	person, err := services.UpdatePerson(h.DB, userID, c.Params("id"), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, person, fiber.StatusOK)
}

// Delete handles DELETE /api/rolodex/people/:id
// @Summary Delete a person
// @Description Soft-delete a contact; it disappears from every read
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people/{id} [delete]
func (h *PeopleHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if _, err := services.SoftDeletePerson(h.DB, userID, c.Params("id")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, fiber.StatusOK)
}

// createRoleInput is the body for the role creation path.
type createRoleInput struct {
	Title   string  `json:"title" validate:"required"`
	Company *string `json:"company"`
}

// CreateRole handles POST /api/rolodex/people/:id/roles
// @Summary Add a role
// @Description Append a role to a contact
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param body body createRoleInput true "Role to add"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people/{id}/roles [post]
func (h *PeopleHandler) CreateRole(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input createRoleInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	role, err := services.CreateRole(h.DB, userID, c.Params("id"), input.Title, input.Company)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, role, fiber.StatusCreated)
}

// createNoteInput is the body for the note append path.
type createNoteInput struct {
	Content string `json:"content" validate:"required"`
}

// CreateNote handles POST /api/rolodex/people/:id/notes
// @Summary Add a note
// @Description Append a note to a contact; notes are never edited or removed
// @Tags People
// @Accept json
// @Produce json
// @Param id path string true "Person ID"
// @Param body body createNoteInput true "Note to add"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/people/{id}/notes [post]
func (h *PeopleHandler) CreateNote(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input createNoteInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	note, err := services.CreateNote(h.DB, userID, c.Params("id"), input.Content)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, note, fiber.StatusCreated)
}
