package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/middleware"
	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/utils"
	"gorm.io/gorm"
)

// TagsHandler handles rolodex tag routes
type TagsHandler struct {
	DB *gorm.DB
}

// List handles GET /api/rolodex/tags
// @Summary List tags
// @Description List the user's tags, name ascending
// @Tags Tags
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/tags [get]
func (h *TagsHandler) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	tags, err := services.ListTags(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, tags, fiber.StatusOK)
}

// Create handles POST /api/rolodex/tags
// @Summary Create a tag
// @Description Create a tag; the name must be unique within the user's tags
// @Tags Tags
// @Accept json
// @Produce json
// @Param body body services.CreateTagInput true "Tag to create"
// @Success 201 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/tags [post]
func (h *TagsHandler) Create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.CreateTagInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	tag, err := services.CreateTag(h.DB, userID, input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, tag, fiber.StatusCreated)
}

// Update handles PUT /api/rolodex/tags/:id
// @Summary Update a tag
// @Description Rename or recolor a tag; renames are re-checked for uniqueness
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param body body services.UpdateTagInput true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/tags/{id} [put]
func (h *TagsHandler) Update(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.UpdateTagInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	tag, err := services.UpdateTag(h.DB, userID, c.Params("id"), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, tag, fiber.StatusOK)
}

// Delete handles DELETE /api/rolodex/tags/:id
// @Summary Delete a tag
// @Description Hard-delete a tag; its person associations cascade away
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /rolodex/tags/{id} [delete]
func (h *TagsHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	if _, err := services.DeleteTag(h.DB, userID, c.Params("id")); err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, nil, fiber.StatusOK)
}
