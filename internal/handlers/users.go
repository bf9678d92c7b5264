package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/middleware"
	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/types"
	"github.com/iankorovinsky/lifeos/internal/utils"
	"gorm.io/gorm"
)

// UsersHandler handles auth-sync user routes
type UsersHandler struct {
	DB *gorm.DB
}

// Sync handles POST /api/users/sync
// @Summary Sync the authenticated user
// @Description Upsert the user record from the identity provider after sign-in
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.SyncUserInput true "Identity provider user"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /users/sync [post]
func (h *UsersHandler) Sync(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.SyncUserInput
	if err := parseAndValidate(c, &input); err != nil {
		return utils.ErrorResponse(c, err)
	}

	// The synced record must be the requester's own.
	if input.ID != userID {
		return utils.ErrorResponse(c, types.NewValidationError("id does not match the authenticated user."))
	}

	user, err := services.SyncUser(h.DB, input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}

// Me handles GET /api/users/me
// @Summary Get the authenticated user
// @Description Return the synced user record for the request identity
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /users/me [get]
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := services.GetUser(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, user, fiber.StatusOK)
}
