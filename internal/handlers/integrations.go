package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/middleware"
	"github.com/iankorovinsky/lifeos/internal/services"
	"github.com/iankorovinsky/lifeos/internal/utils"
	"gorm.io/gorm"
)

// IntegrationsHandler handles integration stub routes
type IntegrationsHandler struct {
	DB *gorm.DB
}

// List handles GET /api/integrations
// @Summary List integrations
// @Description List the integration catalog merged with the user's connection state
// @Tags Integrations
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /integrations [get]
func (h *IntegrationsHandler) List(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	integrations, err := services.ListIntegrations(h.DB, userID)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, integrations, fiber.StatusOK)
}

// Connect handles POST /api/integrations/:type/connect
// @Summary Connect an integration
// @Description Mark an integration connected for the user (stub; no provider handshake)
// @Tags Integrations
// @Accept json
// @Produce json
// @Param type path string true "Integration type"
// @Param body body services.ConnectIntegrationInput false "Connection details"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /integrations/{type}/connect [post]
func (h *IntegrationsHandler) Connect(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var input services.ConnectIntegrationInput
	if len(c.Body()) > 0 {
		if err := parseAndValidate(c, &input); err != nil {
			return utils.ErrorResponse(c, err)
		}
	}

	integration, err := services.ConnectIntegration(h.DB, userID, c.Params("type"), input)
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, integration, fiber.StatusOK)
}

// Disconnect handles POST /api/integrations/:type/disconnect
// @Summary Disconnect an integration
// @Description Clear the connected state for the user
// @Tags Integrations
// @Accept json
// @Produce json
// @Param type path string true "Integration type"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security UserHeader
// @Router /integrations/{type}/disconnect [post]
func (h *IntegrationsHandler) Disconnect(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	integration, err := services.DisconnectIntegration(h.DB, userID, c.Params("type"))
	if err != nil {
		return utils.ErrorResponse(c, err)
	}
	return utils.SuccessResponse(c, integration, fiber.StatusOK)
}
