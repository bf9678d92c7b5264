package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/config"
	"github.com/iankorovinsky/lifeos/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the service health route
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Get handles GET /api/health
// @Summary Health check
// @Description Report service and database health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)

	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
