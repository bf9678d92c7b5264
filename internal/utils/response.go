package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/types"
)

// SuccessResponse sends the standard success envelope
func SuccessResponse(c *fiber.Ctx, data interface{}, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse sends the standard error envelope. The HTTP status mirrors
// the error's declared status; anything untyped is a 500.
func ErrorResponse(c *fiber.Ctx, err error) error {
	appErr := types.AsAppError(err)
	return c.Status(appErr.Status).JSON(fiber.Map{
		"success": false,
		"error":   appErr,
	})
}

// SuccessResponseStruct defines the schema for success responses
type SuccessResponseStruct struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Success bool           `json:"success"`
	Error   types.AppError `json:"error"`
}
