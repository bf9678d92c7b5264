package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/iankorovinsky/lifeos/internal/types"
	"github.com/iankorovinsky/lifeos/internal/utils"
)

// UserIDHeader carries the verified identity of the requester. The upstream
// gateway authenticates the session and sets this header; the service never
// authenticates, it only trusts what it is handed.
const UserIDHeader = "X-User-Id"

// userIDKey is the context local under which the identity is stored.
const userIDKey = "userID"

// RequireUser rejects requests that arrive without a verified identity and
// stores the user id in the request context for the handlers.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get(UserIDHeader)
		if userID == "" {
			return utils.ErrorResponse(c, types.NewUnauthorizedError("Missing user id"))
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the identity stored by RequireUser, or "" if the request
// did not pass through it.
func UserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(userIDKey).(string)
	return userID
}
