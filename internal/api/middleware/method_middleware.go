package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// MethodGuard answers CORS preflight with an empty 200 and rejects anything
// other than GET on the API routes.
func MethodGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type")

		switch c.Method() {
		case fiber.MethodOptions:
			c.Status(fiber.StatusOK)
			return nil
		case fiber.MethodGet:
			return c.Next()
		default:
			return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
				"error": "Method not allowed",
			})
		}
	}
}
