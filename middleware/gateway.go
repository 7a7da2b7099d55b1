// middleware/gateway.go
package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GatewayAuthMiddleware validates the shared service token when the
// service runs behind a gateway. With CLICKER_SERVICE_TOKEN unset the
// check is skipped entirely so the service can also run standalone.
func GatewayAuthMiddleware() fiber.Handler {
	expectedToken := os.Getenv("CLICKER_SERVICE_TOKEN")
	if expectedToken == "" {
		log.Println("CLICKER_SERVICE_TOKEN not set — gateway auth disabled")
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return func(c *fiber.Ctx) error {
		token := c.Get("X-Service-Token")
		if token == "" {
			// Fall back to "Bearer <token>" for gateways that only forward
			// an Authorization header.
			token = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
		}
		if token != expectedToken {
			log.Printf("[GATEWAY_AUTH] rejected request for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid gateway authentication token",
			})
		}
		return c.Next()
	}
}
