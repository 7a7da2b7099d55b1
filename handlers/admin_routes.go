// handlers/admin_routes.go
package handlers

import (
	"path/filepath"

	"clicker-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// SetupAdminRoutes registers operator-only endpoints. They sit behind the
// gateway token like everything else; deployments without a gateway should
// not expose them.
func SetupAdminRoutes(app *fiber.App) {
	admin := app.Group("/admin")

	// Upload a skin or upgrade icon image to the asset store. The returned
	// URL goes into the upgrade catalog config.
	admin.Post("/skins", func(c *fiber.Ctx) error {
		if !utils.AssetStoreEnabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "asset store not configured",
			})
		}
		fileHeader, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
		}
		name := c.FormValue("name")
		if name == "" {
			name = uuid.NewString() + filepath.Ext(fileHeader.Filename)
		}
		url, err := utils.UploadSkinAsset(fileHeader, name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "upload failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
