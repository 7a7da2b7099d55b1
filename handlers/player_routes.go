// handlers/player_routes.go
package handlers

import (
	"errors"
	"time"

	"clicker-backend/middleware"
	"clicker-backend/models"
	"clicker-backend/services"

	"github.com/gofiber/fiber/v2"
)

// respondError translates service errors into the uniform {error, code}
// shape. Precondition failures are 409s so the client can tell "you can't
// do that yet" apart from bad requests and real failures.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case services.IsPreconditionError(err):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrPlayerNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrStoreUnavailable):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
		"code":  services.ReasonCode(err),
	})
}

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService, cache *services.LeaderboardCache) {
	// Public routes — no user context, but still behind gateway auth when
	// that is enabled.

	app.Post("/auth/session", func(c *fiber.Ctx) error {
		var req struct {
			ExternalID string `json:"external_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.ExternalID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "external_id is required"})
		}
		token, err := middleware.IssueSessionToken(req.ExternalID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to issue session token",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"token": token})
	})

	app.Get("/user/:id", func(c *fiber.Ctx) error {
		p, err := playerService.GetPlayer(c.Params("id"), time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	})

	app.Post("/user", func(c *fiber.Ctx) error {
		var req services.SyncRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.ExternalID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "external_id is required"})
		}
		p, err := playerService.SyncPlayer(req, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	})

	app.Get("/top", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		// Serve the worker's Redis snapshot when it is warm; only the full
		// default page is cached.
		if limit == 100 {
			if data, ok := cache.Get(c.Context()); ok {
				c.Set("Content-Type", "application/json")
				return c.Send(data)
			}
		}
		top, err := playerService.Top(limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(top)
	})

	app.Post("/referral", func(c *fiber.Ctx) error {
		var req struct {
			ReferrerID string `json:"referrer_id"`
			ReferredID string `json:"referred_id"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON", "cause": err.Error()})
		}
		if req.ReferrerID == "" || req.ReferredID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "referrer_id and referred_id are required"})
		}
		p, err := playerService.AddReferral(req.ReferrerID, req.ReferredID, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"referrer_id": p.ExternalID,
			"referrals":   len(p.Referrals),
		})
	})

	app.Get("/upgrades", func(c *fiber.Ctx) error {
		return c.JSON(models.UpgradeCatalog)
	})

	// Secured routes — require user context (gateway headers or session JWT).
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/user/click", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		p, err := playerService.Click(userID, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	})

	secured.Post("/user/upgrade", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			UpgradeID string `json:"upgrade_id"`
		}
		if err := c.BodyParser(&req); err != nil || req.UpgradeID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "upgrade_id is required"})
		}
		p, err := playerService.Purchase(userID, req.UpgradeID, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(p)
	})

	secured.Post("/user/daily", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		p, reward, err := playerService.ClaimDaily(userID, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"reward": reward,
			"streak": p.DailyStreak,
			"player": p,
		})
	})

	secured.Post("/user/referral/claim", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		p, reward, err := playerService.ClaimReferral(userID, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"reward": reward,
			"player": p,
		})
	})

	secured.Post("/user/ads", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		p, reward, err := playerService.WatchAd(userID, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"reward":      reward,
			"ads_watched": p.AdsWatched,
			"player":      p,
		})
	})

	secured.Post("/user/wallet", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		var req struct {
			Address string `json:"address"`
		}
		if err := c.BodyParser(&req); err != nil || req.Address == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "address is required"})
		}
		p, err := playerService.LinkWallet(userID, req.Address, time.Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"wallet_address": p.WalletAddress,
		})
	})
}
