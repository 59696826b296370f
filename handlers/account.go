package handlers

import (
	"charity-slots/middleware"
	"charity-slots/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAccountRoutes wires the player profile, the winners ticker and
// the (stubbed) credit purchase flow.
func SetupAccountRoutes(app *fiber.App, accountService *services.AccountService, purchaseService *services.PurchaseService) {
	// 🔓 Public — the winners ticker shows on the landing page too
	app.Get("/winners", accountService.GetRecentWinners)

	// 🔐 Secured
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Get("/me", accountService.GetMe)
	secured.Post("/credits/purchase", purchaseService.PurchaseCredits)
}
