package handlers

import (
	"charity-slots/middleware"
	"charity-slots/services"

	"github.com/gofiber/fiber/v2"
)

// SetupCharityRoutes wires the charity catalog and the player's
// selection flow.
func SetupCharityRoutes(app *fiber.App, charityService *services.CharityService) {
	// 🔓 Public catalog
	app.Get("/charities", charityService.ListCharities)
	app.Get("/charities/:slug", charityService.GetCharityBySlug)

	// 🔐 Secured
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/me/charity", charityService.SelectCharity)

	// Admin catalog management (role checked inside the handlers)
	secured.Post("/charities", charityService.CreateCharity)
	secured.Patch("/charities/:id", charityService.UpdateCharity)
	secured.Put("/charities/:id/logo", charityService.UpdateCharityLogo)
}
