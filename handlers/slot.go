package handlers

import (
	"charity-slots/middleware"
	"charity-slots/services"

	"github.com/gofiber/fiber/v2"
)

// SetupSlotRoutes wires the spin endpoint and the shared pot surface.
func SetupSlotRoutes(app *fiber.App, spinService *services.SpinService, potService *services.PotService, authClient *services.AuthServiceClient) {
	// 🔓 Public — still behind Gateway auth, but no user context needed
	app.Get("/pot", potService.GetPot)

	// EventSource cannot send headers, so the stream authenticates via
	// query params against the auth service
	app.Get("/pot/stream", middleware.SSEAuthMiddleware(authClient), potService.StreamPotSSE)

	// 🔐 Secured — requires the Gateway-resolved user context
	secured := app.Group("/s", middleware.UserContextMiddleware())

	secured.Post("/spin", spinService.PlaySpin)
}
