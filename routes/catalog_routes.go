package routes

import (
	"github.com/almusafir/travel_booking/handlers"
	"github.com/almusafir/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func CatalogRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.TenantContext())

	api.Get("/packages", handlers.ListPackages)
	api.Get("/packages/:packageId", handlers.GetPackage)
}
