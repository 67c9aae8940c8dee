package routes

import (
	"github.com/almusafir/travel_booking/handlers"
	"github.com/almusafir/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.TenantContext())

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Get("/:bookingId", handlers.GetBooking)
}
