package routes

import (
	"github.com/almusafir/travel_booking/handlers"
	"github.com/almusafir/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.TenantContext())

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/payments", handlers.ListPayments)
	admin.Put("/payments/:paymentId", handlers.UpdatePayment)
	admin.Delete("/payments/:paymentId", handlers.DeletePayment)

	admin.Get("/bookings", handlers.ListBookings)
	admin.Put("/bookings/:bookingId/status", handlers.UpdateBookingStatus)
	admin.Delete("/bookings/:bookingId", handlers.DeleteBooking)

	admin.Post("/packages", handlers.CreatePackage)
	admin.Put("/packages/:packageId", handlers.UpdatePackage)

	admin.Get("/uploads/signature", handlers.GenerateUploadSignature)
}
