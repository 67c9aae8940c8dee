package routes

import (
	"github.com/almusafir/travel_booking/handlers"
	"github.com/almusafir/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.TenantContext())

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("/charge", handlers.Charge)
	payments.Post("/installments/plan", handlers.CreateInstallmentPlan)
	payments.Get("/installments/:bookingId", handlers.GetInstallments)
	payments.Post("/installments/pay", handlers.PayInstallment)
	payments.Post("/gateway/order", handlers.CreateGatewayOrder)
	payments.Post("/gateway/verify", handlers.VerifyGatewayPayment)
}
