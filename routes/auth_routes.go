package routes

import (
	"github.com/almusafir/travel_booking/handlers"
	"github.com/almusafir/travel_booking/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.TenantContext())

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Post("/otp/request", handlers.RequestOtp)
	auth.Post("/otp/verify", handlers.VerifyOtp)
}
