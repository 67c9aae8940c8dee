package main

import (
	"log"
	"time"

	"github.com/almusafir/travel_booking/database"
	"github.com/almusafir/travel_booking/handlers"
	"github.com/almusafir/travel_booking/jobs"
	"github.com/almusafir/travel_booking/notifications"
	"github.com/almusafir/travel_booking/payments"
	"github.com/almusafir/travel_booking/routes"
	"github.com/almusafir/travel_booking/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	database.SeedPackages()
	notifications.InitEmailService()

	paymentCfg := payments.NewConfig()
	paymentService := payments.NewService(
		payments.NewGormStore(database.DB),
		payments.NewHTTPGatewayClient(paymentCfg.GatewayKeyID, paymentCfg.GatewayKeySecret),
		paymentCfg,
		payments.SystemClock{},
	)
	handlers.InitPaymentHandlers(paymentService)
	handlers.InitAuthHandlers(services.NewMemoryOtpStore(5 * time.Minute))

	c := cron.New()
	c.AddFunc("0 8 * * *", jobs.SendInstallmentReminders)
	go c.Start()
	log.Println("✅ Cron job for installment reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Al-Musafir Travels",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Tenant-ID, X-User",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to Al-Musafir Travels API",
		})
	})

	routes.AuthRoutes(app)
	routes.CatalogRoutes(app)
	routes.BookingRoutes(app)
	routes.PaymentRoutes(app)
	routes.AdminRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
