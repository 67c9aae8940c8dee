package handlers

import (
	"errors"
	"time"

	"github.com/almusafir/travel_booking/database"
	"github.com/almusafir/travel_booking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateBookingRequest struct {
	PackageID    string `json:"package_id" validate:"required,uuid"`
	TravelerName string `json:"traveler_name" validate:"required"`
	TravelDate   string `json:"travel_date" validate:"required"`
}

func CreateBooking(c *fiber.Ctx) error {
	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	travelDate, err := time.Parse("2006-01-02", req.TravelDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid travelDate format, expected YYYY-MM-DD"})
	}

	packageID, _ := uuid.Parse(req.PackageID)
	tenant := tenantID(c)

	var pkg models.TravelPackage
	err = database.DB.Where("id = ? AND tenant_id = ? AND active = ?", packageID, tenant, true).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	booking := models.Booking{
		PackageID:    pkg.ID,
		TravelerName: req.TravelerName,
		TravelDate:   travelDate,
		Status:       "reserved",
		UserEmail:    currentUser(c),
		TenantID:     tenant,
	}
	if err := database.DB.Create(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func GetBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var booking models.Booking
	err = database.DB.Preload("Package").
		Where("id = ? AND tenant_id = ?", bookingID, tenantID(c)).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(booking)
}

func GetMyBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	err := database.DB.Preload("Package").
		Where("tenant_id = ? AND user_email = ?", tenantID(c), currentUser(c)).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(bookings)
}
