package handlers

import (
	"errors"

	"github.com/almusafir/travel_booking/database"
	"github.com/almusafir/travel_booking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePackageRequest struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description,omitempty"`
	Price         int64   `json:"price" validate:"required,gt=0"`
	DurationDays  int     `json:"duration_days" validate:"required,gt=0"`
	DepartureCity string  `json:"departure_city,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
}

type UpdatePackageRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Price         *int64  `json:"price,omitempty"`
	DurationDays  *int    `json:"duration_days,omitempty"`
	DepartureCity *string `json:"departure_city,omitempty"`
	ImageURL      *string `json:"image_url,omitempty"`
	Active        *bool   `json:"active,omitempty"`
}

func ListPackages(c *fiber.Ctx) error {
	var packages []models.TravelPackage
	err := database.DB.
		Where("tenant_id = ? AND active = ?", tenantID(c), true).
		Order("created_at ASC").
		Find(&packages).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(packages)
}

func GetPackage(c *fiber.Ctx) error {
	packageID, err := uuid.Parse(c.Params("packageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID format"})
	}

	var pkg models.TravelPackage
	err = database.DB.Where("id = ? AND tenant_id = ?", packageID, tenantID(c)).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(pkg)
}

func CreatePackage(c *fiber.Ctx) error {
	var req CreatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pkg := models.TravelPackage{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		DurationDays:  req.DurationDays,
		DepartureCity: req.DepartureCity,
		ImageURL:      req.ImageURL,
		Active:        true,
		TenantID:      tenantID(c),
	}
	if err := database.DB.Create(&pkg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create package"})
	}
	return c.Status(fiber.StatusCreated).JSON(pkg)
}

func UpdatePackage(c *fiber.Ctx) error {
	packageID, err := uuid.Parse(c.Params("packageId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid package ID format"})
	}

	var req UpdatePackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var pkg models.TravelPackage
	err = database.DB.Where("id = ? AND tenant_id = ?", packageID, tenantID(c)).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Package not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = *req.Description
	}
	if req.Price != nil && *req.Price > 0 {
		pkg.Price = *req.Price
	}
	if req.DurationDays != nil && *req.DurationDays > 0 {
		pkg.DurationDays = *req.DurationDays
	}
	if req.DepartureCity != nil {
		pkg.DepartureCity = *req.DepartureCity
	}
	if req.ImageURL != nil {
		pkg.ImageURL = req.ImageURL
	}
	if req.Active != nil {
		pkg.Active = *req.Active
	}

	if err := database.DB.Save(&pkg).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update package"})
	}
	return c.JSON(pkg)
}
