package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/almusafir/travel_booking/database"
	"github.com/almusafir/travel_booking/models"
	"github.com/almusafir/travel_booking/payments"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdatePaymentRequest struct {
	Amount  *int64  `json:"amount,omitempty"`
	Status  *string `json:"status,omitempty"`
	DueDate *string `json:"due_date,omitempty"`
	PaidAt  *string `json:"paid_at,omitempty"`
}

type DeleteRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func ListPayments(c *fiber.Ctx) error {
	var installments []models.Installment
	err := database.DB.
		Where("tenant_id = ?", tenantID(c)).
		Order("created_at DESC").
		Find(&installments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(installments)
}

// UpdatePayment lets an admin correct a single installment field by field.
// Each supplied field is validated on its own; omitted fields are untouched.
func UpdatePayment(c *fiber.Ctx) error {
	installmentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var req UpdatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	var installment models.Installment
	err = database.DB.Where("id = ? AND tenant_id = ?", installmentID, tenantID(c)).First(&installment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	if req.Amount != nil && *req.Amount >= 0 {
		installment.Amount = *req.Amount
	}
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		status := strings.ToLower(strings.TrimSpace(*req.Status))
		if status != payments.StatusDue && status != payments.StatusPaid {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status, expected due or paid"})
		}
		installment.Status = status
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse("2006-01-02", strings.TrimSpace(*req.DueDate))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid dueDate format, expected YYYY-MM-DD"})
		}
		installment.DueDate = dueDate
	}
	if req.PaidAt != nil {
		if strings.TrimSpace(*req.PaidAt) == "" {
			installment.PaidAt = nil
		} else {
			paidAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*req.PaidAt))
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid paidAt format, expected ISO-8601"})
			}
			installment.PaidAt = &paidAt
		}
	}

	if err := database.DB.Save(&installment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payment"})
	}
	return c.JSON(installment)
}

// DeletePayment removes an installment after writing an audit row recording
// what was deleted, by whom, and why. A reason is mandatory.
func DeletePayment(c *fiber.Ctx) error {
	installmentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID format"})
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Delete reason is required"})
	}

	tenant := tenantID(c)
	var installment models.Installment
	err = database.DB.Where("id = ? AND tenant_id = ?", installmentID, tenant).First(&installment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		dueDate := installment.DueDate
		audit := models.PaymentDeletionAudit{
			InstallmentID:     installment.ID,
			BookingID:         installment.BookingID,
			Amount:            installment.Amount,
			Status:            installment.Status,
			InstallmentNumber: installment.InstallmentNumber,
			TotalInstallments: installment.TotalInstallments,
			DueDate:           &dueDate,
			PaidAt:            installment.PaidAt,
			Reason:            reason,
			DeletedBy:         currentUser(c),
			TenantID:          tenant,
			DeletedAt:         time.Now(),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		return tx.Delete(&installment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete payment"})
	}

	return c.JSON(fiber.Map{"message": "Payment deleted", "reason": reason})
}

func ListBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	err := database.DB.Preload("Package").
		Where("tenant_id = ?", tenantID(c)).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(bookings)
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=reserved confirmed cancelled completed"`
}

func UpdateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	err = database.DB.Where("id = ? AND tenant_id = ?", bookingID, tenantID(c)).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	booking.Status = req.Status
	if err := database.DB.Save(&booking).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update booking"})
	}
	return c.JSON(booking)
}

func DeleteBooking(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID format"})
	}

	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Delete reason is required"})
	}

	tenant := tenantID(c)
	var booking models.Booking
	err = database.DB.Where("id = ? AND tenant_id = ?", bookingID, tenant).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		travelDate := booking.TravelDate
		audit := models.BookingDeletionAudit{
			BookingID:    booking.ID,
			PackageID:    booking.PackageID,
			TravelerName: booking.TravelerName,
			TravelDate:   &travelDate,
			Status:       booking.Status,
			Reason:       reason,
			DeletedBy:    currentUser(c),
			TenantID:     tenant,
			DeletedAt:    time.Now(),
		}
		if err := tx.Create(&audit).Error; err != nil {
			return err
		}
		return tx.Delete(&booking).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete booking"})
	}

	return c.JSON(fiber.Map{"message": "Booking deleted", "reason": reason})
}
