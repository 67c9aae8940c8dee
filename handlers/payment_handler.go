package handlers

import (
	"github.com/almusafir/travel_booking/payments"
	"github.com/gofiber/fiber/v2"
)

var paymentService *payments.Service

// InitPaymentHandlers wires the installment engine into this package's
// handlers. Called once from main after the database is up.
func InitPaymentHandlers(svc *payments.Service) {
	paymentService = svc
}

type ChargeRequest struct {
	BookingID string `json:"booking_id"`
	Amount    int64  `json:"amount"`
}

type InstallmentPlanRequest struct {
	BookingID   string `json:"booking_id" validate:"required"`
	TotalAmount int64  `json:"total_amount" validate:"required,gt=0"`
	TravelDate  string `json:"travel_date" validate:"required"`
}

type InstallmentPayRequest struct {
	BookingID         string `json:"booking_id" validate:"required"`
	InstallmentNumber int    `json:"installment_number" validate:"required,min=1"`
}

type GatewayOrderRequest struct {
	BookingID         string `json:"booking_id" validate:"required"`
	InstallmentNumber int    `json:"installment_number" validate:"required,min=1"`
	PaymentMethod     string `json:"payment_method,omitempty"`
}

type GatewayVerifyRequest struct {
	BookingID         string `json:"booking_id" validate:"required"`
	InstallmentNumber int    `json:"installment_number" validate:"required,min=1"`
	ExternalOrderID   string `json:"external_order_id" validate:"required"`
	ExternalPaymentID string `json:"external_payment_id" validate:"required"`
	Signature         string `json:"signature" validate:"required"`
	PaymentMethod     string `json:"payment_method,omitempty"`
}

// Charge records a one-shot full payment outside the installment flow.
func Charge(c *fiber.Ctx) error {
	var req ChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	installment, err := paymentService.Charge(c.Context(), tenantID(c), req.BookingID, req.Amount)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(installment)
}

func CreateInstallmentPlan(c *fiber.Ctx) error {
	var req InstallmentPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bookingId, totalAmount and travelDate are required"})
	}

	plan, err := paymentService.CreatePlan(c.Context(), tenantID(c), req.BookingID, req.TotalAmount, req.TravelDate)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(plan)
}

func GetInstallments(c *fiber.Ctx) error {
	plan, err := paymentService.GetPlan(c.Context(), tenantID(c), c.Params("bookingId"))
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(plan)
}

func PayInstallment(c *fiber.Ctx) error {
	var req InstallmentPayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bookingId and installmentNumber are required"})
	}

	installment, err := paymentService.PayInstallment(c.Context(), tenantID(c), req.BookingID, req.InstallmentNumber)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(installment)
}

func CreateGatewayOrder(c *fiber.Ctx) error {
	var req GatewayOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bookingId and installmentNumber are required"})
	}

	order, err := paymentService.CreateOrder(c.Context(), tenantID(c), req.BookingID, req.InstallmentNumber, req.PaymentMethod)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(order)
}

func VerifyGatewayPayment(c *fiber.Ctx) error {
	var req GatewayVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing payment verification parameters"})
	}

	installment, err := paymentService.VerifyAndSettle(
		c.Context(), tenantID(c), req.BookingID, req.InstallmentNumber,
		req.ExternalOrderID, req.ExternalPaymentID, req.Signature, req.PaymentMethod,
	)
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(installment)
}
