package payments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/almusafir/travel_booking/models"
)

const (
	StatusDue  = "due"
	StatusPaid = "paid"

	ProviderGateway = "gateway"
	ProviderManual  = "manual"

	orderCurrency = "INR"
	merchantName  = "Al-Musafir Travels"
)

// Service implements the installment engine: plan creation, settlement,
// gateway order creation, and callback verification. All state lives in the
// store; the service itself is safe for concurrent use.
type Service struct {
	store   InstallmentStore
	gateway GatewayClient
	cfg     Config
	clock   Clock
}

func NewService(store InstallmentStore, gateway GatewayClient, cfg Config, clock Clock) *Service {
	return &Service{store: store, gateway: gateway, cfg: cfg, clock: clock}
}

// OrderDetails is what the checkout frontend needs to open the gateway's
// payment widget for one installment.
type OrderDetails struct {
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"key_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreatePlan splits totalAmount into three installments due before the
// travel date and persists them as one batch. Calling it again for the same
// (tenant, booking) returns the existing plan unchanged.
func (s *Service) CreatePlan(ctx context.Context, tenantID, bookingID string, totalAmount int64, travelDate string) ([]models.Installment, error) {
	bookingID = strings.TrimSpace(bookingID)
	travel, dateErr := parseDate(travelDate)
	if bookingID == "" || totalAmount <= 0 || dateErr != nil {
		return nil, errValidation("bookingId, totalAmount and travelDate are required")
	}

	today := s.clock.Today()
	if !travel.After(today) {
		return nil, errValidation("Travel date must be in the future")
	}

	exists, err := s.store.Exists(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return s.store.FindByBooking(ctx, tenantID, bookingID)
	}

	dueDates := ResolveDueDates(today, travel, s.cfg.OffsetsDays)
	if !ladderValid(today, travel, dueDates) {
		return nil, errValidation("Travel date is too soon for an installment plan")
	}

	amounts := SplitAmount(totalAmount, s.cfg.Parts)
	now := s.clock.Now()
	installments := make([]*models.Installment, 0, s.cfg.Parts)
	for i := 0; i < s.cfg.Parts; i++ {
		travelCopy := travel
		installments = append(installments, &models.Installment{
			TenantID:          tenantID,
			BookingID:         bookingID,
			InstallmentNumber: i + 1,
			TotalInstallments: s.cfg.Parts,
			Amount:            amounts[i],
			Status:            StatusDue,
			DueDate:           dueDates[i],
			TravelDate:        &travelCopy,
			PaymentProvider:   ProviderGateway,
			CreatedAt:         now,
		})
	}

	if err := s.store.CreateBatch(ctx, installments); err != nil {
		if errors.Is(err, ErrPlanExists) {
			// Lost the insert race; the winner's plan is the plan.
			return s.store.FindByBooking(ctx, tenantID, bookingID)
		}
		return nil, err
	}

	created := make([]models.Installment, 0, len(installments))
	for _, installment := range installments {
		created = append(created, *installment)
	}
	return created, nil
}

// GetPlan returns a booking's installments ordered by installment number.
func (s *Service) GetPlan(ctx context.Context, tenantID, bookingID string) ([]models.Installment, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" {
		return nil, errValidation("bookingId is required")
	}
	return s.store.FindByBooking(ctx, tenantID, bookingID)
}

// PayInstallment marks one installment paid after a direct confirmation.
// Paying an already-paid installment is a no-op success.
func (s *Service) PayInstallment(ctx context.Context, tenantID, bookingID string, installmentNumber int) (*models.Installment, error) {
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" || installmentNumber < 1 {
		return nil, errValidation("bookingId and installmentNumber are required")
	}

	installment, err := s.store.FindOne(ctx, tenantID, bookingID, installmentNumber)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, errNotFound("Installment not found")
	}
	if err := s.checkDeadline(installment); err != nil {
		return nil, err
	}
	if installment.Status == StatusPaid {
		return installment, nil
	}

	updated, err := s.store.Update(ctx, tenantID, bookingID, installmentNumber, func(row *models.Installment) error {
		if row.Status == StatusPaid {
			return nil
		}
		now := s.clock.Now()
		row.Status = StatusPaid
		row.PaidAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errNotFound("Installment not found")
	}
	return updated, nil
}

// CreateOrder asks the payment gateway for a remote order covering one due
// installment and records the returned order id. The installment's status
// does not change until the payment is verified.
func (s *Service) CreateOrder(ctx context.Context, tenantID, bookingID string, installmentNumber int, paymentMethod string) (*OrderDetails, error) {
	if !s.cfg.gatewayConfigured() {
		return nil, errConfiguration("Payment gateway is not configured on server")
	}
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" || installmentNumber < 1 {
		return nil, errValidation("bookingId and installmentNumber are required")
	}

	installment, err := s.store.FindOne(ctx, tenantID, bookingID, installmentNumber)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, errNotFound("Installment not found")
	}
	if installment.Status == StatusPaid {
		return nil, errConflict("Installment is already paid")
	}
	if err := s.checkDeadline(installment); err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, OrderRequest{
		// The gateway counts in sub-units of the minor currency unit.
		Amount:   installment.Amount * 100,
		Currency: orderCurrency,
		Receipt:  fmt.Sprintf("booking-%s-inst-%d", bookingID, installmentNumber),
		Capture:  1,
		Notes: map[string]string{
			"bookingId":         bookingID,
			"installmentNumber": fmt.Sprintf("%d", installmentNumber),
			"tenantId":          tenantID,
			"paymentMethod":     paymentMethod,
		},
	})
	if err != nil {
		log.Printf("🔥 Gateway order creation failed for booking %s installment %d: %v", bookingID, installmentNumber, err)
		return nil, errUpstream("Unable to create payment order")
	}

	if _, err := s.store.Update(ctx, tenantID, bookingID, installmentNumber, func(row *models.Installment) error {
		row.ExternalOrderID = &order.ID
		row.PaymentProvider = ProviderGateway
		if method := normalizeMethod(paymentMethod); method != "" {
			row.PaymentMethod = method
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return &OrderDetails{
		OrderID:     order.ID,
		Amount:      installment.Amount * 100,
		Currency:    orderCurrency,
		KeyID:       s.cfg.GatewayKeyID,
		Name:        merchantName,
		Description: fmt.Sprintf("Installment %d for booking %s", installmentNumber, bookingID),
	}, nil
}

// VerifyAndSettle authenticates a gateway payment confirmation and, only on
// a matching signature, marks the installment paid with the gateway's
// identifiers attached.
func (s *Service) VerifyAndSettle(ctx context.Context, tenantID, bookingID string, installmentNumber int, externalOrderID, externalPaymentID, signature, paymentMethod string) (*models.Installment, error) {
	if !s.cfg.secretConfigured() {
		return nil, errConfiguration("Payment gateway is not configured on server")
	}
	bookingID = strings.TrimSpace(bookingID)
	if bookingID == "" || installmentNumber < 1 {
		return nil, errValidation("bookingId and installmentNumber are required")
	}
	if externalOrderID == "" || externalPaymentID == "" || signature == "" {
		return nil, errValidation("Missing payment verification parameters")
	}

	installment, err := s.store.FindOne(ctx, tenantID, bookingID, installmentNumber)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, errNotFound("Installment not found")
	}
	if err := s.checkDeadline(installment); err != nil {
		return nil, err
	}

	if !VerifySignature(s.cfg.GatewayKeySecret, externalOrderID, externalPaymentID, signature) {
		return nil, errAuthentication("Invalid payment signature")
	}

	updated, err := s.store.Update(ctx, tenantID, bookingID, installmentNumber, func(row *models.Installment) error {
		now := s.clock.Now()
		row.Status = StatusPaid
		row.PaidAt = &now
		row.ExternalOrderID = &externalOrderID
		row.ExternalPaymentID = &externalPaymentID
		row.PaymentProvider = ProviderGateway
		if method := normalizeMethod(paymentMethod); method != "" {
			row.PaymentMethod = method
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errNotFound("Installment not found")
	}
	return updated, nil
}

// Charge records a one-shot full payment: a single already-paid installment
// standing in for a plan. Bookings that skip the installment flow use this.
func (s *Service) Charge(ctx context.Context, tenantID, bookingID string, amount int64) (*models.Installment, error) {
	now := s.clock.Now()
	installment := &models.Installment{
		TenantID:          tenantID,
		BookingID:         strings.TrimSpace(bookingID),
		InstallmentNumber: 1,
		TotalInstallments: 1,
		Amount:            amount,
		Status:            StatusPaid,
		DueDate:           s.clock.Today(),
		PaidAt:            &now,
		PaymentProvider:   ProviderManual,
		PaymentMethod:     ProviderManual,
		CreatedAt:         now,
	}
	if err := s.store.Create(ctx, installment); err != nil {
		return nil, err
	}
	return installment, nil
}

func (s *Service) checkDeadline(installment *models.Installment) error {
	if installment.TravelDate == nil {
		return nil
	}
	if !s.clock.Today().Before(day(*installment.TravelDate)) {
		return errDeadline("Installments must be paid before travel date")
	}
	return nil
}

func normalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
