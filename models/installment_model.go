package models

import (
	"time"

	"github.com/google/uuid"
)

// Installment is one scheduled partial payment for a booking. A booking's plan
// is the set of rows sharing (TenantID, BookingID); the composite unique index
// keeps concurrent plan creation from inserting a second set.
type Installment struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TenantID          string    `gorm:"size:40;not null;uniqueIndex:uniq_tenant_booking_installment" json:"tenant_id"`
	BookingID         string    `gorm:"size:64;not null;uniqueIndex:uniq_tenant_booking_installment" json:"booking_id"`
	InstallmentNumber int       `gorm:"not null;uniqueIndex:uniq_tenant_booking_installment" json:"installment_number"`
	TotalInstallments int       `gorm:"not null" json:"total_installments"`
	Amount            int64     `gorm:"not null" json:"amount"`
	Status            string    `gorm:"size:20;not null" json:"status"`
	DueDate           time.Time `gorm:"type:date;not null" json:"due_date"`

	// TravelDate is denormalized onto every installment so the deadline check
	// does not need the booking row.
	TravelDate *time.Time `gorm:"type:date" json:"travel_date,omitempty"`

	PaidAt            *time.Time `json:"paid_at,omitempty"`
	ExternalOrderID   *string    `gorm:"size:255" json:"external_order_id,omitempty"`
	ExternalPaymentID *string    `gorm:"size:255" json:"external_payment_id,omitempty"`
	PaymentProvider   string     `gorm:"size:50" json:"payment_provider"`
	PaymentMethod     string     `gorm:"size:50" json:"payment_method,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
