package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentDeletionAudit snapshots an installment at the moment an admin deletes
// it, together with who did it and why. Installments are never deleted by the
// payment flow itself.
type PaymentDeletionAudit struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	InstallmentID     uuid.UUID  `gorm:"type:uuid;not null" json:"installment_id"`
	BookingID         string     `gorm:"size:64" json:"booking_id"`
	Amount            int64      `json:"amount"`
	Status            string     `gorm:"size:20" json:"status"`
	InstallmentNumber int        `json:"installment_number"`
	TotalInstallments int        `json:"total_installments"`
	DueDate           *time.Time `gorm:"type:date" json:"due_date,omitempty"`
	PaidAt            *time.Time `json:"paid_at,omitempty"`
	Reason            string     `gorm:"type:text;not null" json:"reason"`
	DeletedBy         string     `gorm:"size:255;not null" json:"deleted_by"`
	TenantID          string     `gorm:"size:40;not null" json:"tenant_id"`
	DeletedAt         time.Time  `gorm:"not null" json:"deleted_at"`
}
