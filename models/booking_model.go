package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	PackageID    uuid.UUID `gorm:"type:uuid;not null" json:"package_id"`
	TravelerName string    `gorm:"size:255;not null" json:"traveler_name"`
	TravelDate   time.Time `gorm:"type:date;not null" json:"travel_date"`
	Status       string    `gorm:"size:20;not null;default:'reserved'" json:"status"`
	UserEmail    string    `gorm:"size:255;not null" json:"user_email"`
	TenantID     string    `gorm:"size:40;not null;index" json:"tenant_id"`

	Package TravelPackage `gorm:"foreignkey:PackageID" json:"package,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BookingDeletionAudit struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID    uuid.UUID  `gorm:"type:uuid;not null" json:"booking_id"`
	PackageID    uuid.UUID  `gorm:"type:uuid" json:"package_id"`
	TravelerName string     `gorm:"size:255" json:"traveler_name"`
	TravelDate   *time.Time `gorm:"type:date" json:"travel_date,omitempty"`
	Status       string     `gorm:"size:20" json:"status"`
	Reason       string     `gorm:"type:text;not null" json:"reason"`
	DeletedBy    string     `gorm:"size:255;not null" json:"deleted_by"`
	TenantID     string     `gorm:"size:40;not null" json:"tenant_id"`
	DeletedAt    time.Time  `gorm:"not null" json:"deleted_at"`
}
