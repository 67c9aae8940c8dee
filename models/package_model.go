package models

import (
	"time"

	"github.com/google/uuid"
)

type TravelPackage struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Description   string    `gorm:"type:text" json:"description"`
	Price         int64     `gorm:"not null" json:"price"`
	DurationDays  int       `gorm:"not null" json:"duration_days"`
	DepartureCity string    `gorm:"size:255" json:"departure_city"`
	ImageURL      *string   `gorm:"size:512" json:"image_url,omitempty"`
	Active        bool      `gorm:"not null;default:true" json:"active"`
	TenantID      string    `gorm:"size:40;not null;index" json:"tenant_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
