package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:uniq_tenant_email" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	MobileNumber *string   `gorm:"size:20" json:"mobile_number,omitempty"`
	Role         string    `gorm:"size:20;not null;default:'customer'" json:"role"`
	TenantID     string    `gorm:"size:40;not null;uniqueIndex:uniq_tenant_email" json:"tenant_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
