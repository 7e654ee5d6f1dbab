package models

import "time"

// Marketing service shown on the public site (consultations, grooming,
// surgery, ...). Not purchasable; managed from the admin console.
type Service struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:255" json:"description"`
	Image       string `gorm:"size:255" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
