package models

import "time"

// Appointment request left through the public site; staff follow up
// by phone, there is no automatic scheduling.
type AppointmentRequest struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Email   string `gorm:"size:100" json:"email"`
	PetName string `gorm:"size:100" json:"pet_name"`
	Service string `gorm:"size:100" json:"service"`

	// Date is YYYY-MM-DD, Time is HH:mm, both as entered in the form.
	Date  string `gorm:"size:10" json:"date"`
	Time  string `gorm:"size:5" json:"time"`
	Notes string `gorm:"size:255" json:"notes"`

	Status string `gorm:"size:20;default:'new'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
}
