package models

import "time"

// Staff roles. "admin" additionally unlocks staff management and
// tenant profile mutation.
const (
	RoleAdmin        = "admin"
	RoleDoctor       = "doctor"
	RoleReceptionist = "receptionist"
)

type StaffUser struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TenantID uint   `gorm:"uniqueIndex:idx_staff_tenant_email" json:"tenant_id"`
	Tenant   Tenant `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;not null;uniqueIndex:idx_staff_tenant_email" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'receptionist'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *StaffUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
