package models

import "time"

type Tenant struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"tenantId"`
	Name string `gorm:"size:100;not null" json:"name"`

	LogoURL        string `gorm:"size:255" json:"logoUrl"`
	PrimaryColor   string `gorm:"size:20" json:"primaryColor"`
	SecondaryColor string `gorm:"size:20" json:"secondaryColor"`

	Phone    string `gorm:"size:20" json:"phone"`
	Email    string `gorm:"size:100" json:"email"`
	Address  string `gorm:"size:255" json:"address"`
	Schedule string `gorm:"size:255" json:"schedule"`

	Timezone string `gorm:"size:50" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
