package models

import "time"

type Category struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
	IsActive  bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
