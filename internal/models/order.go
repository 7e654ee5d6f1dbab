package models

import "time"

type Order struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `json:"tenant_id"`

	ClientID uint       `json:"client_id"`
	Client   ClientUser `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Number string `gorm:"size:40;uniqueIndex" json:"number"`

	PickupDate  time.Time `json:"pickup_date"`
	TotalAmount float64   `json:"total_amount"`

	Status string `gorm:"size:20;default:'pending_pickup'" json:"status"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	CancelledAt *time.Time `json:"cancelled_at"`
	PickedUpAt  *time.Time `json:"picked_up_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Line item with a product snapshot: name and price are copied at
// order time so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `json:"order_id"`

	ProductID uint    `json:"product_id"`
	Name      string  `gorm:"size:100;not null" json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
