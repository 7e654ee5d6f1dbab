package dto

import (
	"time"

	"github.com/vetlinkpe/vetlink-api/internal/models"
)

type OrderItemDTO struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type OrderListDTO struct {
	ID          uint           `json:"id"`
	Number      string         `json:"number"`
	CreatedAt   time.Time      `json:"created_at"`
	PickupDate  time.Time      `json:"pickup_date"`
	TotalAmount float64        `json:"total_amount"`
	Status      string         `json:"status"`
	ClientName  string         `json:"client_name,omitempty"`
	Items       []OrderItemDTO `json:"items"`
}

func OrderToListDTO(o models.Order) OrderListDTO {
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	return OrderListDTO{
		ID:          o.ID,
		Number:      o.Number,
		CreatedAt:   o.CreatedAt,
		PickupDate:  o.PickupDate,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		ClientName:  o.Client.Name,
		Items:       items,
	}
}
