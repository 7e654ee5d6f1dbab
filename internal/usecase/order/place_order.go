package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	domain "github.com/vetlinkpe/vetlink-api/internal/domain/order"
	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type PlaceOrderItem struct {
	ProductID uint
	Quantity  int
}

type PlaceOrderInput struct {
	TenantID uint
	ClientID uint

	Items      []PlaceOrderItem
	PickupDate string // YYYY-MM-DD

	Timezone string
}

// ======================================================
// USE CASE
// ======================================================

type PlaceOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewPlaceOrder(repo domain.Repository, audit *audit.Dispatcher) *PlaceOrder {
	return &PlaceOrder{repo: repo, audit: audit}
}

func (uc *PlaceOrder) Execute(
	ctx context.Context,
	in PlaceOrderInput,
) (*models.Order, error) {

	if len(in.Items) == 0 {
		return nil, httperr.ErrBusiness("empty_cart")
	}

	// Pickup is next-day at the earliest; paid on pickup at the store.
	loc := timezone.Location(in.Timezone)
	pickup, err := time.ParseInLocation("2006-01-02", in.PickupDate, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_pickup_date")
	}

	now := timezone.NowIn(in.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if !pickup.After(today) {
		return nil, httperr.ErrBusiness("pickup_too_soon")
	}

	var (
		items []models.OrderItem
		total float64
	)

	for _, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, httperr.ErrBusiness("invalid_quantity")
		}

		product, err := uc.repo.GetProduct(ctx, in.TenantID, line.ProductID)
		if err != nil {
			return nil, httperr.ErrBusiness("product_not_found")
		}
		if !product.IsAvailable {
			return nil, httperr.ErrBusiness("product_unavailable")
		}
		if product.Stock <= 0 {
			return nil, httperr.ErrBusiness("product_out_of_stock")
		}

		qty := line.Quantity
		if qty > product.Stock {
			qty = product.Stock
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  qty,
		})
		total += product.Price * float64(qty)
	}

	o := &models.Order{
		TenantID:    in.TenantID,
		ClientID:    in.ClientID,
		Number:      uuid.NewString(),
		PickupDate:  pickup,
		TotalAmount: total,
		Status:      string(domain.InitialStatus()),
		Items:       items,
	}

	if err := uc.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		Action:   "order_placed",
		Entity:   "order",
		EntityID: &o.ID,
		Metadata: map[string]any{"client_id": in.ClientID, "total": total},
	})

	return o, nil
}
