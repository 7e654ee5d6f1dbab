package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
)

type fakeRepo struct {
	products map[uint]*models.Product

	created     *models.Order
	updated     []*models.Order
	restored    []models.OrderItem
	overdue     []models.Order
	failRestore bool
}

func (f *fakeRepo) GetProduct(ctx context.Context, tenantID, productID uint) (*models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, httperr.ErrBusiness("product_not_found")
	}
	return p, nil
}

func (f *fakeRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	o.ID = 1
	f.created = o
	return nil
}

func (f *fakeRepo) GetOrderForTenant(ctx context.Context, tenantID, orderID uint) (*models.Order, error) {
	if f.created == nil || f.created.ID != orderID {
		return nil, httperr.ErrBusiness("order_not_found")
	}
	return f.created, nil
}

func (f *fakeRepo) ListOrdersForClient(ctx context.Context, tenantID, clientID uint) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeRepo) ListOrdersForTenant(ctx context.Context, tenantID uint, status string) ([]models.Order, error) {
	return nil, nil
}

func (f *fakeRepo) UpdateOrder(ctx context.Context, o *models.Order) error {
	f.updated = append(f.updated, o)
	return nil
}

func (f *fakeRepo) UpdateOrderRestoringStock(ctx context.Context, o *models.Order) error {
	if f.failRestore {
		return errors.New("connection reset")
	}
	f.updated = append(f.updated, o)
	f.restored = append(f.restored, o.Items...)
	return nil
}

func (f *fakeRepo) ListOverdueOrders(ctx context.Context, tenantID uint, before time.Time) ([]models.Order, error) {
	return f.overdue, nil
}

func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format("2006-01-02")
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		products: map[uint]*models.Product{
			10: {ID: 10, TenantID: 1, Name: "Antipulgas", Price: 25, Stock: 3, IsAvailable: true},
			11: {ID: 11, TenantID: 1, Name: "Shampoo", Price: 10, Stock: 8, IsAvailable: true},
			12: {ID: 12, TenantID: 1, Name: "Descontinuado", Price: 5, Stock: 4, IsAvailable: false},
		},
	}
}

func TestPlaceOrderClampsQuantityToStock(t *testing.T) {
	repo := newRepo()
	uc := NewPlaceOrder(repo, nil)

	o, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 10, Quantity: 5}},
		PickupDate: tomorrow(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(o.Items) != 1 || o.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity clamped to 3, got %+v", o.Items)
	}
	if o.TotalAmount != 75 {
		t.Errorf("TotalAmount = %v, want 75 (3 x 25)", o.TotalAmount)
	}
	if o.Status != "pending_pickup" {
		t.Errorf("Status = %s, want pending_pickup", o.Status)
	}
	if repo.created == nil {
		t.Error("order was not persisted")
	}
}

func TestPlaceOrderTotals(t *testing.T) {
	uc := NewPlaceOrder(newRepo(), nil)

	o, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID: 1,
		ClientID: 2,
		Items: []PlaceOrderItem{
			{ProductID: 10, Quantity: 2},
			{ProductID: 11, Quantity: 3},
		},
		PickupDate: tomorrow(),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if o.TotalAmount != 25*2+10*3 {
		t.Errorf("TotalAmount = %v, want %v", o.TotalAmount, 25*2+10*3)
	}
	if o.Number == "" {
		t.Error("expected an order number")
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	uc := NewPlaceOrder(newRepo(), nil)

	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		PickupDate: tomorrow(),
	})
	if !httperr.IsBusiness(err, "empty_cart") {
		t.Errorf("expected empty_cart, got %v", err)
	}
}

func TestPlaceOrderRejectsSameDayPickup(t *testing.T) {
	uc := NewPlaceOrder(newRepo(), nil)

	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 10, Quantity: 1}},
		PickupDate: time.Now().Format("2006-01-02"),
	})
	if !httperr.IsBusiness(err, "pickup_too_soon") {
		t.Errorf("expected pickup_too_soon, got %v", err)
	}
}

func TestPlaceOrderRejectsBadDate(t *testing.T) {
	uc := NewPlaceOrder(newRepo(), nil)

	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 10, Quantity: 1}},
		PickupDate: "mañana",
	})
	if !httperr.IsBusiness(err, "invalid_pickup_date") {
		t.Errorf("expected invalid_pickup_date, got %v", err)
	}
}

func TestPlaceOrderRejectsUnavailableProduct(t *testing.T) {
	uc := NewPlaceOrder(newRepo(), nil)

	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 12, Quantity: 1}},
		PickupDate: tomorrow(),
	})
	if !httperr.IsBusiness(err, "product_unavailable") {
		t.Errorf("expected product_unavailable, got %v", err)
	}
}

func TestPlaceOrderRejectsOutOfStock(t *testing.T) {
	repo := newRepo()
	repo.products[10].Stock = 0
	uc := NewPlaceOrder(repo, nil)

	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 10, Quantity: 1}},
		PickupDate: tomorrow(),
	})
	if !httperr.IsBusiness(err, "product_out_of_stock") {
		t.Errorf("expected product_out_of_stock, got %v", err)
	}
}

func TestCancelRestoresStock(t *testing.T) {
	repo := newRepo()
	place := NewPlaceOrder(repo, nil)

	o, err := place.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 10, Quantity: 2}},
		PickupDate: tomorrow(),
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	cancel := NewCancelOrder(repo, nil)
	cancelled, err := cancel.Execute(context.Background(), 1, o.ID, 5, "")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}

	if cancelled.Status != "cancelled" {
		t.Errorf("Status = %s, want cancelled", cancelled.Status)
	}
	if len(repo.restored) != 1 || repo.restored[0].Quantity != 2 {
		t.Errorf("expected stock restored for the cancelled line, got %+v", repo.restored)
	}
}

func TestCancelWritesNothingWhenRestoreFails(t *testing.T) {
	repo := newRepo()
	place := NewPlaceOrder(repo, nil)

	o, err := place.Execute(context.Background(), PlaceOrderInput{
		TenantID:   1,
		ClientID:   2,
		Items:      []PlaceOrderItem{{ProductID: 10, Quantity: 2}},
		PickupDate: tomorrow(),
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	repo.failRestore = true

	cancel := NewCancelOrder(repo, nil)
	if _, err := cancel.Execute(context.Background(), 1, o.ID, 5, ""); err == nil {
		t.Fatal("expected an error when the write fails")
	}

	// Status flip and restoration travel in one write; a failure must
	// leave neither half applied.
	if len(repo.updated) != 0 {
		t.Errorf("order was updated despite the failure: %+v", repo.updated)
	}
	if len(repo.restored) != 0 {
		t.Errorf("stock was restored despite the failure: %+v", repo.restored)
	}
}

func TestExpireOverdueOrders(t *testing.T) {
	repo := newRepo()
	repo.overdue = []models.Order{
		{ID: 3, Status: "pending_pickup", Items: []models.OrderItem{{ProductID: 10, Quantity: 1}}},
		{ID: 4, Status: "ready_for_pickup", Items: []models.OrderItem{{ProductID: 11, Quantity: 2}}},
	}

	uc := NewExpireOverdueOrders(repo)
	n, err := uc.Execute(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if n != 2 {
		t.Errorf("expired = %d, want 2", n)
	}
	if len(repo.restored) != 2 {
		t.Errorf("expected stock restored for both orders, got %+v", repo.restored)
	}
	for _, o := range repo.updated {
		if o.Status != "expired" {
			t.Errorf("order %d status = %s, want expired", o.ID, o.Status)
		}
	}
}
