package order

import (
	"context"
	"time"

	"github.com/vetlinkpe/vetlink-api/internal/models"
)

type Repository interface {
	// -------- Product --------
	GetProduct(
		ctx context.Context,
		tenantID uint,
		productID uint,
	) (*models.Product, error)

	// -------- Order (create) --------

	// CreateOrder persists the order and decrements each product's
	// stock in one transaction; it fails the whole order when any
	// product no longer covers its line quantity.
	CreateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	// -------- Order (read) --------
	GetOrderForTenant(
		ctx context.Context,
		tenantID uint,
		orderID uint,
	) (*models.Order, error)

	ListOrdersForClient(
		ctx context.Context,
		tenantID uint,
		clientID uint,
	) ([]models.Order, error)

	ListOrdersForTenant(
		ctx context.Context,
		tenantID uint,
		status string,
	) ([]models.Order, error)

	// -------- Order (state change) --------
	UpdateOrder(
		ctx context.Context,
		o *models.Order,
	) error

	// UpdateOrderRestoringStock persists the order's new status and
	// returns its line quantities to the catalog in one transaction:
	// a cancelled or expired order must never keep stock reserved.
	UpdateOrderRestoringStock(
		ctx context.Context,
		o *models.Order,
	) error

	// -------- Expiry sweep --------
	ListOverdueOrders(
		ctx context.Context,
		tenantID uint,
		before time.Time,
	) ([]models.Order, error)
}
