package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vetlinkpe/vetlink-api/internal/httperr"
	"github.com/vetlinkpe/vetlink-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *OrderGormRepository) GetProduct(
	ctx context.Context,
	tenantID uint,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", productID, tenantID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// --------------------------------------------------
// Order (create)
// --------------------------------------------------

func (r *OrderGormRepository) CreateOrder(
	ctx context.Context,
	o *models.Order,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range o.Items {
			// Conditional decrement: concurrent checkouts race for the
			// same stock, the condition is what keeps it non-negative.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("insufficient_stock")
			}
		}

		return tx.Create(o).Error
	})
}

// --------------------------------------------------
// Order (read)
// --------------------------------------------------

func (r *OrderGormRepository) GetOrderForTenant(
	ctx context.Context,
	tenantID uint,
	orderID uint,
) (*models.Order, error) {

	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND tenant_id = ?", orderID, tenantID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) ListOrdersForClient(
	ctx context.Context,
	tenantID uint,
	clientID uint,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) ListOrdersForTenant(
	ctx context.Context,
	tenantID uint,
	status string,
) ([]models.Order, error) {

	q := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		Where("tenant_id = ?", tenantID)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// --------------------------------------------------
// Order (state change)
// --------------------------------------------------

func (r *OrderGormRepository) UpdateOrder(
	ctx context.Context,
	o *models.Order,
) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// UpdateOrderRestoringStock commits the status flip and the stock
// restoration together; rolling back on any failure keeps the order
// and the catalog consistent.
func (r *OrderGormRepository) UpdateOrderRestoringStock(
	ctx context.Context,
	o *models.Order,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(o).Error; err != nil {
			return err
		}

		for _, item := range o.Items {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --------------------------------------------------
// Expiry sweep
// --------------------------------------------------

func (r *OrderGormRepository) ListOverdueOrders(
	ctx context.Context,
	tenantID uint,
	before time.Time,
) ([]models.Order, error) {

	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where(
			"tenant_id = ? AND status IN ('pending_pickup', 'ready_for_pickup') AND pickup_date < ?",
			tenantID,
			before,
		).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
