package order

import (
	"context"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	domain "github.com/vetlinkpe/vetlink-api/internal/domain/order"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/timezone"
)

type CancelOrder struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelOrder(repo domain.Repository, audit *audit.Dispatcher) *CancelOrder {
	return &CancelOrder{repo: repo, audit: audit}
}

func (uc *CancelOrder) Execute(
	ctx context.Context,
	tenantID uint,
	orderID uint,
	staffID uint,
	tz string,
) (*models.Order, error) {

	o, err := uc.repo.GetOrderForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(o, timezone.NowIn(tz)); err != nil {
		return nil, err
	}

	// Cancelled reservations return to the shelf together with the
	// status flip, so a failure leaves the order untouched.
	if err := uc.repo.UpdateOrderRestoringStock(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		StaffID:  &staffID,
		Action:   "order_cancelled",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
