package order

import (
	"context"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	domain "github.com/vetlinkpe/vetlink-api/internal/domain/order"
	"github.com/vetlinkpe/vetlink-api/internal/models"
	"github.com/vetlinkpe/vetlink-api/internal/timezone"
)

type MarkOrderPickedUp struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkOrderPickedUp(repo domain.Repository, audit *audit.Dispatcher) *MarkOrderPickedUp {
	return &MarkOrderPickedUp{repo: repo, audit: audit}
}

func (uc *MarkOrderPickedUp) Execute(
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

	if err := domain.MarkPickedUp(o, timezone.NowIn(tz)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		StaffID:  &staffID,
		Action:   "order_picked_up",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
