package order

import (
	"context"

	"github.com/vetlinkpe/vetlink-api/internal/audit"
	domain "github.com/vetlinkpe/vetlink-api/internal/domain/order"
	"github.com/vetlinkpe/vetlink-api/internal/models"
)

type MarkOrderReady struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkOrderReady(repo domain.Repository, audit *audit.Dispatcher) *MarkOrderReady {
	return &MarkOrderReady{repo: repo, audit: audit}
}

func (uc *MarkOrderReady) Execute(
	ctx context.Context,
	tenantID uint,
	orderID uint,
	staffID uint,
) (*models.Order, error) {

	o, err := uc.repo.GetOrderForTenant(ctx, tenantID, orderID)
	if err != nil {
		return nil, err
	}

	if err := domain.MarkReady(o); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: tenantID,
		StaffID:  &staffID,
		Action:   "order_marked_ready",
		Entity:   "order",
		EntityID: &o.ID,
	})

	return o, nil
}
