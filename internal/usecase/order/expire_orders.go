package order

import (
	"context"
	"time"

	domain "github.com/vetlinkpe/vetlink-api/internal/domain/order"
	"github.com/vetlinkpe/vetlink-api/internal/timezone"
)

// ExpireOverdueOrders sweeps orders whose pickup date has passed while
// still waiting, marks them expired and restores their stock. Run
// lazily before the admin order listing; there is no background job.
type ExpireOverdueOrders struct {
	repo domain.Repository
}

func NewExpireOverdueOrders(repo domain.Repository) *ExpireOverdueOrders {
	return &ExpireOverdueOrders{repo: repo}
}

func (uc *ExpireOverdueOrders) Execute(
	ctx context.Context,
	tenantID uint,
	tz string,
) (int, error) {

	now := timezone.NowIn(tz)
	loc := timezone.Location(tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	overdue, err := uc.repo.ListOverdueOrders(ctx, tenantID, today)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range overdue {
		o := &overdue[i]
		if err := domain.Expire(o); err != nil {
			continue
		}
		if err := uc.repo.UpdateOrderRestoringStock(ctx, o); err != nil {
			return expired, err
		}
		expired++
	}

	return expired, nil
}
