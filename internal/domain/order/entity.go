package order

import (
	"time"

	"github.com/vetlinkpe/vetlink-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func MarkReady(o *models.Order) error {
	if err := CanMarkReady(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusReadyForPickup)
	return nil
}

func MarkPickedUp(o *models.Order, now time.Time) error {
	if err := CanMarkPickedUp(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusPickedUp)
	o.PickedUpAt = &now
	return nil
}

func Cancel(o *models.Order, now time.Time) error {
	if err := CanCancel(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusCancelled)
	o.CancelledAt = &now
	return nil
}

func Expire(o *models.Order) error {
	if err := CanExpire(Status(o.Status)); err != nil {
		return err
	}

	o.Status = string(StatusExpired)
	return nil
}
