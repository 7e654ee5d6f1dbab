package order

import "github.com/vetlinkpe/vetlink-api/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusPendingPickup  Status = "pending_pickup"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusPickedUp       Status = "picked_up"
	StatusCancelled      Status = "cancelled"
	StatusExpired        Status = "expired"
)

func InitialStatus() Status {
	return StatusPendingPickup
}

// ===============================
// Transition rules
// ===============================

func CanMarkReady(current Status) error {
	if current != StatusPendingPickup {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkPickedUp(current Status) error {
	if current != StatusReadyForPickup {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPendingPickup && current != StatusReadyForPickup {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// An order still waiting past its pickup date expires.
func CanExpire(current Status) error {
	if current != StatusPendingPickup && current != StatusReadyForPickup {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
