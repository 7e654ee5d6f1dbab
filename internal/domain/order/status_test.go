package order

import (
	"testing"
	"time"

	"github.com/vetlinkpe/vetlink-api/internal/models"
)

func TestLifecycleHappyPath(t *testing.T) {
	o := &models.Order{Status: string(InitialStatus())}
	now := time.Now()

	if err := MarkReady(o); err != nil {
		t.Fatalf("MarkReady from pending: %v", err)
	}
	if o.Status != string(StatusReadyForPickup) {
		t.Errorf("status = %s, want ready_for_pickup", o.Status)
	}

	if err := MarkPickedUp(o, now); err != nil {
		t.Fatalf("MarkPickedUp from ready: %v", err)
	}
	if o.Status != string(StatusPickedUp) || o.PickedUpAt == nil {
		t.Errorf("status = %s, picked_up_at = %v", o.Status, o.PickedUpAt)
	}
}

func TestInvalidTransitions(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name string
		from Status
		act  func(o *models.Order) error
	}{
		{"picked up from pending", StatusPendingPickup, func(o *models.Order) error { return MarkPickedUp(o, now) }},
		{"ready from picked up", StatusPickedUp, MarkReady},
		{"cancel after pickup", StatusPickedUp, func(o *models.Order) error { return Cancel(o, now) }},
		{"cancel a cancelled order", StatusCancelled, func(o *models.Order) error { return Cancel(o, now) }},
		{"expire a picked up order", StatusPickedUp, Expire},
		{"ready an expired order", StatusExpired, MarkReady},
	}

	for _, tc := range cases {
		o := &models.Order{Status: string(tc.from)}
		if err := tc.act(o); err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
		}
		if o.Status != string(tc.from) {
			t.Errorf("%s: status mutated to %s on failed transition", tc.name, o.Status)
		}
	}
}

func TestCancelFromReady(t *testing.T) {
	o := &models.Order{Status: string(StatusReadyForPickup)}
	now := time.Now()

	if err := Cancel(o, now); err != nil {
		t.Fatalf("Cancel from ready: %v", err)
	}
	if o.Status != string(StatusCancelled) || o.CancelledAt == nil {
		t.Errorf("status = %s, cancelled_at = %v", o.Status, o.CancelledAt)
	}
}

func TestExpireFromPendingAndReady(t *testing.T) {
	for _, from := range []Status{StatusPendingPickup, StatusReadyForPickup} {
		o := &models.Order{Status: string(from)}
		if err := Expire(o); err != nil {
			t.Errorf("Expire from %s: %v", from, err)
		}
	}
}
