package domain

import (
	"context"
	"fmt"
	"time"
)

// HoldTTL is how long a hold reserves capacity before it silently expires.
const HoldTTL = 10 * time.Minute

// HoldStatus is the lifecycle state of a hold.
type HoldStatus string

const (
	HoldStatusHeld     HoldStatus = "held"
	HoldStatusReleased HoldStatus = "released"
	HoldStatusConsumed HoldStatus = "consumed"
)

// Slot is a bookable capacity bucket within an event.
type Slot struct {
	ID       string `json:"id"`
	EventID  string `json:"event_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Reserved int    `json:"reserved"`
}

// Hold is a time-limited reservation of slot capacity pending confirmation.
// Expired holds stop counting against capacity at read time; there is no
// background sweep.
// swagger:model Hold
type Hold struct {
	ID        string     `json:"id"`
	EventID   string     `json:"event_id"`
	SlotID    string     `json:"slot_id"`
	Qty       int        `json:"qty"`
	Email     string     `json:"email"`
	Status    HoldStatus `json:"status"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NoCapacityError reports a reservation that could not be satisfied, with the
// remaining free capacity at the time of the check.
type NoCapacityError struct {
	Free int
}

func (e *NoCapacityError) Error() string {
	return fmt.Sprintf("not enough capacity: %d free", e.Free)
}

// SlotRepository defines storage operations for slots.
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*Slot, error)
}

// HoldRepository defines storage operations for holds. CreateIfCapacity must
// serialize the capacity check and insert (e.g. under a slot row lock) so
// concurrent reservations cannot oversell a slot.
type HoldRepository interface {
	// CreateIfCapacity inserts the hold only if its quantity fits within
	// capacity - reserved - sum(unexpired held quantities) at time now.
	// Returns false (and no error) when capacity was insufficient or the
	// slot does not exist.
	CreateIfCapacity(ctx context.Context, hold *Hold, now time.Time) (bool, error)
	// FreeCapacity returns max(0, capacity - reserved - heldQty) for the slot.
	FreeCapacity(ctx context.Context, slotID string, now time.Time) (int, error)
	GetByID(ctx context.Context, id string) (*Hold, error)
	// Release flips status held -> released. Returns false when no row
	// changed (hold absent or not currently held).
	Release(ctx context.Context, id string) (bool, error)
}

// ReservationService creates and releases capacity holds.
type ReservationService interface {
	// Reserve fails with *NoCapacityError when qty exceeds free capacity.
	Reserve(ctx context.Context, eventID, slotID string, qty int, email string) (*Hold, error)
	// Release is idempotent: releasing an already-released or consumed hold
	// succeeds without changing state. Unknown holds return ErrNotFound.
	Release(ctx context.Context, holdID string) error
}
