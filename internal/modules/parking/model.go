// README: Vehicle and parking session entities.
package parking

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"parkgrid/internal/types"
)

type Vehicle struct {
	ID          int64
	PlateNumber string
	Size        types.Size
}

type Status int

const (
	StatusActive Status = iota
	StatusClosed
)

// Session is one stay of a vehicle in a slot. Closed sessions are kept as
// history; the most recent one feeds the continuity rule at the next park.
// SlotID is nil when the slot was later destroyed by entry-point placement.
type Session struct {
	ID        uuid.UUID
	VehicleID int64
	SlotID    *int64
	EntryTime time.Time
	ExitTime  *time.Time
	Status    Status
	FeeCents  *int64
}

// NormalizePlate applies the boundary normalization rule: plates are trimmed
// and upper-cased before any lookup, since the plate is the vehicle key.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
