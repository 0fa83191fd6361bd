// README: Grid entities (slots, entry points, distances) and the map view.
package lot

import (
	"time"

	"parkgrid/internal/types"
)

type Slot struct {
	ID       int64
	Row      int
	Col      int
	Size     types.Size
	Occupied bool
}

type EntryPoint struct {
	ID  int64 `json:"id"`
	Row int   `json:"row"`
	Col int   `json:"col"`
}

// SlotDistance is the derived (slot, entry point) -> Manhattan distance
// relation. Exactly one row exists per pair; it is recomputed wholesale
// whenever slots or the entry point change.
type SlotDistance struct {
	SlotID       int64
	EntryPointID int64
	Distance     int
}

// Map is the rendered grid returned to clients. Dimensions derive from the
// maximum row/col seen, so an out-of-grid entry point grows the view.
type Map struct {
	Rows         int          `json:"rows"`
	Cols         int          `json:"cols"`
	ParkingSlots []MapSlot    `json:"parking_slots"`
	EntryPoints  []EntryPoint `json:"entry_points"`
}

type MapSlot struct {
	ID       int64      `json:"id"`
	Row      int        `json:"row"`
	Col      int        `json:"col"`
	SlotType types.Size `json:"slot_type"`
	Occupied bool       `json:"is_occupied"`

	// Occupant details, present only while a session is active.
	PlateNumber *string     `json:"plate_number,omitempty"`
	VehicleType *types.Size `json:"vehicle_type,omitempty"`
	EntryTime   *time.Time  `json:"entry_time,omitempty"`
}
