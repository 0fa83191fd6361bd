// README: Park/unpark orchestration: allocation, duration, billing, status.
package parking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"parkgrid/internal/modules/billing"
	"parkgrid/internal/modules/lot"
	"parkgrid/internal/types"
)

var (
	ErrAlreadyParked    = errors.New("vehicle is already parked")
	ErrNoCompatibleSlot = errors.New("no available parking slot for vehicle type")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrNotParked        = errors.New("vehicle is not currently parked")
)

type Store interface {
	FindOrCreateVehicle(ctx context.Context, plate string, size types.Size) (*Vehicle, error)
	VehicleByPlate(ctx context.Context, plate string) (*Vehicle, error)
	ActiveSession(ctx context.Context, vehicleID int64) (*Session, error)
	MostRecentClosedSession(ctx context.Context, vehicleID int64) (*Session, error)
	FreeCompatibleSlots(ctx context.Context, entryPointID int64, sizes []types.Size) ([]lot.Slot, error)
	OpenSession(ctx context.Context, vehicleID, slotID int64, entry time.Time) (*Session, error)
	CloseSession(ctx context.Context, sessionID uuid.UUID, slotID *int64, exit time.Time, feeCents int64) (bool, error)
	SlotByID(ctx context.Context, id int64) (*lot.Slot, error)
}

// MapInvalidator drops the cached map view after occupancy changes.
type MapInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	store      Store
	aggregator billing.Aggregator
	calculator billing.Calculator
	mapCache   MapInvalidator
	log        *zap.Logger

	now func() time.Time
}

func NewService(store Store, aggregator billing.Aggregator, calculator billing.Calculator, mapCache MapInvalidator, log *zap.Logger) *Service {
	return &Service{
		store:      store,
		aggregator: aggregator,
		calculator: calculator,
		mapCache:   mapCache,
		log:        log,
		now:        time.Now,
	}
}

type VehicleInfo struct {
	PlateNumber string     `json:"plate_number"`
	VehicleType types.Size `json:"vehicle_type"`
}

type SlotPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type ParkResult struct {
	SessionID    uuid.UUID    `json:"parking_session_id"`
	SlotID       int64        `json:"slot_id"`
	SlotType     types.Size   `json:"slot_type"`
	SlotPosition SlotPosition `json:"slot_position"`
	Vehicle      VehicleInfo  `json:"vehicle"`
	EntryTime    time.Time    `json:"entry_time"`
	EntryPointID int64        `json:"entry_point_id"`
}

type ParkingDetails struct {
	SlotID       *int64        `json:"slot_id"`
	SlotType     types.Size    `json:"slot_type"`
	SlotPosition *SlotPosition `json:"slot_position,omitempty"`
	EntryTime    time.Time     `json:"entry_time"`
	ExitTime     time.Time     `json:"exit_time"`
	TotalHours   int64         `json:"total_hours"`
	ExactHours   float64       `json:"exact_hours"`
}

type BillingDetails struct {
	FeeChargedPesos float64           `json:"fee_charged_pesos"`
	FeeChargedCents int64             `json:"fee_charged_cents"`
	Breakdown       billing.Breakdown `json:"breakdown"`
}

type UnparkResult struct {
	Vehicle        VehicleInfo    `json:"vehicle"`
	ParkingDetails ParkingDetails `json:"parking_details"`
	Billing        BillingDetails `json:"billing"`
}

// Park assigns the nearest compatible free slot from the entry point and
// opens a session. Allocation uses the vehicle's stored size: a plate
// re-registered with a different declared size keeps its original size, which
// is only logged, not reconciled.
func (s *Service) Park(ctx context.Context, vehicleSize types.Size, plate string, entryPointID int64) (*ParkResult, error) {
	vehicle, err := s.store.FindOrCreateVehicle(ctx, plate, vehicleSize)
	if err != nil {
		return nil, err
	}
	if vehicle.Size != vehicleSize {
		s.log.Warn("vehicle size mismatch ignored",
			zap.String("plate", plate),
			zap.Stringer("stored", vehicle.Size),
			zap.Stringer("declared", vehicleSize),
		)
	}

	active, err := s.store.ActiveSession(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, ErrAlreadyParked
	}

	candidates, err := s.store.FreeCompatibleSlots(ctx, entryPointID, CompatibleSizes(vehicle.Size))
	if err != nil {
		return nil, err
	}

	entry := s.now()
	for _, slot := range candidates {
		sess, err := s.store.OpenSession(ctx, vehicle.ID, slot.ID, entry)
		if errors.Is(err, ErrSlotTaken) {
			// lost the race for this slot, try the next nearest
			continue
		}
		if err != nil {
			return nil, err
		}

		s.invalidateMap(ctx)
		s.log.Info("vehicle parked",
			zap.String("plate", vehicle.PlateNumber),
			zap.Int64("slot_id", slot.ID),
			zap.Int64("entry_point_id", entryPointID),
		)
		return &ParkResult{
			SessionID:    sess.ID,
			SlotID:       slot.ID,
			SlotType:     slot.Size,
			SlotPosition: SlotPosition{Row: slot.Row, Col: slot.Col},
			Vehicle:      VehicleInfo{PlateNumber: vehicle.PlateNumber, VehicleType: vehicle.Size},
			EntryTime:    sess.EntryTime,
			EntryPointID: entryPointID,
		}, nil
	}
	return nil, ErrNoCompatibleSlot
}

// Unpark closes the vehicle's active session, charging accelerated park-time
// with the continuity rule applied against the most recent closed session.
func (s *Service) Unpark(ctx context.Context, plate string) (*UnparkResult, error) {
	vehicle, err := s.store.VehicleByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	sess, err := s.store.ActiveSession(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotParked
	}

	exit := s.now()
	var prior *billing.Span
	if prev, err := s.store.MostRecentClosedSession(ctx, vehicle.ID); err != nil {
		return nil, err
	} else if prev != nil && prev.ExitTime != nil {
		prior = &billing.Span{Entry: prev.EntryTime, Exit: *prev.ExitTime}
	}

	exactHours := s.aggregator.BillableHours(sess.EntryTime, exit, prior)
	totalHours := billing.CeilHours(exactHours)

	// If the slot was destroyed by a later entry point, bill at the
	// vehicle's own size class.
	slotSize := vehicle.Size
	var slot *lot.Slot
	if sess.SlotID != nil {
		if slot, err = s.store.SlotByID(ctx, *sess.SlotID); err != nil {
			return nil, err
		}
		if slot != nil {
			slotSize = slot.Size
		}
	}

	quote := s.calculator.Quote(totalHours, slotSize)

	closed, err := s.store.CloseSession(ctx, sess.ID, sess.SlotID, exit, quote.Fee.Amount)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, ErrNotParked
	}

	s.invalidateMap(ctx)
	s.log.Info("vehicle unparked",
		zap.String("plate", vehicle.PlateNumber),
		zap.Int64("total_hours", totalHours),
		zap.Int64("fee_cents", quote.Fee.Amount),
	)

	details := ParkingDetails{
		SlotID:     sess.SlotID,
		SlotType:   slotSize,
		EntryTime:  sess.EntryTime,
		ExitTime:   exit,
		TotalHours: totalHours,
		ExactHours: exactHours,
	}
	if slot != nil {
		details.SlotPosition = &SlotPosition{Row: slot.Row, Col: slot.Col}
	}
	return &UnparkResult{
		Vehicle:        VehicleInfo{PlateNumber: vehicle.PlateNumber, VehicleType: vehicle.Size},
		ParkingDetails: details,
		Billing: BillingDetails{
			FeeChargedPesos: quote.Fee.Major(),
			FeeChargedCents: quote.Fee.Amount,
			Breakdown:       quote.Breakdown,
		},
	}, nil
}

type StatusDetails struct {
	SlotID          *int64        `json:"slot_id,omitempty"`
	SlotType        *types.Size   `json:"slot_type,omitempty"`
	SlotPosition    *SlotPosition `json:"slot_position,omitempty"`
	EntryTime       time.Time     `json:"entry_time"`
	DurationMinutes int64         `json:"duration_minutes"`
}

type StatusResult struct {
	Vehicle        VehicleInfo    `json:"vehicle"`
	Status         string         `json:"status"`
	ParkingDetails *StatusDetails `json:"parking_details,omitempty"`
}

// VehicleStatus reports whether a vehicle is parked and where.
func (s *Service) VehicleStatus(ctx context.Context, plate string) (*StatusResult, error) {
	vehicle, err := s.store.VehicleByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	result := &StatusResult{
		Vehicle: VehicleInfo{PlateNumber: vehicle.PlateNumber, VehicleType: vehicle.Size},
		Status:  "not_parked",
	}

	sess, err := s.store.ActiveSession(ctx, vehicle.ID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return result, nil
	}

	result.Status = "parked"
	details := &StatusDetails{
		SlotID:          sess.SlotID,
		EntryTime:       sess.EntryTime,
		DurationMinutes: int64(s.now().Sub(sess.EntryTime).Round(time.Minute) / time.Minute),
	}
	if sess.SlotID != nil {
		slot, err := s.store.SlotByID(ctx, *sess.SlotID)
		if err != nil {
			return nil, err
		}
		if slot != nil {
			details.SlotType = &slot.Size
			details.SlotPosition = &SlotPosition{Row: slot.Row, Col: slot.Col}
		}
	}
	result.ParkingDetails = details
	return result, nil
}

func (s *Service) invalidateMap(ctx context.Context) {
	if err := s.mapCache.Invalidate(ctx); err != nil {
		s.log.Warn("map cache invalidate failed", zap.Error(err))
	}
}
