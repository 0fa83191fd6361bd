// README: Vehicle and session store backed by PostgreSQL.
package parking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parkgrid/internal/modules/lot"
	"parkgrid/internal/types"
)

// ErrSlotTaken reports a lost race on the conditional occupancy update.
var ErrSlotTaken = errors.New("slot already occupied")

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// FindOrCreateVehicle registers the plate on first sight. The size is fixed
// at creation; a later lookup returns the stored size regardless of what the
// caller declared.
func (s *PGStore) FindOrCreateVehicle(ctx context.Context, plate string, size types.Size) (*Vehicle, error) {
	_, err := s.db.Exec(ctx, `
		INSERT INTO vehicles (plate_number, size)
		VALUES ($1, $2)
		ON CONFLICT (plate_number) DO NOTHING`,
		plate, int16(size),
	)
	if err != nil {
		return nil, err
	}
	return s.VehicleByPlate(ctx, plate)
}

// VehicleByPlate returns (nil, nil) when the plate is unknown.
func (s *PGStore) VehicleByPlate(ctx context.Context, plate string) (*Vehicle, error) {
	var v Vehicle
	var size int16
	err := s.db.QueryRow(ctx, `
		SELECT id, plate_number, size FROM vehicles WHERE plate_number = $1`,
		plate,
	).Scan(&v.ID, &v.PlateNumber, &size)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.Size = types.Size(size)
	return &v, nil
}

// ActiveSession returns the vehicle's open session, or (nil, nil).
func (s *PGStore) ActiveSession(ctx context.Context, vehicleID int64) (*Session, error) {
	return s.scanSession(ctx, `
		SELECT id, vehicle_id, slot_id, entry_time, exit_time, status, fee_cents
		FROM parking_sessions
		WHERE vehicle_id = $1 AND status = 0`,
		vehicleID,
	)
}

// MostRecentClosedSession returns the latest closed session by exit time, or
// (nil, nil). Only this one is consulted for continuity.
func (s *PGStore) MostRecentClosedSession(ctx context.Context, vehicleID int64) (*Session, error) {
	return s.scanSession(ctx, `
		SELECT id, vehicle_id, slot_id, entry_time, exit_time, status, fee_cents
		FROM parking_sessions
		WHERE vehicle_id = $1 AND status = 1
		ORDER BY exit_time DESC
		LIMIT 1`,
		vehicleID,
	)
}

// FreeCompatibleSlots lists unoccupied slots of the given sizes ordered by
// precomputed distance from the entry point; ties break on the lower slot id
// so allocation is deterministic.
func (s *PGStore) FreeCompatibleSlots(ctx context.Context, entryPointID int64, sizes []types.Size) ([]lot.Slot, error) {
	encoded := make([]int16, len(sizes))
	for i, sz := range sizes {
		encoded[i] = int16(sz)
	}

	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.row_pos, s.col_pos, s.size, s.is_occupied
		FROM parking_slots s
		JOIN slot_distances d ON d.slot_id = s.id
		WHERE d.entry_point_id = $1
		  AND s.is_occupied = FALSE
		  AND s.size = ANY($2)
		ORDER BY d.distance ASC, s.id ASC`,
		entryPointID, encoded,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []lot.Slot
	for rows.Next() {
		var slot lot.Slot
		var size int16
		if err := rows.Scan(&slot.ID, &slot.Row, &slot.Col, &size, &slot.Occupied); err != nil {
			return nil, err
		}
		slot.Size = types.Size(size)
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// OpenSession occupies the slot and creates the session in one transaction.
// The occupancy flag is re-checked by the conditional update; a concurrent
// winner makes this return ErrSlotTaken with no state change.
func (s *PGStore) OpenSession(ctx context.Context, vehicleID, slotID int64, entry time.Time) (*Session, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE parking_slots SET is_occupied = TRUE
		WHERE id = $1 AND is_occupied = FALSE`,
		slotID,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() != 1 {
		return nil, ErrSlotTaken
	}

	sess := &Session{
		ID:        uuid.New(),
		VehicleID: vehicleID,
		SlotID:    &slotID,
		EntryTime: entry,
		Status:    StatusActive,
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO parking_sessions (id, vehicle_id, slot_id, entry_time, status)
		VALUES ($1, $2, $3, $4, 0)`,
		sess.ID, vehicleID, slotID, entry,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

// CloseSession frees the slot and closes the session together. Closing is
// conditional on the session still being active; a concurrent unpark makes
// this return false with no state change.
func (s *PGStore) CloseSession(ctx context.Context, sessionID uuid.UUID, slotID *int64, exit time.Time, feeCents int64) (bool, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE parking_sessions
		SET exit_time = $1, status = 1, fee_cents = $2
		WHERE id = $3 AND status = 0`,
		exit, feeCents, sessionID,
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() != 1 {
		return false, nil
	}

	if slotID != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE parking_slots SET is_occupied = FALSE WHERE id = $1`,
			*slotID,
		); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PGStore) SlotByID(ctx context.Context, id int64) (*lot.Slot, error) {
	var slot lot.Slot
	var size int16
	err := s.db.QueryRow(ctx, `
		SELECT id, row_pos, col_pos, size, is_occupied FROM parking_slots WHERE id = $1`,
		id,
	).Scan(&slot.ID, &slot.Row, &slot.Col, &size, &slot.Occupied)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	slot.Size = types.Size(size)
	return &slot, nil
}

func (s *PGStore) scanSession(ctx context.Context, query string, args ...any) (*Session, error) {
	var sess Session
	var status int16
	err := s.db.QueryRow(ctx, query, args...).Scan(
		&sess.ID, &sess.VehicleID, &sess.SlotID,
		&sess.EntryTime, &sess.ExitTime, &status, &sess.FeeCents,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess.Status = Status(status)
	return &sess, nil
}
