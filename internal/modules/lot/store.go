// README: Grid store backed by PostgreSQL; mutations run in one transaction.
package lot

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"parkgrid/internal/types"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Reset wipes every table and seeds the given slots and entry points as one
// atomic unit. Entry point coordinates are expected to be slot-free already;
// distances for each entry point are recomputed from the inserted slots.
func (s *PGStore) Reset(ctx context.Context, slots []Slot, entryPoints []EntryPoint) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range []string{"parking_sessions", "slot_distances", "vehicles", "entry_points", "parking_slots"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}

	inserted := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		row := tx.QueryRow(ctx, `
			INSERT INTO parking_slots (row_pos, col_pos, size, is_occupied)
			VALUES ($1, $2, $3, FALSE)
			RETURNING id`,
			slot.Row, slot.Col, int16(slot.Size),
		)
		if err := row.Scan(&slot.ID); err != nil {
			return err
		}
		inserted = append(inserted, slot)
	}

	for _, ep := range entryPoints {
		row := tx.QueryRow(ctx, `
			INSERT INTO entry_points (row_pos, col_pos)
			VALUES ($1, $2)
			RETURNING id`,
			ep.Row, ep.Col,
		)
		if err := row.Scan(&ep.ID); err != nil {
			return err
		}
		if err := copyDistances(ctx, tx, Distances(inserted, ep)); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// AddEntryPoint destroys any slot at the coordinate, inserts the entry point
// and recomputes its distances to every remaining slot, all in one
// transaction.
func (s *PGStore) AddEntryPoint(ctx context.Context, row, col int) (EntryPoint, error) {
	var ep EntryPoint

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return ep, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM parking_slots WHERE row_pos = $1 AND col_pos = $2`,
		row, col,
	); err != nil {
		return ep, err
	}

	r := tx.QueryRow(ctx, `
		INSERT INTO entry_points (row_pos, col_pos)
		VALUES ($1, $2)
		RETURNING id`,
		row, col,
	)
	if err := r.Scan(&ep.ID); err != nil {
		return ep, err
	}
	ep.Row, ep.Col = row, col

	slots, err := scanSlots(ctx, tx)
	if err != nil {
		return ep, err
	}
	if err := copyDistances(ctx, tx, Distances(slots, ep)); err != nil {
		return ep, err
	}

	return ep, tx.Commit(ctx)
}

func (s *PGStore) HasEntryPointAt(ctx context.Context, row, col int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM entry_points WHERE row_pos = $1 AND col_pos = $2)`,
		row, col,
	).Scan(&exists)
	return exists, err
}

func (s *PGStore) EntryPoints(ctx context.Context) ([]EntryPoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, row_pos, col_pos FROM entry_points ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var eps []EntryPoint
	for rows.Next() {
		var ep EntryPoint
		if err := rows.Scan(&ep.ID, &ep.Row, &ep.Col); err != nil {
			return nil, err
		}
		eps = append(eps, ep)
	}
	return eps, rows.Err()
}

// Map renders the grid with occupant details joined from active sessions.
func (s *PGStore) Map(ctx context.Context) (*Map, error) {
	rows, err := s.db.Query(ctx, `
		SELECT s.id, s.row_pos, s.col_pos, s.size, s.is_occupied,
		       v.plate_number, v.size, ps.entry_time
		FROM parking_slots s
		LEFT JOIN parking_sessions ps ON ps.slot_id = s.id AND ps.status = 0
		LEFT JOIN vehicles v ON v.id = ps.vehicle_id
		ORDER BY s.row_pos, s.col_pos`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := &Map{ParkingSlots: []MapSlot{}, EntryPoints: []EntryPoint{}}
	maxRow, maxCol := -1, -1

	for rows.Next() {
		var (
			ms        MapSlot
			size      int16
			plate     *string
			vsize     *int16
			entryTime *time.Time
		)
		if err := rows.Scan(&ms.ID, &ms.Row, &ms.Col, &size, &ms.Occupied, &plate, &vsize, &entryTime); err != nil {
			return nil, err
		}
		ms.SlotType = types.Size(size)
		if ms.Occupied && plate != nil {
			ms.PlateNumber = plate
			ms.EntryTime = entryTime
			if vsize != nil {
				vt := types.Size(*vsize)
				ms.VehicleType = &vt
			}
		}
		m.ParkingSlots = append(m.ParkingSlots, ms)
		maxRow = max(maxRow, ms.Row)
		maxCol = max(maxCol, ms.Col)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	eps, err := s.EntryPoints(ctx)
	if err != nil {
		return nil, err
	}
	for _, ep := range eps {
		maxRow = max(maxRow, ep.Row)
		maxCol = max(maxCol, ep.Col)
	}
	m.EntryPoints = eps
	m.Rows = maxRow + 1
	m.Cols = maxCol + 1
	return m, nil
}

func scanSlots(ctx context.Context, tx pgx.Tx) ([]Slot, error) {
	rows, err := tx.Query(ctx, `
		SELECT id, row_pos, col_pos, size, is_occupied FROM parking_slots ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var slot Slot
		var size int16
		if err := rows.Scan(&slot.ID, &slot.Row, &slot.Col, &size, &slot.Occupied); err != nil {
			return nil, err
		}
		slot.Size = types.Size(size)
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func copyDistances(ctx context.Context, tx pgx.Tx, dists []SlotDistance) error {
	if len(dists) == 0 {
		return nil
	}
	src := make([][]any, len(dists))
	for i, d := range dists {
		src[i] = []any{d.SlotID, d.EntryPointID, d.Distance}
	}
	_, err := tx.CopyFrom(ctx,
		pgx.Identifier{"slot_distances"},
		[]string{"slot_id", "entry_point_id", "distance"},
		pgx.CopyFromRows(src),
	)
	return err
}
