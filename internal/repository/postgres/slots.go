package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
)

type SlotRepo struct {
	pool *pgxpool.Pool
}

func (r *SlotRepo) handle(ctx context.Context) DB {
	return conn(ctx, r.pool)
}

// ListSlots returns the stored slots of an event. Ordering is left to the
// caller; rows come back by order_in_event with nulls last.
func (r *SlotRepo) ListSlots(ctx context.Context, eventID uuid.UUID) ([]domain.Slot, error) {
	const op = "postgresrepo.SlotRepo.ListSlots"

	db := r.handle(ctx)

	rows, err := db.Query(ctx,
		`SELECT id, event_id, band_id, slot_type, slot_phase, order_in_event,
		        start_time, end_time, changeover_minutes, note
		 FROM event_slots
		 WHERE event_id = $1
		 ORDER BY order_in_event NULLS LAST, start_time NULLS FIRST, id`,
		eventID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Slot
	for rows.Next() {
		var s domain.Slot
		var slotType, phase string
		if err := rows.Scan(
			&s.ID,
			&s.EventID,
			&s.BandID,
			&slotType,
			&phase,
			&s.OrderInEvent,
			&s.StartTime,
			&s.EndTime,
			&s.ChangeoverMinutes,
			&s.Note,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		s.SlotType = domain.SlotType(slotType)
		s.SlotPhase = domain.SlotPhase(phase)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *SlotRepo) CountSlots(ctx context.Context, eventID uuid.UUID) (int, error) {
	const op = "postgresrepo.SlotRepo.CountSlots"

	db := r.handle(ctx)

	var n int
	if err := db.QueryRow(ctx,
		`SELECT count(*) FROM event_slots WHERE event_id = $1`,
		eventID,
	).Scan(&n); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return n, nil
}

const insertSlotSQL = `INSERT INTO event_slots(id, event_id, band_id, slot_type, slot_phase,
	                         order_in_event, start_time, end_time, changeover_minutes, note)
	 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func slotArgs(s domain.Slot) []any {
	phase := s.SlotPhase
	if phase == "" {
		phase = domain.PhaseShow
	}
	return []any{
		s.ID, s.EventID, s.BandID, string(s.SlotType), string(phase), s.OrderInEvent,
		s.StartTime, s.EndTime, s.ChangeoverMinutes, s.Note,
	}
}

// ReplaceSlots deletes every slot of the event and inserts slots. Call it
// inside a transaction.
func (r *SlotRepo) ReplaceSlots(ctx context.Context, eventID uuid.UUID, slots []domain.Slot) error {
	const op = "postgresrepo.SlotRepo.ReplaceSlots"

	db := r.handle(ctx)

	if _, err := db.Exec(ctx, `DELETE FROM event_slots WHERE event_id = $1`, eventID); err != nil {
		return wrapDBErr(op, err)
	}

	if len(slots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(insertSlotSQL, slotArgs(s)...)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// UpsertSlots writes slots by id. A row that exists under another event is
// not touched and reported as repository.ErrConflict.
func (r *SlotRepo) UpsertSlots(ctx context.Context, slots []domain.Slot) error {
	const op = "postgresrepo.SlotRepo.UpsertSlots"

	if len(slots) == 0 {
		return nil
	}

	db := r.handle(ctx)

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(insertSlotSQL+`
		 ON CONFLICT (id) DO UPDATE
		 SET band_id = EXCLUDED.band_id,
		     slot_type = EXCLUDED.slot_type,
		     slot_phase = EXCLUDED.slot_phase,
		     order_in_event = EXCLUDED.order_in_event,
		     start_time = EXCLUDED.start_time,
		     end_time = EXCLUDED.end_time,
		     changeover_minutes = EXCLUDED.changeover_minutes,
		     note = EXCLUDED.note
		 WHERE event_slots.event_id = EXCLUDED.event_id`,
			slotArgs(s)...,
		)
	}

	br := db.SendBatch(ctx, batch)
	defer br.Close()

	for _, s := range slots {
		tag, err := br.Exec()
		if err != nil {
			return wrapDBErr(op, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%s: slot %s: %w", op, s.ID, repository.ErrConflict)
		}
	}

	if err := br.Close(); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// DeleteSlot removes one slot and returns the event it belonged to.
func (r *SlotRepo) DeleteSlot(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const op = "postgresrepo.SlotRepo.DeleteSlot"

	db := r.handle(ctx)

	var eventID uuid.UUID
	if err := db.QueryRow(ctx,
		`DELETE FROM event_slots WHERE id = $1 RETURNING event_id`,
		id,
	).Scan(&eventID); err != nil {
		return uuid.Nil, wrapDBErr(op, err)
	}

	return eventID, nil
}
