package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
	"github.com/kirinyoku/ttgo/internal/timetable"
)

type SlotRepo struct {
	s *Store
}

func (r *SlotRepo) ListSlots(ctx context.Context, eventID uuid.UUID) ([]domain.Slot, error) {
	defer r.s.lock(ctx)()

	var out []domain.Slot
	for _, sl := range r.s.slots {
		if sl.EventID == eventID {
			out = append(out, sl)
		}
	}

	return timetable.Sort(out), nil
}

func (r *SlotRepo) CountSlots(ctx context.Context, eventID uuid.UUID) (int, error) {
	defer r.s.lock(ctx)()

	n := 0
	for _, sl := range r.s.slots {
		if sl.EventID == eventID {
			n++
		}
	}

	return n, nil
}

// checkRefs mirrors the event and band foreign keys. Callers hold the lock.
func (s *Store) checkRefs(sl domain.Slot) error {
	if _, ok := s.events[sl.EventID]; !ok {
		return repository.ErrForeignKey
	}
	if sl.BandID != nil {
		if _, ok := s.bands[*sl.BandID]; !ok {
			return repository.ErrForeignKey
		}
	}
	return nil
}

func (r *SlotRepo) ReplaceSlots(ctx context.Context, eventID uuid.UUID, slots []domain.Slot) error {
	const op = "memory.SlotRepo.ReplaceSlots"

	defer r.s.lock(ctx)()

	for _, sl := range slots {
		if err := r.s.checkRefs(sl); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if cur, ok := r.s.slots[sl.ID]; ok && cur.EventID != eventID {
			return fmt.Errorf("%s: %w", op, repository.ErrConflict)
		}
	}

	for id, sl := range r.s.slots {
		if sl.EventID == eventID {
			delete(r.s.slots, id)
		}
	}
	for _, sl := range slots {
		if _, ok := r.s.slots[sl.ID]; ok {
			return fmt.Errorf("%s: %w", op, repository.ErrConflict)
		}
		r.s.slots[sl.ID] = sl
	}

	return nil
}

func (r *SlotRepo) UpsertSlots(ctx context.Context, slots []domain.Slot) error {
	const op = "memory.SlotRepo.UpsertSlots"

	defer r.s.lock(ctx)()

	for _, sl := range slots {
		if err := r.s.checkRefs(sl); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if cur, ok := r.s.slots[sl.ID]; ok && cur.EventID != sl.EventID {
			return fmt.Errorf("%s: slot %s: %w", op, sl.ID, repository.ErrConflict)
		}
	}

	for _, sl := range slots {
		r.s.slots[sl.ID] = sl
	}

	return nil
}

func (r *SlotRepo) DeleteSlot(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	const op = "memory.SlotRepo.DeleteSlot"

	defer r.s.lock(ctx)()

	sl, ok := r.s.slots[id]
	if !ok {
		return uuid.Nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	delete(r.s.slots, id)

	return sl.EventID, nil
}
