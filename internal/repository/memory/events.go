package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
)

type EventRepo struct {
	s *Store
}

func (r *EventRepo) CreateEvent(ctx context.Context, e *domain.Event) error {
	const op = "memory.EventRepo.CreateEvent"

	defer r.s.lock(ctx)()

	if _, ok := r.s.events[e.ID]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}

	now := r.s.now()
	e.CreatedAt, e.UpdatedAt = now, now
	r.s.events[e.ID] = *e

	return nil
}

func (r *EventRepo) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	const op = "memory.EventRepo.GetEvent"

	defer r.s.lock(ctx)()

	e, ok := r.s.events[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return &e, nil
}

func (r *EventRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	defer r.s.lock(ctx)()

	out := make([]domain.Event, 0, len(r.s.events))
	for _, e := range r.s.events {
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}

func (r *EventRepo) UpdateEvent(ctx context.Context, e *domain.Event) error {
	const op = "memory.EventRepo.UpdateEvent"

	defer r.s.lock(ctx)()

	cur, ok := r.s.events[e.ID]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	cur.Name = e.Name
	cur.Date = e.Date
	cur.Status = e.Status
	cur.Venue = e.Venue
	cur.DefaultChangeoverMinutes = e.DefaultChangeoverMinutes
	cur.ShowStartTime = e.ShowStartTime
	cur.UpdatedAt = r.s.now()
	r.s.events[e.ID] = cur

	e.UpdatedAt = cur.UpdatedAt
	return nil
}

func (r *EventRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	const op = "memory.EventRepo.SetPublished"

	defer r.s.lock(ctx)()

	e, ok := r.s.events[id]
	if !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	e.TimetableIsPublished = published
	e.UpdatedAt = r.s.now()
	r.s.events[id] = e

	return nil
}

// DeleteEvent removes the event together with its roster and slots.
func (r *EventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "memory.EventRepo.DeleteEvent"

	defer r.s.lock(ctx)()

	if _, ok := r.s.events[id]; !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	for bid, b := range r.s.bands {
		if b.EventID == id {
			r.s.dropBand(bid)
		}
	}
	for sid, sl := range r.s.slots {
		if sl.EventID == id {
			delete(r.s.slots, sid)
		}
	}
	delete(r.s.events, id)

	return nil
}
