package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
	"github.com/kirinyoku/ttgo/internal/service/notify"
	"github.com/kirinyoku/ttgo/internal/timetable"
	"github.com/kirinyoku/ttgo/internal/uow"
)

const dateLayout = "2006-01-02"

type Repo interface {
	CreateEvent(ctx context.Context, e *domain.Event) error
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
	UpdateEvent(ctx context.Context, e *domain.Event) error
	SetPublished(ctx context.Context, id uuid.UUID, published bool) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo    Repo
	uow     *uow.UoW
	changes *notify.Invalidator
}

func New(repo Repo, tx uow.Transactor, changes *notify.Invalidator) *Service {
	return &Service{
		repo:    repo,
		uow:     uow.NewUoW(tx),
		changes: changes,
	}
}

type CreateInput struct {
	Name                     string
	Date                     string
	Status                   domain.EventStatus
	Venue                    *string
	DefaultChangeoverMinutes *int
	OpenTime                 *string
	ShowStartTime            *string
	RehearsalOrder           domain.RehearsalOrder
}

// UpdateInput is a partial update; nil fields keep their value. An empty
// Venue, OpenTime or ShowStartTime clears it.
type UpdateInput struct {
	Name                     *string
	Date                     *string
	Status                   *domain.EventStatus
	Venue                    *string
	DefaultChangeoverMinutes *int
	OpenTime                 *string
	ShowStartTime            *string
	RehearsalOrder           *domain.RehearsalOrder
}

// Create validates in and stores a new event. Status defaults to draft, the
// changeover to domain.DefaultChangeoverMinutes and the rehearsal order to
// same.
//
// Returns:
//   - timetable.ValidationError for a rejected field.
//   - events.ErrEventConflict if the id is taken.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Event, error) {
	const op = "service.events.Create"

	e := domain.Event{
		ID:                       uuid.New(),
		Status:                   domain.EventDraft,
		DefaultChangeoverMinutes: domain.DefaultChangeoverMinutes,
		RehearsalOrder:           in.RehearsalOrder,
	}
	if in.Status != "" {
		e.Status = in.Status
	}
	if in.DefaultChangeoverMinutes != nil {
		e.DefaultChangeoverMinutes = *in.DefaultChangeoverMinutes
	}
	e.Name = in.Name
	e.Date = in.Date
	e.Venue = in.Venue
	e.OpenTime = in.OpenTime
	e.ShowStartTime = in.ShowStartTime

	if err := normalize(&e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.CreateEvent(ctx, &e); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventConflict)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	const op = "service.events.Get"

	e, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return e, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	const op = "service.events.List"

	out, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Update applies in to the event. Nothing is written when a field is
// rejected.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.Event, error) {
	const op = "service.events.Update"

	var out domain.Event
	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		e, err := s.repo.GetEvent(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if in.Name != nil {
			e.Name = *in.Name
		}
		if in.Date != nil {
			e.Date = *in.Date
		}
		if in.Status != nil {
			e.Status = *in.Status
		}
		if in.Venue != nil {
			e.Venue = in.Venue
		}
		if in.DefaultChangeoverMinutes != nil {
			e.DefaultChangeoverMinutes = *in.DefaultChangeoverMinutes
		}
		if in.OpenTime != nil {
			e.OpenTime = in.OpenTime
		}
		if in.ShowStartTime != nil {
			e.ShowStartTime = in.ShowStartTime
		}
		if in.RehearsalOrder != nil {
			e.RehearsalOrder = *in.RehearsalOrder
		}

		if err := normalize(e); err != nil {
			return err
		}

		if err := s.repo.UpdateEvent(ctx, e); err != nil {
			return err
		}

		out = *e
		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, id)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// SetPublished changes only the publish flag. Slots are left untouched.
func (s *Service) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	const op = "service.events.SetPublished"

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		if err := s.repo.SetPublished(ctx, id, published); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, id)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Delete removes the event with its roster and running order.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "service.events.Delete"

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		if err := s.repo.DeleteEvent(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, id)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func normalize(e *domain.Event) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return timetable.ValidationError{Field: "name", Reason: "required"}
	}

	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return timetable.ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}

	if !e.Status.Valid() {
		return timetable.ValidationError{Field: "status", Reason: "unknown status " + string(e.Status)}
	}

	if e.DefaultChangeoverMinutes < 0 {
		return timetable.ValidationError{Field: "default_changeover_minutes", Reason: "must not be negative"}
	}

	if e.Venue != nil && strings.TrimSpace(*e.Venue) == "" {
		e.Venue = nil
	}

	start, err := eventClock("show_start_time", e.ShowStartTime)
	if err != nil {
		return err
	}
	e.ShowStartTime = start

	open, err := eventClock("open_time", e.OpenTime)
	if err != nil {
		return err
	}
	e.OpenTime = open

	if e.RehearsalOrder == "" {
		e.RehearsalOrder = domain.RehearsalSame
	}
	if !e.RehearsalOrder.Valid() {
		return timetable.ValidationError{Field: "normal_rehearsal_order", Reason: "expected same or reverse"}
	}

	return nil
}

func eventClock(field string, v *string) (*string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	m, ok := timetable.ParseClock(*v)
	if !ok {
		return nil, timetable.ValidationError{Field: field, Reason: "expected HH:MM"}
	}
	out := timetable.FormatClock(m)
	return &out, nil
}
