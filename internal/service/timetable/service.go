package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	"github.com/kirinyoku/ttgo/internal/repository"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service/notify"
	"github.com/kirinyoku/ttgo/internal/timetable"
	"github.com/kirinyoku/ttgo/internal/uow"
)

type EventReader interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

type RosterReader interface {
	ListBands(ctx context.Context, eventID uuid.UUID) ([]domain.Band, error)
	ListSongsByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Song, error)
}

type SlotRepo interface {
	ListSlots(ctx context.Context, eventID uuid.UUID) ([]domain.Slot, error)
	CountSlots(ctx context.Context, eventID uuid.UUID) (int, error)
	ReplaceSlots(ctx context.Context, eventID uuid.UUID, slots []domain.Slot) error
	UpsertSlots(ctx context.Context, slots []domain.Slot) error
	DeleteSlot(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

type Config struct {
	ViewTTL time.Duration
}

type Deps struct {
	Events  EventReader
	Roster  RosterReader
	Slots   SlotRepo
	Tx      uow.Transactor
	Cache   *redisrepo.Cache
	Limiter *redisrepo.SlidingWindowLimiter
	Changes *notify.Invalidator
}

type Service struct {
	events  EventReader
	roster  RosterReader
	slots   SlotRepo
	uow     *uow.UoW
	cache   *redisrepo.Cache
	limiter *redisrepo.SlidingWindowLimiter
	changes *notify.Invalidator
	cfg     Config
}

func New(deps Deps, cfg Config) *Service {
	if cfg.ViewTTL <= 0 {
		cfg.ViewTTL = 30 * time.Second
	}

	return &Service{
		events:  deps.Events,
		roster:  deps.Roster,
		slots:   deps.Slots,
		uow:     uow.NewUoW(deps.Tx),
		cache:   deps.Cache,
		limiter: deps.Limiter,
		changes: deps.Changes,
		cfg:     cfg,
	}
}

// Viewer describes who reads a timetable. Privileged viewers see unpublished
// timetables and are not rate limited. RateKey identifies the caller for the
// limiter; empty disables limiting.
type Viewer struct {
	Privileged bool
	RateKey    string
}

func (s *Service) getEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	e, err := s.events.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// Editor loads everything an organizer needs to edit the running order.
// It is never served from cache.
func (s *Service) Editor(ctx context.Context, eventID uuid.UUID) (*domain.Editor, error) {
	const op = "service.timetable.Editor"

	e, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bands, err := s.roster.ListBands(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	slots, err := s.slots.ListSlots(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if bands == nil {
		bands = []domain.Band{}
	}

	return &domain.Editor{
		Event: *e,
		Bands: bands,
		Slots: orEmpty(timetable.Sort(slots)),
	}, nil
}

// View returns the timetable as v may see it. An unpublished timetable is
// reported as not visible, with no entries, to non-privileged viewers.
// Published timetables are served through the cache.
//
// Returns:
//   - ErrEventNotFound if the event does not exist.
//   - RateLimitedError when a non-privileged caller is over its limit.
func (s *Service) View(ctx context.Context, eventID uuid.UUID, v Viewer) (*domain.Timetable, error) {
	const op = "service.timetable.View"

	if !v.Privileged && v.RateKey != "" {
		d, err := s.limiter.Allow(ctx, v.RateKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if !d.Allowed {
			return nil, fmt.Errorf("%s: %w", op, RateLimitedError{RetryAfter: d.RetryAfter})
		}
	}

	e, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !timetable.CanView(e.TimetableIsPublished, v.Privileged) {
		return &domain.Timetable{Event: *e, Visible: false, Entries: []domain.TimetableEntry{}}, nil
	}

	if !e.TimetableIsPublished || s.cache == nil {
		tt, err := s.buildView(ctx, *e)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return &tt, nil
	}

	tt, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		redisx.KeyTimetableView(eventID),
		s.cfg.ViewTTL,
		func(ctx context.Context) (domain.Timetable, error) {
			return s.buildView(ctx, *e)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &tt, nil
}

func (s *Service) buildView(ctx context.Context, e domain.Event) (domain.Timetable, error) {
	bands, err := s.roster.ListBands(ctx, e.ID)
	if err != nil {
		return domain.Timetable{}, err
	}

	slots, err := s.slots.ListSlots(ctx, e.ID)
	if err != nil {
		return domain.Timetable{}, err
	}

	return domain.Timetable{
		Event:   e,
		Visible: true,
		Entries: Entries(timetable.Sort(slots), bands),
	}, nil
}

// Entries decorates sorted slots with band names, labels and durations.
func Entries(slots []domain.Slot, bands []domain.Band) []domain.TimetableEntry {
	names := make(map[uuid.UUID]string, len(bands))
	for _, b := range bands {
		names[b.ID] = b.Name
	}

	out := make([]domain.TimetableEntry, 0, len(slots))
	for _, sl := range slots {
		entry := domain.TimetableEntry{
			Slot:  sl,
			Label: timetable.Label(sl),
		}
		if sl.BandID != nil {
			if name, ok := names[*sl.BandID]; ok {
				entry.BandName = &name
			}
		}
		if d, ok := timetable.SlotDuration(sl); ok {
			entry.DurationMinutes = &d
		}
		out = append(out, entry)
	}

	return out
}

type GenerateRequest struct {
	// Confirm must be set to replace an existing running order.
	Confirm bool
	// BandOrder lists band ids to schedule first, in this order. Bands not
	// listed follow in roster order.
	BandOrder       []uuid.UUID
	ChangeoverSlots bool
	// Template lays out the whole day, rehearsal included, instead of the
	// show alone. ChangeoverSlots is implied.
	Template bool
}

// Generate replaces the event's slots with a fresh running order built from
// the roster and the bands' set lengths. With req.Template the rehearsal
// block is laid out too, following the event's rehearsal order. Nothing is
// written when the roster is empty or when slots exist and req.Confirm is
// false.
//
// Returns:
//   - ErrNoBands if the event has no bands.
//   - ErrConfirmationRequired if slots exist and req.Confirm is false.
func (s *Service) Generate(ctx context.Context, eventID uuid.UUID, req GenerateRequest) ([]domain.Slot, error) {
	const op = "service.timetable.Generate"

	var out []domain.Slot
	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		e, err := s.getEvent(ctx, eventID)
		if err != nil {
			return err
		}

		roster, err := s.roster.ListBands(ctx, eventID)
		if err != nil {
			return err
		}
		if len(roster) == 0 {
			return ErrNoBands
		}

		bands, err := timetable.OrderBands(roster, req.BandOrder)
		if err != nil {
			return timetable.ValidationError{Field: "band_order", Reason: err.Error()}
		}

		existing, err := s.slots.CountSlots(ctx, eventID)
		if err != nil {
			return err
		}
		if existing > 0 && !req.Confirm {
			return ErrConfirmationRequired
		}

		songs, err := s.roster.ListSongsByEvent(ctx, eventID)
		if err != nil {
			return err
		}

		var slots []domain.Slot
		if req.Template {
			slots, err = timetable.GenerateTemplate(timetable.TemplateInput{
				EventID:           eventID,
				Bands:             bands,
				DurationsByBand:   timetable.DurationsByBand(songs),
				OpenTime:          e.OpenTime,
				ShowStartTime:     e.ShowStartTime,
				ChangeoverMinutes: e.DefaultChangeoverMinutes,
				RehearsalOrder:    e.RehearsalOrder,
			})
		} else {
			slots, err = timetable.Generate(timetable.GenerateInput{
				EventID:           eventID,
				Bands:             bands,
				DurationsByBand:   timetable.DurationsByBand(songs),
				ShowStartTime:     e.ShowStartTime,
				ChangeoverMinutes: e.DefaultChangeoverMinutes,
				ChangeoverSlots:   req.ChangeoverSlots,
			})
		}
		if err != nil {
			return err
		}

		if err := s.slots.ReplaceSlots(ctx, eventID, slots); err != nil {
			return err
		}

		out = slots
		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, eventID)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Save writes the editor's list by slot id and returns the stored running
// order. Slots missing from the list are kept; deletes go through
// DeleteSlot. Concurrent saves are not detected, the last one wins.
//
// Returns:
//   - timetable.ValidationError or timetable.ErrUnknownBand for bad input.
//   - ErrSlotConflict if an id belongs to another event.
func (s *Service) Save(ctx context.Context, eventID uuid.UUID, slots []domain.Slot) ([]domain.Slot, error) {
	const op = "service.timetable.Save"

	var out []domain.Slot
	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		if _, err := s.getEvent(ctx, eventID); err != nil {
			return err
		}

		bands, err := s.roster.ListBands(ctx, eventID)
		if err != nil {
			return err
		}
		onRoster := make(map[uuid.UUID]bool, len(bands))
		for _, b := range bands {
			onRoster[b.ID] = true
		}

		normalized := timetable.Normalize(eventID, slots)
		if err := timetable.Validate(normalized, onRoster); err != nil {
			return err
		}

		if err := s.slots.UpsertSlots(ctx, normalized); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrSlotConflict
			}
			if errors.Is(err, repository.ErrForeignKey) {
				return timetable.ErrUnknownBand
			}
			return err
		}

		stored, err := s.slots.ListSlots(ctx, eventID)
		if err != nil {
			return err
		}

		out = timetable.Sort(stored)
		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, eventID)
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return orEmpty(out), nil
}

// DeleteSlot removes one slot right away. The remaining slots keep their
// order values.
func (s *Service) DeleteSlot(ctx context.Context, slotID uuid.UUID) error {
	const op = "service.timetable.DeleteSlot"

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		eventID, err := s.slots.DeleteSlot(ctx, slotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, eventID)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func orEmpty(slots []domain.Slot) []domain.Slot {
	if slots == nil {
		return []domain.Slot{}
	}
	return slots
}
