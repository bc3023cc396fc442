package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
	"github.com/kirinyoku/ttgo/internal/service/notify"
	"github.com/kirinyoku/ttgo/internal/timetable"
	"github.com/kirinyoku/ttgo/internal/uow"
)

type EventReader interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error)
}

type Repo interface {
	CreateBand(ctx context.Context, b *domain.Band) error
	GetBand(ctx context.Context, id uuid.UUID) (*domain.Band, error)
	ListBands(ctx context.Context, eventID uuid.UUID) ([]domain.Band, error)
	DeleteBand(ctx context.Context, id uuid.UUID) error
	CreateSong(ctx context.Context, s *domain.Song) error
	ListSongs(ctx context.Context, bandID uuid.UUID) ([]domain.Song, error)
	ListSongsByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Song, error)
	CreateMember(ctx context.Context, m *domain.BandMember) error
	ListMembersByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.BandMember, error)
}

type Service struct {
	events  EventReader
	repo    Repo
	uow     *uow.UoW
	changes *notify.Invalidator
}

func New(events EventReader, repo Repo, tx uow.Transactor, changes *notify.Invalidator) *Service {
	return &Service{
		events:  events,
		repo:    repo,
		uow:     uow.NewUoW(tx),
		changes: changes,
	}
}

type BandInput struct {
	Name         string
	Note         *string
	IsJamSession bool
}

type SongInput struct {
	Title           string
	DurationSeconds *int
	EntryType       domain.EntryType
	OrderIndex      *int
}

type MemberInput struct {
	UserID         *uuid.UUID
	Instrument     string
	CarryEquipment *string
}

func (s *Service) CreateBand(ctx context.Context, eventID uuid.UUID, in BandInput) (*domain.Band, error) {
	const op = "service.roster.CreateBand"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%s: %w", op, timetable.ValidationError{Field: "name", Reason: "required"})
	}

	b := domain.Band{
		ID:           uuid.New(),
		EventID:      eventID,
		Name:         name,
		Note:         in.Note,
		IsJamSession: in.IsJamSession,
	}
	if err := s.repo.CreateBand(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

// ListBands returns the roster in creation order.
func (s *Service) ListBands(ctx context.Context, eventID uuid.UUID) ([]domain.Band, error) {
	const op = "service.roster.ListBands"

	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	bands, err := s.repo.ListBands(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bands, nil
}

// DeleteBand removes a band with its songs and members. Slots that pointed
// at it stay in the running order without a band.
func (s *Service) DeleteBand(ctx context.Context, bandID uuid.UUID) error {
	const op = "service.roster.DeleteBand"

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		b, err := s.repo.GetBand(ctx, bandID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBandNotFound
			}
			return err
		}

		if err := s.repo.DeleteBand(ctx, bandID); err != nil {
			return err
		}

		after(func(ctx context.Context) {
			s.changes.TimetableChanged(ctx, b.EventID)
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// AddSong appends a set-list entry. Without an explicit OrderIndex it goes
// after the band's last entry.
func (s *Service) AddSong(ctx context.Context, bandID uuid.UUID, in SongInput) (*domain.Song, error) {
	const op = "service.roster.AddSong"

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%s: %w", op, timetable.ValidationError{Field: "title", Reason: "required"})
	}
	entryType := in.EntryType
	if entryType == "" {
		entryType = domain.EntrySong
	}
	if entryType != domain.EntrySong && entryType != domain.EntryMC {
		return nil, fmt.Errorf("%s: %w", op, timetable.ValidationError{Field: "entry_type", Reason: "must be song or mc"})
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return nil, fmt.Errorf("%s: %w", op, timetable.ValidationError{Field: "duration_seconds", Reason: "must not be negative"})
	}

	song := domain.Song{
		ID:              uuid.New(),
		BandID:          bandID,
		Title:           title,
		DurationSeconds: in.DurationSeconds,
		EntryType:       entryType,
	}

	err := s.uow.Do(ctx, func(ctx context.Context, after func(uow.AfterCommit)) error {
		if in.OrderIndex != nil {
			song.OrderIndex = *in.OrderIndex
		} else {
			existing, err := s.repo.ListSongs(ctx, bandID)
			if err != nil {
				return err
			}
			for _, e := range existing {
				if e.OrderIndex >= song.OrderIndex {
					song.OrderIndex = e.OrderIndex + 1
				}
			}
		}

		if err := s.repo.CreateSong(ctx, &song); err != nil {
			if errors.Is(err, repository.ErrForeignKey) {
				return ErrBandNotFound
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &song, nil
}

func (s *Service) ListSongs(ctx context.Context, bandID uuid.UUID) ([]domain.Song, error) {
	const op = "service.roster.ListSongs"

	if _, err := s.repo.GetBand(ctx, bandID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrBandNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	songs, err := s.repo.ListSongs(ctx, bandID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return songs, nil
}

func (s *Service) AddMember(ctx context.Context, bandID uuid.UUID, in MemberInput) (*domain.BandMember, error) {
	const op = "service.roster.AddMember"

	m := domain.BandMember{
		ID:             uuid.New(),
		BandID:         bandID,
		UserID:         in.UserID,
		Instrument:     strings.TrimSpace(in.Instrument),
		CarryEquipment: in.CarryEquipment,
	}
	if err := s.repo.CreateMember(ctx, &m); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, fmt.Errorf("%s: %w", op, ErrBandNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &m, nil
}

// SuggestOrder proposes a running order for the event's roster from band
// notes, set lengths and shared members.
func (s *Service) SuggestOrder(ctx context.Context, eventID uuid.UUID) ([]domain.Band, error) {
	const op = "service.roster.SuggestOrder"

	bands, err := s.ListBands(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	songs, err := s.repo.ListSongsByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	members, err := s.repo.ListMembersByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return timetable.SuggestBandOrder(bands, songs, members), nil
}
