package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
)

type RosterRepo struct {
	s *Store
}

func (r *RosterRepo) CreateBand(ctx context.Context, b *domain.Band) error {
	const op = "memory.RosterRepo.CreateBand"

	defer r.s.lock(ctx)()

	if _, ok := r.s.events[b.EventID]; !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrForeignKey)
	}
	if _, ok := r.s.bands[b.ID]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}

	b.CreatedAt = r.s.now()
	r.s.seq++
	r.s.bandSeq[b.ID] = r.s.seq
	r.s.bands[b.ID] = *b

	return nil
}

func (r *RosterRepo) GetBand(ctx context.Context, id uuid.UUID) (*domain.Band, error) {
	const op = "memory.RosterRepo.GetBand"

	defer r.s.lock(ctx)()

	b, ok := r.s.bands[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return &b, nil
}

func (r *RosterRepo) ListBands(ctx context.Context, eventID uuid.UUID) ([]domain.Band, error) {
	defer r.s.lock(ctx)()

	var out []domain.Band
	for _, b := range r.s.bands {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return r.s.bandSeq[out[i].ID] < r.s.bandSeq[out[j].ID]
	})

	return out, nil
}

func (r *RosterRepo) DeleteBand(ctx context.Context, id uuid.UUID) error {
	const op = "memory.RosterRepo.DeleteBand"

	defer r.s.lock(ctx)()

	if _, ok := r.s.bands[id]; !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	r.s.dropBand(id)

	return nil
}

// dropBand deletes a band with its songs and members and unassigns it from
// slots. Callers hold the lock.
func (s *Store) dropBand(id uuid.UUID) {
	for sid, song := range s.songs {
		if song.BandID == id {
			delete(s.songs, sid)
		}
	}
	for mid, m := range s.members {
		if m.BandID == id {
			delete(s.members, mid)
		}
	}
	for sid, sl := range s.slots {
		if sl.BandID != nil && *sl.BandID == id {
			sl.BandID = nil
			s.slots[sid] = sl
		}
	}
	delete(s.bands, id)
	delete(s.bandSeq, id)
}

func (r *RosterRepo) CreateSong(ctx context.Context, song *domain.Song) error {
	const op = "memory.RosterRepo.CreateSong"

	defer r.s.lock(ctx)()

	if _, ok := r.s.bands[song.BandID]; !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrForeignKey)
	}
	if _, ok := r.s.songs[song.ID]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}

	r.s.songs[song.ID] = *song
	return nil
}

func (r *RosterRepo) ListSongs(ctx context.Context, bandID uuid.UUID) ([]domain.Song, error) {
	defer r.s.lock(ctx)()

	return r.s.filterSongs(func(song domain.Song) bool { return song.BandID == bandID }), nil
}

func (r *RosterRepo) ListSongsByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Song, error) {
	defer r.s.lock(ctx)()

	return r.s.filterSongs(func(song domain.Song) bool {
		b, ok := r.s.bands[song.BandID]
		return ok && b.EventID == eventID
	}), nil
}

func (s *Store) filterSongs(keep func(domain.Song) bool) []domain.Song {
	var out []domain.Song
	for _, song := range s.songs {
		if keep(song) {
			out = append(out, song)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].BandID != out[j].BandID {
			return out[i].BandID.String() < out[j].BandID.String()
		}
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out
}

func (r *RosterRepo) CreateMember(ctx context.Context, m *domain.BandMember) error {
	const op = "memory.RosterRepo.CreateMember"

	defer r.s.lock(ctx)()

	if _, ok := r.s.bands[m.BandID]; !ok {
		return fmt.Errorf("%s: %w", op, repository.ErrForeignKey)
	}
	if _, ok := r.s.members[m.ID]; ok {
		return fmt.Errorf("%s: %w", op, repository.ErrConflict)
	}

	r.s.members[m.ID] = *m
	return nil
}

func (r *RosterRepo) ListMembersByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.BandMember, error) {
	defer r.s.lock(ctx)()

	var out []domain.BandMember
	for _, m := range r.s.members {
		if b, ok := r.s.bands[m.BandID]; ok && b.EventID == eventID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].BandID != out[j].BandID {
			return out[i].BandID.String() < out[j].BandID.String()
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}
