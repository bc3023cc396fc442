package postgresrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/ttgo/internal/domain"
	"github.com/kirinyoku/ttgo/internal/repository"
)

// RosterRepo stores bands with their songs and members.
type RosterRepo struct {
	pool *pgxpool.Pool
}

func (r *RosterRepo) handle(ctx context.Context) DB {
	return conn(ctx, r.pool)
}

func (r *RosterRepo) CreateBand(ctx context.Context, b *domain.Band) error {
	const op = "postgresrepo.RosterRepo.CreateBand"

	db := r.handle(ctx)

	if err := db.QueryRow(ctx,
		`INSERT INTO bands(id, event_id, name, note, is_jam_session)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		b.ID, b.EventID, b.Name, b.Note, b.IsJamSession,
	).Scan(&b.CreatedAt); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *RosterRepo) GetBand(ctx context.Context, id uuid.UUID) (*domain.Band, error) {
	const op = "postgresrepo.RosterRepo.GetBand"

	db := r.handle(ctx)

	var b domain.Band
	if err := db.QueryRow(ctx,
		`SELECT id, event_id, name, note, is_jam_session, created_at
		 FROM bands WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.EventID, &b.Name, &b.Note, &b.IsJamSession, &b.CreatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &b, nil
}

// ListBands returns the event roster in creation order.
func (r *RosterRepo) ListBands(ctx context.Context, eventID uuid.UUID) ([]domain.Band, error) {
	const op = "postgresrepo.RosterRepo.ListBands"

	db := r.handle(ctx)

	rows, err := db.Query(ctx,
		`SELECT id, event_id, name, note, is_jam_session, created_at
		 FROM bands
		 WHERE event_id = $1
		 ORDER BY created_at, id`,
		eventID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Band
	for rows.Next() {
		var b domain.Band
		if err := rows.Scan(&b.ID, &b.EventID, &b.Name, &b.Note, &b.IsJamSession, &b.CreatedAt); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *RosterRepo) DeleteBand(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.RosterRepo.DeleteBand"

	db := r.handle(ctx)

	tag, err := db.Exec(ctx, `DELETE FROM bands WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func (r *RosterRepo) CreateSong(ctx context.Context, s *domain.Song) error {
	const op = "postgresrepo.RosterRepo.CreateSong"

	db := r.handle(ctx)

	if _, err := db.Exec(ctx,
		`INSERT INTO songs(id, band_id, title, duration_seconds, entry_type, order_index)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.BandID, s.Title, s.DurationSeconds, string(s.EntryType), s.OrderIndex,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// ListSongs returns the set list of one band.
func (r *RosterRepo) ListSongs(ctx context.Context, bandID uuid.UUID) ([]domain.Song, error) {
	const op = "postgresrepo.RosterRepo.ListSongs"

	return r.querySongs(ctx, op,
		`SELECT id, band_id, title, duration_seconds, entry_type, order_index
		 FROM songs
		 WHERE band_id = $1
		 ORDER BY order_index, id`,
		bandID,
	)
}

// ListSongsByEvent returns the songs of every band in the event.
func (r *RosterRepo) ListSongsByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Song, error) {
	const op = "postgresrepo.RosterRepo.ListSongsByEvent"

	return r.querySongs(ctx, op,
		`SELECT s.id, s.band_id, s.title, s.duration_seconds, s.entry_type, s.order_index
		 FROM songs s
		 JOIN bands b ON b.id = s.band_id
		 WHERE b.event_id = $1
		 ORDER BY s.band_id, s.order_index, s.id`,
		eventID,
	)
}

func (r *RosterRepo) querySongs(ctx context.Context, op, sql string, arg uuid.UUID) ([]domain.Song, error) {
	db := r.handle(ctx)

	rows, err := db.Query(ctx, sql, arg)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Song
	for rows.Next() {
		var s domain.Song
		var entryType string
		if err := rows.Scan(&s.ID, &s.BandID, &s.Title, &s.DurationSeconds, &entryType, &s.OrderIndex); err != nil {
			return nil, wrapDBErr(op, err)
		}
		s.EntryType = domain.EntryType(entryType)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *RosterRepo) CreateMember(ctx context.Context, m *domain.BandMember) error {
	const op = "postgresrepo.RosterRepo.CreateMember"

	db := r.handle(ctx)

	if _, err := db.Exec(ctx,
		`INSERT INTO band_members(id, band_id, user_id, instrument, carry_equipment)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.BandID, m.UserID, m.Instrument, m.CarryEquipment,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// ListMembersByEvent returns the members of every band in the event.
func (r *RosterRepo) ListMembersByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.BandMember, error) {
	const op = "postgresrepo.RosterRepo.ListMembersByEvent"

	db := r.handle(ctx)

	rows, err := db.Query(ctx,
		`SELECT m.id, m.band_id, m.user_id, m.instrument, m.carry_equipment
		 FROM band_members m
		 JOIN bands b ON b.id = m.band_id
		 WHERE b.event_id = $1
		 ORDER BY m.band_id, m.id`,
		eventID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.BandMember
	for rows.Next() {
		var m domain.BandMember
		if err := rows.Scan(&m.ID, &m.BandID, &m.UserID, &m.Instrument, &m.CarryEquipment); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
