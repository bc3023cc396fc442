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

type EventRepo struct {
	pool *pgxpool.Pool
}

func (r *EventRepo) handle(ctx context.Context) DB {
	return conn(ctx, r.pool)
}

const eventColumns = `id, name, to_char(date, 'YYYY-MM-DD'), status, venue,
	default_changeover_minutes, open_time, show_start_time, normal_rehearsal_order,
	timetable_is_published, created_at, updated_at`

func scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	var status, rehearsal string
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Date,
		&status,
		&e.Venue,
		&e.DefaultChangeoverMinutes,
		&e.OpenTime,
		&e.ShowStartTime,
		&rehearsal,
		&e.TimetableIsPublished,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	e.Status = domain.EventStatus(status)
	e.RehearsalOrder = domain.RehearsalOrder(rehearsal)
	return e, err
}

// CreateEvent inserts e and fills its timestamps.
func (r *EventRepo) CreateEvent(ctx context.Context, e *domain.Event) error {
	const op = "postgresrepo.EventRepo.CreateEvent"

	db := r.handle(ctx)

	err := db.QueryRow(ctx,
		`INSERT INTO events(id, name, date, status, venue, default_changeover_minutes,
		                    open_time, show_start_time, normal_rehearsal_order,
		                    timetable_is_published)
		 VALUES ($1, $2, $3::text::date, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		e.ID, e.Name, e.Date, string(e.Status), e.Venue,
		e.DefaultChangeoverMinutes, e.OpenTime, e.ShowStartTime,
		rehearsalOrder(e.RehearsalOrder), e.TimetableIsPublished,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// GetEvent returns repository.ErrNotFound when no event has the id.
func (r *EventRepo) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	const op = "postgresrepo.EventRepo.GetEvent"

	db := r.handle(ctx)

	e, err := scanEvent(db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1`,
		id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &e, nil
}

// ListEvents returns events newest date first.
func (r *EventRepo) ListEvents(ctx context.Context) ([]domain.Event, error) {
	const op = "postgresrepo.EventRepo.ListEvents"

	db := r.handle(ctx)

	rows, err := db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM events
		 ORDER BY date DESC, created_at DESC`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

// UpdateEvent overwrites the editable columns of e.
func (r *EventRepo) UpdateEvent(ctx context.Context, e *domain.Event) error {
	const op = "postgresrepo.EventRepo.UpdateEvent"

	db := r.handle(ctx)

	err := db.QueryRow(ctx,
		`UPDATE events
		 SET name = $2, date = $3::text::date, status = $4, venue = $5,
		     default_changeover_minutes = $6, open_time = $7, show_start_time = $8,
		     normal_rehearsal_order = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		e.ID, e.Name, e.Date, string(e.Status), e.Venue,
		e.DefaultChangeoverMinutes, e.OpenTime, e.ShowStartTime,
		rehearsalOrder(e.RehearsalOrder),
	).Scan(&e.UpdatedAt)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// SetPublished flips only timetable_is_published.
func (r *EventRepo) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	const op = "postgresrepo.EventRepo.SetPublished"

	db := r.handle(ctx)

	tag, err := db.Exec(ctx,
		`UPDATE events
		 SET timetable_is_published = $2, updated_at = now()
		 WHERE id = $1`,
		id, published,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

// DeleteEvent removes the event; bands, songs, members and slots cascade.
func (r *EventRepo) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	const op = "postgresrepo.EventRepo.DeleteEvent"

	db := r.handle(ctx)

	tag, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

func rehearsalOrder(o domain.RehearsalOrder) string {
	if o == "" {
		return string(domain.RehearsalSame)
	}
	return string(o)
}
