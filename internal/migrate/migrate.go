// Package migrate applies the versioned schema of the timetable database.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type migration struct {
	Version int
	Queries []string
}

// Up creates the migrations table when missing and runs every migration that
// has not succeeded yet. Each migration runs in its own transaction.
func Up(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	const op = "migrate.Up"

	if _, err := pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	); err != nil {
		return fmt.Errorf("%s: create migrations table: %w", op, err)
	}

	for _, m := range migrations {
		if err := m.apply(ctx, pool, logger); err != nil {
			return fmt.Errorf("%s: version %d: %w", op, m.Version, err)
		}
	}

	return nil
}

func (m migration) apply(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	var applied int
	err = tx.QueryRow(ctx, `SELECT version FROM schema_migrations WHERE version = $1`, m.Version).Scan(&applied)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, pgx.ErrNoRows):
		return err
	}

	logger.Info("applying migration", "version", m.Version, "queries", len(m.Queries))

	for i, q := range m.Queries {
		if _, err := tx.Exec(ctx, q); err != nil {
			return fmt.Errorf("query %d of %d: %w", i+1, len(m.Queries), err)
		}
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations(version) VALUES ($1)`, m.Version); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

var migrations = []migration{
	{
		Version: 1,
		Queries: []string{
			`CREATE TABLE events (
				id                          UUID PRIMARY KEY,
				name                        TEXT NOT NULL,
				date                        DATE NOT NULL,
				status                      TEXT NOT NULL DEFAULT 'draft'
				                            CHECK (status IN ('draft', 'recruiting', 'fixed', 'closed')),
				venue                       TEXT,
				default_changeover_minutes  INTEGER NOT NULL DEFAULT 15 CHECK (default_changeover_minutes >= 0),
				show_start_time             TEXT,
				timetable_is_published      BOOLEAN NOT NULL DEFAULT FALSE,
				created_at                  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at                  TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE bands (
				id              UUID PRIMARY KEY,
				event_id        UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				name            TEXT NOT NULL,
				note            TEXT,
				is_jam_session  BOOLEAN NOT NULL DEFAULT FALSE,
				created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX idx_bands_event ON bands (event_id, created_at)`,
			`CREATE TABLE songs (
				id                UUID PRIMARY KEY,
				band_id           UUID NOT NULL REFERENCES bands(id) ON DELETE CASCADE,
				title             TEXT NOT NULL,
				duration_seconds  INTEGER CHECK (duration_seconds >= 0),
				entry_type        TEXT NOT NULL DEFAULT 'song' CHECK (entry_type IN ('song', 'mc')),
				order_index       INTEGER NOT NULL DEFAULT 0
			)`,
			`CREATE INDEX idx_songs_band ON songs (band_id, order_index)`,
			`CREATE TABLE event_slots (
				id                  UUID PRIMARY KEY,
				event_id            UUID NOT NULL REFERENCES events(id) ON DELETE CASCADE,
				band_id             UUID REFERENCES bands(id) ON DELETE SET NULL,
				slot_type           TEXT NOT NULL CHECK (slot_type IN ('band', 'break', 'mc', 'other')),
				order_in_event      INTEGER CHECK (order_in_event >= 1),
				start_time          TEXT,
				end_time            TEXT,
				changeover_minutes  INTEGER CHECK (changeover_minutes >= 0),
				note                TEXT
			)`,
			`CREATE INDEX idx_event_slots_event ON event_slots (event_id, order_in_event)`,
		},
	},
	{
		Version: 2,
		Queries: []string{
			`CREATE TABLE band_members (
				id               UUID PRIMARY KEY,
				band_id          UUID NOT NULL REFERENCES bands(id) ON DELETE CASCADE,
				user_id          UUID,
				instrument       TEXT NOT NULL DEFAULT '',
				carry_equipment  TEXT
			)`,
			`CREATE INDEX idx_band_members_band ON band_members (band_id)`,
		},
	},
	{
		Version: 3,
		Queries: []string{
			`ALTER TABLE events
				ADD COLUMN open_time TEXT,
				ADD COLUMN normal_rehearsal_order TEXT NOT NULL DEFAULT 'same'
					CHECK (normal_rehearsal_order IN ('same', 'reverse'))`,
			`ALTER TABLE event_slots
				ADD COLUMN slot_phase TEXT NOT NULL DEFAULT 'show'
					CHECK (slot_phase IN ('show', 'rehearsal_normal', 'rehearsal_pre'))`,
		},
	},
}
