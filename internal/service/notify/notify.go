// Package notify fans out "timetable changed" after a committed write: the
// shared cached view is dropped and every instance is told over pub/sub.
package notify

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
)

type Invalidator struct {
	cache  *redisrepo.Cache
	pubsub *redisx.TimetablePubSub
	logger *slog.Logger
}

// New accepts nil cache or pubsub; the matching step is then skipped.
func New(cache *redisrepo.Cache, pubsub *redisx.TimetablePubSub, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{cache: cache, pubsub: pubsub, logger: logger}
}

// TimetableChanged never fails the caller; the write it follows has already
// committed. Errors are logged. A nil Invalidator does nothing.
func (n *Invalidator) TimetableChanged(ctx context.Context, eventID uuid.UUID) {
	if n == nil {
		return
	}

	if n.cache != nil {
		if err := n.cache.InvalidateTimetable(ctx, eventID); err != nil {
			n.logger.Warn("failed to invalidate timetable cache", "event_id", eventID, "error", err)
		}
	}

	if n.pubsub != nil {
		if err := n.pubsub.PublishTimetableChanged(ctx, eventID); err != nil {
			n.logger.Warn("failed to publish timetable change", "event_id", eventID, "error", err)
		}
	}
}

// ChangeNoticed handles a change message from pub/sub, the committing
// instance included. The view cache is shared, so TimetableChanged has
// already dropped the entry; this is a second, later delete. It clears a
// view that a concurrent reader built from pre-commit rows and stored after
// the first delete.
func (n *Invalidator) ChangeNoticed(ctx context.Context, eventID uuid.UUID) {
	if n == nil || n.cache == nil {
		return
	}
	if err := n.cache.InvalidateTimetable(ctx, eventID); err != nil {
		n.logger.Warn("failed to drop timetable view on change notice", "event_id", eventID, "error", err)
		return
	}
	n.logger.Debug("timetable view dropped on change notice", "event_id", eventID)
}
