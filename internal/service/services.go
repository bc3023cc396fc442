package service

import (
	"log/slog"

	redisx "github.com/kirinyoku/ttgo/internal/redis"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service/events"
	"github.com/kirinyoku/ttgo/internal/service/notify"
	"github.com/kirinyoku/ttgo/internal/service/roster"
	"github.com/kirinyoku/ttgo/internal/service/timetable"
	"github.com/kirinyoku/ttgo/internal/uow"
)

type Services struct {
	Events    *events.Service
	Roster    *roster.Service
	Timetable *timetable.Service
	// Changes is shared by the services above; the pub/sub subscriber
	// reports incoming change messages to it.
	Changes   *notify.Invalidator
}

// Repos are the storage collaborators. The postgres and the in-memory
// store both provide them.
type Repos struct {
	Tx     uow.Transactor
	Events events.Repo
	Roster roster.Repo
	Slots  timetable.SlotRepo
}

type Config struct {
	Timetable timetable.Config
}

func NewServices(
	repos Repos,
	cache *redisrepo.Cache,
	pubsub *redisx.TimetablePubSub,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	cfg Config,
) *Services {
	changes := notify.New(cache, pubsub, logger)

	return &Services{
		Events: events.New(repos.Events, repos.Tx, changes),
		Roster: roster.New(repos.Events, repos.Roster, repos.Tx, changes),
		Timetable: timetable.New(timetable.Deps{
			Events:  repos.Events,
			Roster:  repos.Roster,
			Slots:   repos.Slots,
			Tx:      repos.Tx,
			Cache:   cache,
			Limiter: limiter,
			Changes: changes,
		}, cfg.Timetable),
		Changes: changes,
	}
}
