package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/ttgo/internal/config"
	"github.com/kirinyoku/ttgo/internal/migrate"
	"github.com/kirinyoku/ttgo/internal/postgres"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	"github.com/kirinyoku/ttgo/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/ttgo/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/ttgo/internal/repository/redis"
	"github.com/kirinyoku/ttgo/internal/service"
	"github.com/kirinyoku/ttgo/internal/service/notify"
	"github.com/kirinyoku/ttgo/internal/service/timetable"
	httpgin "github.com/kirinyoku/ttgo/internal/transport/http/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	pool       *pgxpool.Pool
	rdb        *redis.Client
	cache      *redisrepo.Cache
	pubsub     *redisx.TimetablePubSub
	changes    *notify.Invalidator
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	repos, err := a.initStorage(ctx)
	if err != nil {
		return nil, err
	}

	rdb, err := redisx.New(ctx, redisx.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		a.close()
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}
	a.rdb = rdb

	a.cache = redisrepo.New(rdb)
	a.pubsub = redisx.NewTimetablePubSub(rdb)
	idempotencyStore := redisrepo.NewIdempotencyStore(rdb, cfg.Timetable.IdempotencyTTL)

	var limiter *redisrepo.SlidingWindowLimiter
	if cfg.Timetable.RateLimit > 0 {
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "timetable", cfg.Timetable.RateLimit, cfg.Timetable.RateWindow)
	}

	services := service.NewServices(repos, a.cache, a.pubsub, limiter, logger, service.Config{
		Timetable: timetable.Config{ViewTTL: cfg.Timetable.ViewTTL},
	})

	a.changes = services.Changes

	router := httpgin.NewRouter(services, idempotencyStore, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return a, nil
}

func (a *App) initStorage(ctx context.Context) (service.Repos, error) {
	if a.cfg.Storage == config.StorageMemory {
		a.logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return service.Repos{
			Tx:     store,
			Events: store.Events(),
			Roster: store.Roster(),
			Slots:  store.Slots(),
		}, nil
	}

	pool, err := postgres.New(ctx, postgres.Config{
		DSN:      a.cfg.Postgres.DSN(),
		MaxConns: a.cfg.Postgres.MaxConns,
	})
	if err != nil {
		return service.Repos{}, fmt.Errorf("failed to initialize postgres: %w", err)
	}
	a.pool = pool

	if a.cfg.Postgres.MigrateOnStart {
		if err := migrate.Up(ctx, pool, a.logger); err != nil {
			pool.Close()
			return service.Repos{}, fmt.Errorf("failed to migrate: %w", err)
		}
	}

	store := postgresrepo.NewStore(pool)
	return service.Repos{
		Tx:     store,
		Events: store.Events(),
		Roster: store.Roster(),
		Slots:  store.Slots(),
	}, nil
}

func (a *App) close() {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.pool != nil {
		a.pool.Close()
	}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Second, later invalidation of the shared view cache on every change
	// message; see notify.Invalidator.ChangeNoticed.
	g.Go(func() error {
		err := a.pubsub.Subscribe(gCtx, nil, a.changes.ChangeNoticed)
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("timetable subscriber: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}
