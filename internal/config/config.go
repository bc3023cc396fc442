package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Server    ServerConfig
	Storage   string
	Postgres  PostgresConfig
	Redis     RedisConfig
	Timetable TimetableConfig
	LogLevel  slog.Level
}

type ServerConfig struct {
	Host string
	Port int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type PostgresConfig struct {
	User           string
	Password       string
	Name           string
	Host           string
	Port           int
	SSLMode        string
	MaxConns       int32
	MigrateOnStart bool
}

// DSN renders the connection URL understood by pgxpool.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.Name,
		p.SSLMode,
	)
}

type TimetableConfig struct {
	// ViewTTL bounds how long a published timetable is served from cache.
	ViewTTL time.Duration
	// RateLimit public timetable reads per client per RateWindow. Zero
	// disables limiting.
	RateLimit      int
	RateWindow     time.Duration
	IdempotencyTTL time.Duration
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverPort, err := envInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: envOr("SERVER_HOST", "localhost"),
		Port: serverPort,
	}

	storage := strings.ToLower(envOr("STORAGE", StoragePostgres))
	if storage != StoragePostgres && storage != StorageMemory {
		return nil, fmt.Errorf("%s: invalid STORAGE %q", op, storage)
	}

	var postgresCfg PostgresConfig
	if storage == StoragePostgres {
		postgresCfg, err = loadPostgres()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	redisDB, err := envInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisPool, err := envInt("REDIS_POOL_SIZE", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     envOr("REDIS_ADDR", "localhost:6380"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
		PoolSize: redisPool,
	}

	timetableCfg, err := loadTimetable()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("%s: invalid LOG_LEVEL: %w", op, err)
	}

	return &Config{
		Server:    serverCfg,
		Storage:   storage,
		Postgres:  postgresCfg,
		Redis:     redisCfg,
		Timetable: timetableCfg,
		LogLevel:  level,
	}, nil
}

func loadPostgres() (PostgresConfig, error) {
	port, err := envInt("POSTGRES_PORT", 5432)
	if err != nil {
		return PostgresConfig{}, err
	}

	maxConns, err := envInt("POSTGRES_MAX_CONNS", 0)
	if err != nil {
		return PostgresConfig{}, err
	}

	migrate, err := envBool("MIGRATE_ON_START", true)
	if err != nil {
		return PostgresConfig{}, err
	}

	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_USER")
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_PASSWORD")
	}

	db := os.Getenv("POSTGRES_DB")
	if db == "" {
		return PostgresConfig{}, fmt.Errorf("missing POSTGRES_DB")
	}

	return PostgresConfig{
		User:           user,
		Password:       password,
		Name:           db,
		Host:           envOr("POSTGRES_HOST", "localhost"),
		Port:           port,
		SSLMode:        envOr("POSTGRES_SSLMODE", "disable"),
		MaxConns:       int32(maxConns),
		MigrateOnStart: migrate,
	}, nil
}

func loadTimetable() (TimetableConfig, error) {
	viewTTL, err := envDuration("TIMETABLE_VIEW_TTL", 30*time.Second)
	if err != nil {
		return TimetableConfig{}, err
	}

	limit, err := envInt("TIMETABLE_RATE_LIMIT", 60)
	if err != nil {
		return TimetableConfig{}, err
	}

	window, err := envDuration("TIMETABLE_RATE_WINDOW", time.Minute)
	if err != nil {
		return TimetableConfig{}, err
	}

	idemTTL, err := envDuration("IDEMPOTENCY_TTL", 2*time.Hour)
	if err != nil {
		return TimetableConfig{}, err
	}

	if limit < 0 {
		return TimetableConfig{}, fmt.Errorf("invalid TIMETABLE_RATE_LIMIT: must not be negative")
	}

	return TimetableConfig{
		ViewTTL:        viewTTL,
		RateLimit:      limit,
		RateWindow:     window,
		IdempotencyTTL: idemTTL,
	}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
