package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
)

// Pool is the subset of pgxpool.Pool the storage layer relies on.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL. Supabase
// projects are plain Postgres underneath, so a direct DSN talks to the
// same customers / customer_streaks tables the REST surface exposes.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type customerRepository struct {
	storage *Storage
}

type streakRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping verifies database connectivity.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Customers returns the customer repository.
func (s *Storage) Customers() repository.CustomerRepository {
	return &customerRepository{storage: s}
}

// Streaks returns the streak repository.
func (s *Storage) Streaks() repository.StreakRepository {
	return &streakRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
            customer_id TEXT PRIMARY KEY,
            number_of_visits INTEGER NOT NULL DEFAULT 0 CHECK (number_of_visits >= 0),
            last_visit_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS customer_streaks (
            customer_id TEXT PRIMARY KEY,
            streak_days INTEGER NOT NULL DEFAULT 0 CHECK (streak_days >= 0),
            last_day TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- CustomerRepository implementation ---

func (r *customerRepository) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	const query = `SELECT customer_id, number_of_visits, last_visit_at FROM customers WHERE customer_id=$1`
	var c model.Customer
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&c.ID, &c.Visits, &c.LastVisitAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) Upsert(ctx context.Context, customer model.Customer) error {
	const query = `INSERT INTO customers (customer_id, number_of_visits, last_visit_at)
                   VALUES ($1, $2, $3)
                   ON CONFLICT (customer_id) DO UPDATE
                   SET number_of_visits = EXCLUDED.number_of_visits,
                       last_visit_at = EXCLUDED.last_visit_at`
	_, err := r.storage.pool.Exec(ctx, query, customer.ID, customer.Visits, customer.LastVisitAt)
	return err
}

// --- StreakRepository implementation ---

func (r *streakRepository) Get(ctx context.Context, customerID string) (*model.StreakRecord, error) {
	const query = `SELECT customer_id, streak_days, last_day, updated_at FROM customer_streaks WHERE customer_id=$1`
	var rec model.StreakRecord
	err := r.storage.pool.QueryRow(ctx, query, customerID).Scan(&rec.CustomerID, &rec.Days, &rec.LastDay, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *streakRepository) Upsert(ctx context.Context, record model.StreakRecord) error {
	const query = `INSERT INTO customer_streaks (customer_id, streak_days, last_day, updated_at)
                   VALUES ($1, $2, $3, $4)
                   ON CONFLICT (customer_id) DO UPDATE
                   SET streak_days = EXCLUDED.streak_days,
                       last_day = EXCLUDED.last_day,
                       updated_at = EXCLUDED.updated_at`
	_, err := r.storage.pool.Exec(ctx, query, record.CustomerID, record.Days, record.LastDay, record.UpdatedAt)
	return err
}
