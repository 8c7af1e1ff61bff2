package storage

import (
	"context"
	"log/slog"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
)

// noopStore stands in when no store credentials are configured. Reads
// come back empty, writes are dropped, and both are logged so the
// degradation is visible in server logs rather than crashing the bot.
type noopStore struct {
	logger *slog.Logger
}

// NewNoop returns a degraded factory that never touches a real store.
func NewNoop(logger *slog.Logger) repository.Factory {
	return &noopStore{logger: logger}
}

func (s *noopStore) Customers() repository.CustomerRepository {
	return noopCustomers{store: s}
}

func (s *noopStore) Streaks() repository.StreakRepository {
	return noopStreaks{store: s}
}

type noopCustomers struct {
	store *noopStore
}

func (r noopCustomers) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	r.store.warn("get customer")
	return nil, domainErrors.ErrNotConfigured
}

func (r noopCustomers) Upsert(ctx context.Context, customer model.Customer) error {
	r.store.warn("upsert customer")
	return domainErrors.ErrNotConfigured
}

type noopStreaks struct {
	store *noopStore
}

func (r noopStreaks) Get(ctx context.Context, customerID string) (*model.StreakRecord, error) {
	r.store.warn("get streak")
	return nil, domainErrors.ErrNotConfigured
}

func (r noopStreaks) Upsert(ctx context.Context, record model.StreakRecord) error {
	r.store.warn("upsert streak")
	return domainErrors.ErrNotConfigured
}

func (s *noopStore) warn(op string) {
	s.logger.Warn("state store not configured", slog.String("op", op))
}
