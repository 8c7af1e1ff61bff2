package repository

import (
	"context"

	"github.com/ndrsndbk/stampbot/internal/domain/model"
)

// StreakRepository manages customer streak records.
type StreakRepository interface {
	// Get returns the streak record or domain/errors.ErrNotFound.
	Get(ctx context.Context, customerID string) (*model.StreakRecord, error)
	// Upsert inserts or replaces the streak record keyed by customer.
	Upsert(ctx context.Context, record model.StreakRecord) error
}
