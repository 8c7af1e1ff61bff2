package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
)

// Streak reward thresholds. Crossing two earns an encouragement
// message, crossing five earns a double stamp.
const (
	streakTwo  = 2
	streakFive = 5
)

// StreakUseCase advances a customer's check-in streak. The counter
// grows by one on every advance; the stored last_day is informational
// and is never compared against the calendar.
type StreakUseCase struct {
	streaks repository.StreakRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewStreakUseCase constructs StreakUseCase.
func NewStreakUseCase(streaks repository.StreakRepository, logger *slog.Logger) *StreakUseCase {
	return &StreakUseCase{
		streaks: streaks,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// Advance increments the streak and persists it best-effort: a failed
// read counts as no prior streak, and a failed write still returns the
// computed result so the reply to the customer is never blocked by a
// storage hiccup.
func (u *StreakUseCase) Advance(ctx context.Context, customerID string) model.StreakAdvance {
	previous := 0
	record, err := u.streaks.Get(ctx, customerID)
	switch {
	case err == nil:
		previous = record.Days
	case errors.Is(err, domainErrors.ErrNotFound):
	case errors.Is(err, domainErrors.ErrNotConfigured):
	default:
		u.logger.Error("streak lookup failed",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}

	days := previous + 1
	advance := model.StreakAdvance{
		Days:        days,
		CrossedTwo:  days >= streakTwo && previous < streakTwo,
		CrossedFive: days >= streakFive && previous < streakFive,
	}

	now := u.now()
	if err := u.streaks.Upsert(ctx, model.StreakRecord{
		CustomerID: customerID,
		Days:       days,
		LastDay:    now,
		UpdatedAt:  now,
	}); err != nil && !errors.Is(err, domainErrors.ErrNotConfigured) {
		u.logger.Error("streak upsert failed",
			slog.String("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}

	return advance
}
