package repository

import (
	"context"

	"github.com/ndrsndbk/stampbot/internal/domain/model"
)

// CustomerRepository manages stamp card customer records.
type CustomerRepository interface {
	// Get returns the customer or domain/errors.ErrNotFound.
	Get(ctx context.Context, customerID string) (*model.Customer, error)
	// Upsert inserts the customer or replaces the stored fields when the
	// key already exists.
	Upsert(ctx context.Context, customer model.Customer) error
}
