package test

import (
	"context"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
)

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	Customers map[string]model.Customer
	Upserts   []model.Customer
	GetErr    error
	UpsertErr error
}

// NewCustomerRepositoryStub constructs a stub with an initialized map.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{Customers: make(map[string]model.Customer)}
}

// Get returns the stored customer or not found.
func (s *CustomerRepositoryStub) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if customer, ok := s.Customers[customerID]; ok {
		return &customer, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert records the write and stores the customer unless an explicit
// error is configured.
func (s *CustomerRepositoryStub) Upsert(ctx context.Context, customer model.Customer) error {
	s.Upserts = append(s.Upserts, customer)
	if s.UpsertErr != nil {
		return s.UpsertErr
	}
	if s.Customers == nil {
		s.Customers = make(map[string]model.Customer)
	}
	s.Customers[customer.ID] = customer
	return nil
}

// StreakRepositoryStub stores streak records in-memory for tests.
type StreakRepositoryStub struct {
	Records   map[string]model.StreakRecord
	Upserts   []model.StreakRecord
	GetErr    error
	UpsertErr error
}

// NewStreakRepositoryStub constructs a stub with an initialized map.
func NewStreakRepositoryStub() *StreakRepositoryStub {
	return &StreakRepositoryStub{Records: make(map[string]model.StreakRecord)}
}

// Get returns the stored streak record or not found.
func (s *StreakRepositoryStub) Get(ctx context.Context, customerID string) (*model.StreakRecord, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	if record, ok := s.Records[customerID]; ok {
		return &record, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert records the write and stores the record unless an explicit
// error is configured.
func (s *StreakRepositoryStub) Upsert(ctx context.Context, record model.StreakRecord) error {
	s.Upserts = append(s.Upserts, record)
	if s.UpsertErr != nil {
		return s.UpsertErr
	}
	if s.Records == nil {
		s.Records = make(map[string]model.StreakRecord)
	}
	s.Records[record.CustomerID] = record
	return nil
}
