package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
)

const (
	customersTable = "customers"
	streaksTable   = "customer_streaks"
)

// Store talks to the Supabase PostgREST surface. It serves deployments
// that only hold a project URL and service key, without a direct
// database DSN.
type Store struct {
	baseURL    *url.URL
	serviceKey string
	httpClient *http.Client
	logger     *slog.Logger
}

type customerRow struct {
	CustomerID     string    `json:"customer_id"`
	NumberOfVisits int       `json:"number_of_visits"`
	LastVisitAt    time.Time `json:"last_visit_at"`
}

type streakRow struct {
	CustomerID string    `json:"customer_id"`
	StreakDays int       `json:"streak_days"`
	LastDay    time.Time `json:"last_day"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New creates a REST store for the given project URL and service key.
func New(baseURL, serviceKey string, logger *slog.Logger) (*Store, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse supabase url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("supabase url must be absolute")
	}
	return &Store{
		baseURL:    parsed,
		serviceKey: serviceKey,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Customers returns the customer repository.
func (s *Store) Customers() repository.CustomerRepository {
	return &customerRepository{store: s}
}

// Streaks returns the streak repository.
func (s *Store) Streaks() repository.StreakRepository {
	return &streakRepository{store: s}
}

type customerRepository struct {
	store *Store
}

func (r *customerRepository) Get(ctx context.Context, customerID string) (*model.Customer, error) {
	var row customerRow
	if err := r.store.getByKey(ctx, customersTable, customerID, &row); err != nil {
		return nil, err
	}
	return &model.Customer{ID: row.CustomerID, Visits: row.NumberOfVisits, LastVisitAt: row.LastVisitAt}, nil
}

func (r *customerRepository) Upsert(ctx context.Context, customer model.Customer) error {
	return r.store.upsert(ctx, customersTable, customerRow{
		CustomerID:     customer.ID,
		NumberOfVisits: customer.Visits,
		LastVisitAt:    customer.LastVisitAt,
	})
}

type streakRepository struct {
	store *Store
}

func (r *streakRepository) Get(ctx context.Context, customerID string) (*model.StreakRecord, error) {
	var row streakRow
	if err := r.store.getByKey(ctx, streaksTable, customerID, &row); err != nil {
		return nil, err
	}
	return &model.StreakRecord{
		CustomerID: row.CustomerID,
		Days:       row.StreakDays,
		LastDay:    row.LastDay,
		UpdatedAt:  row.UpdatedAt,
	}, nil
}

func (r *streakRepository) Upsert(ctx context.Context, record model.StreakRecord) error {
	return r.store.upsert(ctx, streaksTable, streakRow{
		CustomerID: record.CustomerID,
		StreakDays: record.Days,
		LastDay:    record.LastDay,
		UpdatedAt:  record.UpdatedAt,
	})
}

// getByKey fetches at most one row by customer key and decodes it into
// out. A missing row is ErrNotFound.
func (s *Store) getByKey(ctx context.Context, table, customerID string, out any) error {
	endpoint := s.tableURL(table)
	query := url.Values{}
	query.Set("customer_id", "eq."+customerID)
	query.Set("limit", "1")
	query.Set("select", "*")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return s.restError("select", table, resp)
	}

	var rows []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	if len(rows) == 0 {
		return domainErrors.ErrNotFound
	}
	return json.Unmarshal(rows[0], out)
}

// upsert inserts or merge-updates the row keyed by customer_id.
func (s *Store) upsert(ctx context.Context, table string, row any) error {
	endpoint := s.tableURL(table)
	query := url.Values{}
	query.Set("on_conflict", "customer_id")
	endpoint.RawQuery = query.Encode()

	body, err := json.Marshal(row)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.setHeaders(req)
	req.Header.Set("Prefer", "resolution=merge-duplicates")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return s.restError("upsert", table, resp)
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *Store) tableURL(table string) url.URL {
	endpoint := *s.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/rest/v1/", table)
	return endpoint
}

func (s *Store) setHeaders(req *http.Request) {
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("Content-Type", "application/json")
}

func (s *Store) restError(op, table string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	s.logger.Error("supabase request failed",
		slog.String("op", op),
		slog.String("table", table),
		slog.Int("status", resp.StatusCode),
		slog.String("body", string(body)),
	)
	return fmt.Errorf("supabase %s %s: %s", op, table, resp.Status)
}
