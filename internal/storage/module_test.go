package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ndrsndbk/stampbot/internal/config"
	domainErrors "github.com/ndrsndbk/stampbot/internal/domain/errors"
	"github.com/ndrsndbk/stampbot/internal/domain/model"
	"github.com/ndrsndbk/stampbot/internal/storage/supabase"
	testhelpers "github.com/ndrsndbk/stampbot/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewFactoryWithoutCredentialsDegrades(t *testing.T) {
	lc := &testhelpers.LifecycleRecorder{}
	factory, err := newFactory(factoryParams{
		Ctx:       context.Background(),
		Lifecycle: lc,
		Config:    &config.Config{},
		Logger:    testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := factory.(*noopStore); !ok {
		t.Fatalf("expected noop store, got %T", factory)
	}
	if len(lc.Hooks) != 0 {
		t.Fatalf("expected no lifecycle hooks for noop store, got %d", len(lc.Hooks))
	}
}

func TestNewFactoryPrefersSupabaseREST(t *testing.T) {
	factory, err := newFactory(factoryParams{
		Ctx:       context.Background(),
		Lifecycle: &testhelpers.LifecycleRecorder{},
		Config: &config.Config{
			SupabaseURL:        "https://proj.supabase.co",
			SupabaseServiceKey: "svc-key",
		},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := factory.(*supabase.Store); !ok {
		t.Fatalf("expected supabase store, got %T", factory)
	}
}

func TestNewFactoryRejectsBadSupabaseURL(t *testing.T) {
	_, err := newFactory(factoryParams{
		Ctx:       context.Background(),
		Lifecycle: &testhelpers.LifecycleRecorder{},
		Config: &config.Config{
			SupabaseURL:        "://bad",
			SupabaseServiceKey: "svc-key",
		},
		Logger: testLogger(),
	})
	if err == nil {
		t.Fatal("expected error for malformed supabase url")
	}
}

func TestNewFactoryKeyWithoutURLDegrades(t *testing.T) {
	factory, err := newFactory(factoryParams{
		Ctx:       context.Background(),
		Lifecycle: &testhelpers.LifecycleRecorder{},
		Config:    &config.Config{SupabaseServiceKey: "svc-key"},
		Logger:    testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := factory.(*noopStore); !ok {
		t.Fatalf("expected noop store, got %T", factory)
	}
}

func TestNoopStoreBehaviour(t *testing.T) {
	factory := NewNoop(testLogger())
	ctx := context.Background()

	if _, err := factory.Customers().Get(ctx, "42"); !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := factory.Customers().Upsert(ctx, model.Customer{ID: "42"}); !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := factory.Streaks().Get(ctx, "42"); !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := factory.Streaks().Upsert(ctx, model.StreakRecord{CustomerID: "42"}); !errors.Is(err, domainErrors.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
