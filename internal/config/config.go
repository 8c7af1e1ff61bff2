package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress         string
	GraphAPIVersion    string
	GraphAPIBaseURL    string
	BusinessID         string
	AccessToken        string
	VerifyToken        string
	WebhookAppSecret   string
	DashboardURL       string
	CardBaseURL        string
	DatabaseURI        string
	SupabaseURL        string
	SupabaseServiceKey string
	ShutdownTimeout    time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultGraphAPIVersion = "v23.0"
	defaultGraphAPIBaseURL = "https://graph.facebook.com"
	defaultVerifyToken     = "myverifytoken"
	defaultDashboardURL    = "https://ndrsndbk.github.io/stamp-card-dashboard/"
	defaultCardBaseURL     = "https://lhbtgjvejsnsrlstwlwl.supabase.co/storage/v1/object/public/cards/v1/Demo_Shop_"
	defaultShutdownTimeout = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
// Missing store or messaging credentials are not an error: the affected
// collaborator degrades to a logged no-op instead of failing startup.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		GraphAPIVersion:    getString(lookup, "GRAPH_API_VERSION", defaultGraphAPIVersion),
		GraphAPIBaseURL:    getString(lookup, "GRAPH_API_BASE_URL", defaultGraphAPIBaseURL),
		BusinessID:         getString(lookup, "IG_BUSINESS_ID", ""),
		AccessToken:        getString(lookup, "IG_TOKEN", ""),
		VerifyToken:        getString(lookup, "VERIFY_TOKEN", defaultVerifyToken),
		WebhookAppSecret:   getString(lookup, "WEBHOOK_APP_SECRET", ""),
		DashboardURL:       getString(lookup, "DASHBOARD_URL", defaultDashboardURL),
		CardBaseURL:        getString(lookup, "CARD_BASE_URL", defaultCardBaseURL),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		SupabaseURL:        getString(lookup, "SUPABASE_URL", ""),
		SupabaseServiceKey: getString(lookup, "SUPABASE_SERVICE_KEY", ""),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	// Supabase exposes the same credential under two names; accept both.
	if cfg.SupabaseServiceKey == "" {
		cfg.SupabaseServiceKey = getString(lookup, "SUPABASE_SERVICE_ROLE_KEY", "")
	}

	// PaaS platforms commonly inject PORT instead of a listen address.
	if port, ok := lookup("PORT"); ok && port != "" && cfg.RunAddress == defaultRunAddress {
		cfg.RunAddress = ":" + port
	}

	fs := flag.NewFlagSet("stampbot", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.SupabaseURL, "supabase-url", cfg.SupabaseURL, "Supabase project base URL")
	fs.StringVar(&cfg.VerifyToken, "verify-token", cfg.VerifyToken, "Webhook subscription verify token")
	fs.StringVar(&cfg.DashboardURL, "dashboard-url", cfg.DashboardURL, "Dashboard URL used in REPORT replies")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	return cfg, nil
}

// LogDiagnostics reports which credentials were loaded on boot without
// ever logging their values.
func (c *Config) LogDiagnostics(logger *slog.Logger) {
	logger.Info("env diagnostics",
		slog.Bool("ig_business_id", c.BusinessID != ""),
		slog.Bool("ig_token", c.AccessToken != ""),
		slog.Bool("verify_token", c.VerifyToken != ""),
		slog.Bool("database_uri", c.DatabaseURI != ""),
		slog.Bool("supabase_url", c.SupabaseURL != ""),
		slog.Bool("supabase_service_key", c.SupabaseServiceKey != ""),
		slog.Bool("webhook_app_secret", c.WebhookAppSecret != ""),
		slog.String("dashboard_url", c.DashboardURL),
	)
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
