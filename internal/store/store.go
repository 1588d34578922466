// Package store provides claim-record persistence backends for ClaimPilot.
//
// The default backend writes one JSON file per submitter; SQLite and Postgres
// backends are available for deployments that already run a database. All
// backends keep exactly one record per submitter: a later submission
// overwrites the previous one.
package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/claimpilot/claimpilot/internal/models"
)

// ClaimStore persists completed claim records keyed by submitter email.
type ClaimStore interface {
	SaveClaim(record models.ClaimRecord) error
	GetClaim(email string) (*models.ClaimRecord, error)
	Close() error
}

// Opts holds configuration options for store backends.
type Opts struct {
	// DSN is the database connection string, or the data directory for the
	// JSON file backend.
	DSN string
	// Driver selects the backend: "json", "sqlite3" or "postgres".
	Driver string
}

// Option configures store backends.
type Option func(*Opts)

// WithDSN sets the database DSN or data directory.
func WithDSN(dsn string) Option {
	return func(o *Opts) { o.DSN = dsn }
}

// WithDriver sets the backend driver.
func WithDriver(driver string) Option {
	return func(o *Opts) { o.Driver = driver }
}

// NewStore creates the claim store selected by the options. An empty driver
// is inferred from the DSN: Postgres URLs select the Postgres backend,
// anything else the JSON file backend.
func NewStore(opts ...Option) (ClaimStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}

	driver := cfg.Driver
	if driver == "" {
		if strings.HasPrefix(cfg.DSN, "postgres://") || strings.Contains(cfg.DSN, "host=") {
			driver = "postgres"
		} else {
			driver = "json"
		}
	}
	slog.Debug("store.NewStore: selecting backend", "driver", driver, "dsn_set", cfg.DSN != "")

	switch driver {
	case "json":
		return NewJSONFileStore(opts...)
	case "sqlite3", "sqlite":
		return NewSQLiteStore(opts...)
	case "postgres":
		return NewPostgresStore(opts...)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
}
