// Package store provides storage backends for ClaimPilot.
//
// This file implements a PostgreSQL-backed claim store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	_ "embed"

	"github.com/claimpilot/claimpilot/internal/models"
	_ "github.com/lib/pq"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists claim records in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open Postgres connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("Postgres ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("Postgres migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// SaveClaim upserts the claim record on the submitter email.
func (s *PostgresStore) SaveClaim(record models.ClaimRecord) error {
	data, err := json.Marshal(record.ClaimData)
	if err != nil {
		return fmt.Errorf("failed to marshal claim data: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO claims (submitter_email, submitter_name, submitted_at, claim_data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (submitter_email) DO UPDATE SET
			submitter_name = EXCLUDED.submitter_name,
			submitted_at = EXCLUDED.submitted_at,
			claim_data = EXCLUDED.claim_data`,
		record.Submitter.Email, record.Submitter.Name, record.SubmittedAt, string(data))
	if err != nil {
		slog.Error("PostgresStore SaveClaim failed", "error", err, "email", record.Submitter.Email)
		return fmt.Errorf("failed to save claim for %s: %w", record.Submitter.Email, err)
	}
	slog.Debug("PostgresStore SaveClaim succeeded", "email", record.Submitter.Email)
	return nil
}

// GetClaim returns the submitter's latest claim record, or nil when none exists.
func (s *PostgresStore) GetClaim(email string) (*models.ClaimRecord, error) {
	row := s.db.QueryRow(`SELECT submitter_email, submitter_name, submitted_at, claim_data
		FROM claims WHERE submitter_email = $1`, email)

	var record models.ClaimRecord
	var data string
	err := row.Scan(&record.Submitter.Email, &record.Submitter.Name, &record.SubmittedAt, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetClaim scan failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to scan claim row: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &record.ClaimData); err != nil {
		return nil, fmt.Errorf("failed to parse claim data: %w", err)
	}
	return &record, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
