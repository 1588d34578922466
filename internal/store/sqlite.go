// Package store provides storage backends for ClaimPilot.
//
// This file implements an SQLite-backed claim store.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	"github.com/claimpilot/claimpilot/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists claim records in an SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN. The DSN is a
// file path to the SQLite database file; its directory is created if missing.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}
	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// SaveClaim upserts the claim record on the submitter email.
func (s *SQLiteStore) SaveClaim(record models.ClaimRecord) error {
	data, err := json.Marshal(record.ClaimData)
	if err != nil {
		return fmt.Errorf("failed to marshal claim data: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO claims (submitter_email, submitter_name, submitted_at, claim_data)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(submitter_email) DO UPDATE SET
			submitter_name = excluded.submitter_name,
			submitted_at = excluded.submitted_at,
			claim_data = excluded.claim_data`,
		record.Submitter.Email, record.Submitter.Name, record.SubmittedAt, string(data))
	if err != nil {
		slog.Error("SQLiteStore SaveClaim failed", "error", err, "email", record.Submitter.Email)
		return fmt.Errorf("failed to save claim for %s: %w", record.Submitter.Email, err)
	}
	slog.Debug("SQLiteStore SaveClaim succeeded", "email", record.Submitter.Email)
	return nil
}

// GetClaim returns the submitter's latest claim record, or nil when none exists.
func (s *SQLiteStore) GetClaim(email string) (*models.ClaimRecord, error) {
	row := s.db.QueryRow(`SELECT submitter_email, submitter_name, submitted_at, claim_data
		FROM claims WHERE submitter_email = ?`, email)

	var record models.ClaimRecord
	var data string
	err := row.Scan(&record.Submitter.Email, &record.Submitter.Name, &record.SubmittedAt, &data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetClaim scan failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to scan claim row: %w", err)
	}
	if err := json.Unmarshal([]byte(data), &record.ClaimData); err != nil {
		return nil, fmt.Errorf("failed to parse claim data: %w", err)
	}
	return &record, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
