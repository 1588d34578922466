// Package store provides the JSON file claim store.
//
// This is the default backend: one <email>.json file per submitter under the
// data directory, overwritten on each submission.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claimpilot/claimpilot/internal/models"
)

// DefaultDirPermissions defines the default permissions for data directories.
const DefaultDirPermissions = 0755

// DefaultFilePermissions defines the default permissions for claim files.
const DefaultFilePermissions = 0644

// JSONFileStore persists claim records as JSON files, one per submitter.
type JSONFileStore struct {
	dir string
}

// NewJSONFileStore creates a JSON file store rooted at the DSN path, creating
// the directory if needed.
func NewJSONFileStore(opts ...Option) (*JSONFileStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("data directory not set")
	}
	if err := os.MkdirAll(cfg.DSN, DefaultDirPermissions); err != nil {
		slog.Error("JSONFileStore: failed to create data directory", "error", err, "dir", cfg.DSN)
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	slog.Debug("JSONFileStore created", "dir", cfg.DSN)
	return &JSONFileStore{dir: cfg.DSN}, nil
}

// SaveClaim writes the record to the submitter's file, replacing any previous
// submission from the same identity.
func (s *JSONFileStore) SaveClaim(record models.ClaimRecord) error {
	path := s.claimPath(record.Submitter.Email)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		slog.Error("JSONFileStore.SaveClaim: marshal failed", "error", err, "email", record.Submitter.Email)
		return fmt.Errorf("failed to marshal claim record: %w", err)
	}
	if err := os.WriteFile(path, data, DefaultFilePermissions); err != nil {
		slog.Error("JSONFileStore.SaveClaim: write failed", "error", err, "path", path)
		return fmt.Errorf("failed to write claim file: %w", err)
	}
	slog.Info("JSONFileStore.SaveClaim: claim saved", "email", record.Submitter.Email, "path", path)
	return nil
}

// GetClaim reads the submitter's latest claim record, or nil when none exists.
func (s *JSONFileStore) GetClaim(email string) (*models.ClaimRecord, error) {
	data, err := os.ReadFile(s.claimPath(email))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		slog.Error("JSONFileStore.GetClaim: read failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to read claim file: %w", err)
	}
	var record models.ClaimRecord
	if err := json.Unmarshal(data, &record); err != nil {
		slog.Error("JSONFileStore.GetClaim: unmarshal failed", "error", err, "email", email)
		return nil, fmt.Errorf("failed to parse claim file: %w", err)
	}
	return &record, nil
}

// Close is a no-op for the file backend.
func (s *JSONFileStore) Close() error {
	return nil
}

// claimPath maps a submitter email to its claim file path. The email is
// sanitized the same way the legacy backend sanitized it.
func (s *JSONFileStore) claimPath(email string) string {
	safe := strings.NewReplacer("@", "_", ".", "_").Replace(email)
	return filepath.Join(s.dir, safe+".json")
}
