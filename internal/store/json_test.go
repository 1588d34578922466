package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpilot/claimpilot/internal/models"
)

func newTestStore(t *testing.T) (*JSONFileStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewJSONFileStore(WithDSN(dir))
	require.NoError(t, err)
	return s, dir
}

func sampleRecord(email string, claimData map[string]string) models.ClaimRecord {
	return models.ClaimRecord{
		Submitter:   models.Identity{Name: "Demo User One", Email: email},
		SubmittedAt: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		ClaimData:   claimData,
	}
}

func TestJSONFileStoreSaveAndGet(t *testing.T) {
	s, _ := newTestStore(t)

	record := sampleRecord("demo1@company.com", map[string]string{
		"policyNumber": "POL-2024-001",
		"incidentType": "Collision",
	})
	require.NoError(t, s.SaveClaim(record))

	got, err := s.GetClaim("demo1@company.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.Submitter, got.Submitter)
	assert.Equal(t, record.ClaimData, got.ClaimData)
	assert.True(t, record.SubmittedAt.Equal(got.SubmittedAt))
}

func TestJSONFileStoreGetMissing(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.GetClaim("nobody@company.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestJSONFileStoreLastWriteWins(t *testing.T) {
	s, _ := newTestStore(t)

	first := sampleRecord("demo1@company.com", map[string]string{"incidentType": "Theft"})
	second := sampleRecord("demo1@company.com", map[string]string{"incidentType": "Collision"})
	require.NoError(t, s.SaveClaim(first))
	require.NoError(t, s.SaveClaim(second))

	got, err := s.GetClaim("demo1@company.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Collision", got.ClaimData["incidentType"])
}

func TestJSONFileStorePathSanitization(t *testing.T) {
	s, dir := newTestStore(t)

	require.NoError(t, s.SaveClaim(sampleRecord("demo1@company.com", nil)))

	_, err := os.Stat(filepath.Join(dir, "demo1_company_com.json"))
	assert.NoError(t, err, "claim file should use the sanitized email as its name")
}

func TestJSONFileStoreRequiresDirectory(t *testing.T) {
	_, err := NewJSONFileStore()
	assert.Error(t, err)
}

func TestNewStoreDriverInference(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(WithDSN(dir))
	require.NoError(t, err)
	defer s.Close()
	_, isJSON := s.(*JSONFileStore)
	assert.True(t, isJSON, "plain path DSN should select the JSON backend")

	_, err = NewStore(WithDSN(dir), WithDriver("bogus"))
	assert.Error(t, err)
}
