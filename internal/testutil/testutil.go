// Package testutil provides common test utilities and helpers for ClaimPilot tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claimpilot/claimpilot/internal/api"
	"github.com/claimpilot/claimpilot/internal/flow"
	"github.com/claimpilot/claimpilot/internal/session"
	"github.com/claimpilot/claimpilot/internal/store"
)

// NewTestServer creates a test API server with a deterministic engine (no
// understanding service) and a temp-dir JSON claim store.
func NewTestServer(t *testing.T) *api.Server {
	t.Helper()
	claims, err := store.NewJSONFileStore(store.WithDSN(t.TempDir()))
	if err != nil {
		t.Fatalf("failed to create claim store: %v", err)
	}
	engine := flow.NewEngine(flow.DefaultCatalog(), nil)
	sessions := session.NewManager(16, time.Minute)
	return api.NewServer(engine, sessions, claims)
}

// CreateHTTPRequest creates an HTTP request with optional JSON body for testing.
func CreateHTTPRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to create HTTP request: %v", err)
	}
	return req
}

// AssertHTTPStatus checks the HTTP status code and fails the test if it doesn't match.
func AssertHTTPStatus(t *testing.T, expected, actual int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected status %d, got %d", context, expected, actual)
	}
}

// DecodeJSONBody decodes a recorded JSON response body into a generic map.
func DecodeJSONBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return response
}
