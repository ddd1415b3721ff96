package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"coinlab/adapters/rng"
	"coinlab/adapters/sqlite"
	"coinlab/app"
	"coinlab/internal"
	"coinlab/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := sqlite.NewSessionRepository(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	sim := config.SimulationConfig{
		MaxFlips:           1000,
		DefaultFlips:       10,
		DefaultProbability: 0.5,
		SignificanceLevel:  0.05,
		ConfidenceLevel:    0.95,
	}
	service := app.NewFlipService(rng.NewAdapter(), store, sim, internal.NewLogger(internal.LogLevelError))
	return NewServer(service, gin.TestMode, internal.NewLogger(internal.LogLevelError))
}

func postJSON(t *testing.T, server *Server, target string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

// TestHealthz verifies the liveness endpoint
func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// TestSimulate verifies a simulation run returns trials, summary and test,
// and mints a session id when none is given.
func TestSimulate(t *testing.T) {
	server := newTestServer(t)

	rec := postJSON(t, server, "/api/v1/simulations", map[string]interface{}{
		"count":       100,
		"probability": 0.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		SessionID string          `json:"session_id"`
		Result    *app.FlipResult `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, err := uuid.Parse(resp.SessionID); err != nil {
		t.Errorf("session_id is not a UUID: %q", resp.SessionID)
	}
	if resp.Result == nil {
		t.Fatal("expected a result payload")
	}
	if resp.Result.Summary.Total != 100 {
		t.Errorf("expected 100 trials, got %d", resp.Result.Summary.Total)
	}
	if resp.Result.Test == nil {
		t.Error("expected a test result")
	}
}

// TestSimulate_BadRequests verifies malformed and invalid payloads map to
// 400.
func TestSimulate_BadRequests(t *testing.T) {
	server := newTestServer(t)

	cases := []struct {
		name    string
		payload interface{}
	}{
		{"missing count", map[string]interface{}{"probability": 0.5}},
		{"count over cap", map[string]interface{}{"count": 5000, "probability": 0.5}},
		{"probability out of range", map[string]interface{}{"count": 10, "probability": 1.5}},
		{"bad session id", map[string]interface{}{"count": 10, "probability": 0.5, "session_id": "not-a-uuid"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, server, "/api/v1/simulations", tc.payload)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

// TestGetSimulation verifies stored snapshots round-trip through the API
func TestGetSimulation(t *testing.T) {
	server := newTestServer(t)
	session := uuid.New().String()

	rec := postJSON(t, server, "/api/v1/simulations", map[string]interface{}{
		"session_id":  session,
		"count":       50,
		"probability": 0.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/"+session, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var snapshot struct {
		Version int `json:"version"`
		Summary struct {
			Total int `json:"total"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snapshot); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snapshot.Version != 1 {
		t.Errorf("expected version 1, got %d", snapshot.Version)
	}
	if snapshot.Summary.Total != 50 {
		t.Errorf("expected 50 trials, got %d", snapshot.Summary.Total)
	}
}

// TestGetSimulation_Unknown verifies unknown and malformed sessions
func TestGetSimulation_Unknown(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/"+uuid.New().String(), nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session: expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed session: expected 400, got %d", rec.Code)
	}
}

// TestDeleteSimulation verifies delete removes the snapshot
func TestDeleteSimulation(t *testing.T) {
	server := newTestServer(t)
	session := uuid.New().String()

	rec := postJSON(t, server, "/api/v1/simulations", map[string]interface{}{
		"session_id":  session,
		"count":       10,
		"probability": 0.5,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("simulate failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/simulations/"+session, nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/simulations/"+session, nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

// TestStandaloneTest verifies the counts-only test endpoint and its
// undefined case.
func TestStandaloneTest(t *testing.T) {
	server := newTestServer(t)

	rec := postJSON(t, server, "/api/v1/tests", map[string]interface{}{"heads": 50, "total": 100})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		PValue float64 `json:"p_value"`
		IsFair bool    `json:"is_fair"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !result.IsFair {
		t.Error("an exact split should read as fair")
	}
	if result.PValue < 0.999 {
		t.Errorf("expected p-value near 1 for an exact split, got %f", result.PValue)
	}

	// total is required by binding, so zero trials never reaches the engine
	rec = postJSON(t, server, "/api/v1/tests", map[string]interface{}{"heads": 0, "total": 0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero total, got %d", rec.Code)
	}
}

// TestStandaloneTest_InvalidCounts verifies heads beyond total is rejected
func TestStandaloneTest_InvalidCounts(t *testing.T) {
	server := newTestServer(t)

	rec := postJSON(t, server, "/api/v1/tests", map[string]interface{}{"heads": 20, "total": 10})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for heads > total, got %d", rec.Code)
	}
}
