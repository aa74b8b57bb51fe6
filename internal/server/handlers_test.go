package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testServer() *Server {
	// No database: these tests only exercise paths that return before
	// touching storage.
	return &Server{log: slog.New(slog.DiscardHandler)}
}

// TestHandleRoot verifies the service banner.
func TestHandleRoot(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.handleRoot(rec, httptest.NewRequest(http.MethodGet, "/api/v1/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !strings.Contains(body["message"], "RepCoin") {
		t.Errorf("message = %q, want RepCoin banner", body["message"])
	}
}

// TestCreateRepInvalidJSON verifies malformed bodies get a 400.
func TestCreateRepInvalidJSON(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reps", strings.NewReader("{nope"))
	s.handleCreateRep(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestCreateRepUnknownExercise verifies unknown exercise types get a 400.
func TestCreateRepUnknownExercise(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reps", strings.NewReader(`{"exercise_type":"burpee"}`))
	s.handleCreateRep(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestCreateSessionNegativeCounts verifies negative counts get a 400.
func TestCreateSessionNegativeCounts(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", strings.NewReader(`{"pushups":-1}`))
	s.handleCreateSession(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestCreateStatusMissingName verifies an empty client_name gets a 400.
func TestCreateStatusMissingName(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/status", strings.NewReader(`{}`))
	s.handleCreateStatus(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestParseTimeRangeDefaults verifies the 7-day default window.
func TestParseTimeRangeDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reps/stats", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := end.Sub(start); d < 167*time.Hour || d > 169*time.Hour {
		t.Errorf("default range = %v, want ~168h", d)
	}
}

// TestParseTimeRangeDateOnly verifies date-only bounds and the end-of-day
// adjustment for the end date.
func TestParseTimeRangeDateOnly(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reps/stats?start=2026-08-01&end=2026-08-02", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 {
		t.Errorf("start day = %d, want 1", start.Day())
	}
	if end.Day() != 3 {
		t.Errorf("end day = %d, want 3 (end of Aug 2)", end.Day())
	}
}

// TestParseTimeRangeInvalid verifies garbage bounds error out.
func TestParseTimeRangeInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reps/stats?start=yesterday", nil)
	if _, _, err := parseTimeRange(req); err == nil {
		t.Error("expected error for invalid start")
	}
}

// TestParseLimit verifies the limit query parameter with fallback.
func TestParseLimit(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"", 100},
		{"?limit=25", 25},
		{"?limit=0", 100},
		{"?limit=-3", 100},
		{"?limit=abc", 100},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reps"+tc.query, nil)
		if got := parseLimit(req, 100); got != tc.want {
			t.Errorf("parseLimit(%q) = %d, want %d", tc.query, got, tc.want)
		}
	}
}
