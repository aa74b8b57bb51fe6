package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestHTTPClientGetWallet verifies wallet decoding over the REST API.
func TestHTTPClientGetWallet(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/wallet" {
			t.Errorf("path = %q, want /api/v1/wallet", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_coins":42,"total_pushups":30,"total_situps":12,"sessions_count":5}`))
	}))
	defer ts.Close()

	wallet, err := NewHTTPClient(ts.URL).GetWallet(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wallet.TotalCoins != 42 || wallet.TotalPushups != 30 {
		t.Errorf("wallet = %+v, want 42 coins / 30 pushups", wallet)
	}
}

// TestHTTPClientQueryRecentReps verifies the limit parameter and rep decoding.
func TestHTTPClientQueryRecentReps(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "25" {
			t.Errorf("limit = %q, want 25", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"0d1c79ee-4e17-4701-a7c8-92ec2ff30f1d","exercise_type":"pushup","coins_earned":1,"source":"pose","created_at":"2026-08-20T07:00:00Z"}]`))
	}))
	defer ts.Close()

	reps, err := NewHTTPClient(ts.URL).QueryRecentReps(context.Background(), 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reps) != 1 || reps[0].ExerciseType != "pushup" {
		t.Errorf("reps = %+v, want one pushup", reps)
	}
}

// TestHTTPClientGetRepStats verifies the bucket-to-agg translation.
func TestHTTPClientGetRepStats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("agg"); got != "weekly" {
			t.Errorf("agg = %q, want weekly", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"bucket":"2026-08-17T00:00:00Z","pushups":10,"situps":4,"coins":14}]`))
	}))
	defer ts.Close()

	end := time.Now()
	points, err := NewHTTPClient(ts.URL).GetRepStats(context.Background(), end.AddDate(0, 0, -30), end, "week")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || points[0].Coins != 14 {
		t.Errorf("points = %+v, want one bucket worth 14 coins", points)
	}
}

// TestHTTPClientServerError verifies non-200 responses surface as errors.
func TestHTTPClientServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	if _, err := NewHTTPClient(ts.URL).GetWallet(context.Background()); err == nil {
		t.Error("expected error for 500 response")
	}
}
