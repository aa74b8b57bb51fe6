package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/repcoin/repcoin/internal/config"
)

func dialLive(t *testing.T) (*websocket.Conn, func()) {
	t.Helper()
	s := New(nil, "secret", config.EngineConfig{}, slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(s)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/live"
	header := http.Header{"X-API-Key": []string{"secret"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		ts.Close()
		t.Fatalf("dial: %v", err)
	}
	return conn, func() {
		conn.Close()
		ts.Close()
	}
}

func expectResponse(t *testing.T, conn *websocket.Conn, wantType string) liveResponse {
	t.Helper()
	var resp liveResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != wantType {
		t.Fatalf("response type = %q (%+v), want %q", resp.Type, resp, wantType)
	}
	return resp
}

// TestLiveRequiresAPIKey verifies the live endpoint sits behind the key gate.
func TestLiveRequiresAPIKey(t *testing.T) {
	s := New(nil, "secret", config.EngineConfig{}, slog.New(slog.DiscardHandler))
	ts := httptest.NewServer(s)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/live"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("dial without key succeeded")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %v, want 401", resp)
	}
}

// TestLiveStartAndStop verifies a session starts, consumes samples, and
// reports counters on stop. The sample values stay inside the threshold
// band so no rep completes (and no storage write happens).
func TestLiveStartAndStop(t *testing.T) {
	conn, done := dialLive(t)
	defer done()

	if err := conn.WriteJSON(liveRequest{Type: "start", Exercise: "pushup", Source: "pose"}); err != nil {
		t.Fatal(err)
	}
	started := expectResponse(t, conn, "started")
	if started.Exercise != "pushup" || started.Source != "pose" {
		t.Errorf("started = %+v, want pushup/pose", started)
	}

	for i, y := range []float64{0.5, 0.52, 0.49, 0.51} {
		if err := conn.WriteJSON(liveRequest{Type: "pose", ShoulderY: y, TS: int64(1000 + i*100)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := conn.WriteJSON(liveRequest{Type: "stop"}); err != nil {
		t.Fatal(err)
	}

	stopped := expectResponse(t, conn, "stopped")
	if stopped.Counters == nil || stopped.Counters.Samples != 4 {
		t.Errorf("counters = %+v, want 4 samples", stopped.Counters)
	}
	if stopped.Counters != nil && stopped.Counters.Accepted != 0 {
		t.Errorf("accepted = %d, want 0 for in-band noise", stopped.Counters.Accepted)
	}
}

// TestLiveSamplesBeforeStart verifies samples without a session produce an
// error message, not a crash.
func TestLiveSamplesBeforeStart(t *testing.T) {
	conn, done := dialLive(t)
	defer done()

	if err := conn.WriteJSON(liveRequest{Type: "pose", ShoulderY: 0.5}); err != nil {
		t.Fatal(err)
	}
	expectResponse(t, conn, "error")
}

// TestLiveUnknownExercise verifies a start message with an unknown exercise
// is rejected.
func TestLiveUnknownExercise(t *testing.T) {
	conn, done := dialLive(t)
	defer done()

	if err := conn.WriteJSON(liveRequest{Type: "start", Exercise: "burpee"}); err != nil {
		t.Fatal(err)
	}
	expectResponse(t, conn, "error")
}

// TestLiveSourceMismatch verifies accel samples on a pose session are
// rejected instead of silently converted.
func TestLiveSourceMismatch(t *testing.T) {
	conn, done := dialLive(t)
	defer done()

	if err := conn.WriteJSON(liveRequest{Type: "start", Exercise: "situp", Source: "pose"}); err != nil {
		t.Fatal(err)
	}
	expectResponse(t, conn, "started")

	if err := conn.WriteJSON(liveRequest{Type: "accel", Z: 9.8}); err != nil {
		t.Fatal(err)
	}
	expectResponse(t, conn, "error")
}
