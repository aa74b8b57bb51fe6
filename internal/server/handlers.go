package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/repcoin/repcoin/internal/engine"
	"github.com/repcoin/repcoin/internal/models"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "RepCoin API - Earn While You Burn!"})
}

// createRepRequest is the POST /api/v1/reps body. ID and created_at are
// optional: clients flushing an offline journal supply both so re-sends
// stay idempotent.
type createRepRequest struct {
	ID           *uuid.UUID `json:"id"`
	ExerciseType string     `json:"exercise_type"`
	CoinsEarned  int        `json:"coins_earned"`
	Source       string     `json:"source"`
	CreatedAt    *time.Time `json:"created_at"`
}

func (s *Server) handleCreateRep(w http.ResponseWriter, r *http.Request) {
	var req createRepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	kind, err := engine.ParseKind(req.ExerciseType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rep := models.Rep{
		ID:           uuid.New(),
		ExerciseType: kind.String(),
		CoinsEarned:  req.CoinsEarned,
		Source:       req.Source,
		CreatedAt:    time.Now().UTC(),
	}
	if req.ID != nil {
		rep.ID = *req.ID
	}
	if req.CreatedAt != nil {
		rep.CreatedAt = *req.CreatedAt
	}
	if rep.CoinsEarned <= 0 {
		rep.CoinsEarned = models.CoinsPerRep
	}
	if rep.Source == "" {
		rep.Source = engine.SourceManual.String()
	}

	if _, err := s.db.InsertRep(r.Context(), rep); err != nil {
		s.log.Error("insert rep", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleListReps(w http.ResponseWriter, r *http.Request) {
	reps, err := s.db.QueryRecentReps(r.Context(), parseLimit(r, 100))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if reps == nil {
		reps = []models.Rep{}
	}
	writeJSON(w, http.StatusOK, reps)
}

func (s *Server) handleRepStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	bucket := "day"
	switch r.URL.Query().Get("agg") {
	case "hourly":
		bucket = "hour"
	case "weekly":
		bucket = "week"
	case "daily", "":
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "agg must be hourly, daily, or weekly"})
		return
	}

	points, err := s.db.GetRepStats(r.Context(), start, end, bucket)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, points)
}

type createSessionRequest struct {
	ID         *uuid.UUID `json:"id"`
	Pushups    int        `json:"pushups"`
	Situps     int        `json:"situps"`
	TotalCoins int        `json:"total_coins"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Pushups < 0 || req.Situps < 0 || req.TotalCoins < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "counts must not be negative"})
		return
	}

	sess := models.WorkoutSession{
		ID:         uuid.New(),
		Pushups:    req.Pushups,
		Situps:     req.Situps,
		TotalCoins: req.TotalCoins,
		CreatedAt:  time.Now().UTC(),
	}
	if req.ID != nil {
		sess.ID = *req.ID
	}
	if req.CreatedAt != nil {
		sess.CreatedAt = *req.CreatedAt
	}

	if _, err := s.db.InsertSession(r.Context(), sess); err != nil {
		s.log.Error("insert session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.db.QueryRecentSessions(r.Context(), parseLimit(r, 100))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []models.WorkoutSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.db.GetWallet(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, wallet)
}

type createStatusRequest struct {
	ClientName string `json:"client_name"`
}

func (s *Server) handleCreateStatus(w http.ResponseWriter, r *http.Request) {
	var req createStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.ClientName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "client_name is required"})
		return
	}

	check := models.StatusCheck{ID: uuid.New(), ClientName: req.ClientName, CreatedAt: time.Now().UTC()}
	if err := s.db.InsertStatusCheck(r.Context(), check); err != nil {
		s.log.Error("insert status check", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, check)
}

func (s *Server) handleListStatus(w http.ResponseWriter, r *http.Request) {
	checks, err := s.db.QueryStatusChecks(r.Context(), parseLimit(r, 100))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if checks == nil {
		checks = []models.StatusCheck{}
	}
	writeJSON(w, http.StatusOK, checks)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func parseLimit(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 7 days
		end = time.Now()
		start = end.AddDate(0, 0, -7)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
