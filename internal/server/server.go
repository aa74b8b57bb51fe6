package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/repcoin/repcoin/internal/config"
	"github.com/repcoin/repcoin/internal/storage"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db        *storage.DB
	log       *slog.Logger
	apiKey    string
	engineCfg config.EngineConfig
	router    chi.Router
}

// New creates a new Server with all routes configured.
func New(db *storage.DB, apiKey string, engineCfg config.EngineConfig, log *slog.Logger) *Server {
	s := &Server{
		db:        db,
		log:       log,
		apiKey:    apiKey,
		engineCfg: engineCfg,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/", s.handleRoot)
	s.router.Get("/api/v1/reps", s.handleListReps)
	s.router.Get("/api/v1/reps/stats", s.handleRepStats)
	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Get("/api/v1/wallet", s.handleWallet)
	s.router.Get("/api/v1/status", s.handleListStatus)

	// Write endpoints and live tracking (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/reps", s.handleCreateRep)
		r.Post("/api/v1/sessions", s.handleCreateSession)
		r.Post("/api/v1/status", s.handleCreateStatus)
		r.Get("/api/v1/live", s.handleLive)
	})
}
