package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"

	"pokerclock/internal/domain"
	"pokerclock/internal/logging"
	"pokerclock/internal/usecase"
)

// ClockController is the part of the session the web UI drives.
type ClockController interface {
	Snapshot() usecase.Snapshot
	Dispatch(cmd usecase.Command) error
}

// Catalog is the part of the tournament service the web UI needs.
type Catalog interface {
	SaveCurrent(cfg domain.TournamentConfig) error
	ListPresets() ([]domain.Preset, error)
	LoadPreset(id string) (domain.TournamentConfig, error)
}

// Server is a primary adapter that exposes HTTP API + UI.
type Server struct {
	clock   ClockController
	catalog Catalog
	server  *http.Server
}

// NewServer creates the HTTP server bound to addr.
func NewServer(clock ClockController, catalog Catalog, addr string) *Server {
	srv := &Server{clock: clock, catalog: catalog}
	srv.server = &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv
}

// Handler returns the routed handler with CORS and request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/control", s.handleControl)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("PUT /api/config", s.handlePutConfig)
	mux.HandleFunc("GET /api/presets", s.handlePresets)
	mux.HandleFunc("POST /api/presets/{id}/load", s.handleLoadPreset)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})
	return loggingMiddleware(c.Handler(mux))
}

// Start blocks and serves HTTP traffic.
func (s *Server) Start() error {
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toStateView(s.clock.Snapshot()))
}

func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	var req controlPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	cmd := usecase.Command{Type: usecase.CommandType(req.Action)}
	if cmd.Type == usecase.CommandJump {
		if req.Level == nil {
			respondError(w, http.StatusBadRequest, "level is required for jump")
			return
		}
		cmd.Level = *req.Level
	}
	if cmd.Type == usecase.CommandUpdateConfig {
		respondError(w, http.StatusBadRequest, "use PUT /api/config")
		return
	}

	if err := s.clock.Dispatch(cmd); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toStateView(s.clock.Snapshot()))
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, toConfigView(s.clock.Snapshot().Config))
}

func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	var req configView
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	cfg := req.toDomain()
	if err := s.catalog.SaveCurrent(cfg); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if err := s.clock.Dispatch(usecase.Command{Type: usecase.CommandUpdateConfig, Config: cfg}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toConfigView(s.clock.Snapshot().Config))
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.catalog.ListPresets()
	if err != nil {
		logging.Warnf("list presets: %v", err)
	}
	views := make([]presetView, 0, len(presets))
	for _, p := range presets {
		views = append(views, toPresetView(p))
	}
	respondJSON(w, http.StatusOK, views)
}

func (s *Server) handleLoadPreset(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.catalog.LoadPreset(r.PathValue("id"))
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	if err := s.clock.Dispatch(usecase.Command{Type: usecase.CommandUpdateConfig, Config: cfg}); err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, toStateView(s.clock.Snapshot()))
}

func statusFor(err error) int {
	var verr *domain.ValidationError
	var uerr *usecase.UnknownCommandError
	switch {
	case errors.As(err, &verr), errors.As(err, &uerr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPresetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoBlindLevels),
		errors.Is(err, domain.ErrLevelOutOfRange),
		errors.Is(err, domain.ErrBreaksDisabled),
		errors.Is(err, domain.ErrBreakActive):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSessionClosed),
		errors.Is(err, domain.ErrSessionNotStarted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Warnf("encode JSON: %v", err)
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Debugf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
