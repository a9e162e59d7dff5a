package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	tourguide "github.com/locatour/tourguide"
	"github.com/locatour/tourguide/core"
	"github.com/locatour/tourguide/routing"
	"github.com/locatour/tourguide/storage"
)

// Server serves the assistant over HTTP.
type Server struct {
	assistant *tourguide.Assistant
	logger    *slog.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets a custom logger. Default is slog.Default().
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an HTTP server over the assistant.
func NewServer(assistant *tourguide.Assistant, opts ...ServerOption) *Server {
	s := &Server{assistant: assistant, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes builds the request mux.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /sessions/{id}/reset", s.handleReset)
	mux.HandleFunc("GET /sessions/{id}/summary", s.handleSummary)
	mux.HandleFunc("GET /sessions/{id}/history", s.handleHistory)
	mux.HandleFunc("GET /route", s.handleRoute)
	mux.HandleFunc("GET /nearby", s.handleNearby)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.assistant.Chat(r.Context(), req.SessionID, req.Message)
	if err != nil {
		if errors.Is(err, core.ErrEmptyQuery) {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("chat failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session id required")
		return
	}
	s.assistant.ResetSession(sessionID)
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "reset", "session_id": sessionID})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session id required")
		return
	}
	s.writeJSON(w, http.StatusOK, s.assistant.SessionSummary(sessionID))
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		s.writeError(w, http.StatusBadRequest, "session id required")
		return
	}
	entries, err := s.assistant.History(r.Context(), sessionID)
	if err != nil {
		s.logger.Error("history lookup failed", "session_id", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if entries == nil {
		entries = []*core.ChatEntry{}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	lat, err1 := parseFloat(r, "lat")
	lon, err2 := parseFloat(r, "lon")
	destinationID := r.URL.Query().Get("destination_id")
	if err1 != nil || err2 != nil || destinationID == "" {
		s.writeError(w, http.StatusBadRequest, "lat, lon and destination_id are required")
		return
	}

	route, err := s.assistant.Route(r.Context(), lat, lon, destinationID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "destination not found")
			return
		}
		s.logger.Error("route planning failed", "destination_id", destinationID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleNearby(w http.ResponseWriter, r *http.Request) {
	lat, err1 := parseFloat(r, "lat")
	lon, err2 := parseFloat(r, "lon")
	if err1 != nil || err2 != nil {
		s.writeError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	radius := 5.0
	if v := r.URL.Query().Get("radius_km"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid radius_km")
			return
		}
		radius = parsed
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	itemType := r.URL.Query().Get("type")

	places, err := s.assistant.Nearby(r.Context(), lat, lon, radius, limit, itemType)
	if err != nil {
		s.logger.Error("nearby lookup failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if places == nil {
		places = []routing.NearbyPlace{}
	}
	s.writeJSON(w, http.StatusOK, places)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("error encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func parseFloat(r *http.Request, key string) (float64, error) {
	return strconv.ParseFloat(r.URL.Query().Get(key), 64)
}
