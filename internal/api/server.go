// Package api serves the session explorer's REST interface.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/itsderek23/subtle/config"
	"github.com/itsderek23/subtle/internal/logging"
)

// Server holds the handler dependencies: where session logs live and how the
// timeline is scaled.
type Server struct {
	projectsDir string
	timeline    config.TimelineConfig
	logger      *logrus.Entry
}

// NewServer creates an API server over the configured projects directory.
func NewServer(cfg config.Config) *Server {
	projectsDir := cfg.ProjectsDir
	if projectsDir == "" {
		projectsDir = defaultProjectsDir()
	}
	return &Server{
		projectsDir: projectsDir,
		timeline:    cfg.Timeline,
		logger:      logging.NewLogger("api"),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/sessions", s.handleListSessions)
	mux.HandleFunc("GET /api/sessions/search", s.handleSearchSessions)
	mux.HandleFunc("GET /api/sessions/{id}", s.handleGetSession)
	mux.HandleFunc("GET /api/sessions/{id}/messages", s.handleListMessages)
	mux.HandleFunc("GET /api/sessions/{id}/messages/search", s.handleSearchMessages)
	mux.HandleFunc("GET /api/sessions/{id}/message_breakdown", s.handleMessageBreakdown)
	mux.HandleFunc("GET /api/sessions/{id}/turns", s.handleTurns)
	mux.HandleFunc("GET /api/sessions/{id}/timeline", s.handleTimeline)
	mux.HandleFunc("GET /api/messages/{id}/{index}", s.handleGetMessage)
	mux.HandleFunc("GET /api/usage/daily", s.handleDailyUsage)

	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("Request")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("Failed to encode response")
	}
}

func (s *Server) notFound(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
