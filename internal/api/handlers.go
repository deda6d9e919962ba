package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/itsderek23/subtle/internal/filter"
	"github.com/itsderek23/subtle/internal/search"
	"github.com/itsderek23/subtle/internal/session"
	"github.com/itsderek23/subtle/internal/timeline"
	"github.com/itsderek23/subtle/internal/transcript"
)

// maxListedSessions caps the list and cross-session search endpoints.
const maxListedSessions = 50

func defaultProjectsDir() string {
	return session.DefaultProjectsDir()
}

// sessionSummary is one row of the sessions listing.
type sessionSummary struct {
	SessionID        string          `json:"session_id"`
	ProjectName      string          `json:"project_name"`
	ProjectPath      string          `json:"project_path"`
	StartTime        *time.Time      `json:"start_time"`
	EndTime          *time.Time      `json:"end_time"`
	DurationSeconds  float64         `json:"duration_seconds"`
	AgentTimeSeconds float64         `json:"agent_time_seconds"`
	ToolTimeSeconds  float64         `json:"tool_time_seconds"`
	InputTokens      int             `json:"input_tokens"`
	OutputTokens     int             `json:"output_tokens"`
	CommitCount      int             `json:"commit_count"`
	ErrorCount       int             `json:"error_count"`
	ToolLOC          transcript.LOC  `json:"tool_loc"`
	GitLOC           *transcript.LOC `json:"git_loc"`
}

func (s *Server) recentSessions() []session.LogFile {
	sessions := session.All(s.projectsDir)
	if len(sessions) > maxListedSessions {
		sessions = sessions[:maxListedSessions]
	}
	return sessions
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	summaries := []sessionSummary{}
	for _, lf := range s.recentSessions() {
		messages, err := lf.Messages()
		if err != nil {
			s.logger.WithError(err).WithField("session", lf.SessionID()).Warn("Skipping unreadable session")
			continue
		}
		stats := session.ComputeStats(messages)

		summaries = append(summaries, sessionSummary{
			SessionID:        lf.SessionID(),
			ProjectName:      lf.ProjectName(),
			ProjectPath:      lf.ProjectPath(),
			StartTime:        timePtr(stats.StartTime),
			EndTime:          timePtr(stats.EndTime),
			DurationSeconds:  stats.DurationSeconds,
			AgentTimeSeconds: stats.AgentTimeSeconds,
			ToolTimeSeconds:  stats.ToolTimeSeconds,
			InputTokens:      stats.InputTokens,
			OutputTokens:     stats.OutputTokens,
			CommitCount:      stats.CommitCount,
			ErrorCount:       stats.ErrorCount,
			ToolLOC:          stats.ToolLOC,
			GitLOC:           stats.GitLOC,
		})
	}
	s.writeJSON(w, summaries)
}

func (s *Server) handleSearchSessions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	ids := search.Sessions(r.Context(), s.recentSessions(), query)
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, map[string]any{
		"query":                query,
		"matching_session_ids": ids,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	lf := session.FromID(s.projectsDir, r.PathValue("id"))
	if lf == nil {
		s.notFound(w, "Session not found")
		return
	}
	messages, err := lf.Messages()
	if err != nil {
		s.notFound(w, "Session not found")
		return
	}
	stats := session.ComputeStats(messages)

	s.writeJSON(w, map[string]any{
		"session_id":          lf.SessionID(),
		"duration_seconds":    stats.DurationSeconds,
		"agent_time_seconds":  stats.AgentTimeSeconds,
		"tool_time_seconds":   stats.ToolTimeSeconds,
		"tool_time_breakdown": stats.ToolTimeByName,
		"error_count":         stats.ErrorCount,
	})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, ok := s.sessionMessages(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, messages)
}

func (s *Server) handleSearchMessages(w http.ResponseWriter, r *http.Request) {
	lf := session.FromID(s.projectsDir, r.PathValue("id"))
	if lf == nil {
		s.notFound(w, "Session not found")
		return
	}
	query := r.URL.Query().Get("q")
	indices, err := search.MessageIndices(lf.Path, query)
	if err != nil {
		s.notFound(w, "Session not found")
		return
	}
	s.writeJSON(w, map[string]any{
		"query":            query,
		"matching_indices": indices,
	})
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	lf := session.FromID(s.projectsDir, r.PathValue("id"))
	if lf == nil {
		s.notFound(w, "Session not found")
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		s.notFound(w, "Message not found")
		return
	}
	messages, err := lf.Messages()
	if err != nil || index >= len(messages) {
		s.notFound(w, "Message not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(messages[index].Raw)
}

func (s *Server) handleMessageBreakdown(w http.ResponseWriter, r *http.Request) {
	messages, ok := s.sessionMessages(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, session.ComputeBreakdown(messages))
}

func (s *Server) handleTurns(w http.ResponseWriter, r *http.Request) {
	lf := session.FromID(s.projectsDir, r.PathValue("id"))
	if lf == nil {
		s.notFound(w, "Session not found")
		return
	}
	messages, err := lf.Messages()
	if err != nil {
		s.notFound(w, "Session not found")
		return
	}

	turns := transcript.NewAssembler().Assemble(messages)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		indices, err := search.MessageIndices(lf.Path, q)
		if err != nil {
			s.notFound(w, "Session not found")
			return
		}
		turns = filter.Apply(turns, filter.NewMatchSet(indices))
	}
	if turns == nil {
		turns = []transcript.Turn{}
	}
	s.writeJSON(w, turns)
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	messages, ok := s.sessionMessages(w, r)
	if !ok {
		return
	}

	containerPx := s.timeline.ContainerPx
	if width := r.URL.Query().Get("width"); width != "" {
		if parsed, err := strconv.ParseFloat(width, 64); err == nil && parsed > 0 {
			containerPx = parsed
		}
	}

	events := timeline.Merge(timeline.Extract(messages))
	boxes := timeline.Layout(events, containerPx, s.timeline.MinEventPx)
	if boxes == nil {
		boxes = []timeline.Box{}
	}
	s.writeJSON(w, boxes)
}

func (s *Server) handleDailyUsage(w http.ResponseWriter, r *http.Request) {
	usage := session.ComputeDailyUsage(session.All(s.projectsDir), time.Now())
	s.writeJSON(w, usage)
}

// sessionMessages resolves the {id} path value to a parsed message stream,
// writing a 404 when the session is missing.
func (s *Server) sessionMessages(w http.ResponseWriter, r *http.Request) ([]transcript.Message, bool) {
	lf := session.FromID(s.projectsDir, r.PathValue("id"))
	if lf == nil {
		s.notFound(w, "Session not found")
		return nil, false
	}
	messages, err := lf.Messages()
	if err != nil {
		s.notFound(w, "Session not found")
		return nil, false
	}
	return messages, true
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
