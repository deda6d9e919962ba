package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/itsderek23/subtle/config"
)

const fixtureLog = `{"type":"user","timestamp":"2024-01-01T10:00:00Z","message":{"content":"fix the parser"}}
{"type":"assistant","timestamp":"2024-01-01T10:00:02Z","message":{"model":"claude-sonnet-4","usage":{"input_tokens":100,"output_tokens":40},"content":[{"type":"text","text":"Looking at it now"},{"type":"tool_use","id":"tool_1","name":"Bash","input":{"command":"git commit -m 'fix parser'"}}]}}
{"type":"user","timestamp":"2024-01-01T10:00:05Z","message":{"content":[{"type":"tool_result","tool_use_id":"tool_1","content":"2 files changed, 8 insertions(+), 3 deletions(-)"}]}}
`

// newTestServer builds a handler over a temp projects dir holding one
// session and returns both.
func newTestServer(t *testing.T) (http.Handler, string) {
	t.Helper()
	projectsDir := t.TempDir()
	projDir := filepath.Join(projectsDir, "-Users-derek-projects-subtle")
	require.NoError(t, os.MkdirAll(projDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projDir, "abc-123.jsonl"), []byte(fixtureLog), 0o644))

	cfg := config.Default()
	cfg.ProjectsDir = projectsDir
	return NewServer(cfg).Handler(), projectsDir
}

func get(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestListSessions(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions")
	require.Equal(t, http.StatusOK, rec.Code)

	var sessions []map[string]any
	decode(t, rec, &sessions)
	require.Len(t, sessions, 1)

	s := sessions[0]
	require.Equal(t, "abc-123", s["session_id"])
	require.Equal(t, "subtle", s["project_name"])
	require.Equal(t, "/Users/derek/projects/subtle", s["project_path"])
	require.Equal(t, 5.0, s["duration_seconds"])
	require.Equal(t, 100.0, s["input_tokens"])
	require.Equal(t, 40.0, s["output_tokens"])
	require.Equal(t, 1.0, s["commit_count"])
	require.NotNil(t, s["git_loc"])
}

func TestListSessionsEmptyDir(t *testing.T) {
	cfg := config.Default()
	cfg.ProjectsDir = t.TempDir()
	rec := get(t, NewServer(cfg).Handler(), "/api/sessions")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestGetSession(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/abc-123")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decode(t, rec, &body)
	require.Equal(t, "abc-123", body["session_id"])
	require.Equal(t, 5.0, body["duration_seconds"])
	require.Equal(t, 3.0, body["tool_time_seconds"])

	breakdown := body["tool_time_breakdown"].(map[string]any)
	require.Equal(t, 3.0, breakdown["Bash"])
}

func TestGetSessionNotFound(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	decode(t, rec, &body)
	require.Equal(t, "Session not found", body["detail"])
}

func TestListMessages(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/abc-123/messages")
	require.Equal(t, http.StatusOK, rec.Code)

	var messages []map[string]any
	decode(t, rec, &messages)
	require.Len(t, messages, 3)
	require.Equal(t, 0.0, messages[0]["index"])
	require.Equal(t, "fix the parser", messages[0]["text_content"])
	require.Equal(t, true, messages[1]["is_commit"])
}

func TestSearchMessages(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/abc-123/messages/search?q=PARSER")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Query   string `json:"query"`
		Indices []int  `json:"matching_indices"`
	}
	decode(t, rec, &body)
	require.Equal(t, "PARSER", body.Query)
	require.Equal(t, []int{0, 1}, body.Indices)
}

func TestSearchSessions(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/search?q=parser")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		IDs []string `json:"matching_session_ids"`
	}
	decode(t, rec, &body)
	require.Equal(t, []string{"abc-123"}, body.IDs)
}

func TestSearchSessionsNoHits(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/search?q=zzz-nothing")

	var body struct {
		IDs []string `json:"matching_session_ids"`
	}
	decode(t, rec, &body)
	require.NotNil(t, body.IDs)
	require.Empty(t, body.IDs)
}

func TestGetMessageRawPassthrough(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/messages/abc-123/0")
	require.Equal(t, http.StatusOK, rec.Code)

	// The endpoint returns the log line verbatim, not the flattened form.
	var raw map[string]any
	decode(t, rec, &raw)
	require.Equal(t, "user", raw["type"])
	require.Contains(t, rec.Body.String(), `"content":"fix the parser"`)
}

func TestGetMessageOutOfRange(t *testing.T) {
	handler, _ := newTestServer(t)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/api/messages/abc-123/99").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/api/messages/abc-123/-1").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/api/messages/abc-123/x").Code)
	require.Equal(t, http.StatusNotFound, get(t, handler, "/api/messages/missing/0").Code)
}

func TestMessageBreakdown(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/abc-123/message_breakdown")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Breakdown []struct {
			Category string `json:"category"`
			Count    int    `json:"count"`
			Type     string `json:"type"`
		} `json:"breakdown"`
		Total int `json:"total"`
	}
	decode(t, rec, &body)
	require.Equal(t, 3, body.Total)
	require.Equal(t, "Bash", body.Breakdown[0].Category)
	require.Equal(t, "tool", body.Breakdown[0].Type)
}

func TestTurns(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/abc-123/turns")
	require.Equal(t, http.StatusOK, rec.Code)

	var turns []map[string]any
	decode(t, rec, &turns)
	require.Len(t, turns, 2)
	require.Equal(t, "user", turns[0]["kind"])
	require.Equal(t, "assistant", turns[1]["kind"])
}

func TestTurnsFilteredByQuery(t *testing.T) {
	handler, _ := newTestServer(t)

	// "fix the parser" is message 0: only the user turn survives.
	rec := get(t, handler, "/api/sessions/abc-123/turns?q=fix+the+parser")
	require.Equal(t, http.StatusOK, rec.Code)

	var turns []map[string]any
	decode(t, rec, &turns)
	require.Len(t, turns, 1)
	require.Equal(t, "user", turns[0]["kind"])

	// "git commit" is in message 1's tool input: only the assistant turn.
	rec = get(t, handler, "/api/sessions/abc-123/turns?q=git+commit")
	decode(t, rec, &turns)
	require.Len(t, turns, 1)
	require.Equal(t, "assistant", turns[0]["kind"])

	// No hits yields an empty list, not a 404.
	rec = get(t, handler, "/api/sessions/abc-123/turns?q=zzz-nothing")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	// A blank query is no filter at all.
	rec = get(t, handler, "/api/sessions/abc-123/turns?q=++")
	decode(t, rec, &turns)
	require.Len(t, turns, 2)
}

func TestTimeline(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/sessions/abc-123/timeline")
	require.Equal(t, http.StatusOK, rec.Code)

	var boxes []map[string]any
	decode(t, rec, &boxes)
	require.NotEmpty(t, boxes)
	for _, box := range boxes {
		left := box["left_percent"].(float64)
		width := box["width_percent"].(float64)
		require.LessOrEqual(t, left+width, 100.0+1e-9)
	}
}

func TestTimelineWidthOverride(t *testing.T) {
	handler, _ := newTestServer(t)
	require.Equal(t, http.StatusOK, get(t, handler, "/api/sessions/abc-123/timeline?width=400").Code)
	require.Equal(t, http.StatusOK, get(t, handler, "/api/sessions/abc-123/timeline?width=bogus").Code)
}

func TestDailyUsage(t *testing.T) {
	handler, _ := newTestServer(t)
	rec := get(t, handler, "/api/usage/daily")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		CurrentWeek  []map[string]any `json:"current_week"`
		PreviousWeek []map[string]any `json:"previous_week"`
	}
	decode(t, rec, &body)
	require.Len(t, body.CurrentWeek, 7)
	require.Len(t, body.PreviousWeek, 7)
	require.Equal(t, "Mon", body.CurrentWeek[0]["weekday"])
}

func TestMethodNotAllowed(t *testing.T) {
	handler, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
