package session

import (
	"time"

	"github.com/itsderek23/subtle/internal/transcript"
)

// Stats is the session-level rollup served by the list and detail endpoints.
type Stats struct {
	StartTime        time.Time              `json:"start_time"`
	EndTime          time.Time              `json:"end_time"`
	DurationSeconds  float64                `json:"duration_seconds"`
	AgentTimeSeconds float64                `json:"agent_time_seconds"`
	ToolTimeSeconds  float64                `json:"tool_time_seconds"`
	ToolTimeByName   map[string]float64     `json:"tool_time_breakdown"`
	InputTokens      int                    `json:"input_tokens"`
	OutputTokens     int                    `json:"output_tokens"`
	Commits          []transcript.CommitInfo `json:"commits,omitempty"`
	CommitCount      int                    `json:"commit_count"`
	ErrorCount       int                    `json:"error_count"`
	ToolLOC          transcript.LOC         `json:"tool_loc"`
	GitLOC           *transcript.LOC        `json:"git_loc"`
}

// Totals exposes the externally-supplied portion of a Summary rollup.
func (s Stats) Totals() transcript.SessionTotals {
	return transcript.SessionTotals{
		DurationSeconds:  s.DurationSeconds,
		AgentTimeSeconds: s.AgentTimeSeconds,
		ToolTimeSeconds:  s.ToolTimeSeconds,
		ErrorCount:       s.ErrorCount,
	}
}

// ComputeStats derives session statistics in one pass over the ordered
// message stream. Wall-clock duration spans the first to last timestamped
// message; agent time is the sum of assistant response durations and tool
// time the sum of resolved tool durations, attributed per tool name.
func ComputeStats(messages []transcript.Message) Stats {
	stats := Stats{ToolTimeByName: make(map[string]float64)}

	toolStarts := make(map[string]toolStart)
	var gitLOC transcript.LOC
	gitFound := false

	for i := range messages {
		msg := &messages[i]

		if msg.HasTimestamp() {
			if stats.StartTime.IsZero() {
				stats.StartTime = msg.Timestamp
			}
			stats.EndTime = msg.Timestamp
		}

		stats.InputTokens += msg.InputTokens
		stats.OutputTokens += msg.OutputTokens

		if msg.IsCommit && msg.CommitInfo != nil {
			stats.Commits = append(stats.Commits, *msg.CommitInfo)
		}
		if msg.EditLOC != nil {
			stats.ToolLOC.Added += msg.EditLOC.Added
			stats.ToolLOC.Removed += msg.EditLOC.Removed
		}
		stats.ToolLOC.Added += msg.WriteLOC
		if msg.GitDiffLOC != nil {
			gitLOC.Added += msg.GitDiffLOC.Added
			gitLOC.Removed += msg.GitDiffLOC.Removed
			gitFound = true
		}

		if msg.Type == "assistant" && len(msg.ToolUses) == 0 && msg.DurationSeconds > 0 {
			stats.AgentTimeSeconds += msg.DurationSeconds
		}

		if msg.HasTimestamp() {
			for _, use := range msg.ToolUses {
				if use.ID != "" && !transcript.IsExcludedTool(use.Name) {
					toolStarts[use.ID] = toolStart{name: use.Name, at: msg.Timestamp}
				}
			}
			for _, result := range msg.ToolResults {
				if result.IsError {
					stats.ErrorCount++
				}
				start, ok := toolStarts[result.ToolUseID]
				if !ok {
					continue
				}
				seconds := msg.Timestamp.Sub(start.at).Seconds()
				if seconds > 0 {
					stats.ToolTimeSeconds += seconds
					stats.ToolTimeByName[start.name] += seconds
				}
				delete(toolStarts, result.ToolUseID)
			}
		} else {
			for _, result := range msg.ToolResults {
				if result.IsError {
					stats.ErrorCount++
				}
			}
		}
	}

	stats.CommitCount = len(stats.Commits)
	if gitFound {
		stats.GitLOC = &gitLOC
	}
	if !stats.StartTime.IsZero() {
		stats.DurationSeconds = stats.EndTime.Sub(stats.StartTime).Seconds()
	}
	return stats
}

type toolStart struct {
	name string
	at   time.Time
}
