package transcript

// GitLOC is a LOC rollup that remembers whether any diff data was seen, so
// "no git data" and "zero-line diffs" render differently.
type GitLOC struct {
	Added   int  `json:"added"`
	Removed int  `json:"removed"`
	Found   bool `json:"found"`
}

// SessionTotals carries the session-level fields supplied by the session
// detail collaborator, merged verbatim into the Summary.
type SessionTotals struct {
	DurationSeconds  float64 `json:"duration_seconds"`
	AgentTimeSeconds float64 `json:"agent_time_seconds"`
	ToolTimeSeconds  float64 `json:"tool_time_seconds"`
	ErrorCount       int     `json:"error_count"`
}

// Summary is the numeric rollup shown in the session header.
type Summary struct {
	DurationSeconds  float64 `json:"duration_seconds"`
	AgentTimeSeconds float64 `json:"agent_time_seconds"`
	ToolTimeSeconds  float64 `json:"tool_time_seconds"`
	ErrorCount       int     `json:"error_count"`
	Commits          int     `json:"commits"`
	ToolLOC          LOC     `json:"tool_loc"`
	GitLOC           GitLOC  `json:"git_loc"`
}

// Summarize rolls up commit and LOC counts in a single pass over the message
// set and merges the externally supplied session totals. It is pure and
// order-independent: reordering messages yields identical sums.
func Summarize(messages []Message, totals SessionTotals) Summary {
	summary := Summary{
		DurationSeconds:  totals.DurationSeconds,
		AgentTimeSeconds: totals.AgentTimeSeconds,
		ToolTimeSeconds:  totals.ToolTimeSeconds,
		ErrorCount:       totals.ErrorCount,
	}

	for i := range messages {
		msg := &messages[i]

		if msg.IsCommit {
			summary.Commits++
		}
		if msg.EditLOC != nil {
			summary.ToolLOC.Added += msg.EditLOC.Added
			summary.ToolLOC.Removed += msg.EditLOC.Removed
		}
		// Writes add whole files; there is no removed component.
		summary.ToolLOC.Added += msg.WriteLOC

		if msg.GitDiffLOC != nil {
			summary.GitLOC.Added += msg.GitDiffLOC.Added
			summary.GitLOC.Removed += msg.GitDiffLOC.Removed
			summary.GitLOC.Found = true
		}
	}

	return summary
}
