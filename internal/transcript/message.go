// Package transcript reconstructs turn-structured conversations from flat
// session log message streams.
package transcript

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	previewMaxLen       = 100
	commandMaxLen       = 100
	resultPreviewMaxLen = 200
)

// Message is a single entry of a session log, flattened to the fields the
// viewer needs. Index defines canonical order, which equals chronological
// order for well-formed logs.
type Message struct {
	Index            int             `json:"index"`
	Type             string          `json:"type"`
	Timestamp        time.Time       `json:"timestamp"`
	Preview          string          `json:"preview"`
	TextContent      string          `json:"text_content"`
	Thinking         string          `json:"thinking,omitempty"`
	ToolUses         []ToolUse       `json:"tool_uses"`
	ToolResults      []ToolResult    `json:"tool_results"`
	Model            string          `json:"model,omitempty"`
	InputTokens      int             `json:"input_tokens"`
	OutputTokens     int             `json:"output_tokens"`
	DurationSeconds  float64         `json:"duration_seconds"`
	IsCommit         bool            `json:"is_commit"`
	CommitInfo       *CommitInfo     `json:"commit_info,omitempty"`
	EditLOC          *LOC            `json:"edit_loc,omitempty"`
	WriteLOC         int             `json:"write_loc"`
	GitDiffLOC       *LOC            `json:"git_diff_loc,omitempty"`
	IsRejection      bool            `json:"is_rejection"`
	IsToolError      bool            `json:"is_tool_error"`
	IsCommandFailure bool            `json:"is_command_failure"`
	Raw              json.RawMessage `json:"-"`
}

// HasTimestamp reports whether the source entry carried a timestamp.
// Messages without one are excluded from timeline extraction only.
func (m Message) HasTimestamp() bool {
	return !m.Timestamp.IsZero()
}

// ToolUse is one tool invocation within a message. ID is unique within the
// message's turn and referenced by a later ToolResult.
type ToolUse struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Command     string       `json:"command,omitempty"`
	FilePath    string       `json:"file_path,omitempty"`
	Pattern     string       `json:"pattern,omitempty"`
	Query       string       `json:"query,omitempty"`
	EditSummary *EditSummary `json:"edit_summary,omitempty"`
	WriteLines  int          `json:"write_lines,omitempty"`
}

// EditSummary describes the size of an Edit tool's replacement.
type EditSummary struct {
	OldLines int `json:"old_lines"`
	NewLines int `json:"new_lines"`
}

// ToolResult is the outcome of an earlier ToolUse.
type ToolResult struct {
	ToolUseID string `json:"tool_use_id"`
	IsError   bool   `json:"is_error"`
	Content   string `json:"content"`
}

// LOC counts added and removed lines of code.
type LOC struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// CommitInfo describes a git commit observed in a session.
type CommitInfo struct {
	Message string `json:"message,omitempty"`
	Command string `json:"command"`
}

// rawEntry mirrors the JSONL line structure of a session log.
type rawEntry struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Message   *struct {
		Model   string          `json:"model"`
		Content json.RawMessage `json:"content"`
		Usage   *struct {
			InputTokens              int `json:"input_tokens"`
			OutputTokens             int `json:"output_tokens"`
			CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
			CacheReadInputTokens     int `json:"cache_read_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// contentBlock is one element of an array-form message content.
type contentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
}

// toolInput covers the name-specific input fields the viewer surfaces.
type toolInput struct {
	Command   string `json:"command"`
	FilePath  string `json:"file_path"`
	Pattern   string `json:"pattern"`
	Query     string `json:"query"`
	OldString string `json:"old_string"`
	NewString string `json:"new_string"`
	Content   string `json:"content"`
}

var (
	insertionsRe = regexp.MustCompile(`(\d+) insertions?\(\+\)`)
	deletionsRe  = regexp.MustCompile(`(\d+) deletions?\(-\)`)
	commitMsgRe  = regexp.MustCompile(`-m\s+["']([^"']+)["']`)
)

// parseMessage flattens one raw JSONL line into a Message. Index and
// DurationSeconds are filled in later by the parser's post-pass.
func parseMessage(line []byte) (Message, error) {
	var entry rawEntry
	if err := json.Unmarshal(line, &entry); err != nil {
		return Message{}, err
	}

	msg := Message{
		Type:        entry.Type,
		Timestamp:   entry.Timestamp,
		ToolUses:    []ToolUse{},
		ToolResults: []ToolResult{},
		Raw:         append(json.RawMessage(nil), line...),
	}
	if msg.Type == "" {
		msg.Type = "unknown"
	}
	if entry.Message == nil {
		return msg, nil
	}

	msg.Model = entry.Message.Model
	if usage := entry.Message.Usage; usage != nil {
		msg.InputTokens = usage.InputTokens + usage.CacheCreationInputTokens + usage.CacheReadInputTokens
		msg.OutputTokens = usage.OutputTokens
	}

	// String content: plain user input.
	var strContent string
	if err := json.Unmarshal(entry.Message.Content, &strContent); err == nil {
		msg.TextContent = strContent
		msg.Preview = truncate(collapseWhitespace(strContent), previewMaxLen)
		return msg, nil
	}

	// Array content: text, thinking, tool_use and tool_result blocks.
	var blocks []contentBlock
	if err := json.Unmarshal(entry.Message.Content, &blocks); err != nil {
		return msg, nil
	}

	var textParts, previewParts []string
	for _, block := range blocks {
		switch block.Type {
		case "text":
			if block.Text != "" {
				textParts = append(textParts, block.Text)
				previewParts = append(previewParts, block.Text)
			}
		case "thinking":
			if msg.Thinking == "" {
				msg.Thinking = block.Thinking
			}
		case "tool_use":
			use := parseToolUse(block)
			msg.ToolUses = append(msg.ToolUses, use)
			previewParts = append(previewParts, "[Tool: "+use.Name+"]")
			applyToolDerived(&msg, use)
		case "tool_result":
			result := parseToolResult(block)
			msg.ToolResults = append(msg.ToolResults, result)
			previewParts = append(previewParts, "[Tool Result]")
			applyResultDerived(&msg, result)
		}
	}

	msg.TextContent = strings.Join(textParts, "\n\n")
	msg.Preview = truncate(collapseWhitespace(strings.Join(previewParts, " ")), previewMaxLen)
	return msg, nil
}

func parseToolUse(block contentBlock) ToolUse {
	use := ToolUse{ID: block.ID, Name: block.Name}

	var input toolInput
	if len(block.Input) > 0 {
		json.Unmarshal(block.Input, &input)
	}

	use.FilePath = input.FilePath
	use.Pattern = input.Pattern
	use.Query = input.Query
	if input.Command != "" {
		use.Command = truncate(input.Command, commandMaxLen)
	}
	if input.OldString != "" && input.NewString != "" {
		use.EditSummary = &EditSummary{
			OldLines: countLines(input.OldString),
			NewLines: countLines(input.NewString),
		}
	}
	if input.Content != "" && input.FilePath != "" {
		use.WriteLines = countLines(input.Content)
	}
	return use
}

func parseToolResult(block contentBlock) ToolResult {
	return ToolResult{
		ToolUseID: block.ToolUseID,
		IsError:   block.IsError,
		Content:   truncate(flattenResultContent(block.Content), resultPreviewMaxLen),
	}
}

// applyToolDerived sets the commit and LOC fields a tool invocation implies.
func applyToolDerived(msg *Message, use ToolUse) {
	if use.Name == "Bash" && strings.Contains(use.Command, "git commit") {
		msg.IsCommit = true
		info := &CommitInfo{Command: use.Command}
		if m := commitMsgRe.FindStringSubmatch(use.Command); m != nil {
			info.Message = m[1]
		}
		msg.CommitInfo = info
	}
	if use.EditSummary != nil {
		if msg.EditLOC == nil {
			msg.EditLOC = &LOC{}
		}
		msg.EditLOC.Added += use.EditSummary.NewLines
		msg.EditLOC.Removed += use.EditSummary.OldLines
	}
	msg.WriteLOC += use.WriteLines
}

// applyResultDerived sets the error and git-diff fields a tool result implies.
func applyResultDerived(msg *Message, result ToolResult) {
	if result.IsError {
		msg.IsToolError = true
		msg.IsCommandFailure = true
	}
	if strings.HasPrefix(result.Content, "[Request interrupted") {
		msg.IsRejection = true
	}

	added, removed, found := parseDiffStat(result.Content)
	if found {
		if msg.GitDiffLOC == nil {
			msg.GitDiffLOC = &LOC{}
		}
		msg.GitDiffLOC.Added += added
		msg.GitDiffLOC.Removed += removed
	}
}

// parseDiffStat extracts added/removed counts from git shortstat output
// ("3 files changed, 10 insertions(+), 2 deletions(-)").
func parseDiffStat(text string) (added, removed int, found bool) {
	if m := insertionsRe.FindStringSubmatch(text); m != nil {
		added = atoiSafe(m[1])
		found = true
	}
	if m := deletionsRe.FindStringSubmatch(text); m != nil {
		removed = atoiSafe(m[1])
		found = true
	}
	return added, removed, found
}

// flattenResultContent handles tool_result content that is either a plain
// string or an array of text blocks.
func flattenResultContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var blocks []contentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return ""
	}
	var parts []string
	for _, block := range blocks {
		if block.Type == "text" && block.Text != "" {
			parts = append(parts, block.Text)
		}
	}
	return strings.Join(parts, "\n")
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Split(strings.TrimSuffix(s, "\n"), "\n"))
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Back up to a rune boundary so the cut never yields invalid UTF-8.
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
