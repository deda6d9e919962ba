package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itsderek23/subtle/internal/logging"
)

// Tools that prompt the user rather than execute work. Their wall-clock time
// is waiting, not tool execution, so they are excluded from duration tracking.
var excludedTools = map[string]bool{
	"AskUserQuestion": true,
}

// IsExcludedTool reports whether a tool's wall-clock time is user waiting
// rather than execution. Callers re-deriving tool durations must apply the
// same exclusion as the parser's attribution pass.
func IsExcludedTool(name string) bool {
	return excludedTools[name]
}

// Parser reads session JSONL logs into ordered Message slices.
type Parser struct {
	logger *logrus.Entry
}

// NewParser creates a new transcript parser.
func NewParser() *Parser {
	return &Parser{logger: logging.NewLogger("transcript.parser")}
}

// ParseFile parses an entire JSONL log and returns its messages in index
// order with durations attributed.
func (p *Parser) ParseFile(path string) ([]Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse parses JSONL from a reader. Malformed lines are skipped, never fatal.
func (p *Parser) Parse(r io.Reader) ([]Message, error) {
	var messages []Message
	scanner := bufio.NewScanner(r)

	// Large tool results produce long JSON lines.
	const maxScanTokenSize = 1024 * 1024 // 1MB
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxScanTokenSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		msg, err := parseMessage(line)
		if err != nil {
			p.logger.WithError(err).WithField("line", lineNum).Debug("Skipping malformed log line")
			continue
		}

		msg.Index = len(messages)
		messages = append(messages, msg)
	}

	if err := scanner.Err(); err != nil {
		return messages, fmt.Errorf("scanner error: %w", err)
	}

	attributeDurations(messages)
	return messages, nil
}

// attributeDurations fills DurationSeconds in a single ordered pass:
// an assistant message gets the elapsed time since the previous user
// message; a tool-result message gets the elapsed time since its matching
// tool invocation. Messages without timestamps contribute nothing.
func attributeDurations(messages []Message) {
	pendingTools := make(map[string]time.Time)
	var prevUser time.Time

	for i := range messages {
		msg := &messages[i]

		if msg.HasTimestamp() {
			for _, use := range msg.ToolUses {
				if use.ID == "" || excludedTools[use.Name] {
					continue
				}
				pendingTools[use.ID] = msg.Timestamp
			}
			for _, result := range msg.ToolResults {
				started, ok := pendingTools[result.ToolUseID]
				if !ok {
					continue
				}
				msg.DurationSeconds = msg.Timestamp.Sub(started).Seconds()
				delete(pendingTools, result.ToolUseID)
			}
		}

		if msg.Type == "assistant" && msg.HasTimestamp() && !prevUser.IsZero() {
			msg.DurationSeconds = msg.Timestamp.Sub(prevUser).Seconds()
		}

		if msg.Type == "user" && msg.HasTimestamp() {
			prevUser = msg.Timestamp
		}
	}
}
