package transcript

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/itsderek23/subtle/internal/logging"
)

// TurnKind tags the two turn variants.
type TurnKind string

const (
	TurnUser      TurnKind = "user"
	TurnAssistant TurnKind = "assistant"
)

// SegmentKind tags the two segment variants within an assistant turn.
type SegmentKind string

const (
	SegmentText SegmentKind = "text"
	SegmentTool SegmentKind = "tool"
)

// Segment is a sub-unit of an assistant turn: either prose/thinking text or
// one tool invocation with its eventual result.
type Segment struct {
	Kind     SegmentKind `json:"kind"`
	Content  string      `json:"content,omitempty"`
	Thinking string      `json:"thinking,omitempty"`

	Tool   *ToolUse    `json:"tool,omitempty"`
	Result *ToolResult `json:"result,omitempty"`

	MessageIndex int `json:"message_index"`
	// ResultMessageIndex is the index of the message that resolved a tool
	// segment, or -1 while unresolved.
	ResultMessageIndex int `json:"result_message_index"`
}

// Resolved reports whether a tool segment has received its result.
func (s Segment) Resolved() bool {
	return s.Kind == SegmentTool && s.Result != nil
}

// Turn is one coherent exchange unit: a user input, or a run of assistant
// activity bounded by the next user input.
type Turn struct {
	Kind           TurnKind    `json:"kind"`
	Content        string      `json:"content,omitempty"`
	Segments       []Segment   `json:"segments,omitempty"`
	MessageIndices []int       `json:"message_indices"`
	Timestamp      time.Time   `json:"timestamp"`
	Model          string      `json:"model,omitempty"`
	InputTokens    int         `json:"input_tokens,omitempty"`
	OutputTokens   int         `json:"output_tokens,omitempty"`
	Duration       float64     `json:"duration_seconds,omitempty"`
	HasCommit      bool        `json:"has_commit,omitempty"`
	CommitInfo     *CommitInfo `json:"commit_info,omitempty"`
}

// Assembler groups a flat message stream into turns with a single forward
// pass. Its only state is the currently open assistant turn (nil when none):
// user turns are closed the moment they are created.
type Assembler struct {
	logger *logrus.Entry
}

// NewAssembler creates a turn assembler.
func NewAssembler() *Assembler {
	return &Assembler{logger: logging.NewLogger("transcript.turns")}
}

// Assemble reconstructs the conversation from messages in index order.
// Output order equals the chronological order of each turn's first message.
func (a *Assembler) Assemble(messages []Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	var open *Turn

	flush := func() {
		if open != nil {
			turns = append(turns, *open)
			open = nil
		}
	}

	for i := range messages {
		msg := &messages[i]
		c := Classify(*msg)

		switch {
		case c.IsUserMessage:
			flush()
			turns = append(turns, Turn{
				Kind:           TurnUser,
				Content:        msg.TextContent,
				MessageIndices: []int{msg.Index},
				Timestamp:      msg.Timestamp,
			})

		case c.IsAssistantMessage:
			if open == nil {
				flush()
				open = &Turn{
					Kind:      TurnAssistant,
					Timestamp: msg.Timestamp,
					Model:     msg.Model,
				}
			}
			a.appendAssistant(open, msg)

		case c.IsToolResult:
			if open == nil {
				a.logger.WithField("message_index", msg.Index).
					Debug("Dropping tool result with no open assistant turn")
				continue
			}
			a.attachResults(open, msg)
			open.MessageIndices = append(open.MessageIndices, msg.Index)
		}
	}

	flush()
	return turns
}

// appendAssistant folds one assistant message into the open turn.
func (a *Assembler) appendAssistant(turn *Turn, msg *Message) {
	if strings.TrimSpace(msg.TextContent) != "" {
		turn.Segments = append(turn.Segments, Segment{
			Kind:               SegmentText,
			Content:            msg.TextContent,
			Thinking:           msg.Thinking,
			MessageIndex:       msg.Index,
			ResultMessageIndex: -1,
		})
	}

	for i := range msg.ToolUses {
		turn.Segments = append(turn.Segments, Segment{
			Kind:               SegmentTool,
			Tool:               &msg.ToolUses[i],
			MessageIndex:       msg.Index,
			ResultMessageIndex: -1,
		})
	}

	turn.InputTokens += msg.InputTokens
	turn.OutputTokens += msg.OutputTokens
	turn.Duration += msg.DurationSeconds
	if msg.IsCommit {
		turn.HasCommit = true
		turn.CommitInfo = msg.CommitInfo
	}
	turn.MessageIndices = append(turn.MessageIndices, msg.Index)
}

// attachResults resolves each tool result against the first still-unresolved
// tool segment with a matching id. Once attached, a result never changes.
func (a *Assembler) attachResults(turn *Turn, msg *Message) {
	for i := range msg.ToolResults {
		result := &msg.ToolResults[i]

		matched := false
		for j := range turn.Segments {
			seg := &turn.Segments[j]
			if seg.Kind != SegmentTool || seg.Result != nil {
				continue
			}
			if seg.Tool.ID != result.ToolUseID {
				continue
			}
			seg.Result = result
			seg.ResultMessageIndex = msg.Index
			matched = true
			break
		}

		if !matched {
			a.logger.WithFields(logrus.Fields{
				"message_index": msg.Index,
				"tool_use_id":   result.ToolUseID,
			}).Debug("Dropping tool result with no matching tool segment")
		}
	}
}
