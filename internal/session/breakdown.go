package session

import (
	"sort"

	"github.com/itsderek23/subtle/internal/transcript"
)

// BreakdownEntry is one category row of the message-type breakdown.
type BreakdownEntry struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Type     string `json:"type"`
}

// Breakdown is the per-session message composition served to the detail view.
type Breakdown struct {
	Breakdown []BreakdownEntry `json:"breakdown"`
	Total     int              `json:"total"`
}

// Ordering of category types in the breakdown: tools first, then assistant
// output, then user activity.
var typeOrder = map[string]int{"tool": 0, "assistant": 1, "user": 2}

// ComputeBreakdown counts each message's category: tool invocations are
// keyed by tool name, assistant prose as "assistant:text", user inputs as
// "user:human_input" and tool results as "user:tool_result". Messages that
// fit no category are omitted from the total.
func ComputeBreakdown(messages []transcript.Message) Breakdown {
	type key struct{ category, typ string }
	counts := make(map[key]int)

	for i := range messages {
		msg := &messages[i]

		var k key
		switch {
		case len(msg.ToolUses) > 0:
			k = key{msg.ToolUses[0].Name, "tool"}
		case msg.Type == "assistant" && msg.TextContent != "":
			k = key{"assistant:text", "assistant"}
		case msg.Type == "user" && len(msg.ToolResults) > 0:
			k = key{"user:tool_result", "user"}
		case msg.Type == "user" && msg.TextContent != "":
			k = key{"user:human_input", "user"}
		default:
			continue
		}
		counts[k]++
	}

	result := Breakdown{Breakdown: make([]BreakdownEntry, 0, len(counts))}
	for k, count := range counts {
		result.Breakdown = append(result.Breakdown, BreakdownEntry{
			Category: k.category,
			Count:    count,
			Type:     k.typ,
		})
		result.Total += count
	}

	sort.Slice(result.Breakdown, func(i, j int) bool {
		a, b := result.Breakdown[i], result.Breakdown[j]
		ao, bo := order(a.Type), order(b.Type)
		if ao != bo {
			return ao < bo
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Category < b.Category
	})
	return result
}

func order(typ string) int {
	if o, ok := typeOrder[typ]; ok {
		return o
	}
	return 99
}
