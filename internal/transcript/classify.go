package transcript

import "strings"

// Classification distinguishes the three message roles the assembler and
// timeline extractor care about. The three predicates are mutually
// exclusive; a message may satisfy none of them (e.g. an empty user entry).
type Classification struct {
	IsUserMessage      bool
	IsAssistantMessage bool
	IsToolResult       bool
}

// Classify determines a message's role:
//   - tool result: a user-typed entry carrying tool_results
//   - user message: a user-typed entry with non-blank text and no results
//   - assistant message: any assistant-typed entry, regardless of content
func Classify(msg Message) Classification {
	var c Classification
	switch msg.Type {
	case "user":
		if len(msg.ToolResults) > 0 {
			c.IsToolResult = true
		} else if strings.TrimSpace(msg.TextContent) != "" {
			c.IsUserMessage = true
		}
	case "assistant":
		c.IsAssistantMessage = true
	}
	return c
}
