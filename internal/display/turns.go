// Package display renders reconstructed conversations and activity strips
// for the terminal.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/itsderek23/subtle/internal/formatters"
	"github.com/itsderek23/subtle/internal/transcript"
)

// RenderTurns writes a reconstructed conversation to w.
func RenderTurns(w io.Writer, turns []transcript.Turn) {
	for _, turn := range turns {
		switch turn.Kind {
		case transcript.TurnUser:
			renderUserTurn(w, turn)
		case transcript.TurnAssistant:
			renderAssistantTurn(w, turn)
		}
	}
}

func renderUserTurn(w io.Writer, turn transcript.Turn) {
	fmt.Fprintf(w, "%s %s\n\n", userStyle.Render(iconChevron), turn.Content)
}

func renderAssistantTurn(w io.Writer, turn transcript.Turn) {
	for _, seg := range turn.Segments {
		switch seg.Kind {
		case transcript.SegmentText:
			if seg.Thinking != "" {
				renderThinking(w, seg.Thinking)
			}
			fmt.Fprintf(w, "%s %s\n\n", textStyle.Render(iconRobot), seg.Content)

		case transcript.SegmentTool:
			fmt.Fprintf(w, "%s %s\n", toolStyle.Render(iconRobot), formatToolCall(*seg.Tool))
			if seg.Result != nil {
				renderToolResult(w, *seg.Result)
			}
			fmt.Fprintln(w)
		}
	}

	if turn.HasCommit && turn.CommitInfo != nil {
		label := turn.CommitInfo.Message
		if label == "" {
			label = turn.CommitInfo.Command
		}
		fmt.Fprintf(w, "%s\n\n", commitStyle.Render("✓ commit: "+label))
	}

	if turn.Duration > 0 || turn.OutputTokens > 0 {
		fmt.Fprintf(w, "%s\n\n", mutedStyle.Render(fmt.Sprintf(
			"  %.1fs · %s in / %s out tokens", turn.Duration,
			formatters.Tokens(turn.InputTokens), formatters.Tokens(turn.OutputTokens))))
	}
}

func renderThinking(w io.Writer, thinking string) {
	fmt.Fprintln(w, thinkingStyle.Render("∴ Thinking…"))
	fmt.Fprintln(w)
	for _, line := range strings.Split(thinking, "\n") {
		if strings.TrimSpace(line) != "" {
			fmt.Fprintln(w, thinkingStyle.Render("  "+line))
		} else {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}

func renderToolResult(w io.Writer, result transcript.ToolResult) {
	tree := mutedStyle.Render(treeChar)
	output := strings.TrimSpace(result.Content)
	if output == "" {
		return
	}
	if result.IsError {
		output = "error: " + output
	}

	lines := strings.Split(output, "\n")
	if len(lines) > 5 {
		fmt.Fprintf(w, "  %s  %s\n", tree, mutedStyle.Render(fmt.Sprintf("(%d lines)", len(lines))))
		return
	}
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if i == 0 {
			fmt.Fprintf(w, "  %s  %s\n", tree, mutedStyle.Render(line))
		} else {
			fmt.Fprintf(w, "     %s\n", mutedStyle.Render(line))
		}
	}
}

// formatToolCall renders a tool invocation as ToolName(key argument).
func formatToolCall(tool transcript.ToolUse) string {
	keyArg := extractKeyArg(tool)
	if keyArg == "" {
		return tool.Name
	}
	return fmt.Sprintf("%s(%s)", tool.Name, keyArg)
}

// extractKeyArg picks the most relevant argument for inline display.
func extractKeyArg(tool transcript.ToolUse) string {
	if tool.Command != "" {
		cmd := strings.TrimSpace(tool.Command)
		if len(cmd) > 60 {
			return cmd[:57] + "..."
		}
		return cmd
	}
	if tool.FilePath != "" {
		return shortenPath(tool.FilePath)
	}
	if tool.Pattern != "" {
		return tool.Pattern
	}
	if tool.Query != "" {
		if len(tool.Query) > 40 {
			return tool.Query[:37] + "..."
		}
		return tool.Query
	}
	return ""
}

// shortenPath keeps the filename and some context of a long path.
func shortenPath(path string) string {
	if len(path) <= 50 {
		return path
	}
	parts := strings.Split(path, "/")
	if len(parts) <= 3 {
		return path
	}
	shortened := ".../" + strings.Join(parts[len(parts)-2:], "/")
	if len(shortened) > 50 {
		return ".../" + parts[len(parts)-1]
	}
	return shortened
}
