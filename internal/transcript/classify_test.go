package transcript

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyUserMessage(t *testing.T) {
	c := Classify(Message{Type: "user", TextContent: "hello"})
	require.True(t, c.IsUserMessage)
	require.False(t, c.IsAssistantMessage)
	require.False(t, c.IsToolResult)
}

func TestClassifyToolResultWinsOverText(t *testing.T) {
	c := Classify(Message{
		Type:        "user",
		TextContent: "also has text",
		ToolResults: []ToolResult{{ToolUseID: "a"}},
	})
	require.True(t, c.IsToolResult)
	require.False(t, c.IsUserMessage)
}

func TestClassifyBlankUserMessageIsNothing(t *testing.T) {
	c := Classify(Message{Type: "user", TextContent: "   \n\t"})
	require.False(t, c.IsUserMessage)
	require.False(t, c.IsAssistantMessage)
	require.False(t, c.IsToolResult)
}

func TestClassifyAssistantIgnoresContent(t *testing.T) {
	c := Classify(Message{Type: "assistant"})
	require.True(t, c.IsAssistantMessage)

	c = Classify(Message{Type: "assistant", TextContent: "hi"})
	require.True(t, c.IsAssistantMessage)
	require.False(t, c.IsUserMessage)
}

func TestClassifyUnknownType(t *testing.T) {
	c := Classify(Message{Type: "system", TextContent: "something"})
	require.False(t, c.IsUserMessage)
	require.False(t, c.IsAssistantMessage)
	require.False(t, c.IsToolResult)
}
