// Package timeline converts session messages into a compressed, time-scaled
// activity strip: typed events, gap-coalesced runs, and proportional layout.
package timeline

import (
	"sort"
	"time"

	"github.com/itsderek23/subtle/internal/transcript"
)

// EventType distinguishes the three activity lanes.
type EventType string

const (
	EventUser EventType = "user"
	EventAI   EventType = "ai"
	EventTool EventType = "tool"
)

// Event is a typed instant or interval of observed activity. User events are
// instants (zero duration); ai and tool events are intervals.
type Event struct {
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	Duration  time.Duration `json:"duration"`
	ToolID    string        `json:"tool_id,omitempty"`
	ToolName  string        `json:"tool_name,omitempty"`
}

// End returns the event's end instant.
func (e Event) End() time.Time {
	return e.Timestamp.Add(e.Duration)
}

// Extract derives activity events from a message stream in two explicit
// passes: an emit pass producing events with tool durations unresolved, then
// a resolution pass producing a new list with durations filled from tool
// results. The returned list is sorted by timestamp; ties keep emission
// order. Messages without timestamps are skipped.
func Extract(messages []transcript.Message) []Event {
	events := emit(messages)
	events = resolve(events, messages)

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
	return events
}

func emit(messages []transcript.Message) []Event {
	var events []Event

	for i := range messages {
		msg := &messages[i]
		if !msg.HasTimestamp() {
			continue
		}
		c := transcript.Classify(*msg)

		if c.IsUserMessage {
			events = append(events, Event{Type: EventUser, Timestamp: msg.Timestamp})
		}

		if c.IsAssistantMessage {
			// The log timestamp marks completion; the interval ends there.
			if msg.DurationSeconds > 0 {
				dur := time.Duration(msg.DurationSeconds * float64(time.Second))
				events = append(events, Event{
					Type:      EventAI,
					Timestamp: msg.Timestamp.Add(-dur),
					Duration:  dur,
				})
			}
			for _, use := range msg.ToolUses {
				events = append(events, Event{
					Type:      EventTool,
					Timestamp: msg.Timestamp,
					ToolID:    use.ID,
					ToolName:  use.Name,
				})
			}
		}
	}

	return events
}

// resolve fills tool event durations from result arrival times. Results with
// no matching tool event are ignored for timeline purposes.
func resolve(events []Event, messages []transcript.Message) []Event {
	resolved := make([]Event, len(events))
	copy(resolved, events)

	byToolID := make(map[string]int, len(resolved))
	for i, e := range resolved {
		if e.Type == EventTool && e.ToolID != "" {
			byToolID[e.ToolID] = i
		}
	}

	for i := range messages {
		msg := &messages[i]
		if msg.Type != "user" || !msg.HasTimestamp() {
			continue
		}
		for _, result := range msg.ToolResults {
			idx, ok := byToolID[result.ToolUseID]
			if !ok {
				continue
			}
			if dur := msg.Timestamp.Sub(resolved[idx].Timestamp); dur > 0 {
				resolved[idx].Duration = dur
			}
		}
	}

	return resolved
}
