package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const percentTol = 1e-9

func TestLayoutEmpty(t *testing.T) {
	require.Nil(t, Layout(nil, 800, 1))
}

func TestLayoutProportions(t *testing.T) {
	events := []Event{
		{Type: EventAI, Timestamp: ts(0), Duration: 5 * time.Second},
		{Type: EventTool, Timestamp: ts(5000), Duration: 5 * time.Second},
	}

	boxes := Layout(events, 800, 1)
	require.Len(t, boxes, 2)
	require.InDelta(t, 0.0, boxes[0].LeftPercent, percentTol)
	require.InDelta(t, 50.0, boxes[0].WidthPercent, percentTol)
	require.InDelta(t, 50.0, boxes[1].LeftPercent, percentTol)
	require.InDelta(t, 50.0, boxes[1].WidthPercent, percentTol)
}

func TestLayoutUserPoint(t *testing.T) {
	events := []Event{
		{Type: EventUser, Timestamp: ts(0)},
		{Type: EventAI, Timestamp: ts(0), Duration: 10 * time.Second},
	}

	boxes := Layout(events, 800, 1)
	require.True(t, boxes[0].Point)
	require.Zero(t, boxes[0].WidthPercent)
	require.False(t, boxes[1].Point)
}

func TestLayoutMinimumWidthFloor(t *testing.T) {
	// A 1ms tool call over a 100s session would be invisible without the floor.
	events := []Event{
		{Type: EventTool, Timestamp: ts(0), Duration: time.Millisecond},
		{Type: EventAI, Timestamp: ts(0), Duration: 100 * time.Second},
	}

	boxes := Layout(events, 800, 4)
	floor := 4.0 / 800 * 100
	require.GreaterOrEqual(t, boxes[0].WidthPercent, floor)
}

func TestLayoutClampPullsBoxBack(t *testing.T) {
	// The floored box starts at the far right; its left edge must move so the
	// right edge stays inside the container.
	events := []Event{
		{Type: EventAI, Timestamp: ts(0), Duration: 100 * time.Second},
		{Type: EventTool, Timestamp: ts(100000), Duration: time.Millisecond},
	}

	boxes := Layout(events, 800, 80) // 10% floor
	last := boxes[1]
	require.LessOrEqual(t, last.LeftPercent+last.WidthPercent, 100.0+percentTol)
	require.GreaterOrEqual(t, last.WidthPercent, 10.0-percentTol)
}

func TestLayoutBoundsProperty(t *testing.T) {
	events := []Event{
		{Type: EventUser, Timestamp: ts(0)},
		{Type: EventAI, Timestamp: ts(0), Duration: 3 * time.Second},
		{Type: EventTool, Timestamp: ts(3000), Duration: 10 * time.Millisecond},
		{Type: EventTool, Timestamp: ts(3100), Duration: 40 * time.Second},
		{Type: EventUser, Timestamp: ts(50000)},
	}

	boxes := Layout(events, 800, 2)
	floor := 2.0 / 800 * 100
	for _, box := range boxes {
		require.GreaterOrEqual(t, box.LeftPercent, -percentTol)
		require.LessOrEqual(t, box.LeftPercent+box.WidthPercent, 100.0+percentTol)
		if !box.Point {
			require.GreaterOrEqual(t, box.WidthPercent, floor-percentTol)
		}
	}
}

func TestLayoutDegenerateDurationFloor(t *testing.T) {
	// All events at one instant: total duration is floored, not zero.
	events := []Event{
		{Type: EventUser, Timestamp: ts(0)},
		{Type: EventUser, Timestamp: ts(0)},
	}

	boxes := Layout(events, 800, 1)
	require.Len(t, boxes, 2)
	require.InDelta(t, 0.0, boxes[0].LeftPercent, percentTol)
}

func TestLayoutZeroContainerWidth(t *testing.T) {
	events := []Event{{Type: EventTool, Timestamp: ts(0), Duration: time.Second}}
	boxes := Layout(events, 0, 1)
	require.Len(t, boxes, 1)
	require.Zero(t, boxes[0].LeftPercent)
}
