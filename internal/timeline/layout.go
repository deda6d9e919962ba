package timeline

import "time"

// minTotalDuration floors the strip's time span so degenerate or empty
// sessions never divide by zero.
const minTotalDuration = time.Second

// Box is one positioned visual primitive of the strip. Point boxes render as
// fixed-size markers centered on LeftPercent; interval boxes span
// WidthPercent of the container. Styling is a draw-time concern.
type Box struct {
	Type        EventType `json:"type"`
	LeftPercent float64   `json:"left_percent"`
	// WidthPercent is 0 for point boxes.
	WidthPercent float64 `json:"width_percent"`
	Point        bool    `json:"point"`
}

// Layout maps merged events onto a proportional scale. containerPx is the
// rendered width of the strip and minEventPx the smallest width an interval
// may shrink to: near-zero tool calls stay visible.
func Layout(events []Event, containerPx, minEventPx float64) []Box {
	if len(events) == 0 {
		return nil
	}

	start := events[0].Timestamp
	end := events[0].End()
	for _, e := range events[1:] {
		if e.Timestamp.Before(start) {
			start = e.Timestamp
		}
		if e.End().After(end) {
			end = e.End()
		}
	}

	total := end.Sub(start)
	if total < minTotalDuration {
		total = minTotalDuration
	}

	minWidthPercent := 0.0
	if containerPx > 0 {
		minWidthPercent = minEventPx / containerPx * 100
	}

	boxes := make([]Box, 0, len(events))
	for _, e := range events {
		box := Box{
			Type:        e.Type,
			LeftPercent: float64(e.Timestamp.Sub(start)) / float64(total) * 100,
		}

		if e.Type == EventUser {
			box.Point = true
		} else {
			box.WidthPercent = float64(e.Duration) / float64(total) * 100
			if box.WidthPercent < minWidthPercent {
				box.WidthPercent = minWidthPercent
			}
			// Clamping can push the right edge past the container; pull the
			// box back instead of shrinking below the pixel floor.
			if box.LeftPercent+box.WidthPercent > 100 {
				box.LeftPercent = 100 - box.WidthPercent
			}
		}

		boxes = append(boxes, box)
	}

	return boxes
}
