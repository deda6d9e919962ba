package timeline

import "time"

// MergeGap is the largest silence between two same-type events that still
// reads as one continuous run on the strip.
const MergeGap = 60 * time.Second

// Merge coalesces consecutive same-type events whose gap is within MergeGap
// into single intervals. One forward pass, one accumulator; extension is
// monotonic (an accumulated interval never shrinks) and order is preserved.
// Merging an already-merged list yields the same list.
func Merge(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}

	merged := make([]Event, 0, len(events))
	acc := events[0]

	for _, event := range events[1:] {
		gap := event.Timestamp.Sub(acc.End())
		if event.Type == acc.Type && gap <= MergeGap {
			if end := event.End(); end.After(acc.End()) {
				acc.Duration = end.Sub(acc.Timestamp)
			}
			continue
		}
		merged = append(merged, acc)
		acc = event
	}

	return append(merged, acc)
}
