// Package filter narrows reconstructed turns against match-id sets produced
// by an external search collaborator.
package filter

import "github.com/itsderek23/subtle/internal/transcript"

// MatchSet is the set of matching message indices for the active query.
// A nil MatchSet means no active filter.
type MatchSet map[int]bool

// NewMatchSet builds a MatchSet from a list of message indices.
func NewMatchSet(indices []int) MatchSet {
	set := make(MatchSet, len(indices))
	for _, idx := range indices {
		set[idx] = true
	}
	return set
}

// Apply filters turns against the match set. A nil set is an identity
// pass-through. User turns are kept iff any of their message indices match.
// Assistant turns are kept with only their matching segments retained: a
// segment matches when its message index or result message index is in the
// set. Input turns are never mutated.
func Apply(turns []transcript.Turn, matches MatchSet) []transcript.Turn {
	if matches == nil {
		return turns
	}

	kept := make([]transcript.Turn, 0, len(turns))
	for _, turn := range turns {
		switch turn.Kind {
		case transcript.TurnUser:
			if anyIndexIn(turn.MessageIndices, matches) {
				kept = append(kept, turn)
			}

		case transcript.TurnAssistant:
			var segments []transcript.Segment
			for _, seg := range turn.Segments {
				if matches[seg.MessageIndex] || (seg.ResultMessageIndex >= 0 && matches[seg.ResultMessageIndex]) {
					segments = append(segments, seg)
				}
			}
			if len(segments) > 0 {
				filtered := turn
				filtered.Segments = segments
				kept = append(kept, filtered)
			}
		}
	}
	return kept
}

func anyIndexIn(indices []int, matches MatchSet) bool {
	for _, idx := range indices {
		if matches[idx] {
			return true
		}
	}
	return false
}
