// Package formatters contains the human-readable renderings of session
// quantities shared by the table, transcript and header views.
package formatters

import (
	"fmt"

	"github.com/itsderek23/subtle/internal/transcript"
)

// Duration renders a second count compactly: "45s", "3m05s", "2h14m".
// Non-positive durations render as "-".
func Duration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	total := int(seconds)
	switch {
	case total < 60:
		return fmt.Sprintf("%ds", total)
	case total < 3600:
		return fmt.Sprintf("%dm%02ds", total/60, total%60)
	default:
		return fmt.Sprintf("%dh%02dm", total/3600, (total%3600)/60)
	}
}

// Tokens renders a token count with a thousands suffix: 950 -> "950",
// 12345 -> "12.3k", 4200000 -> "4.2M".
func Tokens(count int) string {
	switch {
	case count < 1000:
		return fmt.Sprintf("%d", count)
	case count < 1000000:
		return fmt.Sprintf("%.1fk", float64(count)/1000)
	default:
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	}
}

// LOC renders an added/removed pair in diffstat style: "+12/-3".
func LOC(loc transcript.LOC) string {
	return fmt.Sprintf("+%d/-%d", loc.Added, loc.Removed)
}
