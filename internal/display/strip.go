package display

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/itsderek23/subtle/internal/timeline"
)

var stripStyles = map[timeline.EventType]lipgloss.Style{
	timeline.EventUser: userStyle,
	timeline.EventAI:   textStyle,
	timeline.EventTool: toolStyle,
}

// RenderStrip draws the positioned timeline boxes as one terminal line of
// the given column width. Later boxes draw over earlier ones, matching their
// layout order.
func RenderStrip(w io.Writer, boxes []timeline.Box, width int) {
	if width <= 0 || len(boxes) == 0 {
		return
	}

	cells := make([]timeline.EventType, width)
	filled := make([]bool, width)

	for _, box := range boxes {
		start := int(math.Round(box.LeftPercent / 100 * float64(width-1)))
		span := 1
		if !box.Point {
			span = int(math.Round(box.WidthPercent / 100 * float64(width)))
			if span < 1 {
				span = 1
			}
		}
		for i := start; i < start+span && i < width; i++ {
			if i < 0 {
				continue
			}
			cells[i] = box.Type
			filled[i] = true
		}
	}

	var b strings.Builder
	for i := range cells {
		if !filled[i] {
			b.WriteString(mutedStyle.Render("·"))
			continue
		}
		glyph := "█"
		if cells[i] == timeline.EventUser {
			glyph = "▲"
		}
		b.WriteString(stripStyles[cells[i]].Render(glyph))
	}
	io.WriteString(w, b.String()+"\n")
}
