package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/clockwidget/widget"
)

// Styles holds the lipgloss styles for widget views.
type Styles struct {
	// Frame is the widget background, sized per family.
	Frame lipgloss.Style
	// Content wraps the view's text block.
	Content lipgloss.Style
	// Text is applied to each line.
	Text lipgloss.Style
}

// Frame sizes in terminal cells.
var frameSizes = map[widget.Family][2]int{
	widget.Small:  {22, 8},
	widget.Medium: {46, 8},
	widget.Large:  {46, 18},
}

// DefaultStyles returns white text on a black frame.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Background(lipgloss.Color("0")).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center),
		Content: lipgloss.NewStyle().
			Padding(1, 2),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")), // White
	}
}

// FrameSize returns the width and height of a family's frame.
func FrameSize(f widget.Family) (width, height int) {
	s, ok := frameSizes[f]
	if !ok {
		return 0, 0
	}
	return s[0], s[1]
}
