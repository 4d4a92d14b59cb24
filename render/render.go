// Package render turns timeline entries into widget views.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/clockwidget/widget"
)

// Label is the heading of the small view.
const Label = "Current Time"

// TimeLayout formats an entry's time of day.
const TimeLayout = "3:04 PM"

// View is the static visual description produced for one entry.
type View struct {
	Family widget.Family
	Lines  []string
}

// Render produces the view for entry at family f.
// It panics on a family outside {small, medium, large}; that is a
// programming error in the host, not a runtime condition.
func Render(entry widget.Entry, f widget.Family) View {
	switch f {
	case widget.Small:
		return View{Family: f, Lines: []string{Label, entry.Date.Format(TimeLayout)}}
	case widget.Medium:
		return View{Family: f, Lines: []string{""}}
	case widget.Large:
		return View{Family: f, Lines: []string{""}}
	}
	panic(fmt.Sprintf("render: unknown widget family %v", f))
}

// Empty reports whether the view has no visible text.
func (v View) Empty() bool {
	for _, l := range v.Lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// Text returns the unstyled lines joined by newlines.
func (v View) Text() string {
	return strings.Join(v.Lines, "\n")
}

// String renders the view with DefaultStyles.
func (v View) String() string {
	return v.Styled(DefaultStyles())
}

// Styled renders the view inside its family frame using s.
func (v View) Styled(s Styles) string {
	lines := make([]string, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = s.Text.Render(l)
	}
	content := s.Content.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))

	w, h := FrameSize(v.Family)
	if w == 0 {
		return content
	}
	return s.Frame.Width(w).Height(h).Render(content)
}
