package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/drake/clockwidget/ui/tui/util"
	"github.com/drake/clockwidget/widget"
)

// Status displays the widget name and family on the left and the
// configured city on the right.
type Status struct {
	name    string
	family  widget.Family
	city    string
	updated bool
	width   int

	left  lipgloss.Style
	right lipgloss.Style
	muted lipgloss.Style
}

// NewStatus creates a status line.
func NewStatus(name string, family widget.Family, city string) *Status {
	return &Status{
		name:   name,
		family: family,
		city:   city,
		left: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		right: lipgloss.NewStyle().
			Foreground(lipgloss.Color("71")), // Muted green
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")), // Gray
	}
}

// View renders the status line.
func (s *Status) View() string {
	left := s.left.Render(s.name) + s.muted.Render(" · "+s.family.String())
	if !s.updated {
		left += s.muted.Render(" · waiting")
	}

	var right string
	if s.city != "" {
		right = s.right.Render(s.city)
	}

	padding := s.width - util.VisibleLen(left) - util.VisibleLen(right)
	if padding < 1 {
		padding = 1
	}

	return left + strings.Repeat(" ", padding) + right
}

// SetWidth sets the available width.
func (s *Status) SetWidth(w int) {
	s.width = w
}

// Height is always one row.
func (s *Status) Height() int {
	return 1
}

// SetUpdated records whether a view has arrived yet.
func (s *Status) SetUpdated(updated bool) {
	s.updated = updated
}
