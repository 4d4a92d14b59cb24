// Package tui hosts the widget in a full-screen Bubble Tea program.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/drake/clockwidget/render"
	"github.com/drake/clockwidget/widget"
)

// ViewMsg carries a freshly rendered widget view.
type ViewMsg render.View

// Model is the Bubble Tea model for the widget screen.
type Model struct {
	styles  render.Styles
	status  *Status
	view    render.View
	hasView bool

	width       int
	height      int
	initialized bool
}

// NewModel creates the model; the status line names the widget, family and city.
func NewModel(desc widget.Descriptor, family widget.Family, city string) Model {
	return Model{
		styles: render.DefaultStyles(),
		status: NewStatus(desc.DisplayName, family, city),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.status.SetWidth(msg.Width)
		m.initialized = true
		return m, nil

	case ViewMsg:
		m.view = render.View(msg)
		m.hasView = true
		m.status.SetUpdated(true)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.initialized {
		return ""
	}

	var body string
	if m.hasView {
		body = m.view.Styled(m.styles)
	}

	bodyHeight := m.height - m.status.Height()
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	return lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body) +
		"\n" + m.status.View()
}
