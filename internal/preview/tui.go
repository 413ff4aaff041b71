package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HerbHall/slidecraft/internal/session"
	"github.com/HerbHall/slidecraft/pkg/models"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Exporter writes the presentation as a file and returns its path.
type Exporter func(ctx context.Context, p *models.Presentation, th models.Theme) (string, error)

type keyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Export key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Export, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeys = keyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

type exportDoneMsg struct {
	path string
	err  error
}

// Model is the terminal preview. It renders the session's presentation with
// the session's theme.
type Model struct {
	state    *session.State
	nav      *Navigator
	exporter Exporter
	keys     keyMap
	help     help.Model
	status   string
	width    int
}

// NewModel returns a preview of the session's current presentation.
func NewModel(state *session.State, exporter Exporter) (Model, error) {
	p := state.Presentation()
	if err := p.Validate(); err != nil {
		return Model{}, err
	}
	return Model{
		state:    state,
		nav:      NewNavigator(len(p.Slides)),
		exporter: exporter,
		keys:     defaultKeys,
		help:     help.New(),
		width:    80,
	}, nil
}

// Index returns the zero-based slide on screen.
func (m Model) Index() int { return m.nav.Index() }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case exportDoneMsg:
		m.state.EndExport()
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Saved " + msg.path
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Prev):
			m.nav.Prev()
		case key.Matches(msg, m.keys.Next):
			m.nav.Next()
		case key.Matches(msg, m.keys.Export):
			return m, m.startExport()
		}
	}
	return m, nil
}

func (m *Model) startExport() tea.Cmd {
	if m.exporter == nil {
		m.status = "Export is not available"
		return nil
	}
	if err := m.state.BeginExport(); err != nil {
		if errors.Is(err, session.ErrBusy) {
			m.status = "Export already in progress"
		}
		return nil
	}
	m.status = "Exporting..."

	p, th, exporter := m.state.Presentation(), m.state.Theme(), m.exporter
	return func() tea.Msg {
		path, err := exporter(context.Background(), p, th)
		return exportDoneMsg{path: path, err: err}
	}
}

func (m Model) View() string {
	th := m.state.Theme()
	p := m.state.Presentation()
	v := View(p, m.nav)

	width := m.width
	if width < 20 {
		width = 20
	}

	slide := lipgloss.NewStyle().
		Background(lipgloss.Color(th.Background)).
		Foreground(lipgloss.Color(th.Text)).
		Padding(1, 3).
		Width(width)
	title := lipgloss.NewStyle().Bold(true).Width(width - 6).Align(lipgloss.Center)
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))

	var body strings.Builder
	body.WriteString(title.Render(v.Title))
	body.WriteString("\n\n")
	for _, b := range v.Bullets {
		body.WriteString("• " + b + "\n")
	}
	if v.Image != "" {
		body.WriteString("\n" + accent.Render("[image] "+v.Image) + "\n")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Title))
	b.WriteString("\n")
	b.WriteString(slide.Render(strings.TrimRight(body.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  ·  %s", v.Position, th.Name))
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

// Run shows the preview until the user quits.
func Run(state *session.State, exporter Exporter) error {
	m, err := NewModel(state, exporter)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}
