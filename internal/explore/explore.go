// Package explore is the interactive Bubble Tea front end for a world walk:
// the walker steps toward the goal on a timer or by hand while the map
// reveals what it has seen.
package explore

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faultbox/gridkit/internal/render"
	"github.com/Faultbox/gridkit/internal/world"
)

// KeyMap defines the key bindings for a walk.
type KeyMap struct {
	Play  key.Binding
	Step  key.Binding
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Step, k.Reset, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Step, k.Reset},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Step:  key.NewBinding(key.WithKeys("n", "."), key.WithHelp("n", "step")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "nudge left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "nudge right")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "nudge up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "nudge down")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// TickMsg advances an autoplaying walk.
type TickMsg time.Time

func tickCmd(rate int) tea.Cmd {
	interval := time.Second / time.Duration(max(rate, 1))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model is the Bubble Tea model for a walk.
type Model struct {
	walk     world.Walk
	r        *render.Renderer
	layout   render.Layout
	rate     int
	keys     KeyMap
	help     help.Model
	playing  bool
	quitting bool
}

// NewModel wraps walk. rate is the autoplay speed in steps per second.
func NewModel(walk world.Walk, r *render.Renderer, layout render.Layout, rate int) Model {
	return Model{walk: walk, r: r, layout: layout, rate: rate, keys: DefaultKeyMap(), help: help.New()}
}

// Playing reports whether autoplay is on.
func (m Model) Playing() bool { return m.playing }

func (m Model) Init() tea.Cmd {
	return tickCmd(m.rate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.playing && !m.walk.Step() {
			m.playing = false
		}
		return m, tickCmd(m.rate)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Play):
		m.playing = !m.playing && !m.walk.Done()
	case key.Matches(msg, m.keys.Step):
		m.walk.Step()
	case key.Matches(msg, m.keys.Reset):
		m.playing = false
		m.walk.Reset()
	case key.Matches(msg, m.keys.Left):
		m.walk.Nudge(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.walk.Nudge(1, 0)
	case key.Matches(msg, m.keys.Up):
		m.walk.Nudge(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.walk.Nudge(0, 1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	res := m.walk.Frame()
	var b strings.Builder
	b.WriteString(m.r.Header(res.Title, res.Stats...))
	b.WriteString("\n")
	b.WriteString(m.r.Render(res.Canvas, m.layout))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the Bubble Tea program on the alternate screen.
func Run(walk world.Walk, r *render.Renderer, layout render.Layout, rate int) error {
	p := tea.NewProgram(NewModel(walk, r, layout, rate), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
