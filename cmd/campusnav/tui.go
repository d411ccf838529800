package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/1F47E/campus-nav/pkg/config"
	"github.com/1F47E/campus-nav/pkg/nav"
	"github.com/1F47E/campus-nav/pkg/render"
)

var (
	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BE9FD"))

	startStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))

	destinationStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#BD93F9"))

	neutralStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8F8F2"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#BD93F9")).
			Padding(0, 1)
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Click key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Click, k.Reset, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Click: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

type model struct {
	nav      *nav.Navigator
	hotspots []nav.Hotspot
	cursor   int
	status   string
	mapCfg   config.Map
	help     help.Model
	width    int
	height   int
}

func initialModel(n *nav.Navigator, mapCfg config.Map) model {
	return model{
		nav:      n,
		hotspots: n.Hotspots(),
		mapCfg:   mapCfg,
		help:     help.New(),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.hotspots)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Click):
			if len(m.hotspots) == 0 {
				return m, nil
			}
			id := m.hotspots[m.cursor].Location.ID
			if err := m.nav.Click(id); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}

		case key.Matches(msg, keys.Reset):
			m.nav.Reset()
			m.status = ""
		}
		// classes are derived from the selection on every change
		m.hotspots = m.nav.Hotspots()
	}

	return m, nil
}

func classStyle(c nav.Class) lipgloss.Style {
	switch c {
	case nav.IsStart:
		return startStyle
	case nav.IsDestination:
		return destinationStyle
	}
	return neutralStyle
}

func classMark(c nav.Class) string {
	switch c {
	case nav.IsStart:
		return string(render.GlyphStart)
	case nav.IsDestination:
		return string(render.GlyphDestination)
	}
	return " "
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📍 Campus Map & Navigation"))
	b.WriteString("\n")

	if len(m.hotspots) == 0 {
		b.WriteString(dimStyle.Render("No locations loaded. Nothing to select."))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(keys))
		return b.String()
	}

	var list strings.Builder
	list.WriteString(subtitleStyle.Render("Locations"))
	list.WriteString("\n")
	for i, h := range m.hotspots {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		line := fmt.Sprintf("%s %s", classMark(h.Class), h.Location.Label())
		list.WriteString(pointer + classStyle(h.Class).Render(line) + "\n")
	}

	grid := render.Draw(m.mapCfg.Width, m.mapCfg.Height, m.hotspots, m.nav.Route())
	mapView := boxStyle.Render(grid.String())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", mapView))
	b.WriteString("\n\n")

	b.WriteString(boxStyle.Render(strings.Join(render.PanelLines(m.nav), "\n")))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return b.String()
}

func newNavCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "nav",
		Short: "Interactive navigator: select start and destination from the list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, cfg, err := opts.loadNavigator(cmd.Context())
			if err != nil {
				return err
			}

			program := tea.NewProgram(initialModel(n, cfg.Map), tea.WithContext(cmd.Context()))
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("navigator: %w", err)
			}
			return nil
		},
	}
}
