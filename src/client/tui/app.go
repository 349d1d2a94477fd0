// Package tui implements the interactive character search screen
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apimgr/swapi/src/client/api"
)

// Searcher looks up characters by name
type Searcher interface {
	SearchCharacters(ctx context.Context, term string) ([]api.Character, error)
}

// Dracula colors
var (
	foreground = lipgloss.Color("#f8f8f2")
	comment    = lipgloss.Color("#6272a4")
	cyan       = lipgloss.Color("#8be9fd")
	purple     = lipgloss.Color("#bd93f9")
	red        = lipgloss.Color("#ff5555")
	yellow     = lipgloss.Color("#f1fa8c")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(purple).
			Bold(true).
			Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(comment).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(yellow).
			Bold(true)

	fieldStyle = lipgloss.NewStyle().
			Foreground(foreground)

	labelStyle = lipgloss.NewStyle().
			Foreground(cyan)

	helpStyle = lipgloss.NewStyle().
			Foreground(comment)

	errorStyle = lipgloss.NewStyle().
			Foreground(red)
)

type model struct {
	ctx       context.Context
	client    Searcher
	input     textinput.Model
	viewport  viewport.Model
	results   []api.Character
	err       error
	searching bool
	width     int
	height    int
}

type searchResultMsg struct {
	results []api.Character
	err     error
}

func initialModel(ctx context.Context, client Searcher) model {
	ti := textinput.New()
	ti.Placeholder = "Search characters by name..."
	ti.Focus()
	ti.Width = 50

	return model{
		ctx:      ctx,
		client:   client,
		input:    ti,
		viewport: viewport.New(80, 18),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.input.Value() != "" && !m.searching {
				m.searching = true
				return m, m.doSearch(m.input.Value())
			}
			return m, nil
		case "esc":
			m.input.SetValue("")
			m.results = nil
			m.err = nil
			m.viewport.SetContent("")
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width, max(msg.Height-6, 1))
		m.viewport.SetContent(m.renderResults())

	case searchResultMsg:
		m.searching = false
		m.results = msg.results
		m.err = msg.err
		m.viewport.SetContent(m.renderResults())
		m.viewport.GotoTop()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// doSearch runs the lookup off the update loop
func (m model) doSearch(term string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.client.SearchCharacters(m.ctx, term)
		return searchResultMsg{results: results, err: err}
	}
}

func (m model) renderResults() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}
	var sb strings.Builder
	for i, c := range m.results {
		sb.WriteString(nameStyle.Render(fmt.Sprintf("%d. %s", i+1, c.Name)))
		sb.WriteString("\n")
		sb.WriteString(renderField("Birth year", string(c.BirthYear)))
		sb.WriteString(renderField("Height", string(c.Height)))
		sb.WriteString(renderField("Eye color", string(c.EyeColor)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderField(label, value string) string {
	return "   " + labelStyle.Render(label+":") + " " + fieldStyle.Render(value) + "\n"
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Star Wars Characters"))
	sb.WriteString("\n\n")

	sb.WriteString(inputStyle.Render(m.input.View()))
	sb.WriteString("\n\n")

	if m.searching {
		sb.WriteString(helpStyle.Render("Searching..."))
	} else {
		sb.WriteString(m.viewport.View())
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Enter: search • Esc: clear • Ctrl+C: quit"))

	return sb.String()
}

// Run starts the TUI application
func Run(ctx context.Context, client Searcher) error {
	p := tea.NewProgram(initialModel(ctx, client), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
