// Package tui is a terminal client for the cartoon generation API.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func NewApp(mode string, client *Client, width, height int) *Model {
	return &Model{
		state:   StateWelcome,
		mode:    mode,
		width:   width,
		height:  height,
		client:  client,
		welcome: NewWelcome(mode),
		studio:  NewStudio(client, width),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			// errors are dismissed first, the studio returns to the welcome screen
			if m.err != nil {
				m.err = nil
				return m, nil
			}

			if m.state == StateStudio {
				m.state = StateWelcome
				return m, nil
			}

			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.studio, _ = m.studio.Update(msg)
		return m, nil

	case ErrorMsg:
		m.err = msg.err
		return m, nil

	case EnterStudioMsg:
		m.state = StateStudio
		return m, m.studio.Init()

	// pipeline results keep arriving after leaving the studio
	case StepResultMsg, StepErrorMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.studio, cmd = m.studio.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd

	switch m.state {
	case StateStudio:
		m.studio, cmd = m.studio.Update(msg)
	default:
		m.welcome, cmd = m.welcome.Update(msg, m.client)
	}

	return m, cmd
}

func (m *Model) View() string {
	if m.err != nil {
		return errorView(m.err)
	}

	if m.state == StateStudio {
		return m.studio.View()
	}

	return m.welcome.View()
}

func errorView(err error) string {
	return fmt.Sprintf("\n  Error: %v\n\n  Press Ctrl+C to dismiss\n", err)
}
