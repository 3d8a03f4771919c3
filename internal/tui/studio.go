package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const defaultWrap = 80

// returns a new comic studio
func NewStudio(client *Client, width int) *Studio {
	ti := textinput.New()
	ti.Placeholder = "describe a political situation..."
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(colorLightGray)
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorWhite)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorGray)

	s := &Studio{
		client:  client,
		input:   ti,
		spinner: sp,
	}
	s.resize(width)

	return s
}

func (s *Studio) Init() tea.Cmd {
	return textinput.Blink
}

func (s *Studio) busy() bool {
	return s.step != stepIdle
}

func (s *Studio) Update(msg tea.Msg) (*Studio, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			situation := strings.TrimSpace(s.input.Value())
			if situation == "" || s.busy() {
				return s, nil
			}

			s.reset()
			s.situation = situation
			s.step = stepQuote
			s.input.SetValue("")

			return s, tea.Batch(s.spinner.Tick, s.quoteCmd())

		case "ctrl+l":
			if !s.busy() {
				s.reset()
				s.input.SetValue("")
			}
			return s, nil
		}

	case StepResultMsg:
		return s.advance(msg)

	case StepErrorMsg:
		s.step = stepIdle
		s.err = msg.err
		s.input.Focus()
		return s, nil

	case spinner.TickMsg:
		if !s.busy() {
			return s, nil
		}

		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.WindowSizeMsg:
		s.resize(msg.Width)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	return s, cmd
}

// moves to the next pipeline step
func (s *Studio) advance(msg StepResultMsg) (*Studio, tea.Cmd) {
	switch msg.step {
	case stepQuote:
		s.quote = msg.quote
		s.step = stepDescription
		return s, s.descriptionCmd()

	case stepDescription:
		s.description = msg.description
		s.step = stepComic
		return s, s.comicCmd()

	case stepComic:
		s.comic = msg.comic
	}

	s.step = stepIdle
	s.input.Focus()

	return s, nil
}

func (s *Studio) reset() {
	s.situation, s.quote, s.description = "", "", ""
	s.comic = nil
	s.err = nil
}

func (s *Studio) resize(width int) {
	s.width = width

	wrap := defaultWrap
	if width > 10 {
		wrap = width - 8
		s.input.Width = width - 10
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		s.renderer = renderer
	}
}

func (s *Studio) quoteCmd() tea.Cmd {
	situation := s.situation

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		quote, err := s.client.Quote(ctx, situation)
		if err != nil {
			return StepErrorMsg{step: stepQuote, err: err}
		}

		return StepResultMsg{step: stepQuote, quote: quote}
	}
}

func (s *Studio) descriptionCmd() tea.Cmd {
	situation, quote := s.situation, s.quote

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		description, err := s.client.Description(ctx, situation, quote)
		if err != nil {
			return StepErrorMsg{step: stepDescription, err: err}
		}

		return StepResultMsg{step: stepDescription, description: description}
	}
}

func (s *Studio) comicCmd() tea.Cmd {
	situation, quote, description := s.situation, s.quote, s.description

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		comic, err := s.client.Comic(ctx, situation, quote, description)
		if err != nil {
			return StepErrorMsg{step: stepComic, err: err}
		}

		return StepResultMsg{step: stepComic, comic: comic}
	}
}

// builds the markdown shown in the output box
func (s *Studio) markdown() string {
	if s.situation == "" {
		return "*Describe a situation below and press enter. The Common Man is listening.*"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", s.situation)

	if s.quote != "" {
		fmt.Fprintf(&b, "> %s\n\n", s.quote)
	}

	if s.description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.description)
	}

	if s.comic != nil {
		source := "placeholder sketch"
		if s.comic.AIGenerated {
			source = "drawn by " + s.comic.Provider
		}

		fmt.Fprintf(&b, "**Cartoon** (%s)\n\n%s\n", source, displayURL(s.comic.ImageURL))
	}

	return b.String()
}

func (s *Studio) View() string {
	var b strings.Builder

	header := lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Render("STUDIO")
	help := helpStyle.UnsetMarginTop().Render("[Enter: Draw] [Ctrl+L: Clear] [Ctrl+C: Back]")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
		header,
		strings.Repeat(" ", max(1, s.width-lipgloss.Width(header)-lipgloss.Width(help))),
		help,
	))
	b.WriteString("\n\n")

	content := s.markdown()
	if s.renderer != nil {
		if rendered, err := s.renderer.Render(content); err == nil {
			content = rendered
		}
	}

	b.WriteString(borderStyle.Width(max(s.width-4, 20)).Render(strings.TrimRight(content, "\n")))
	b.WriteString("\n\n")

	if s.err != nil {
		b.WriteString(errorStyle.Render("✗ " + describeError(s.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(borderStyle.Width(max(s.width-4, 20)).Padding(0, 1).Render(s.input.View()))
	b.WriteString("\n")

	if s.busy() {
		b.WriteString(s.spinner.View() + infoStyle.Render(" "+s.step.String()+"..."))
	}

	return b.String()
}

func (st step) String() string {
	switch st {
	case stepQuote:
		return "writing the caption"
	case stepDescription:
		return "sketching the scene"
	case stepComic:
		return "drawing the cartoon"
	default:
		return "idle"
	}
}

// turns API errors into something a reader can act on
func describeError(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return "sign in first: set SATIRIST_TOKEN to a token from /api/v1/auth"
	case http.StatusTooManyRequests:
		if apiErr.Limit > 0 {
			return fmt.Sprintf("%s (%d/%d today)", apiErr.Error(), apiErr.Current, apiErr.Limit)
		}
	}

	return apiErr.Error()
}

// data URLs are too long to print
func displayURL(u string) string {
	if strings.HasPrefix(u, "data:") {
		return "(inline image)"
	}

	return u
}
