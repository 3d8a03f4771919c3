package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/glamour"
)

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateStudio
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	client  *Client
	welcome *Welcome
	studio  *Studio
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the studio
type EnterStudioMsg struct{}

// sent when check-usage answers
type UsageMsg struct {
	usage *Usage
}

// the pipeline step a studio request is waiting for
type step int

const (
	stepIdle step = iota
	stepQuote
	stepDescription
	stepComic
)

// sent when a pipeline step completes
type StepResultMsg struct {
	step        step
	quote       string
	description string
	comic       *Comic
}

// sent when a pipeline step fails
type StepErrorMsg struct {
	step step
	err  error
}

// comic studio: situation in, caption, scene and image out
type Studio struct {
	client      *Client
	input       textinput.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer
	width       int
	step        step
	situation   string
	quote       string
	description string
	comic       *Comic
	err         error
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	usage    *Usage
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
}
