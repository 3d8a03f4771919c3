package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"codeberg.org/satirist/server/internal/tui"
)

func main() {
	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "satirist tui needs an interactive terminal")
		os.Exit(1)
	}

	env := os.Getenv("SATIRIST_ENV")
	if env == "" {
		env = "development"
	}

	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		width, height = 100, 40
	}

	client := tui.NewClient(os.Getenv("SATIRIST_API_ENDPOINT"), os.Getenv("SATIRIST_TOKEN"))
	app := tui.NewApp(env, client, width, height)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running satirist: %v\n", err)
		os.Exit(1)
	}
}
