package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"codeberg.org/satirist/server/satirist/waitlist"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newWaitlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waitlist",
		Short: "Inspect the waitlist",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List waitlist entries in join order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := waitlist.NewStore(dataDir(cmd)).List()
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "waitlist is empty")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("#", "EMAIL", "NAME", "JOINED").
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})

			for _, e := range entries {
				t.Row(strconv.Itoa(e.Position), e.Email, e.Name, e.Timestamp.Format(time.DateTime))
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			fmt.Fprintf(cmd.OutOrStdout(), "%d waiting\n", len(entries))
			return nil
		},
	}

	cmd.AddCommand(list)

	return cmd
}
