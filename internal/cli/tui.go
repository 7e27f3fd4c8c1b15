package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squashclub/courtbook/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	bg := context.Background()
	client, member, err := ctx.Connect(bg)
	if err != nil {
		return err
	}

	// Snapshot the journal before an interactive session starts.
	ctx.PerformAutomaticBackup()

	model := tui.NewModel(client, member, ctx.NewFlow(client))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
