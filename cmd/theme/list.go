package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/AdeptTravel/adept-theme/internal/manifest"
	"github.com/AdeptTravel/adept-theme/internal/store"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	activeStyle = cellStyle.Foreground(lipgloss.Color("10"))
)

func newListCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			themes, err := a.Manager.List()
			if err != nil {
				return err
			}
			if len(themes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no themes found in %s\n", a.Manager.BasePath())
				return nil
			}
			active, err := a.Store.Get(cmd.Context(), store.KeyActivatedTheme)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), themeTable(themes, active))
			return nil
		},
	}
}

// themeTable renders Name, Author, Version, Parent; the activated row is
// marked with an asterisk.
func themeTable(themes []*manifest.Manifest, active string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Author", "Version", "Parent")

	activeRow := -1
	for i, th := range themes {
		name := th.Name
		if name == active {
			name += " *"
			activeRow = i
		}
		t.Row(name, th.Author, th.Version, th.Parent)
	}
	t.StyleFunc(func(row, _ int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == activeRow:
			return activeStyle
		default:
			return cellStyle
		}
	})
	return t.Render()
}
