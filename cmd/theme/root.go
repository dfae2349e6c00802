package main

import (
	"github.com/spf13/cobra"

	"github.com/AdeptTravel/adept-theme/internal/app"
)

type globalFlags struct {
	root    string
	verbose bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "theme",
		Short:         "Scaffold and manage themes",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&g.root, "root", "", "project root (default: discovered from ADEPT_ROOT or conf/theme.yaml)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(
		newMakeCmd(g),
		newListCmd(g),
		newInfoCmd(g),
		newActivateCmd(g),
		newDeactivateCmd(g),
		newDeleteCmd(g),
	)
	return cmd
}

// open boots the app for one command.  Logs reach stderr only with
// --verbose so table output stays clean.
func (g *globalFlags) open(cmd *cobra.Command) (*app.App, error) {
	return app.Open(cmd.Context(), app.Options{
		Root:    g.root,
		Tee:     g.verbose,
		Verbose: g.verbose,
	})
}
