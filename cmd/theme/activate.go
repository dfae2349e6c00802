package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdeptTravel/adept-theme/internal/generator"
)

func newActivateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <name>",
		Short: "Record a theme as the activated theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Manager.Activate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme %s activated\n", args[0])
			return nil
		},
	}
}

func newDeactivateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <name>",
		Short: "Clear the activated theme when it is <name>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.Manager.Deactivate(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme %s deactivated\n", args[0])
			return nil
		},
	}
}

func newDeleteCmd(g *globalFlags) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Deactivate a theme and remove its files",
		Long: `Delete deactivates the theme when it is active and removes everything
inside its directory.  The directory itself is kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !force {
				p := generator.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				ok, err := p.Confirm(fmt.Sprintf("Delete all files of theme %s?", name), false)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Manager.Delete(cmd.Context(), name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme %s deleted\n", name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
