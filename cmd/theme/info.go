package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInfoCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "info <name>",
		Short: "Show a theme's manifest and changelog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := a.Manager.Info(args[0])
			if err != nil {
				return fmt.Errorf("theme [ %s ] not found: %w", args[0], err)
			}
			log, err := a.Manager.ChangeLog(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fields := [][2]string{
				{"Name", info.Name},
				{"Title", info.Title},
				{"Description", info.Description},
				{"Author", info.Author},
				{"Version", info.Version},
				{"Parent", info.Parent},
				{"Path", info.Path},
				{"Screenshot", info.Screenshot},
			}
			for _, f := range fields {
				fmt.Fprintf(out, "%-12s %s\n", f[0]+":", f[1])
			}
			return writeChangelog(out, log)
		},
	}
}

// writeChangelog prints versions in reverse lexical order, each followed by
// its entries as YAML.
func writeChangelog(w io.Writer, log map[string]any) error {
	if len(log) == 0 {
		return nil
	}
	versions := make([]string, 0, len(log))
	for v := range log {
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))

	fmt.Fprintln(w, "\nChangelog:")
	for _, v := range versions {
		body, err := yaml.Marshal(log[v])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\n", v)
		for _, line := range strings.Split(strings.TrimRight(string(body), "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
	return nil
}
