package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AdeptTravel/adept-theme/internal/generator"
)

type makeFlags struct {
	title         string
	description   string
	author        string
	version       string
	parent        string
	noInteraction bool
}

func newMakeCmd(g *globalFlags) *cobra.Command {
	f := &makeFlags{}
	cmd := &cobra.Command{
		Use:   "make <name>",
		Short: "Generate a new theme folder from stubs",
		Long: `Make creates <themes>/<name> with assets, views and lang folders and
copies the theme stubs into it, replacing [NAME], [TITLE], [DESCRIPTION],
[AUTHOR], [PARENT], [VERSION], [CSSNAME] and [JSNAME].

Answers are asked interactively unless --no-interaction is given, in which
case --title is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMake(cmd, g, f, args[0])
		},
	}
	cmd.Flags().StringVar(&f.title, "title", "", "theme title")
	cmd.Flags().StringVar(&f.description, "description", "", "theme description")
	cmd.Flags().StringVar(&f.author, "author", "", "theme author")
	cmd.Flags().StringVar(&f.version, "version", generator.DefaultVersion, "theme version")
	cmd.Flags().StringVar(&f.parent, "parent", "", "parent theme name")
	cmd.Flags().BoolVarP(&f.noInteraction, "no-interaction", "n", false, "do not ask questions")
	return cmd
}

func runMake(cmd *cobra.Command, g *globalFlags, f *makeFlags, name string) error {
	a, err := g.open(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	gen, err := generator.New(a.Config.Theme.Path, a.Config.Theme.AssetsFolder, a.Config.Theme.StubPath)
	if err != nil {
		return err
	}
	if gen.Exists(name) {
		return fmt.Errorf("%w: %s", generator.ErrThemeExists, gen.Target(name))
	}

	var answers generator.Answers
	if f.noInteraction {
		if f.title == "" {
			return errors.New("--title is required with --no-interaction")
		}
		answers = generator.Answers{
			Name:        strings.ToLower(name),
			Title:       f.title,
			Description: generator.Title(f.description),
			Author:      generator.Title(f.author),
			Version:     f.version,
			Parent:      strings.ToLower(f.parent),
		}
	} else {
		p := generator.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
		if answers, err = generator.Gather(p, name); err != nil {
			return err
		}
	}

	if _, err := gen.Generate(answers); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s theme folder successfully generated\n", generator.Title(answers.Name))
	return nil
}
