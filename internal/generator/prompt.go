package generator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxAttempts bounds re-asking a required question.
const maxAttempts = 3

// Prompter asks the user questions.
type Prompter interface {
	Ask(question, def string) (string, error)
	Confirm(question string, def bool) (bool, error)
}

// LinePrompter reads one answer per line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter prompts on out and reads from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question and returns the trimmed answer, or def when blank.
func (p *LinePrompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// Confirm asks a yes/no question.
func (p *LinePrompter) Confirm(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	ans, err := p.Ask(question+" ("+hint+")", "")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(ans) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Gather asks for everything Generate needs.  Description and author are
// title-cased, a blank version becomes DefaultVersion, and the parent name
// is lower-cased.
func Gather(p Prompter, name string) (Answers, error) {
	a := Answers{Name: strings.ToLower(name)}

	var err error
	for i := 0; i < maxAttempts && a.Title == ""; i++ {
		if a.Title, err = p.Ask("What is theme title?", ""); err != nil {
			return a, err
		}
	}
	if a.Title == "" {
		return a, errors.New("theme title is required")
	}

	if a.Description, err = p.Ask("What is theme description?", ""); err != nil {
		return a, err
	}
	a.Description = Title(a.Description)

	if a.Author, err = p.Ask("What is theme author name?", ""); err != nil {
		return a, err
	}
	a.Author = Title(a.Author)

	if a.Version, err = p.Ask("What is theme version?", DefaultVersion); err != nil {
		return a, err
	}

	hasParent, err := p.Confirm("Any parent theme?", false)
	if err != nil {
		return a, err
	}
	if hasParent {
		parent, err := p.Ask("What is parent theme name?", "")
		if err != nil {
			return a, err
		}
		a.Parent = strings.ToLower(parent)
	}
	return a, nil
}

// Title upper-cases the first letter of every word and lower-cases the rest.
func Title(s string) string {
	return cases.Title(language.Und).String(s)
}
