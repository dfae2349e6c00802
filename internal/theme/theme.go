// Package theme discovers installed themes, activates one, and resolves its
// assets, views, and translations.
//
// A theme is a directory below the themes path:
//
//	themes/<name>/
//	    theme.json        manifest (name, title, description, author, version, parent)
//	    changelog.yml     optional
//	    screenshot.png    optional
//	    assets/           public files, served under the theme's asset URL
//	    views/            html/template files, `layouts/` parsed for every view
//	    lang/<locale>/    translation groups
//
// A theme may name one parent.  Activation registers the parent first and
// the child in front of it, so the child shadows the parent for views and
// translations.  Asset lookups fall back to the parent one level deep.
package theme

import (
	"errors"
	"fmt"
)

// ErrThemeNotFound matches every ThemeNotFoundError through errors.Is.
var ErrThemeNotFound = errors.New("theme not found")

// ErrParentCycle is returned when parents loop back or nest too deep.
var ErrParentCycle = errors.New("theme parent chain loops or is too deep")

// ThemeNotFoundError names the missing theme.
type ThemeNotFoundError struct {
	Name string
}

func (e *ThemeNotFoundError) Error() string {
	return fmt.Sprintf("theme [ %s ] not found", e.Name)
}

// Is lets errors.Is(err, ErrThemeNotFound) match.
func (e *ThemeNotFoundError) Is(target error) bool { return target == ErrThemeNotFound }

func notFound(name string) error { return &ThemeNotFoundError{Name: name} }
