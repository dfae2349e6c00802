// cmd/theme/main.go
//
// Theme management CLI.
//
//	theme make <name>          scaffold a new theme from stubs
//	theme list                 table of installed themes
//	theme info <name>          manifest and changelog
//	theme activate <name>      record the activated theme
//	theme deactivate <name>    clear it
//	theme delete <name>        empty a theme directory
//
// Every command accepts --root (project root holding conf/theme.yaml) and
// --verbose (debug logging to stderr).
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
