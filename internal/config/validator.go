// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `loader.go` calls `validateStruct` right after it unmarshals the merged
// Koanf tree.  Any failure aborts startup so the binary never runs with
// partial or malformed configuration.
//
// One custom rule is registered here: `themename`, which accepts the
// lower-case directory names the generator produces.  The manifest package
// reuses it through `Validator()`.

package config

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var themeNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	_ = val.RegisterValidation("themename", func(fl validator.FieldLevel) bool {
		return themeNameRe.MatchString(fl.Field().String())
	})
	return val
}

//
// public API
//

// Validator exposes the shared instance so other packages get the same
// custom rules.
func Validator() *validator.Validate { return v }

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
