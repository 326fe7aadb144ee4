package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("validation failed:")
	for _, err := range e {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// choice restricts a string key to a fixed set of values. An empty value is
// accepted and means the default.
type choice struct {
	field  string
	value  func(*Config) string
	values []string
}

var choices = []choice{
	{"verification.method", func(c *Config) string { return c.Verification.Method }, []string{"count", "full", "skip"}},
	{"logging.level", func(c *Config) string { return c.Logging.Level }, []string{"debug", "info", "warn", "error"}},
	{"logging.format", func(c *Config) string { return c.Logging.Format }, []string{"json", "text"}},
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	errs := c.validateOutput()

	for _, ch := range choices {
		v := ch.value(c)
		if v == "" || slices.Contains(ch.values, v) {
			continue
		}
		errs = append(errs, ValidationError{
			Field:   ch.field,
			Message: fmt.Sprintf("%q is not one of %s", v, strings.Join(ch.values, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateOutput() ValidationErrors {
	path := strings.TrimSpace(c.Output.Path)
	switch {
	case path == "":
		return ValidationErrors{{Field: "output.path", Message: "path is required"}}
	case !strings.EqualFold(filepath.Ext(path), ".json"):
		return ValidationErrors{{Field: "output.path", Message: "path must end in .json"}}
	}
	return nil
}
