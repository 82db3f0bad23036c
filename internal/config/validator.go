package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/sift/internal/errors"
	"github.com/Iron-Ham/sift/internal/logging"
	"github.com/Iron-Ham/sift/internal/record"
	"github.com/Iron-Ham/sift/internal/rule"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "tui.panel_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is lets callers match configuration failures with errors.ErrInvalidInput.
func (e ValidationErrors) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

// ValidLogLevels returns the list of valid log levels, lowercase as they
// are written in the config file
func ValidLogLevels() []string {
	levels := logging.ValidLevels()
	for i, l := range levels {
		levels[i] = strings.ToLower(l)
	}
	return levels
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateData()...)
	errs = append(errs, c.validateFilters()...)
	errs = append(errs, c.validateOutput()...)
	errs = append(errs, c.validateTUI()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

// validateData validates the DataConfig
func (c *Config) validateData() []ValidationError {
	var errs []ValidationError

	for i, path := range c.Data.Paths {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("data.paths[%d]", i),
				Value:   path,
				Message: "must not be empty",
			})
			continue
		}
		if record.FormatOf(path) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("data.paths[%d]", i),
				Value:   path,
				Message: "must end in .json, .yaml, .yml or .toml",
			})
		}
	}

	if c.Data.DebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "data.debounce_ms",
			Value:   c.Data.DebounceMs,
			Message: "must be non-negative",
		})
	}

	const maxDebounceMs = 10000
	if c.Data.DebounceMs > maxDebounceMs {
		errs = append(errs, ValidationError{
			Field:   "data.debounce_ms",
			Value:   c.Data.DebounceMs,
			Message: fmt.Sprintf("exceeds maximum of %d", maxDebounceMs),
		})
	}

	return errs
}

// validateFilters compiles each rule so a bad operator or pattern is
// reported at startup rather than when the filter is first applied.
func (c *Config) validateFilters() []ValidationError {
	var errs []ValidationError
	seen := make(map[string]int, len(c.Filters))

	for i, spec := range c.Filters {
		field := fmt.Sprintf("filters[%d]", i)
		if _, err := rule.Compile(spec); err != nil {
			errs = append(errs, ValidationError{Field: field, Value: spec.Name, Message: err.Error()})
			continue
		}
		if first, dup := seen[spec.Name]; dup {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Value:   spec.Name,
				Message: fmt.Sprintf("duplicates filters[%d]", first),
			})
			continue
		}
		seen[spec.Name] = i
	}

	return errs
}

// validateOutput validates the OutputConfig
func (c *Config) validateOutput() []ValidationError {
	if c.Output.Format != "" && !slices.Contains(ValidOutputFormats(), c.Output.Format) {
		return []ValidationError{{
			Field:   "output.format",
			Value:   c.Output.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputFormats(), ", ")),
		}}
	}
	return nil
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errs []ValidationError

	// Panel width validation (0 means use default, which is valid)
	const minPanelWidth = 20
	const maxPanelWidth = 80
	if c.TUI.PanelWidth != 0 {
		if c.TUI.PanelWidth < minPanelWidth {
			errs = append(errs, ValidationError{
				Field:   "tui.panel_width",
				Value:   c.TUI.PanelWidth,
				Message: fmt.Sprintf("must be at least %d columns", minPanelWidth),
			})
		}
		if c.TUI.PanelWidth > maxPanelWidth {
			errs = append(errs, ValidationError{
				Field:   "tui.panel_width",
				Value:   c.TUI.PanelWidth,
				Message: fmt.Sprintf("exceeds maximum of %d columns", maxPanelWidth),
			})
		}
	}

	if c.TUI.MaxRows < 0 {
		errs = append(errs, ValidationError{
			Field:   "tui.max_rows",
			Value:   c.TUI.MaxRows,
			Message: "must be non-negative",
		})
	}

	return errs
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		return []ValidationError{{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		}}
	}
	return nil
}
