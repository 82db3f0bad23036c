package config

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/sift/internal/rule"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "test.field",
		Value:   123,
		Message: "must be greater than zero",
	}

	expected := "test.field: must be greater than zero (got: 123)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should mention both fields: %s", result)
		}
	})
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	cfg := Default()
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default config should be valid, got errors: %v", errs)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Config)
		wantFields []string
	}{
		{
			name:   "valid data paths",
			modify: func(c *Config) { c.Data.Paths = []string{"a.json", "b.yml", "c.toml"} },
		},
		{
			name:       "unsupported data path",
			modify:     func(c *Config) { c.Data.Paths = []string{"a.json", "b.csv"} },
			wantFields: []string{"data.paths[1]"},
		},
		{
			name:       "empty data path",
			modify:     func(c *Config) { c.Data.Paths = []string{" "} },
			wantFields: []string{"data.paths[0]"},
		},
		{
			name:       "negative debounce",
			modify:     func(c *Config) { c.Data.DebounceMs = -1 },
			wantFields: []string{"data.debounce_ms"},
		},
		{
			name:       "debounce too large",
			modify:     func(c *Config) { c.Data.DebounceMs = 60000 },
			wantFields: []string{"data.debounce_ms"},
		},
		{
			name: "valid filters",
			modify: func(c *Config) {
				c.Filters = []rule.Spec{
					{Name: "recent", Field: "year", Op: "gt", Value: 2000},
					{Name: "genre", Field: "genre", Op: "eq"},
				}
			},
		},
		{
			name: "bad filter operator",
			modify: func(c *Config) {
				c.Filters = []rule.Spec{{Name: "recent", Field: "year", Op: "newer"}}
			},
			wantFields: []string{"filters[0]"},
		},
		{
			name: "bad filter pattern",
			modify: func(c *Config) {
				c.Filters = []rule.Spec{
					{Name: "ok", Field: "year", Op: "exists"},
					{Name: "re", Field: "title", Op: "match", Value: "("},
				}
			},
			wantFields: []string{"filters[1]"},
		},
		{
			name: "duplicate filter name",
			modify: func(c *Config) {
				c.Filters = []rule.Spec{
					{Name: "recent", Field: "year", Op: "gt", Value: 2000},
					{Name: "recent", Field: "year", Op: "gt", Value: 1990},
				}
			},
			wantFields: []string{"filters[1].name"},
		},
		{
			name:       "bad output format",
			modify:     func(c *Config) { c.Output.Format = "xml" },
			wantFields: []string{"output.format"},
		},
		{
			name:   "panel width zero uses default",
			modify: func(c *Config) { c.TUI.PanelWidth = 0 },
		},
		{
			name:       "panel width too small",
			modify:     func(c *Config) { c.TUI.PanelWidth = 10 },
			wantFields: []string{"tui.panel_width"},
		},
		{
			name:       "panel width too large",
			modify:     func(c *Config) { c.TUI.PanelWidth = 200 },
			wantFields: []string{"tui.panel_width"},
		},
		{
			name:       "negative max rows",
			modify:     func(c *Config) { c.TUI.MaxRows = -5 },
			wantFields: []string{"tui.max_rows"},
		},
		{
			name:       "bad log level",
			modify:     func(c *Config) { c.Logging.Level = "verbose" },
			wantFields: []string{"logging.level"},
		},
		{
			name:   "log level in any case",
			modify: func(c *Config) { c.Logging.Level = "DEBUG" },
		},
		{
			name:       "several errors",
			modify:     func(c *Config) { c.Logging.Level = "x"; c.Output.Format = "y" },
			wantFields: []string{"output.format", "logging.level"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()

			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors, want %d: %v", len(errs), len(tt.wantFields), errs)
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestValidLogLevels(t *testing.T) {
	want := []string{"debug", "info", "warn", "error"}
	got := ValidLogLevels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ValidLogLevels() = %v, want %v", got, want)
	}
}
