package util

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateANSI(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact width unchanged", "hello", 5, "hello"},
		{"long string truncated", "hello world", 8, "hello..."},
		{"very small width returns ellipsis", "hello", 3, "..."},
		{"negative width returns ellipsis", "hello", -1, "..."},
		{"empty string unchanged", "", 10, ""},
		{"wide characters", "日本語テスト", 7, "日本..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateANSI(tt.input, tt.maxWidth); got != tt.expected {
				t.Errorf("TruncateANSI(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
			}
		})
	}
}

func TestTruncateANSI_PreservesStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("a long styled line of text")
	got := TruncateANSI(styled, 10)
	if w := lipgloss.Width(got); w > 10 {
		t.Errorf("width = %d, want <= 10", w)
	}
}

func TestPadANSI(t *testing.T) {
	tests := []struct {
		input string
		width int
		want  string
	}{
		{"ab", 4, "ab  "},
		{"abcd", 4, "abcd"},
		{"abcdef", 4, "abcdef"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := PadANSI(tt.input, tt.width); got != tt.want {
			t.Errorf("PadANSI(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
		}
	}
}

func TestFormatPayload(t *testing.T) {
	tests := []struct {
		payload any
		want    string
	}{
		{nil, ""},
		{"Fantasy", `"Fantasy"`},
		{"2000", `"2000"`},
		{int64(2000), "2000"},
		{2.5, "2.5"},
		{true, "true"},
		{[]any{"a", 1}, "[a 1]"},
	}
	for _, tt := range tests {
		if got := FormatPayload(tt.payload); got != tt.want {
			t.Errorf("FormatPayload(%#v) = %q, want %q", tt.payload, got, tt.want)
		}
	}
}
