package styles

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestGetPalette(t *testing.T) {
	tests := []struct {
		name    ThemeName
		primary string
	}{
		{ThemeDefault, "#A78BFA"},
		{ThemeMonokai, "#F92672"},
		{ThemeDracula, "#BD93F9"},
		{ThemeNord, "#88C0D0"},
		{"unknown", "#A78BFA"},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			if got := string(GetPalette(tt.name).Primary); got != tt.primary {
				t.Errorf("Primary = %s, want %s", got, tt.primary)
			}
		})
	}
}

func TestSetActiveTheme(t *testing.T) {
	defer SetActiveTheme(ThemeDefault)

	SetActiveTheme(ThemeNord)
	if PrimaryColor != NordPalette().Primary {
		t.Errorf("PrimaryColor = %s, want nord primary", PrimaryColor)
	}
	if FilterCheckbox.GetForeground() != NordPalette().Secondary {
		t.Error("FilterCheckbox should follow the active theme")
	}
}

func TestIsValidTheme(t *testing.T) {
	defer ClearCustomThemes()

	if !IsValidTheme("dracula") {
		t.Error("dracula should be valid")
	}
	if IsValidTheme("ocean") {
		t.Error("ocean should not be valid before registration")
	}
	RegisterCustomTheme("ocean", &ThemeFile{Name: "Ocean", Version: "1"})
	if !IsValidTheme("ocean") {
		t.Error("ocean should be valid after registration")
	}
	if got := ValidThemes(); got[len(got)-1] != "ocean" {
		t.Errorf("ValidThemes() = %v, want custom theme last", got)
	}
}

func TestThemeFileValidate(t *testing.T) {
	tests := []struct {
		name    string
		theme   ThemeFile
		wantErr string
	}{
		{"valid", ThemeFile{Name: "x", Version: "1", Colors: ThemeColors{Primary: "#fff", Text: "#112233"}}, ""},
		{"missing name", ThemeFile{Version: "1"}, "name is required"},
		{"bad version", ThemeFile{Name: "x", Version: "2"}, "unsupported theme version"},
		{"bad color", ThemeFile{Name: "x", Version: "1", Colors: ThemeColors{Border: "blue"}}, "color 'border'"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.theme.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestThemeFileToPalette_FallsBackToDefault(t *testing.T) {
	p := (&ThemeFile{Colors: ThemeColors{Primary: "#123456"}}).ToPalette()
	if p.Primary != "#123456" {
		t.Errorf("Primary = %s", p.Primary)
	}
	if p.Secondary != DefaultPalette().Secondary {
		t.Errorf("Secondary = %s, want default", p.Secondary)
	}
}

func TestDiscoverCustomThemes(t *testing.T) {
	defer ClearCustomThemes()

	fs := afero.NewMemMapFs()
	files := map[string]string{
		"themes/ocean.yaml":  "name: Ocean\nversion: \"1\"\ncolors:\n  primary: \"#0077BE\"\n",
		"themes/forest.yml":  "name: Forest\nversion: \"1\"\n",
		"themes/nord.yaml":   "name: Nord\nversion: \"1\"\n",
		"themes/broken.yaml": "name: [",
		"themes/notes.txt":   "ignored",
	}
	for path, content := range files {
		if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	loaded, errs := DiscoverCustomThemes(fs, "themes")
	if strings.Join(loaded, ",") != "forest,ocean" {
		t.Errorf("loaded = %v, want [forest ocean]", loaded)
	}
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(errs), errs)
	}
	if GetPalette("ocean").Primary != "#0077BE" {
		t.Error("ocean palette not registered")
	}
}

func TestDiscoverCustomThemes_MissingDir(t *testing.T) {
	loaded, errs := DiscoverCustomThemes(afero.NewMemMapFs(), "nope")
	if loaded != nil || errs != nil {
		t.Errorf("got %v, %v; want nothing", loaded, errs)
	}
}
