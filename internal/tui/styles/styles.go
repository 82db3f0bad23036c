package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#A78BFA")
	SecondaryColor = lipgloss.Color("#10B981")
	WarningColor   = lipgloss.Color("#F59E0B")
	ErrorColor     = lipgloss.Color("#F87171")
	MutedColor     = lipgloss.Color("#9CA3AF")
	SurfaceColor   = lipgloss.Color("#1F2937")
	TextColor      = lipgloss.Color("#F9FAFB")
	BorderColor    = lipgloss.Color("#6B7280")

	// Convenience styles for colors
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Text      lipgloss.Style

	Title      lipgloss.Style
	Header     lipgloss.Style
	ContentBox lipgloss.Style
	HelpBar    lipgloss.Style
	HelpKey    lipgloss.Style
	StatusBar  lipgloss.Style

	// Filter panel
	FilterCategoryEnabled  lipgloss.Style
	FilterCategoryDisabled lipgloss.Style
	FilterCheckbox         lipgloss.Style
	FilterCheckboxEmpty    lipgloss.Style
	FilterCursor           lipgloss.Style
	FilterPayload          lipgloss.Style
	FilterPending          lipgloss.Style
)

func init() {
	SetActiveTheme(ThemeDefault)
}

// SetActiveTheme rebuilds the package-level styles from the named theme.
//
// Not thread-safe: call it before the program starts or from the Bubble Tea
// event loop.
func SetActiveTheme(name ThemeName) {
	apply(GetPalette(name))
}

func apply(p *ColorPalette) {
	PrimaryColor = p.Primary
	SecondaryColor = p.Secondary
	WarningColor = p.Warning
	ErrorColor = p.Error
	MutedColor = p.Muted
	SurfaceColor = p.Surface
	TextColor = p.Text
	BorderColor = p.Border

	Primary = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Error = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted = lipgloss.NewStyle().Foreground(MutedColor)
	Text = lipgloss.NewStyle().Foreground(TextColor)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		MarginBottom(1)

	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(BorderColor)

	ContentBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 1)

	HelpBar = lipgloss.NewStyle().
		Foreground(MutedColor).
		MarginTop(1)

	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(SecondaryColor)

	StatusBar = lipgloss.NewStyle().
		Foreground(TextColor).
		Background(SurfaceColor).
		Padding(0, 1)

	FilterCategoryEnabled = lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true)

	FilterCategoryDisabled = lipgloss.NewStyle().
		Foreground(MutedColor)

	FilterCheckbox = lipgloss.NewStyle().
		Foreground(SecondaryColor)

	FilterCheckboxEmpty = lipgloss.NewStyle().
		Foreground(MutedColor)

	FilterCursor = lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Bold(true)

	FilterPayload = lipgloss.NewStyle().
		Foreground(WarningColor).
		Italic(true)

	FilterPending = lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
}
