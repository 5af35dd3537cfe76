package ui

import "github.com/charmbracelet/lipgloss"

// --- Theme Colors ---

// palette holds one color per role. Auto uses adaptive colors so the
// terminal background picks the variant.
type palette struct {
	Primary, Secondary, Accent, Background, Text, Muted,
	Success, Error, Warning, Border lipgloss.TerminalColor
}

var darkPalette = palette{
	Primary:    lipgloss.Color("#7f57b4"), // purple
	Secondary:  lipgloss.Color("#436b77"), // teal
	Accent:     lipgloss.Color("#a7754e"), // warm
	Background: lipgloss.Color("#16161d"),
	Text:       lipgloss.Color("#d7d9da"),
	Muted:      lipgloss.Color("#9ba0bf"),
	Success:    lipgloss.Color("#3f866b"),
	Error:      lipgloss.Color("#e06c75"),
	Warning:    lipgloss.Color("#c78854"),
	Border:     lipgloss.Color("#273540"),
}

var lightPalette = palette{
	Primary:    lipgloss.Color("#5b3a8c"),
	Secondary:  lipgloss.Color("#2f5561"),
	Accent:     lipgloss.Color("#8a5a33"),
	Background: lipgloss.Color("#f4f4f6"),
	Text:       lipgloss.Color("#1f2328"),
	Muted:      lipgloss.Color("#5c617d"),
	Success:    lipgloss.Color("#2a6b52"),
	Error:      lipgloss.Color("#a3303d"),
	Warning:    lipgloss.Color("#9a5d22"),
	Border:     lipgloss.Color("#b8c0c8"),
}

func adaptive(light, dark lipgloss.TerminalColor) lipgloss.TerminalColor {
	return lipgloss.AdaptiveColor{Light: string(light.(lipgloss.Color)), Dark: string(dark.(lipgloss.Color))}
}

var autoPalette = palette{
	Primary:    adaptive(lightPalette.Primary, darkPalette.Primary),
	Secondary:  adaptive(lightPalette.Secondary, darkPalette.Secondary),
	Accent:     adaptive(lightPalette.Accent, darkPalette.Accent),
	Background: adaptive(lightPalette.Background, darkPalette.Background),
	Text:       adaptive(lightPalette.Text, darkPalette.Text),
	Muted:      adaptive(lightPalette.Muted, darkPalette.Muted),
	Success:    adaptive(lightPalette.Success, darkPalette.Success),
	Error:      adaptive(lightPalette.Error, darkPalette.Error),
	Warning:    adaptive(lightPalette.Warning, darkPalette.Warning),
	Border:     adaptive(lightPalette.Border, darkPalette.Border),
}

var (
	ColorPrimary    lipgloss.TerminalColor
	ColorSecondary  lipgloss.TerminalColor
	ColorAccent     lipgloss.TerminalColor
	ColorBackground lipgloss.TerminalColor
	ColorText       lipgloss.TerminalColor
	ColorMuted      lipgloss.TerminalColor
	ColorSuccess    lipgloss.TerminalColor
	ColorError      lipgloss.TerminalColor
	ColorWarning    lipgloss.TerminalColor
	ColorBorder     lipgloss.TerminalColor
)

// --- Reusable Styles ---

var (
	BannerStyle      lipgloss.Style
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	TabWarnStyle     lipgloss.Style
	SelectedStyle    lipgloss.Style
	NormalStyle      lipgloss.Style
	MutedStyle       lipgloss.Style
	SuccessStyle     lipgloss.Style
	ErrorStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
	AccentStyle      lipgloss.Style
	HeaderStyle      lipgloss.Style
)

var activeTheme string

func init() {
	ApplyTheme("auto")
}

// ApplyTheme switches every color and style to the named theme. Unknown
// names fall back to auto.
func ApplyTheme(name string) {
	p := autoPalette
	switch name {
	case "dark":
		p = darkPalette
	case "light":
		p = lightPalette
	default:
		name = "auto"
	}
	activeTheme = name

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorAccent = p.Accent
	ColorBackground = p.Background
	ColorText = p.Text
	ColorMuted = p.Muted
	ColorSuccess = p.Success
	ColorError = p.Error
	ColorWarning = p.Warning
	ColorBorder = p.Border

	BannerStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Padding(0, 1)

	TabWarnStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	NormalStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	MutedStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	WarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	AccentStyle = lipgloss.NewStyle().
		Foreground(ColorAccent)

	HeaderStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)
}

// ActiveTheme returns the name last passed to ApplyTheme.
func ActiveTheme() string {
	return activeTheme
}
