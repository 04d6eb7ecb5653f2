// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Surface    lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
}

// Theme names accepted by the preference API.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// DefaultTheme is the name of the default theme.
const DefaultTheme = ThemeSystem

// themes holds the built-in named palettes.
var themes = map[string]Palette{
	ThemeDark: {
		Primary:    lipgloss.Color("#7aa2f7"),
		Secondary:  lipgloss.Color("#7dcfff"),
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#3b4261"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
	},
	ThemeLight: {
		Primary:    lipgloss.Color("#2e7de9"),
		Secondary:  lipgloss.Color("#007197"),
		Foreground: lipgloss.Color("#3760bf"),
		Muted:      lipgloss.Color("#8990b3"),
		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#c4c8da"),
		Success:    lipgloss.Color("#587539"),
		Warning:    lipgloss.Color("#8c6c3e"),
		Error:      lipgloss.Color("#f52a65"),
	},
}

// ThemeNames returns the theme choices understood by the server, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes)+1)
	for name := range themes {
		names = append(names, name)
	}
	names = append(names, ThemeSystem)
	sort.Strings(names)
	return names
}

// IsTheme reports whether name is a valid theme choice.
func IsTheme(name string) bool {
	if name == ThemeSystem {
		return true
	}
	_, ok := themes[name]
	return ok
}

// hasDarkBackground is swapped in tests; terminal queries are not available there.
var hasDarkBackground = lipgloss.HasDarkBackground

// GetPalette returns the palette for the given theme name. "system" resolves
// to light or dark depending on the terminal background.
func GetPalette(name string) (Palette, bool) {
	if name == ThemeSystem {
		if hasDarkBackground() {
			return themes[ThemeDark], true
		}
		return themes[ThemeLight], true
	}
	p, ok := themes[name]
	return p, ok
}

// CurrentTheme is the name last passed to ApplyTheme.
var CurrentTheme = DefaultTheme

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style

	SectionTitleStyle   lipgloss.Style
	SectionFocusedStyle lipgloss.Style
	SectionStyle        lipgloss.Style
	LabelStyle          lipgloss.Style
	ValueStyle          lipgloss.Style
	DisabledStyle       lipgloss.Style
	HelpStyle           lipgloss.Style

	ButtonStyle         lipgloss.Style
	ButtonFocusedStyle  lipgloss.Style
	ButtonDisabledStyle lipgloss.Style

	ToastInfoStyle       lipgloss.Style
	ToastSuccessStyle    lipgloss.Style
	ToastErrorStyle      lipgloss.Style
	ToastDismissingStyle lipgloss.Style

	SpinnerStyle lipgloss.Style
)

// ApplyTheme resolves name and rebuilds all global styles. Unknown names are
// ignored and reported as false.
func ApplyTheme(name string) bool {
	p, ok := GetPalette(name)
	if !ok {
		return false
	}
	CurrentTheme = name
	SetTheme(p)
	return true
}

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	SectionTitleStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	SectionStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(p.Surface).
		PaddingLeft(1).
		MarginBottom(1)
	SectionFocusedStyle = SectionStyle.
		BorderForeground(p.Primary)
	LabelStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
	ValueStyle = lipgloss.NewStyle().
		Foreground(p.Foreground)
	DisabledStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Strikethrough(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)

	ButtonStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Foreground)
	ButtonFocusedStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)
	ButtonDisabledStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Background(p.Surface).
		Foreground(p.Muted)

	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	ToastInfoStyle = toast.
		BorderForeground(p.Primary).
		Foreground(p.Primary)
	ToastSuccessStyle = toast.
		BorderForeground(p.Success).
		Foreground(p.Success)
	ToastErrorStyle = toast.
		BorderForeground(p.Error).
		Foreground(p.Error)
	ToastDismissingStyle = toast.
		BorderForeground(p.Surface).
		Foreground(p.Muted)

	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Primary)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[ThemeDark])
}
