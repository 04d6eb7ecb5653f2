package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBackground(t *testing.T, dark bool) {
	t.Helper()
	prev := hasDarkBackground
	hasDarkBackground = func() bool { return dark }
	t.Cleanup(func() {
		hasDarkBackground = prev
		ApplyTheme(ThemeDark)
	})
}

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"dark", "light", "system"}, ThemeNames())
}

func TestIsTheme(t *testing.T) {
	assert.True(t, IsTheme("system"))
	assert.True(t, IsTheme("light"))
	assert.True(t, IsTheme("dark"))
	assert.False(t, IsTheme("solarized"))
	assert.False(t, IsTheme(""))
}

func TestGetPalette_system_follows_terminal(t *testing.T) {
	withBackground(t, false)
	p, ok := GetPalette(ThemeSystem)
	assert.True(t, ok)
	assert.Equal(t, themes[ThemeLight], p)

	hasDarkBackground = func() bool { return true }
	p, ok = GetPalette(ThemeSystem)
	assert.True(t, ok)
	assert.Equal(t, themes[ThemeDark], p)
}

func TestApplyTheme(t *testing.T) {
	withBackground(t, true)

	assert.True(t, ApplyTheme(ThemeLight))
	assert.Equal(t, ThemeLight, CurrentTheme)
	assert.Equal(t, themes[ThemeLight], CurrentPalette)

	assert.False(t, ApplyTheme("neon"))
	assert.Equal(t, ThemeLight, CurrentTheme, "unknown theme leaves current theme alone")
}
