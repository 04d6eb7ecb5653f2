package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/profilectl/internal/core/styles"
)

const focusMarker = "›"

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.CommandHeaderStyle.Render("profilectl"))
	b.WriteString(" ")
	b.WriteString(styles.LabelStyle.Render(m.deps.Config.Server.BaseURL))
	b.WriteString("\n")
	b.WriteString(styles.DividerStyle.Render(strings.Repeat("─", max(20, min(m.width, 60)))))
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(m.spinner.View() + " Loading profile...\n")
	case stateFailed:
		b.WriteString(lipgloss.NewStyle().Foreground(styles.CurrentPalette.Error).Render(fmt.Sprintf("Could not load profile: %v", m.loadErr)))
		b.WriteString("\n\n")
		b.WriteString(styles.HelpStyle.Render("press r to retry, q to quit"))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderAppearance())
		b.WriteString("\n")
		b.WriteString(m.renderTimezone())
		b.WriteString("\n")
		b.WriteString(m.renderSync())
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())

	out := b.String()
	if m.width > 0 && m.height > 0 {
		return m.toastView.Overlay(out, m.width, m.height)
	}
	if toasts := m.toastView.View(); toasts != "" {
		out += "\n" + toasts
	}
	return out
}

func (m Model) section(title string, focused bool, lines ...string) string {
	style := styles.SectionStyle
	if focused {
		style = styles.SectionFocusedStyle
	}
	body := append([]string{styles.SectionTitleStyle.Render(title)}, lines...)
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

func (m Model) row(target focusTarget, label, value string) string {
	marker := " "
	if m.focus == target {
		marker = focusMarker
	}
	return fmt.Sprintf("%s %s %s", marker, styles.LabelStyle.Width(10).Render(label), value)
}

func selectValue(value string, enabled bool) string {
	text := "‹ " + value + " ›"
	if !enabled {
		return styles.DisabledStyle.Render(text)
	}
	return styles.ValueStyle.Render(text)
}

func button(label string, focused, enabled bool) string {
	switch {
	case !enabled:
		return styles.ButtonDisabledStyle.Render(label)
	case focused:
		return styles.ButtonFocusedStyle.Render(label)
	default:
		return styles.ButtonStyle.Render(label)
	}
}

func (m Model) renderAppearance() string {
	return m.section("Appearance", m.focus == focusTheme,
		m.row(focusTheme, "Theme", selectValue(m.theme.Value(), m.theme.Enabled())),
	)
}

func (m Model) renderTimezone() string {
	value := selectValue(m.timezone.Value(), m.timezone.Enabled())
	if m.timezone.Pending() {
		value += " " + m.spinner.View()
	}
	lines := []string{m.row(focusTimezone, "Timezone", value)}

	if m.filtering || m.filter.Value() != "" {
		matches := len(m.TimezoneCandidates())
		lines = append(lines, "  "+m.filter.View()+" "+
			styles.HelpStyle.Render(fmt.Sprintf("%d of %d", matches, len(m.timezone.Options()))))
	}
	return m.section("Timezone", m.focus == focusTimezone, lines...)
}

func (m Model) renderSync() string {
	as := m.autoSync

	toggle := styles.IconToggleOff + " off"
	if as.AutoSyncOn() {
		toggle = styles.IconToggleOn + " on"
	}
	toggleStyle := styles.ValueStyle
	if !as.ControlsEnabled() {
		toggleStyle = styles.DisabledStyle
	}

	lines := []string{
		m.row(focusAutoToggle, "Auto-sync", toggleStyle.Render(toggle)),
		m.row(focusInterval, "Interval", selectValue(as.Interval(), as.IntervalEnabled() && as.ControlsEnabled())),
		m.row(focusSave, "", button(as.ButtonLabel(), m.focus == focusSave, as.ButtonEnabled())),
	}
	if next := as.NextSync(); next.Present && !next.Hidden && next.Text != "" {
		lines = append(lines, "  "+styles.LabelStyle.Render(styles.IconClock+" "+next.Text))
	}

	syncBtn := button(styles.IconSync+" "+m.manual.Label(), m.focus == focusSyncNow, m.manual.Enabled())
	if m.manual.Busy() {
		syncBtn += " " + m.spinner.View()
	}
	lines = append(lines, m.row(focusSyncNow, "", syncBtn))

	focused := m.focus >= focusAutoToggle
	return m.section("Library Sync", focused, lines...)
}

func (m Model) renderHelp() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		if b.Help().Key == "" {
			continue
		}
		if b.Help().Key == m.keys.QuickSync.Help().Key && (m.manual == nil || !m.manual.QuickSync()) {
			continue
		}
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return styles.HelpStyle.Render(strings.Join(parts, " • "))
}
