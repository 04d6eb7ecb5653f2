package toast

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/profilectl/internal/core/notify"
	"github.com/colonyops/profilectl/internal/core/styles"
)

const toastWidth = 50

// View renders the center's stack and composites it over the screen.
type View struct {
	center *Center
}

// NewView creates a View for center.
func NewView(center *Center) *View {
	return &View{center: center}
}

// View renders the stack with toasts stacked vertically (oldest at top,
// newest at bottom). Entering toasts are not drawn yet.
func (v *View) View() string {
	toasts := v.center.Toasts()
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		if t.Phase == PhaseEntering {
			continue
		}
		rendered = append(rendered, renderToast(t))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(t Toast) string {
	var icon string
	var style lipgloss.Style

	switch t.Notification.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.LevelSuccess:
		icon = styles.IconNotifySuccess
		style = styles.ToastSuccessStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	if t.Phase == PhaseDismissing {
		style = styles.ToastDismissingStyle
	}

	return style.Width(toastWidth).Render(icon + " " + t.Notification.Message)
}

// Overlay composites the toast stack over background in the lower-right corner.
func (v *View) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}

	lines := strings.Split(background, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}

	toastLines := strings.Split(content, "\n")
	x := max(width-lipgloss.Width(content)-1, 0)
	top := max(len(lines)-len(toastLines), 0)

	for i, tl := range toastLines {
		y := top + i
		if y >= len(lines) {
			break
		}
		line := ansi.Truncate(lines[y], x, "")
		if pad := x - ansi.StringWidth(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		lines[y] = line + tl
	}

	return strings.Join(lines, "\n")
}
