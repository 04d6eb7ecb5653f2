// Package printer writes styled status lines for CLI commands. A Printer
// also serves as the notification sink of one-shot settings commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/profilectl/internal/core/notify"
	"github.com/colonyops/profilectl/internal/core/styles"
)

type ctxKey struct{}

// Printer prints to a single writer. It is safe for concurrent use.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	errors int
}

func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or a stdout printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

func (p *Printer) Printf(format string, args ...any) {
	p.line(lipgloss.NewStyle(), "", fmt.Sprintf(format, args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.CurrentPalette.Primary), styles.IconNotifyInfo, fmt.Sprintf(format, args...))
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.CurrentPalette.Success), styles.IconNotifySuccess, fmt.Sprintf(format, args...))
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(lipgloss.NewStyle().Foreground(styles.CurrentPalette.Warning), styles.IconNotifyInfo, fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.mu.Lock()
	p.errors++
	p.mu.Unlock()
	p.line(lipgloss.NewStyle().Foreground(styles.CurrentPalette.Error), styles.IconNotifyError, fmt.Sprintf(format, args...))
}

// Show prints a notification as one line. There is no lifecycle on the
// console, so the returned command is always nil.
func (p *Printer) Show(message string, level notify.Level) tea.Cmd {
	switch level {
	case notify.LevelSuccess:
		p.Successf("%s", message)
	case notify.LevelError:
		p.Errorf("%s", message)
	default:
		p.Infof("%s", message)
	}
	return nil
}

// Failed reports whether an error line was printed.
func (p *Printer) Failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errors > 0
}

func (p *Printer) line(style lipgloss.Style, icon, msg string) {
	text := msg
	if icon != "" {
		text = icon + " " + msg
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, style.Render(text))
}
