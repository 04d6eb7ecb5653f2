package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/profilectl/internal/core/config"
	"github.com/colonyops/profilectl/internal/core/logging"
	"github.com/colonyops/profilectl/internal/page"
	"github.com/colonyops/profilectl/internal/printer"
	"github.com/colonyops/profilectl/internal/settings"
	"github.com/colonyops/profilectl/internal/transport"
)

// session is an authenticated connection with the profile page loaded.
type session struct {
	cfg    *config.Config
	client *transport.Client
	loader *page.Loader
	doc    *page.Document
	deps   settings.Deps
}

func (f *Flags) config() *config.Config {
	if f.Config == nil {
		cfg := config.DefaultConfig()
		f.Config = &cfg
	}
	if f.BaseURL != "" {
		f.Config.Server.BaseURL = f.BaseURL
	}
	return f.Config
}

func (f *Flags) newClient() (*transport.Client, error) {
	cfg := f.config()
	return transport.New(transport.Options{
		BaseURL:     cfg.Server.BaseURL,
		Timeout:     cfg.Server.Timeout,
		CookieName:  cfg.Session.CookieName,
		CookieValue: cfg.Session.CookieValue,
		Logger:      logging.Component("transport"),
	})
}

// connect loads the profile page so requests carry its anti-forgery token.
// Outcomes are reported through notifier.
func (f *Flags) connect(ctx context.Context, notifier settings.Notifier) (*session, error) {
	client, err := f.newClient()
	if err != nil {
		return nil, err
	}

	cfg := f.config()
	loader := page.NewLoader(client, cfg.Server.ProfilePath)
	doc, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Server.BaseURL, err)
	}
	client.SetDocument(doc)

	return &session{
		cfg:    cfg,
		client: client,
		loader: loader,
		doc:    doc,
		deps: settings.Deps{
			Context:   ctx,
			Transport: client,
			Notifier:  notifier,
			Logger:    logging.Component("settings"),
		},
	}, nil
}

// reload refetches the profile page and swaps in its tokens.
func (s *session) reload(ctx context.Context) error {
	doc, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}
	s.doc = doc
	s.client.SetDocument(doc)
	return nil
}

// outcome maps an error notification to exit code 1.
func outcome(p *printer.Printer) error {
	if p.Failed() {
		return cli.Exit("", 1)
	}
	return nil
}

func (s *session) theme() *settings.Theme {
	return settings.NewTheme(s.deps, s.cfg.Endpoints.Theme, s.doc.Theme.Selected, s.doc.Theme.Values())
}

func (s *session) timezone(reload settings.Reloader) *settings.Timezone {
	return settings.NewTimezone(s.deps, s.cfg.Endpoints.Timezone, s.doc.Timezone.Selected, timezoneOptions(s), reload)
}

// reloader refetches the page after a timezone change so later steps see
// times rendered in the new zone.
func (s *session) reloader(ctx context.Context) settings.Reloader {
	return settings.ReloadFunc(func() tea.Cmd {
		if err := s.reload(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to reload profile after timezone change")
		}
		return nil
	})
}

func (s *session) autoSync() *settings.AutoSync {
	doc := s.doc
	st := settings.AutoSyncState{
		Enabled:   doc.AutoSyncEnabled,
		Interval:  doc.SyncInterval.Selected,
		Intervals: doc.SyncInterval.Values(),
	}
	if zone := doc.Timezone.Selected; zone != "" {
		if loc, err := time.LoadLocation(zone); err == nil {
			st.Location = loc
		}
	}
	if el, ok := doc.Element(page.NextSyncID); ok {
		st.NextSync = settings.NextSync{Present: true, Hidden: el.Hidden, Text: el.Text}
	}
	return settings.NewAutoSync(s.deps, s.cfg.Endpoints.AutoSync, st)
}

func (s *session) manualSync() *settings.ManualSync {
	label := ""
	if el, ok := s.doc.Element(page.SyncNowID); ok {
		label = el.Text
	}
	return settings.NewManualSync(s.deps, s.cfg.Endpoints.Sync, label, s.doc.Has(page.QuickSyncID))
}

func timezoneOptions(s *session) []string {
	if opts := s.doc.Timezone.Values(); len(opts) > 0 {
		return opts
	}
	return settings.FallbackTimezones
}
