// Package devserver is a reference implementation of the profile settings
// server: it renders the profile page and serves the four preference
// endpoints with the same response envelopes and anti-forgery checks as
// the media manager.
package devserver

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Options configures a Server.
type Options struct {
	Addr     string
	SyncLock time.Duration
	Username string
	Logger   zerolog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Preferences is the stored state of the single profile.
type Preferences struct {
	Theme           string
	Timezone        string
	AutoSyncEnabled bool
	SyncInterval    string
	LastSynced      time.Time
}

// DefaultPreferences are the values of a fresh profile.
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:        "system",
		Timezone:     "UTC",
		SyncInterval: "daily",
	}
}

type Server struct {
	opts   Options
	router *gin.Engine
	tmpl   *template.Template
	logger zerolog.Logger

	httpServer *http.Server
	listener   net.Listener

	mu        sync.Mutex
	prefs     Preferences
	syncUntil time.Time
}

func New(opts Options) (*Server, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Username == "" {
		opts.Username = "plex-user"
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	s := &Server{
		opts:   opts,
		router: router,
		tmpl:   tmpl,
		logger: opts.Logger.With().Str("component", "devserver").Logger(),
		prefs:  DefaultPreferences(),
	}
	router.Use(s.recovery(), s.requestLogger())
	s.setupRoutes()

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "profilectl-devserver"})
	})

	s.router.GET("/profile/", s.handleProfile())

	api := s.router.Group("/api")
	api.Use(s.csrfProtect())
	{
		api.POST("/preferences/theme/", s.handleTheme())
		api.POST("/settings/timezone/", s.handleTimezone())
		api.POST("/settings/auto-sync/", s.handleAutoSync())
		api.POST("/sync/", s.handleSync())
	}
}

// Handler exposes the router for in-process tests.
func (s *Server) Handler() http.Handler { return s.router }

// Preferences returns a copy of the stored preferences.
func (s *Server) Preferences() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// SetPreferences replaces the stored preferences.
func (s *Server) SetPreferences(p Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	s.listener = listener
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("starting dev server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("dev server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down dev server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error().
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", r).
					Msg("handler panic")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("An unexpected error occurred"))
			}
		}()
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
