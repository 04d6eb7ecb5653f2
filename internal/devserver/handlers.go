package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/colonyops/profilectl/internal/core/styles"
	"github.com/colonyops/profilectl/internal/settings"
)

const (
	currentTimeLayout = "2006-01-02 03:04 PM"
	nextSyncLayout    = "Jan 2, 2006 3:04 PM"
)

func errorBody(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

// successBody merges data into the top level of the envelope.
func successBody(message string, data gin.H) gin.H {
	body := gin.H{"status": "success", "message": message}
	for k, v := range data {
		body[k] = v
	}
	return body
}

type profileView struct {
	Username    string
	Token       string
	Prefs       Preferences
	Themes      []string
	Timezones   []string
	Intervals   []string
	CurrentTime string
	NextSync    string
}

func (s *Server) handleProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ensureToken(c)
		prefs := s.Preferences()
		now := s.opts.Now()

		loc, err := time.LoadLocation(prefs.Timezone)
		if err != nil {
			loc = time.UTC
		}

		view := profileView{
			Username:    s.opts.Username,
			Token:       token,
			Prefs:       prefs,
			Themes:      []string{styles.ThemeSystem, styles.ThemeLight, styles.ThemeDark},
			Timezones:   timezoneChoices(prefs.Timezone),
			Intervals:   settings.SyncIntervals,
			CurrentTime: now.In(loc).Format(currentTimeLayout),
		}
		if prefs.AutoSyncEnabled {
			if next, err := s.nextSyncFor(prefs, now); err == nil {
				view.NextSync = next.In(loc).Format(nextSyncLayout)
			}
		}

		var buf bytes.Buffer
		if err := s.tmpl.ExecuteTemplate(&buf, "profile.html.tmpl", view); err != nil {
			s.logger.Error().Err(err).Msg("render profile page")
			c.String(http.StatusInternalServerError, "failed to render profile")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	}
}

func timezoneChoices(current string) []string {
	choices := slices.Clone(settings.FallbackTimezones)
	if current != "" && !slices.Contains(choices, current) {
		choices = append(choices, current)
	}
	return choices
}

// bindJSON decodes the request body. It reports false after writing the
// error response.
func bindJSON(c *gin.Context, dst any) bool {
	if err := json.NewDecoder(c.Request.Body).Decode(dst); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid JSON data"))
		return false
	}
	return true
}

func (s *Server) handleTheme() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Theme string `json:"theme"`
		}
		if !bindJSON(c, &req) {
			return
		}

		choices := []string{styles.ThemeSystem, styles.ThemeLight, styles.ThemeDark}
		switch {
		case req.Theme == "":
			c.JSON(http.StatusBadRequest, errorBody("Theme preference is required"))
			return
		case !slices.Contains(choices, req.Theme):
			c.JSON(http.StatusBadRequest, errorBody("Invalid theme choice. Must be one of: "+strings.Join(choices, ", ")))
			return
		}

		s.mu.Lock()
		s.prefs.Theme = req.Theme
		s.mu.Unlock()

		s.logger.Info().Str("theme", req.Theme).Msg("updated theme preference")
		c.JSON(http.StatusOK, successBody("Theme updated successfully", gin.H{"theme": req.Theme}))
	}
}

func (s *Server) handleTimezone() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Timezone string `json:"timezone"`
		}
		if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("Invalid request data"))
			return
		}

		if settings.ValidateTimezone(req.Timezone) != nil {
			c.JSON(http.StatusBadRequest, errorBody("Invalid timezone specified"))
			return
		}
		loc, _ := time.LoadLocation(req.Timezone)

		s.mu.Lock()
		s.prefs.Timezone = req.Timezone
		s.mu.Unlock()

		s.logger.Info().Str("timezone", req.Timezone).Msg("updated timezone")
		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"message": "Timezone updated successfully",
			"data": gin.H{
				"timezone":     req.Timezone,
				"current_time": s.opts.Now().In(loc).Format(currentTimeLayout),
			},
		})
	}
}

func (s *Server) handleAutoSync() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := struct {
			Enabled  bool   `json:"auto_sync_enabled"`
			Interval string `json:"sync_interval"`
		}{Interval: "daily"}
		if !bindJSON(c, &req) {
			return
		}

		if !slices.Contains(settings.SyncIntervals, req.Interval) {
			c.JSON(http.StatusBadRequest, errorBody("Invalid sync interval. Must be one of: "+strings.Join(settings.SyncIntervals, ", ")))
			return
		}

		s.mu.Lock()
		s.prefs.AutoSyncEnabled = req.Enabled
		s.prefs.SyncInterval = req.Interval
		prefs := s.prefs
		s.mu.Unlock()

		var next any
		if req.Enabled {
			ts, err := s.nextSyncFor(prefs, s.opts.Now())
			if err != nil {
				s.logger.Error().Err(err).Msg("compute next sync")
			} else {
				next = ts.Format(time.RFC3339)
			}
		}

		s.logger.Info().
			Bool("enabled", req.Enabled).
			Str("interval", req.Interval).
			Msg("updated auto-sync settings")
		c.JSON(http.StatusOK, successBody("Auto-sync settings updated successfully", gin.H{
			"auto_sync_enabled": req.Enabled,
			"sync_interval":     req.Interval,
			"next_sync":         next,
		}))
	}
}

func (s *Server) handleSync() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := s.opts.Now()

		s.mu.Lock()
		if now.Before(s.syncUntil) {
			s.mu.Unlock()
			c.JSON(http.StatusOK, errorBody("Sync already running"))
			return
		}
		s.syncUntil = now.Add(s.opts.SyncLock)
		s.prefs.LastSynced = now
		s.mu.Unlock()

		s.logger.Info().Msg("started manual library sync")
		c.JSON(http.StatusOK, successBody("Sync started successfully", nil))
	}
}

// nextSyncFor schedules from the last sync. A schedule that would already
// have fired is computed from now instead.
func (s *Server) nextSyncFor(prefs Preferences, now time.Time) (time.Time, error) {
	next, err := nextSync(prefs.SyncInterval, prefs.LastSynced)
	if err != nil {
		return time.Time{}, err
	}
	if next.Before(now) {
		return nextSync(prefs.SyncInterval, now)
	}
	return next, nil
}
