// Package validate provides shared validation functions for preference
// values supplied on the command line or in documents.
package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/profilectl/internal/core/styles"
	"github.com/colonyops/profilectl/internal/settings"
)

// Theme validates a theme name.
func Theme(name string) error {
	if !styles.IsTheme(name) {
		return fmt.Errorf("unknown theme %q (valid: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}

// Timezone validates an IANA zone name.
func Timezone(zone string) error {
	return settings.ValidateTimezone(zone)
}

// Interval validates an auto-sync interval.
func Interval(interval string) error {
	if !slices.Contains(settings.SyncIntervals, interval) {
		return fmt.Errorf("unknown interval %q (valid: %s)", interval, strings.Join(settings.SyncIntervals, ", "))
	}
	return nil
}

// ThemeField returns a criterio validator for theme names.
func ThemeField(field, name string) error {
	return criterio.Run(field, name, Theme)
}

// TimezoneField returns a criterio validator for zone names.
func TimezoneField(field, zone string) error {
	return criterio.Run(field, zone, Timezone)
}

// IntervalField returns a criterio validator for intervals.
func IntervalField(field, interval string) error {
	return criterio.Run(field, interval, Interval)
}
