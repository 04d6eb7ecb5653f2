package devserver

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

var intervalSpecs = map[string]string{
	"hourly": "@hourly",
	"daily":  "@daily",
	"weekly": "@weekly",
}

// nextSync returns the next scheduled sync after from for interval.
func nextSync(interval string, from time.Time) (time.Time, error) {
	spec, ok := intervalSpecs[interval]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown sync interval %q", interval)
	}
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return sched.Next(from), nil
}
