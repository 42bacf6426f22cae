package brewery

import (
	"fmt"
	"math"
	"time"

	"github.com/robfig/cron/v3"
)

// Calendar maps virtual days onto calendar dates and decides which days the
// taproom is open. A nil *Calendar is always open.
type Calendar struct {
	start    time.Time
	expr     string
	schedule cron.Schedule // nil when every day is open
}

// NewCalendar anchors day 0 at start. expr is a standard five-field cron
// expression or descriptor (e.g. "0 11 * * 2-6", "@daily"); a day is open when
// the schedule fires at least once during it. An empty expr opens every day.
func NewCalendar(start time.Time, expr string) (*Calendar, error) {
	c := &Calendar{start: start, expr: expr}
	if expr == "" {
		return c, nil
	}
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("open_schedule %q: %w", expr, err)
	}
	c.schedule = schedule
	return c, nil
}

// Date returns the calendar date of the virtual day containing t.
func (c *Calendar) Date(t float64) time.Time {
	return c.start.AddDate(0, 0, int(math.Floor(t)))
}

// IsOpen reports whether the taproom trades on the virtual day containing t.
func (c *Calendar) IsOpen(t float64) bool {
	if c == nil || c.schedule == nil {
		return true
	}
	dayStart := c.Date(t)
	next := c.schedule.Next(dayStart.Add(-time.Second))
	return !next.IsZero() && next.Before(dayStart.AddDate(0, 0, 1))
}

func (c *Calendar) String() string {
	if c == nil || c.expr == "" {
		return "every day"
	}
	return c.expr
}
