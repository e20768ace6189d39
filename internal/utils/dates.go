package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/constants"
	"github.com/lonsystemskt/evento-card-gestor-92/internal/models"
)

// DateLayout is the civil date format accepted from clients.
const DateLayout = "2006-01-02"

// Calendar performs all civil-day arithmetic in one fixed location, so that
// "today" and day differences do not drift with the host timezone.
type Calendar struct {
	loc   *time.Location
	clock func() time.Time
}

// NewCalendar returns a calendar for loc using the wall clock.
func NewCalendar(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{loc: loc, clock: time.Now}
}

// WithClock returns a copy of the calendar reading the current time from clock.
func (c *Calendar) WithClock(clock func() time.Time) *Calendar {
	return &Calendar{loc: c.loc, clock: clock}
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the calendar location.
func (c *Calendar) Now() time.Time {
	return c.clock().In(c.loc)
}

// Today returns midnight of the current civil day.
func (c *Calendar) Today() time.Time {
	return c.StartOfDay(c.clock())
}

// StartOfDay strips the time of day from t after moving it into the calendar location.
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	return now.New(t.In(c.loc)).BeginningOfDay()
}

// CivilDayDifference returns the signed number of calendar days from b to a.
// Both instants are reduced to their civil date first, so time of day and DST
// transitions never produce fractional days.
func (c *Calendar) CivilDayDifference(a, b time.Time) int {
	ay, am, ad := c.StartOfDay(a).Date()
	by, bm, bd := c.StartOfDay(b).Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(da.Sub(db) / (24 * time.Hour))
}

// Urgency classifies a due date against today.
func (c *Calendar) Urgency(due time.Time) models.UrgencyTier {
	return models.ClassifyUrgency(c.CivilDayDifference(due, c.clock()), constants.UrgentWindowDays)
}

// ParseDate accepts a civil date (YYYY-MM-DD, taken as midnight in the
// calendar location) or an RFC3339 timestamp.
func (c *Calendar) ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.ParseInLocation(DateLayout, value, c.loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}

// FormatDate renders the civil date of t.
func (c *Calendar) FormatDate(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}
