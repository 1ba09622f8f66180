// Package dates holds the calendar arithmetic and formatting used by the
// exam views, behind a small interface so views can be tested with a fixed clock.
package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	ISODate  = "2006-01-02"
	LongDate = "January 2, 2006"
)

var ErrInvalidDate = errors.New("invalid date")

type Calendar interface {
	// Today is re-evaluated on every call.
	Today() time.Time
	// DaysBetween returns the whole calendar days from b to a (negative when a is earlier).
	DaysBetween(a, b time.Time) int
	FormatLong(t time.Time) string
	Parse(s string) (time.Time, error)
}

// Local is a Calendar bound to one location. Now defaults to time.Now.
type Local struct {
	Now func() time.Time
	Loc *time.Location
}

func NewLocal(zone string) (*Local, error) {
	if zone == "" {
		return &Local{Now: time.Now, Loc: time.Local}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", zone, err)
	}
	return &Local{Now: time.Now, Loc: loc}, nil
}

func (c *Local) loc() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

func (c *Local) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return c.midnight(now())
}

func (c *Local) DaysBetween(a, b time.Time) int {
	// Compare calendar dates in UTC so DST transitions never produce 23h/25h days.
	ay, am, ad := a.In(c.loc()).Date()
	by, bm, bd := b.In(c.loc()).Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	// Unix seconds, not Duration: Sub saturates past ~292 years.
	return int((ua.Unix() - ub.Unix()) / 86400)
}

func (c *Local) FormatLong(t time.Time) string {
	return t.In(c.loc()).Format(LongDate)
}

// Parse reads a stored exam date. Date-only values are placed at local
// midnight; RFC 3339 values keep their instant.
func (c *Local) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.ParseInLocation(ISODate, s, c.loc()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

func (c *Local) midnight(t time.Time) time.Time {
	y, m, d := t.In(c.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc())
}

// AddDays moves t by n calendar days, keeping it at local midnight.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}
