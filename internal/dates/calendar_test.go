package dates_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mind-engage/examplanner/internal/dates"
)

func fixedCalendar(t *testing.T, now time.Time) *dates.Local {
	t.Helper()
	return &dates.Local{Now: func() time.Time { return now }, Loc: time.UTC}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	cal := fixedCalendar(t, time.Date(2025, 1, 5, 23, 30, 0, 0, time.UTC))
	today := cal.Today()
	if today.Hour() != 0 || today.Day() != 5 {
		t.Fatalf("expected midnight of Jan 5, got %v", today)
	}

	cases := []struct {
		exam string
		want int
	}{
		{"2025-01-05", 0},
		{"2025-01-08", 3},
		{"2025-01-15", 10},
		{"2025-01-04", -1},
		{"2025-02-05", 31},
	}
	for _, tc := range cases {
		d, err := cal.Parse(tc.exam)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.exam, err)
		}
		if got := cal.DaysBetween(d, time.Date(2025, 1, 5, 23, 30, 0, 0, time.UTC)); got != tc.want {
			t.Fatalf("DaysBetween(%s) = %d, want %d", tc.exam, got, tc.want)
		}
	}
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	cal := &dates.Local{Now: time.Now, Loc: loc}
	a := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	b := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	if got := cal.DaysBetween(a, b); got != 2 {
		t.Fatalf("expected 2 days across DST change, got %d", got)
	}
}

func TestFormatLong(t *testing.T) {
	cal := fixedCalendar(t, time.Now())
	d, err := cal.Parse("2025-01-05")
	if err != nil {
		t.Fatal(err)
	}
	if got := cal.FormatLong(d); got != "January 5, 2025" {
		t.Fatalf("unexpected long date %q", got)
	}
}

func TestParse_RFC3339AndInvalid(t *testing.T) {
	cal := fixedCalendar(t, time.Now())
	if _, err := cal.Parse("2025-06-01T09:00:00Z"); err != nil {
		t.Fatalf("rfc3339 should parse: %v", err)
	}
	for _, bad := range []string{"", "next tuesday", "2025-13-40", "05/01/2025"} {
		if _, err := cal.Parse(bad); !errors.Is(err, dates.ErrInvalidDate) {
			t.Fatalf("Parse(%q) err = %v, want ErrInvalidDate", bad, err)
		}
	}
}

func TestAddDays(t *testing.T) {
	start := time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC)
	if got := dates.AddDays(start, 3); !got.Equal(time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected AddDays result %v", got)
	}
}

func TestDaysBetween_FarApart(t *testing.T) {
	cal := fixedCalendar(t, time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC))
	cases := []struct {
		exam string
		want int
	}{
		{"2400-01-05", 136965},
		{"9999-12-31", 2912803},
		{"0001-01-01", -739255},
	}
	for _, tc := range cases {
		d, err := cal.Parse(tc.exam)
		if err != nil {
			t.Fatalf("parse %s: %v", tc.exam, err)
		}
		if got := cal.DaysBetween(d, cal.Today()); got != tc.want {
			t.Fatalf("DaysBetween(%s) = %d, want %d", tc.exam, got, tc.want)
		}
	}
}
