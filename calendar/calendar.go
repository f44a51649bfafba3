package calendar

import (
	"fmt"
	"strings"
	"time"
)

// CalendarID identifies a holiday calendar used to roll payment dates.
type CalendarID string

const (
	// None performs no adjustment: every day is a business day.
	None   CalendarID = ""
	TARGET CalendarID = "TARGET"
	PEN    CalendarID = "PEN"
	USD    CalendarID = "USD"
)

type monthDay struct {
	month time.Month
	day   int
}

// Fixed-date holidays. Movable feasts are derived from Easter below.
var fixedHolidays = map[CalendarID][]monthDay{
	TARGET: {
		{time.January, 1}, {time.May, 1}, {time.December, 25}, {time.December, 26},
	},
	PEN: {
		{time.January, 1}, {time.May, 1}, {time.June, 29}, {time.July, 28}, {time.July, 29},
		{time.August, 30}, {time.October, 8}, {time.November, 1}, {time.December, 8},
		{time.December, 25},
	},
	USD: {
		{time.January, 1}, {time.June, 19}, {time.July, 4}, {time.November, 11}, {time.December, 25},
	},
}

// Offsets from Easter Sunday, in days.
var easterHolidays = map[CalendarID][]int{
	TARGET: {-2, 1},  // Good Friday, Easter Monday
	PEN:    {-3, -2}, // Holy Thursday, Good Friday
}

// Parse maps a calendar or currency code to a CalendarID. EUR maps to
// TARGET; the empty string maps to None.
func Parse(s string) (CalendarID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return None, nil
	case "TARGET", "EUR":
		return TARGET, nil
	case "PEN":
		return PEN, nil
	case "USD":
		return USD, nil
	default:
		return None, fmt.Errorf("calendar: unknown calendar %q", s)
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	for _, h := range fixedHolidays[cal] {
		if t.Month() == h.month && t.Day() == h.day {
			return true
		}
	}
	offsets := easterHolidays[cal]
	if len(offsets) == 0 {
		return false
	}
	easter := easterSunday(t.Year())
	for _, off := range offsets {
		d := easter.AddDate(0, 0, off)
		if d.Month() == t.Month() && d.Day() == t.Day() {
			return true
		}
	}
	return false
}

// IsBusinessDay checks weekends and holiday sets. Under None every day is a
// business day.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if cal == None {
		return true
	}
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// easterSunday returns Western Easter for year (anonymous Gregorian
// algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
