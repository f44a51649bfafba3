package utils

import (
	"fmt"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for every date crossing the
// module boundary.
const DateLayout = "2006-01-02"

// ParseDate converts YYYY-MM-DD to time.Time. The empty string yields the
// zero time.
func ParseDate(strDate string) (time.Time, error) {
	if strDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, strDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("ParseDate: %w", err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// MonthInt returns the numeric month.
func MonthInt(t time.Time) int {
	return int(t.Month())
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises.
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if target.Month() == t.AddDate(0, months, 0).Month() {
		return t.AddDate(0, months, 0)
	}

	d := t.AddDate(0, months, 0)
	origMonth := MonthInt(d)
	for MonthInt(d) == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
