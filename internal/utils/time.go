package util

import (
	"time"
)

const DateLayout = "2006-01-02"

var appLocation = time.UTC

// SetLocation sets the zone whose calendar defines a "day" for streaks.
func SetLocation(loc *time.Location) {
	if loc != nil {
		appLocation = loc
	}
}

func Location() *time.Location {
	return appLocation
}

// CivilDay maps an instant to the calendar day it falls on in the app location,
// represented as midnight UTC of that date. Every stored day uses this form.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.In(appLocation).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOf builds a civil day from its components.
func DateOf(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b. Both arguments are
// normalised by their own date components, so values read back from a DATE column
// compare correctly regardless of the zone the driver attached.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}
