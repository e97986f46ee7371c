package domain

import "time"

const dayLayout = "2006-01-02"

// Window is an inclusive calendar-date range. Start and End are stored as
// midnight UTC dates; comparisons only ever look at the calendar date.
type Window struct {
	Start time.Time
	End   time.Time
}

// LastWeek returns the rolling 7-day window ending yesterday relative to the
// given instant: [today-7, today-1].
func LastWeek(today time.Time) Window {
	end := midnightUTC(today).AddDate(0, 0, -1)
	return Window{Start: end.AddDate(0, 0, -6), End: end}
}

// Contains reports whether the UTC calendar date of t falls inside the
// window. GitHub timestamps are ISO8601 in UTC; other zones are not handled.
func (w Window) Contains(t time.Time) bool {
	d := midnightUTC(t.UTC())
	return !d.Before(w.Start) && !d.After(w.End)
}

// StartDay and EndDay format the window boundaries the way the Trac query
// string expects them.
func (w Window) StartDay() string { return w.Start.Format(dayLayout) }
func (w Window) EndDay() string   { return w.End.Format(dayLayout) }

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
