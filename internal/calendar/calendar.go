// Package calendar holds the day, month and weekday rules used to classify
// tasks. Every function takes the moment it reasons about explicitly; the
// current time comes from a Clock so callers can pin it in tests.
//
// The zero time.Time is treated as an invalid timestamp throughout: checks
// against it report false and labels for it are empty.
package calendar

import "time"

// Clock supplies the current moment.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the local time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same moment.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

var monthLabels = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var weekdayLabels = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfToday returns midnight of the clock's current day.
func StartOfToday(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// DayWindow returns the window covering base's whole day. The end is the
// next calendar midnight, so DST days are 23 or 25 hours long.
func DayWindow(base time.Time) Window {
	start := StartOfDay(base)
	if start.IsZero() {
		return Window{}
	}
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// IsOverdue reports whether due lies before the start of now's day.
func IsOverdue(due, now time.Time) bool {
	if due.IsZero() || now.IsZero() {
		return false
	}
	return due.Before(StartOfDay(now))
}

// IsDueToday reports whether due falls within now's day.
func IsDueToday(due, now time.Time) bool {
	if now.IsZero() {
		return false
	}
	return DayWindow(now).Contains(due)
}

// IsDueTomorrow reports whether due falls within the day after now.
func IsDueTomorrow(due, now time.Time) bool {
	if now.IsZero() {
		return false
	}
	return DayWindow(StartOfDay(now).AddDate(0, 0, 1)).Contains(due)
}

// MonthLabel returns the short English month name, e.g. "Jan".
func MonthLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return monthLabels[t.Month()-1]
}

// WeekdayLabel returns the short English weekday name, e.g. "Mon".
func WeekdayLabel(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return weekdayLabels[t.Weekday()]
}

// WeekdayName returns the short English name of d.
func WeekdayName(d time.Weekday) string {
	return weekdayLabels[d%7]
}

// MonthStart returns midnight on the first day of t's month.
func MonthStart(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// AddMonths shifts a month start by n months. It must be given a month
// start; AddDate on the 31st overflows into the following month.
func AddMonths(monthStart time.Time, n int) time.Time {
	return monthStart.AddDate(0, n, 0)
}

// WeekdayOrder lists the seven weekdays beginning with start.
func WeekdayOrder(start time.Weekday) [7]time.Weekday {
	var out [7]time.Weekday
	for i := range out {
		out[i] = time.Weekday((int(start) + i) % 7)
	}
	return out
}

// ParseWeekday maps a lowercase English weekday name to a time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	switch name {
	case "sunday", "sun":
		return time.Sunday, true
	case "monday", "mon":
		return time.Monday, true
	case "tuesday", "tue":
		return time.Tuesday, true
	case "wednesday", "wed":
		return time.Wednesday, true
	case "thursday", "thu":
		return time.Thursday, true
	case "friday", "fri":
		return time.Friday, true
	case "saturday", "sat":
		return time.Saturday, true
	}
	return time.Sunday, false
}
