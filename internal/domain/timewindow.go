package domain

import "time"

// CheckInLeadTime is how long before an event starts attendees may check in.
const CheckInLeadTime = time.Hour

// Window is a closed time interval [Start, End].
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow returns the window [start, end].
func NewWindow(start, end time.Time) Window {
	return Window{Start: start, End: end}
}

// Valid reports whether End is not before Start.
func (w Window) Valid() bool {
	return !w.End.Before(w.Start)
}

// Contains reports whether t lies inside the window, both bounds inclusive.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// NotStarted reports whether t is strictly before Start.
func (w Window) NotStarted(t time.Time) bool {
	return t.Before(w.Start)
}

// CheckInWindow is [start - CheckInLeadTime, end].
func CheckInWindow(start, end time.Time) Window {
	return Window{Start: start.Add(-CheckInLeadTime), End: end}
}
