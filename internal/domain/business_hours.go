package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ErrInvalidBusinessHours is returned for empty, inverted, unsorted or overlapping windows.
var ErrInvalidBusinessHours = errors.New("domain: invalid business hours")

// BusinessWindow is a contiguous clock-time range within a day.
type BusinessWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// On returns the window as an absolute interval on the given date.
func (w BusinessWindow) On(date time.Time, loc *time.Location) TimeInterval {
	return TimeInterval{Start: w.Start.On(date, loc), End: w.End.On(date, loc)}
}

// BusinessHours is the ordered set of daily windows, identical for every day.
type BusinessHours struct {
	Windows  []BusinessWindow
	Location *time.Location
}

// NewBusinessHours validates that windows are non-empty, well-formed, sorted and disjoint.
func NewBusinessHours(windows []BusinessWindow, loc *time.Location) (BusinessHours, error) {
	if len(windows) == 0 {
		return BusinessHours{}, fmt.Errorf("%w: no windows configured", ErrInvalidBusinessHours)
	}
	if loc == nil {
		loc = time.UTC
	}

	for i, w := range windows {
		if err := w.Start.Validate(); err != nil {
			return BusinessHours{}, fmt.Errorf("%w: window %d start: %v", ErrInvalidBusinessHours, i, err)
		}
		if err := w.End.Validate(); err != nil {
			return BusinessHours{}, fmt.Errorf("%w: window %d end: %v", ErrInvalidBusinessHours, i, err)
		}
		if !w.Start.IsBefore(w.End) {
			return BusinessHours{}, fmt.Errorf("%w: window %d %s-%s is empty or inverted",
				ErrInvalidBusinessHours, i, w.Start, w.End)
		}
		if i > 0 && w.Start.IsBefore(windows[i-1].End) {
			return BusinessHours{}, fmt.Errorf("%w: window %d %s-%s overlaps or precedes %s-%s",
				ErrInvalidBusinessHours, i, w.Start, w.End, windows[i-1].Start, windows[i-1].End)
		}
	}

	copied := make([]BusinessWindow, len(windows))
	copy(copied, windows)

	return BusinessHours{Windows: copied, Location: loc}, nil
}

// Fits reports whether the interval stays on one calendar day and lies
// entirely inside one window of that day.
func (h BusinessHours) Fits(interval TimeInterval) bool {
	_, ok := h.WindowFor(interval)
	return ok
}

// WindowFor returns the window that fully contains the interval.
func (h BusinessHours) WindowFor(interval TimeInterval) (BusinessWindow, bool) {
	if !interval.IsValid() || !interval.SameDay(h.Location) {
		return BusinessWindow{}, false
	}

	day := interval.Start.In(h.Location)
	for _, w := range h.Windows {
		if w.On(day, h.Location).Contains(interval) {
			return w, true
		}
	}
	return BusinessWindow{}, false
}

// DayBounds returns [00:00 of date, 00:00 of the next date) in the configured location.
func (h BusinessHours) DayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, h.Location)
	end := time.Date(y, m, d+1, 0, 0, 0, 0, h.Location)
	return start, end
}
